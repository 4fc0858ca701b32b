// Package admin implements the stashboard maintenance commands: seeding the
// registries, issuing API profiles and exporting event logs.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/dmitrijs2005/stashboard/internal/flagx"
	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/stashboard/internal/server/secrets"
	"github.com/dmitrijs2005/stashboard/internal/server/services"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var (
	openStorage      = server.OpenStorage
	resolveSecretKey = secrets.ResolveSecretKey
)

var ErrUsage = errors.New("usage: admin [-c config.json] seed | profile -owner NAME | export -service SLUG")

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
}

func NewApp(c *config.Config, l logging.Logger, out io.Writer) *App {
	return &App{config: c, logger: l.With("module", "admin"), out: out}
}

// Run dispatches the subcommand found in args.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := flagx.Subcommand(args)

	var run func(context.Context, repomanager.RepositoryManager, []string) error
	switch cmd {
	case "seed":
		run = a.seed
	case "profile":
		run = a.profile
	case "export":
		run = a.export
	default:
		return ErrUsage
	}

	if err := resolveSecretKey(ctx, a.config); err != nil {
		return err
	}
	m, err := openStorage(ctx, a.config)
	if err != nil {
		return err
	}
	defer m.Close()

	return run(ctx, m, rest)
}

func (a *App) seed(ctx context.Context, m repomanager.RepositoryManager, _ []string) error {
	statuses := services.NewStatusService(m)
	images := services.NewImageService(m)
	if err := services.NewSeeder(m, statuses, images, a.logger).Seed(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Defaults loaded")
	return nil
}

func (a *App) profile(ctx context.Context, m repomanager.RepositoryManager, args []string) error {
	var owner string
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&owner, "owner", "", "profile owner")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-owner"})); err != nil {
		return err
	}
	if owner == "" {
		return ErrUsage
	}

	fmt.Fprint(a.out, "Enter secret: ")
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	p, err := services.NewProfileService(m, a.config).Create(ctx, owner, secret)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Owner: %s\nToken: %s\n", p.Owner, p.Token)
	return nil
}

func (a *App) export(ctx context.Context, m repomanager.RepositoryManager, args []string) error {
	var slug string
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&slug, "service", "", "service slug")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-service"})); err != nil {
		return err
	}
	if slug == "" {
		return ErrUsage
	}

	events := services.NewEventService(m, nil)
	key, n, err := services.NewExportService(m, events, a.config).Export(ctx, slug)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d events to s3://%s/%s\n", n, a.config.S3Bucket, key)
	return nil
}
