// Package server wires storage, services and transports into the stashboard
// server process and runs it until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
	"github.com/dmitrijs2005/stashboard/internal/server/notify"
	"github.com/dmitrijs2005/stashboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/stashboard/internal/server/secrets"
	"github.com/dmitrijs2005/stashboard/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/stashboard/internal/server/grpc"
	hs "github.com/dmitrijs2005/stashboard/internal/server/http"
)

var (
	resolveSecretKey = secrets.ResolveSecretKey
	newPubSubClient  = func(ctx context.Context, project string) (*pubsub.Client, error) {
		return pubsub.NewClient(ctx, project)
	}
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage repomanager.RepositoryManager
	handler *hs.Handler
	health  *gs.GRPCServer
	closers []func()
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := resolveSecretKey(ctx, c); err != nil {
		return nil, fmt.Errorf("secret init error: %w", err)
	}

	m, err := OpenStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, storage: m}

	notifier, err := app.newNotifier(ctx)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	statuses := services.NewStatusService(m)
	images := services.NewImageService(m)
	if err := services.NewSeeder(m, statuses, images, logger).Seed(ctx); err != nil {
		app.close()
		return nil, fmt.Errorf("seed error: %w", err)
	}

	app.handler = hs.NewHandler(hs.Services{
		Statuses: statuses,
		Images:   images,
		Lists:    services.NewListService(m),
		Catalog:  services.NewCatalogService(m, statuses),
		Events:   services.NewEventService(m, notifier),
		Profiles: services.NewProfileService(m, c),
	}, c.HistoryDays, logger)
	app.health = gs.NewGRPCServer(c.EndpointAddrGRPC, logger)

	return app, nil
}

// newNotifier publishes to Pub/Sub when a project is configured.
func (app *App) newNotifier(ctx context.Context) (notify.Notifier, error) {
	if app.config.PubSubProject == "" {
		return notify.NopNotifier{}, nil
	}
	client, err := newPubSubClient(ctx, app.config.PubSubProject)
	if err != nil {
		return nil, err
	}
	n := notify.NewPubSubNotifier(client, app.config.PubSubTopic, app.config.PublicURL, app.logger)
	app.closers = append(app.closers, n.Stop, func() { _ = client.Close() })
	return n, nil
}

func (app *App) close() {
	for _, c := range app.closers {
		c()
	}
	if err := app.storage.Close(); err != nil {
		app.logger.Error(context.Background(), "storage close error", "error", err)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and gRPC until ctx ends, a signal arrives or either
// server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hs.NewHTTPServer(app.config.EndpointAddrHTTP, hs.NewRouter(app.handler), app.logger).Run(ctx)
	})
	g.Go(func() error {
		return app.health.Run(ctx)
	})

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
