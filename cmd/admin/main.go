package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/stashboard/internal/admin"
	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := admin.NewApp(cfg, logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))), os.Stdout)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}

}
