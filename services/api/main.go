package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/bootstrap"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/config"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dashboard"
	httpserver "github.com/02loveslollipop/bikeshare-dashboard/services/api/http"
	"github.com/02loveslollipop/bikeshare-dashboard/services/api/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	appLog := logger.New(cfg.LogLevel, cfg.Env)

	tables, err := bootstrap.LoadTables(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("data load error: %v", err)
	}

	cache, closeCache, err := bootstrap.NewCache(ctx, cfg, appLog)
	if err != nil {
		log.Fatalf("cache error: %v", err)
	}
	defer closeCache()

	dash := dashboard.New(tables,
		dashboard.WithCache(cache),
		dashboard.WithLogger(appLog.WithField("component", "dashboard")),
	)

	srv := httpserver.New(cfg, dash, appLog)
	appLog.Infof("REST API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
