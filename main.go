package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/pkg/config"
	"github.com/FACorreiaa/pass-store/internal/pkg/logger"
	"github.com/FACorreiaa/pass-store/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat, zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	l := logger.Log
	defer func() { _ = l.Sync() }()

	obs, err := server.InitObservability(cfg.Observability, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, obs.Metrics, l)
	if err != nil {
		return err
	}

	router, err := srv.SetupRouter()
	if err != nil {
		return err
	}
	srv.SetRouter(router)

	servers := []*http.Server{srv.HTTPServer()}
	if cfg.Observability.MetricsAddr != "" {
		servers = append(servers, obs.MetricsServer)
	}
	if cfg.Observability.PprofAddr != "" {
		servers = append(servers, server.PprofServer(cfg.Observability.PprofAddr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.Serve(ctx, l, servers...)
	srv.Sessions().Close()
	return err
}
