package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/observability/metrics"
	"github.com/FACorreiaa/pass-store/internal/app/observability/tracer"
	"github.com/FACorreiaa/pass-store/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// Observability is the installed telemetry: instruments for handlers and
// the Prometheus scrape server.
type Observability struct {
	Metrics       *metrics.AppMetrics
	MetricsServer *http.Server
	Shutdown      ObservabilityShutdownFunc
}

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (*Observability, error) {
	providers, err := tracer.InitOtelProviders(tracer.Config{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	if err := metrics.InitAppMetrics(); err != nil {
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", providers.MetricsHandler)
	logger.Info("Observability initialized", zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"))

	return &Observability{
		Metrics:       metrics.Get(),
		MetricsServer: &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		Shutdown:      providers.Shutdown,
	}, nil
}
