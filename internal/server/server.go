package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/catalog"
	"github.com/FACorreiaa/pass-store/internal/app/domain/session"
	"github.com/FACorreiaa/pass-store/internal/app/observability/metrics"
	"github.com/FACorreiaa/pass-store/internal/pkg/config"
	"github.com/FACorreiaa/pass-store/internal/pkg/format"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	prices   *format.PriceFormatter
	sessions *session.Store
	metrics  *metrics.AppMetrics
	router   http.Handler
}

// New loads the catalog and builds the session store. A catalog that does
// not load or validate is fatal.
func New(cfg *config.Config, m *metrics.AppMetrics, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}

	cat, err := catalog.Load(cfg.Store.CatalogPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s.catalog = cat

	prices, err := format.NewPriceFormatter(cfg.Store.Locale, cfg.Store.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to configure prices: %w", err)
	}
	s.prices = prices

	s.sessions = session.NewStore(s.storeConfig(), logger)
	if _, err := m.ObserveCache(s.sessions.Name(), s.sessions.Stats); err != nil {
		return nil, fmt.Errorf("failed to observe session cache: %w", err)
	}
	logger.Info("Storefront ready",
		zap.Int("sections", len(cat.Sections())),
		zap.String("locale", prices.Locale()),
		zap.String("currency", prices.Currency()),
		zap.Duration("session_ttl", cfg.Session.TTL),
	)
	return s, nil
}

func (s *Server) storeConfig() session.StoreConfig {
	sc := session.StoreConfig{
		TTL:       s.cfg.Session.TTL,
		FadeDelay: s.cfg.Store.FadeDelay,
	}
	if s.metrics != nil {
		m := s.metrics
		sc.OnImageSwap = func() { m.ImageSwap(context.Background()) }
		sc.OnExpire = func(string) { m.ActiveSessions.Add(context.Background(), -1) }
	}
	return sc
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.ServerPort,
		Handler:           s.router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Sessions is the in-memory session store. Closing it at shutdown stops
// the pending gallery fades of every visitor.
func (s *Server) Sessions() *session.Store { return s.sessions }
