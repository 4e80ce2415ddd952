package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/pass-store/internal/app/domain"
	"github.com/FACorreiaa/pass-store/internal/app/middleware"
	"github.com/FACorreiaa/pass-store/internal/app/pages"
	"github.com/FACorreiaa/pass-store/internal/routes"
)

const sessionCookieName = "pass_session"

// SetupRouter configures and returns the Gin router with all middleware and routes
func (s *Server) SetupRouter() (*gin.Engine, error) {
	gin.SetMode(s.cfg.GinMode)

	renderer, err := pages.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(s.logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
		SkipPaths:  []string{"/product/gallery"},
	}))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(middleware.OTELGinMiddleware(s.cfg.Observability.ServiceName))
	if s.metrics != nil {
		r.Use(middleware.MetricsMiddleware(s.metrics))
	}
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	if err := SetupAssets(r); err != nil {
		return nil, err
	}

	store := cookie.NewStore([]byte(s.cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))
	r.Use(middleware.SessionMiddleware(s.sessions, s.onSessionCreated, s.logger))

	base := domain.NewBaseHandler(s.logger, renderer, s.metrics, s.prices, s.cfg.Store.FadeDelay)
	routes.Setup(r, routes.NewAppHandlers(base, s.catalog))

	return r, nil
}

func (s *Server) onSessionCreated(c *gin.Context) {
	if s.metrics != nil {
		s.metrics.ActiveSessions.Add(c.Request.Context(), 1)
	}
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		if middleware.IsHTMX(c) {
			fields = append(fields, zap.String("hx_target", c.GetHeader("HX-Target")))
		}

		return fields
	}
}
