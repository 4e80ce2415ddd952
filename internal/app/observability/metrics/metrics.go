package metrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/pass-store/internal/pkg/cache"
)

const meterName = "pass-store"

// AppMetrics holds the storefront's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	NavigationsTotal       metric.Int64Counter
	AuthSubmissionsTotal   metric.Int64Counter
	GatedActionsTotal      metric.Int64Counter
	ImageSwapsTotal        metric.Int64Counter
	ActiveSessions         metric.Int64UpDownCounter
	TemplateRenderDuration metric.Float64Histogram

	// Cache instruments are observed; see ObserveCache.
	CacheHits      metric.Int64ObservableCounter
	CacheMisses    metric.Int64ObservableCounter
	CacheSets      metric.Int64ObservableCounter
	CacheEvictions metric.Int64ObservableCounter
	CacheEntries   metric.Int64ObservableGauge

	meter metric.Meter
}

var (
	appMetrics *AppMetrics
	initErr    error
	once       sync.Once
)

// New creates the instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{meter: meter}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests completed"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, fmt.Errorf("http_requests_total: %w", err)
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("http_request_duration_seconds: %w", err)
	}

	if m.NavigationsTotal, err = meter.Int64Counter(
		"storefront_navigations_total",
		metric.WithDescription("Page transitions by target view"),
		metric.WithUnit("{navigation}"),
	); err != nil {
		return nil, fmt.Errorf("storefront_navigations_total: %w", err)
	}

	if m.AuthSubmissionsTotal, err = meter.Int64Counter(
		"storefront_auth_submissions_total",
		metric.WithDescription("Auth form submissions by mode and outcome"),
		metric.WithUnit("{submission}"),
	); err != nil {
		return nil, fmt.Errorf("storefront_auth_submissions_total: %w", err)
	}

	if m.GatedActionsTotal, err = meter.Int64Counter(
		"storefront_gated_actions_total",
		metric.WithDescription("Cart and purchase attempts by action and whether they were allowed"),
		metric.WithUnit("{action}"),
	); err != nil {
		return nil, fmt.Errorf("storefront_gated_actions_total: %w", err)
	}

	if m.ImageSwapsTotal, err = meter.Int64Counter(
		"storefront_image_swaps_total",
		metric.WithDescription("Completed gallery image fades"),
		metric.WithUnit("{swap}"),
	); err != nil {
		return nil, fmt.Errorf("storefront_image_swaps_total: %w", err)
	}

	if m.ActiveSessions, err = meter.Int64UpDownCounter(
		"storefront_active_sessions",
		metric.WithDescription("Sessions currently held in memory"),
		metric.WithUnit("{session}"),
	); err != nil {
		return nil, fmt.Errorf("storefront_active_sessions: %w", err)
	}

	if m.TemplateRenderDuration, err = meter.Float64Histogram(
		"template_render_duration_seconds",
		metric.WithDescription("Duration of template rendering in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("template_render_duration_seconds: %w", err)
	}

	if m.CacheHits, err = meter.Int64ObservableCounter(
		"cache_hits_total",
		metric.WithDescription("Cache lookups that found a live entry"),
	); err != nil {
		return nil, fmt.Errorf("cache_hits_total: %w", err)
	}

	if m.CacheMisses, err = meter.Int64ObservableCounter(
		"cache_misses_total",
		metric.WithDescription("Cache lookups that found nothing"),
	); err != nil {
		return nil, fmt.Errorf("cache_misses_total: %w", err)
	}

	if m.CacheSets, err = meter.Int64ObservableCounter(
		"cache_sets_total",
		metric.WithDescription("Entries written to the cache"),
	); err != nil {
		return nil, fmt.Errorf("cache_sets_total: %w", err)
	}

	if m.CacheEvictions, err = meter.Int64ObservableCounter(
		"cache_evictions_total",
		metric.WithDescription("Entries removed by expiry or deletion"),
	); err != nil {
		return nil, fmt.Errorf("cache_evictions_total: %w", err)
	}

	if m.CacheEntries, err = meter.Int64ObservableGauge(
		"cache_entries",
		metric.WithDescription("Entries currently stored, expired ones included until swept"),
	); err != nil {
		return nil, fmt.Errorf("cache_entries: %w", err)
	}

	return m, nil
}

// InitAppMetrics creates the global instruments once, from the global
// MeterProvider.
func InitAppMetrics() error {
	once.Do(func() {
		appMetrics, initErr = New(otel.GetMeterProvider().Meter(meterName))
	})
	return initErr
}

// Get returns the global instruments. InitAppMetrics must have succeeded.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// The recording helpers are no-ops on a nil *AppMetrics.
func (m *AppMetrics) Navigation(ctx context.Context, view string) {
	if m == nil {
		return
	}
	m.NavigationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
}

func (m *AppMetrics) AuthSubmission(ctx context.Context, mode, outcome string) {
	if m == nil {
		return
	}
	m.AuthSubmissionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	))
}

func (m *AppMetrics) GatedAction(ctx context.Context, action string, allowed bool) {
	if m == nil {
		return
	}
	m.GatedActionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("allowed", allowed),
	))
}

func (m *AppMetrics) ImageSwap(ctx context.Context) {
	if m == nil {
		return
	}
	m.ImageSwapsTotal.Add(ctx, 1)
}

func (m *AppMetrics) Render(ctx context.Context, page string, seconds float64) {
	if m == nil {
		return
	}
	m.TemplateRenderDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("page", page)))
}

// ObserveCache reports the counters returned by read, labelled with name, on
// every collection. Unregister the returned registration to stop.
func (m *AppMetrics) ObserveCache(name string, read func() cache.Metrics) (metric.Registration, error) {
	if m == nil {
		return nil, nil
	}
	attrs := metric.WithAttributes(attribute.String("cache", name))
	return m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := read()
		o.ObserveInt64(m.CacheHits, s.Hits, attrs)
		o.ObserveInt64(m.CacheMisses, s.Misses, attrs)
		o.ObserveInt64(m.CacheSets, s.Sets, attrs)
		o.ObserveInt64(m.CacheEvictions, s.Evictions, attrs)
		o.ObserveInt64(m.CacheEntries, s.Entries, attrs)
		return nil
	}, m.CacheHits, m.CacheMisses, m.CacheSets, m.CacheEvictions, m.CacheEntries)
}
