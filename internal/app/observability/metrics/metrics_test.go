package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/FACorreiaa/pass-store/internal/pkg/cache"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestInstrumentsRecord(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := New(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.Navigation(ctx, "home")
	m.Navigation(ctx, "home")
	m.AuthSubmission(ctx, "signup", "success")
	m.GatedAction(ctx, "buy_now", false)
	m.ImageSwap(ctx)
	m.Render(ctx, "product", 0.002)

	data := collect(t, reader)

	nav, ok := data["storefront_navigations_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, nav.DataPoints, 1)
	assert.Equal(t, int64(2), nav.DataPoints[0].Value)
	view, _ := nav.DataPoints[0].Attributes.Value("view")
	assert.Equal(t, "home", view.AsString())

	gated, ok := data["storefront_gated_actions_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	allowed, _ := gated.DataPoints[0].Attributes.Value("allowed")
	assert.False(t, allowed.AsBool())

	for _, name := range []string{"storefront_auth_submissions_total", "storefront_image_swaps_total", "template_render_duration_seconds"} {
		assert.Contains(t, data, name)
	}
}

func TestGlobalInit(t *testing.T) {
	require.NoError(t, InitAppMetrics())
	assert.NotNil(t, Get())
	assert.Same(t, Get(), Get())
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *AppMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.Navigation(ctx, "home")
		m.AuthSubmission(ctx, "login", "success")
		m.GatedAction(ctx, "add_to_cart", false)
		m.ImageSwap(ctx)
		m.Render(ctx, "home", 0.01)
		reg, err := m.ObserveCache("sessions", func() cache.Metrics { return cache.Metrics{} })
		assert.NoError(t, err)
		assert.Nil(t, reg)
	})
}

func TestObserveCache(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := New(mp.Meter("test"))
	require.NoError(t, err)

	c := cache.NewTTLCache[int](time.Minute, time.Hour, "sessions", nil)
	reg, err := m.ObserveCache(c.Name(), c.Metrics)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Get("a")
	c.Get("b")
	c.Flush()

	data := collect(t, reader)
	want := map[string]int64{
		"cache_hits_total":      1,
		"cache_misses_total":    1,
		"cache_sets_total":      1,
		"cache_evictions_total": 1,
	}
	for name, value := range want {
		sum, ok := data[name].(metricdata.Sum[int64])
		require.True(t, ok, name)
		require.Len(t, sum.DataPoints, 1, name)
		assert.Equal(t, value, sum.DataPoints[0].Value, name)
		label, _ := sum.DataPoints[0].Attributes.Value("cache")
		assert.Equal(t, "sessions", label.AsString())
	}

	entries, ok := data["cache_entries"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, entries.DataPoints, 1)
	assert.Zero(t, entries.DataPoints[0].Value)

	require.NoError(t, reg.Unregister())
}
