package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/pass-store/internal/app/domain/productview"
)

func TestStoreGetOrCreate(t *testing.T) {
	st := newTestStore(t, nil)

	s, created := st.GetOrCreate("")
	require.True(t, created)

	again, created := st.GetOrCreate(s.ID())
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := st.GetOrCreate("forged-id")
	assert.True(t, created)
	assert.NotEqual(t, "forged-id", other.ID(), "unknown ids are never adopted")
	assert.Equal(t, int64(2), st.Stats().Entries)
}

func TestStoreConcurrentCreate(t *testing.T) {
	st := newTestStore(t, nil)
	s, _ := st.GetOrCreate("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, created := st.GetOrCreate(s.ID())
			assert.False(t, created)
			assert.Same(t, s, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), st.Stats().Entries)
}

func TestStoreExpiry(t *testing.T) {
	sched := &manualScheduler{}
	var mu sync.Mutex
	var expired []string
	st := NewStore(StoreConfig{
		TTL:       20 * time.Millisecond,
		Cleanup:   10 * time.Millisecond,
		Scheduler: sched,
		OnExpire: func(id string) {
			mu.Lock()
			defer mu.Unlock()
			expired = append(expired, id)
		},
	}, nil)

	s, _ := st.GetOrCreate("")
	_, err := s.OpenProduct(classic[0], "classic", classic)
	require.NoError(t, err)
	_, err = s.UpdateDetail(func(d *productview.Detail) error { return d.Next() })
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(expired) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{s.ID()}, expired)
	mu.Unlock()
	_, ok := st.Get(s.ID())
	assert.False(t, ok)
	assert.True(t, sched.tms[0].stopped, "expiry stops the pending fade")
}

func TestStoreClose(t *testing.T) {
	sched := &manualScheduler{}
	var expired []string
	st := NewStore(StoreConfig{
		TTL:       time.Minute,
		Scheduler: sched,
		OnExpire:  func(id string) { expired = append(expired, id) },
	}, nil)

	s, _ := st.GetOrCreate("")
	_, err := s.OpenProduct(classic[0], "classic", classic)
	require.NoError(t, err)
	_, err = s.UpdateDetail(func(d *productview.Detail) error { return d.Next() })
	require.NoError(t, err)

	st.Close()
	assert.Equal(t, []string{s.ID()}, expired)
	assert.True(t, sched.tms[0].stopped, "closing the store stops pending fades")
	assert.Zero(t, st.Stats().Entries)

	next, created := st.GetOrCreate(s.ID())
	assert.True(t, created)
	assert.NotEqual(t, s.ID(), next.ID())
	assert.Equal(t, time.Minute, st.TTL())
	assert.Equal(t, "sessions", st.Name())
}

func TestStoreImageSwapHook(t *testing.T) {
	sched := &manualScheduler{}
	swaps := 0
	st := NewStore(StoreConfig{TTL: time.Minute, Scheduler: sched, OnImageSwap: func() { swaps++ }}, nil)

	s, _ := st.GetOrCreate("")
	_, err := s.OpenProduct(classic[0], "classic", classic)
	require.NoError(t, err)
	_, err = s.UpdateDetail(func(d *productview.Detail) error { return d.Previous() })
	require.NoError(t, err)
	sched.fireLast()
	assert.Equal(t, 1, swaps)
	assert.Equal(t, classic[1].ImageURL, s.Snapshot().Product.ActiveImageURL)
}
