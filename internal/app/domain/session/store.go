package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/pass-store/internal/app/domain/productview"
	"github.com/FACorreiaa/pass-store/internal/pkg/cache"
)

const DefaultTTL = 30 * time.Minute

type StoreConfig struct {
	// TTL is the idle lifetime of a session.
	TTL time.Duration
	// Cleanup is the sweep interval for idle sessions, TTL/2 when zero.
	Cleanup time.Duration
	// FadeDelay and Scheduler configure every product detail.
	FadeDelay time.Duration
	Scheduler productview.Scheduler
	// OnImageSwap runs after each completed gallery fade.
	OnImageSwap func()
	// OnExpire runs when a session is evicted.
	OnExpire func(id string)
}

// Store keeps sessions in memory. A restart or an idle timeout discards them.
type Store struct {
	mu     sync.Mutex
	cache  *cache.TTLCache[*Session]
	cfg    StoreConfig
	logger *zap.Logger
}

func NewStore(cfg StoreConfig, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.FadeDelay <= 0 {
		cfg.FadeDelay = productview.DefaultFadeDelay
	}

	st := &Store{
		cache:  cache.NewTTLCache[*Session](cfg.TTL, cfg.Cleanup, "sessions", logger),
		cfg:    cfg,
		logger: logger,
	}
	st.cache.OnEvicted(func(id string, s *Session) {
		s.Close()
		logger.Debug("Session expired",
			zap.String("session", id),
			zap.Duration("age", time.Since(s.Created())),
		)
		if cfg.OnExpire != nil {
			cfg.OnExpire(id)
		}
	})
	return st
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return st.cache.Get(id)
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is unknown or expired. created reports the latter.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.Get(id); ok {
		return s, false
	}

	for {
		s = newSession(uuid.NewString(), st.detailOptions(), st.logger)
		if st.cache.Add(s.ID(), s) {
			break
		}
	}
	st.logger.Debug("Session created", zap.String("session", s.ID()))
	return s, true
}

func (st *Store) detailOptions() productview.Options {
	opts := productview.Options{
		FadeDelay: st.cfg.FadeDelay,
		Scheduler: st.cfg.Scheduler,
	}
	if st.cfg.OnImageSwap != nil {
		onSwap := st.cfg.OnImageSwap
		opts.OnSwap = func(string) { onSwap() }
	}
	return opts
}

// Close discards every session and stops their pending fades. The store
// stays usable; later requests start new sessions.
func (st *Store) Close() {
	st.cache.Flush()
}

// Stats reads the counters of the underlying cache.
func (st *Store) Stats() cache.Metrics { return st.cache.Metrics() }

// Name identifies the store in metrics.
func (st *Store) Name() string { return st.cache.Name() }

// TTL is how long a session survives without requests.
func (st *Store) TTL() time.Duration { return st.cache.TTL() }
