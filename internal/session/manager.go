package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ProductShowcase/internal/catalog"
)

const (
	DefaultTTL          = 30 * time.Minute
	DefaultReapInterval = time.Minute
)

type ManagerConfig struct {
	TTL     time.Duration
	Session Options
}

// Manager owns every open session, keyed by id.
type Manager struct {
	store catalog.Store
	log   *zap.Logger
	ttl   time.Duration
	opts  Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(store catalog.Store, log *zap.Logger, cfg ManagerConfig) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Session.Now == nil {
		cfg.Session.Now = time.Now
	}

	return &Manager{
		store:    store,
		log:      log,
		ttl:      cfg.TTL,
		opts:     cfg.Session,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Create(ctx context.Context) (*Session, error) {
	products, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	s := New("s_"+uuid.NewString(), products, m.opts)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.opts.Metrics.setActive(n)
	m.log.Info("session created", zap.String("session_id", s.ID()))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	s.Close()
	m.opts.Metrics.setActive(n)
	m.log.Info("session closed", zap.String("session_id", id))
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the TTL and reports how many
// were removed.
func (m *Manager) Reap() int {
	cutoff := m.opts.Now().Add(-m.ttl)

	m.mu.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
		m.log.Info("session reaped", zap.String("session_id", s.ID()))
	}
	if len(idle) > 0 {
		m.opts.Metrics.setActive(n)
	}
	return len(idle)
}

// Run reaps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultReapInterval
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.Reap()
		}
	}
}

// CloseAll tears down every session, cancelling pending timers.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	m.opts.Metrics.setActive(0)
}
