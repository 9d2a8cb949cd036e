package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/internal/logging"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a session.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // active locks

	liveMu sync.Mutex
	live   map[string]*roster.Store

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	opts    []roster.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager and the stores it opens.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStoreOptions are applied to every session store the Manager opens
// (hooks, id generator, preview contacts).
func WithStoreOptions(opts ...roster.Option) Option {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

// NewManager creates a new session manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		live:    make(map[string]*roster.Store),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// open returns the live store for sessionID, resuming or creating it.
// Callers hold the session lock.
func (m *Manager) open(ctx context.Context, sessionID string) (*roster.Store, error) {
	m.liveMu.Lock()
	store, ok := m.live[sessionID]
	m.liveMu.Unlock()
	if ok {
		return store, nil
	}

	opts := append([]roster.Option{roster.WithLogger(m.logger)}, m.opts...)
	opts = append(opts, roster.WithStateStore(m.store, sessionID))
	store, err := roster.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	m.liveMu.Lock()
	m.live[sessionID] = store
	m.liveMu.Unlock()
	return store, nil
}

// Open returns the live store for a session, creating the session if it does
// not exist yet. Callers that dispatch should prefer Dispatch, which holds the
// session lock across the whole transition.
func (m *Manager) Open(ctx context.Context, sessionID string) (*roster.Store, error) {
	var store *roster.Store
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		store, err = m.open(ctx, sessionID)
		return err
	})
	return store, err
}

// Dispatch sends action to the session, creating it if needed.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, action domain.Action) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		store, err := m.open(ctx, sessionID)
		if err != nil {
			return err
		}
		// Another replica may have written since we last looked
		if m.locker != nil {
			if err := store.Refresh(ctx); err != nil {
				return err
			}
		}
		state, err = store.Send(ctx, action)
		return err
	})
	return state, err
}

// Subscribe streams diffs of a live session.
func (m *Manager) Subscribe(ctx context.Context, sessionID string) (<-chan domain.StateDiff, error) {
	store, err := m.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Subscribe(ctx), nil
}

// Load retrieves an existing session snapshot without opening it.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Current returns the state of a session as its live store sees it, falling
// back to the stored snapshot when the session is not open. Unlike Load it
// never shows the masked copy a store middleware may have written.
func (m *Manager) Current(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.liveMu.Lock()
		store, ok := m.live[sessionID]
		m.liveMu.Unlock()
		if !ok {
			var err error
			state, err = m.store.Load(ctx, sessionID)
			return err
		}
		if m.locker != nil {
			if err := store.Refresh(ctx); err != nil {
				return err
			}
		}
		state = store.State()
		return nil
	})
	return state, err
}

// LoadOrStart returns the current state of a session, initializing it if not found.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.State, error) {
	store, err := m.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.State(), nil
}

// Save overwrites the session snapshot. An open store for the session is
// closed so that the next access resumes from the new snapshot. The saved
// copy gets a revision above the stored one so other replicas pick it up.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.State) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.evict(sessionID)
		state = state.Clone()
		prev, err := m.store.Load(ctx, sessionID)
		switch {
		case err == nil:
			state.Revision = max(state.Revision, prev.Revision+1)
		case !errors.Is(err, domain.ErrSessionNotFound):
			return err
		}
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.evict(sessionID)
		if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}
		return nil
	})
}

// evict closes the live store, ending its subscriptions so watchers reconnect
// to the store that replaces it.
func (m *Manager) evict(sessionID string) {
	m.liveMu.Lock()
	store, ok := m.live[sessionID]
	delete(m.live, sessionID)
	m.liveMu.Unlock()
	if ok {
		store.Close()
	}
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}
