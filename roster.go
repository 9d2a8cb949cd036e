package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/roster/internal/runtime"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/ports"
)

// subscriberBuffer is the number of diffs a slow observer may lag behind before
// diffs are dropped for it.
const subscriberBuffer = 32

// Store is the high-level entry point of the library.
// It owns the screen state, serialises dispatch through the transition function,
// runs returned effects and exposes the state read-only to observers.
type Store struct {
	mu      sync.Mutex
	state   *domain.State
	reducer ports.Reducer

	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	persist   ports.StateStore
	sessionID string

	ids      ports.IDGenerator
	editor   ports.Editor
	initial  []domain.Contact
	snapshot *domain.State

	subsMu  sync.Mutex
	subs    map[int]chan domain.StateDiff
	nextSub int
	closed  bool
	done    chan struct{}
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator sets the capability used to mint contact ids.
func WithIDGenerator(ids ports.IDGenerator) Option {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithEditor replaces the editor sub-machine.
func WithEditor(editor ports.Editor) Option {
	return func(s *Store) {
		s.editor = editor
	}
}

// WithReducer injects a custom transition function, bypassing the built-in engine.
// WithIDGenerator and WithEditor are ignored when a reducer is injected.
func WithReducer(r ports.Reducer) Option {
	return func(s *Store) {
		s.reducer = r
	}
}

// WithInitialContacts pre-seeds a fresh screen (previews, demos, tests).
// It is ignored when a persisted session is resumed.
func WithInitialContacts(contacts ...domain.Contact) Option {
	return func(s *Store) {
		s.initial = append(s.initial, contacts...)
	}
}

// WithInitialState starts from an explicit snapshot instead of a fresh screen.
func WithInitialState(state *domain.State) Option {
	return func(s *Store) {
		s.snapshot = state.Clone()
	}
}

// WithStateStore enables durable sessions: the previous snapshot for sessionID is
// resumed on New and every committed transition is saved.
func WithStateStore(store ports.StateStore, sessionID string) Option {
	return func(s *Store) {
		s.persist = store
		s.sessionID = sessionID
	}
}

// New initializes a Store.
func New(ctx context.Context, opts ...Option) (*Store, error) {
	s := &Store{
		subs: make(map[int]chan domain.StateDiff),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized so components never receive nil.
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.sessionID != "" {
		s.logger = s.logger.With("session_id", s.sessionID)
	}

	if s.reducer == nil {
		s.reducer = runtime.NewEngine(
			runtime.WithIDGenerator(s.ids),
			runtime.WithEditor(s.editor),
		)
	}

	state, err := s.hydrate(ctx)
	if err != nil {
		return nil, err
	}
	s.reserveIDs(state)
	s.state = state
	return s, nil
}

// reserveIDs tells a reserving generator about every id already in state.
func (s *Store) reserveIDs(state *domain.State) {
	r, ok := s.ids.(ports.IDReserver)
	if !ok {
		return
	}
	ids := state.Contacts.IDs()
	if ed, ok := state.Editor(); ok {
		ids = append(ids, ed.Contact.ID)
	}
	r.Reserve(ids...)
}

func (s *Store) hydrate(ctx context.Context) (*domain.State, error) {
	fresh := s.snapshot
	if fresh == nil {
		fresh = domain.NewState(s.initial...)
	}

	if s.persist == nil || s.sessionID == "" {
		return fresh, nil
	}

	loaded, err := s.persist.Load(ctx, s.sessionID)
	if err == nil {
		s.logger.Debug("session resumed", "contacts", loaded.Contacts.Len(), "destination", domain.KindOf(loaded.Destination))
		return loaded, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session %s: %w", s.sessionID, err)
	}

	// Persist immediately to reserve the ID
	if err := s.persist.Save(ctx, s.sessionID, fresh); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	s.logger.Debug("session created", "contacts", fresh.Contacts.Len())
	return fresh, nil
}

// Refresh reloads the persisted snapshot, picking up writes made by another
// process holding the same session. Observers receive the resulting diff.
// A snapshot whose revision is not newer than the live state is ignored: it is
// this store's own write, possibly masked by a store middleware.
// It is a no-op for stores without persistence.
func (s *Store) Refresh(ctx context.Context) error {
	if s.persist == nil || s.sessionID == "" {
		return nil
	}

	s.mu.Lock()
	loaded, err := s.persist.Load(ctx, s.sessionID)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to refresh session %s: %w", s.sessionID, err)
	}
	if loaded.Revision <= s.state.Revision {
		s.mu.Unlock()
		return nil
	}
	s.reserveIDs(loaded)
	diff := domain.Diff(s.state, loaded)
	s.state = loaded
	s.mu.Unlock()

	if diff != nil {
		s.logger.Debug("session refreshed from store")
		diff.SessionID = s.sessionID
		s.broadcast(*diff)
	}
	return nil
}

// SessionID returns the session this store persists to, if any.
func (s *Store) SessionID() string {
	return s.sessionID
}

// State returns a copy of the current state. Mutating it has no effect on the store.
func (s *Store) State() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Send dispatches one action. Actions are processed strictly in call order; the
// transition runs to completion before the next one starts. Effects returned by
// the reducer run after the transition commits and their resulting actions are
// sent through Send again.
//
// The returned error only reports host failures (persistence, effects); the
// transition itself cannot fail.
func (s *Store) Send(ctx context.Context, action domain.Action) (*domain.State, error) {
	if action == nil {
		return nil, fmt.Errorf("%w: nil action", domain.ErrInvalidAction)
	}

	s.mu.Lock()
	prev := s.state
	next, effects := s.reducer.Reduce(prev, action)
	if next == nil {
		next = prev
	}
	diff := domain.Diff(prev, next)
	if diff != nil {
		next.Revision = prev.Revision + 1
	}
	s.state = next

	var persistErr error
	if diff != nil && s.persist != nil && s.sessionID != "" {
		if err := s.persist.Save(ctx, s.sessionID, next); err != nil {
			persistErr = fmt.Errorf("critical persistence error: %w", err)
		}
	}
	snapshot := next.Clone()
	s.mu.Unlock()

	s.notify(ctx, action, prev, next, diff, len(effects))
	if persistErr != nil {
		s.logger.Error("state not saved", "action", action.Kind(), "err", persistErr)
		return snapshot, persistErr
	}

	for _, eff := range effects {
		if err := s.runEffect(ctx, eff); err != nil {
			return s.State(), err
		}
	}
	if len(effects) > 0 {
		return s.State(), nil
	}
	return snapshot, nil
}

func (s *Store) runEffect(ctx context.Context, eff domain.Effect) error {
	if eff.Run == nil {
		return nil
	}
	s.logger.Debug("effect started", "effect", eff.Name)
	follow, err := eff.Run(ctx)
	if err != nil {
		return fmt.Errorf("effect %s failed: %w", eff.Name, err)
	}
	if follow == nil {
		return nil
	}
	_, err = s.Send(ctx, follow)
	return err
}

func (s *Store) notify(ctx context.Context, action domain.Action, prev, next *domain.State, diff *domain.StateDiff, effects int) {
	now := time.Now()
	event := &domain.ActionEvent{
		EventBase: domain.EventBase{Timestamp: now, Type: domain.EventAction, SessionID: s.sessionID},
		Action:    action.Kind(),
		Contacts:  next.Contacts.Len(),
		Effects:   effects,
	}

	if diff == nil {
		s.logger.Debug("action dropped", "action", action.Kind(), "destination", domain.KindOf(next.Destination))
		event.Type = domain.EventDrop
		if s.hooks.OnDrop != nil {
			s.hooks.OnDrop(ctx, event)
		}
		return
	}

	s.logger.Debug("action applied", "action", action.Kind(), "contacts", event.Contacts)
	if s.hooks.OnAction != nil {
		s.hooks.OnAction(ctx, event)
	}

	from, to := domain.KindOf(prev.Destination), domain.KindOf(next.Destination)
	if diff.Destination != nil || diff.TargetID != nil {
		dest := &domain.DestinationEvent{
			EventBase: domain.EventBase{Timestamp: now, SessionID: s.sessionID},
			From:      from,
			To:        to,
		}
		if from != domain.DestinationNone && to != from && s.hooks.OnDismiss != nil {
			dismissed := *dest
			dismissed.Type = domain.EventDismiss
			s.hooks.OnDismiss(ctx, &dismissed)
		}
		if to != domain.DestinationNone && s.hooks.OnPresent != nil {
			dest.Type = domain.EventPresent
			s.hooks.OnPresent(ctx, dest)
		}
	}

	diff.SessionID = s.sessionID
	s.broadcast(*diff)
}

// Subscribe streams a StateDiff for every transition that changed the state.
// The first value describes the whole current state. The channel closes when
// ctx is done or the store is closed.
func (s *Store) Subscribe(ctx context.Context) <-chan domain.StateDiff {
	ch := make(chan domain.StateDiff, subscriberBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if s.closed {
		close(ch)
		return ch
	}
	if initial := domain.Diff(nil, s.state); initial != nil {
		initial.SessionID = s.sessionID
		ch <- *initial
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.subsMu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.subsMu.Unlock()
	}()
	return ch
}

// Close ends every subscription. Later subscriptions receive a closed channel.
// The state stays readable and Send keeps working.
func (s *Store) Close() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) broadcast(diff domain.StateDiff) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- diff:
		default:
			s.logger.Warn("subscriber lagging, diff dropped", "subscriber", id)
		}
	}
}
