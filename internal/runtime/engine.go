package runtime

import (
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/editor"
	"github.com/aretw0/roster/pkg/idgen"
	"github.com/aretw0/roster/pkg/ports"
)

// Engine is the list-feature core: the single transition function of the screen.
// It holds no state of its own; Reduce is pure apart from the IDGenerator call
// made for each add request.
type Engine struct {
	ids    ports.IDGenerator
	editor ports.Editor
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithIDGenerator sets the capability used to mint contact ids.
func WithIDGenerator(ids ports.IDGenerator) EngineOption {
	return func(e *Engine) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithEditor replaces the editor sub-machine.
func WithEditor(ed ports.Editor) EngineOption {
	return func(e *Engine) {
		if ed != nil {
			e.editor = ed
		}
	}
}

// NewEngine creates a new engine. Without options it mints random UUIDs and
// uses the default editor.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		ids:    idgen.UUID{},
		editor: editor.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.Reducer = (*Engine)(nil)

// Reduce returns the state that follows action, plus any effects to run.
// The input state is never mutated. Every action yields a valid next state:
// actions addressed to an overlay that is not presented are dropped and the
// returned state equals the input.
func (e *Engine) Reduce(state *domain.State, action domain.Action) (*domain.State, []domain.Effect) {
	if state == nil {
		state = domain.NewState()
	}
	next := state.Clone()

	switch a := action.(type) {
	case domain.AddButtonTapped:
		e.presentEditor(next, domain.Contact{ID: e.ids.Next(), Name: ""})

	case domain.DeleteButtonTapped:
		// No existence check: a stale id surfaces later as a no-op confirmation.
		presentConfirmation(next, a.ID)

	case domain.Dismiss:
		dismiss(next)

	case domain.AddContactAction, domain.ConfirmDeletionAction:
		e.apply(next, e.routeToChild(next, action))
	}

	return next, nil
}

// apply runs the parent's rules for a signal raised by the presented child.
func (e *Engine) apply(state *domain.State, sig signal) {
	switch s := sig.(type) {
	case editorCompleted:
		state.Contacts.Append(s.contact)
		dismiss(state)
	case deletionConfirmed:
		state.Contacts.Remove(s.id)
		dismiss(state)
	case cancelled:
		dismiss(state)
	}
}
