package runtime

import (
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/editor"
)

// signal is what a presented child reports back to the parent after routing.
// A nil signal means the child absorbed the action, or the action was stale.
type signal interface {
	isSignal()
}

type editorCompleted struct {
	contact domain.Contact
}

type deletionConfirmed struct {
	id domain.ID
}

type cancelled struct{}

func (editorCompleted) isSignal()   {}
func (deletionConfirmed) isSignal() {}
func (cancelled) isSignal()         {}

// presentEditor replaces whatever is presented with a freshly seeded editor.
func (e *Engine) presentEditor(state *domain.State, c domain.Contact) {
	state.Destination = domain.AddContact{Editor: editor.Seed(c)}
}

// presentConfirmation replaces whatever is presented with the delete prompt for id.
func presentConfirmation(state *domain.State, id domain.ID) {
	state.Destination = domain.ConfirmDeletion{Alert: domain.DeleteAlert(id)}
}

func dismiss(state *domain.State) {
	state.Destination = nil
}

// routeToChild forwards a destination-directed action to the presented child.
// Actions that do not match the presented variant are dropped.
func (e *Engine) routeToChild(state *domain.State, action domain.Action) signal {
	switch a := action.(type) {
	case domain.AddContactAction:
		d, ok := state.Destination.(domain.AddContact)
		if !ok || a.Action == nil {
			return nil
		}
		next, outcome := e.editor.Reduce(d.Editor, a.Action)
		switch outcome.Kind {
		case domain.OutcomeCompleted:
			return editorCompleted{contact: outcome.Contact}
		case domain.OutcomeCancelled:
			return cancelled{}
		}
		state.Destination = domain.AddContact{Editor: next}
		return nil

	case domain.ConfirmDeletionAction:
		d, ok := state.Destination.(domain.ConfirmDeletion)
		if !ok {
			return nil
		}
		confirm, ok := a.Action.(domain.AlertConfirmDeletion)
		if !ok {
			return nil
		}
		target, ok := d.TargetID()
		if !ok || target != confirm.ID {
			return nil
		}
		return deletionConfirmed{id: confirm.ID}
	}
	return nil
}
