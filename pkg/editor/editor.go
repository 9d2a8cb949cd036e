// Package editor implements the add-contact editor sub-machine.
//
// The list feature consumes it only through ports.Editor: it forwards editor actions
// and reacts to the returned outcome, never to the editor's internal actions.
package editor

import (
	"strings"

	"github.com/aretw0/roster/pkg/domain"
)

// Editor is the default ports.Editor implementation.
type Editor struct{}

// New returns the default editor sub-machine.
func New() Editor {
	return Editor{}
}

// Seed returns the initial editor state for a freshly minted contact.
func Seed(c domain.Contact) domain.EditorState {
	return domain.EditorState{Contact: c}
}

// Reduce applies one editor action to the draft.
func (Editor) Reduce(state domain.EditorState, action domain.EditorAction) (domain.EditorState, domain.EditorOutcome) {
	switch a := action.(type) {
	case domain.EditorSetName:
		state.Contact.Name = a.Name
		return state, domain.EditorOutcome{Kind: domain.OutcomeContinue}

	case domain.EditorSaveTapped:
		name := strings.TrimSpace(state.Contact.Name)
		if name == "" {
			// Nothing to save yet; keep the sheet open.
			return state, domain.EditorOutcome{Kind: domain.OutcomeContinue}
		}
		state.Contact.Name = name
		return state, domain.EditorOutcome{Kind: domain.OutcomeCompleted, Contact: state.Contact}

	case domain.EditorCancelTapped:
		return state, domain.EditorOutcome{Kind: domain.OutcomeCancelled}

	case domain.EditorCompleted:
		return state, domain.EditorOutcome{Kind: domain.OutcomeCompleted, Contact: a.Contact}
	}

	return state, domain.EditorOutcome{Kind: domain.OutcomeContinue}
}
