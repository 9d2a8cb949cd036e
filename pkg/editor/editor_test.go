package editor_test

import (
	"testing"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/editor"
	"github.com/aretw0/roster/pkg/ports"
	"github.com/stretchr/testify/assert"
)

var _ ports.Editor = editor.Editor{}

func TestEditor_Reduce(t *testing.T) {
	seed := editor.Seed(domain.Contact{ID: "7"})

	tests := []struct {
		name        string
		state       domain.EditorState
		action      domain.EditorAction
		wantName    string
		wantOutcome domain.OutcomeKind
	}{
		{"set name keeps editing", seed, domain.EditorSetName{Name: "Blob"}, "Blob", domain.OutcomeContinue},
		{"save with blank name is ignored", seed, domain.EditorSaveTapped{}, "", domain.OutcomeContinue},
		{"cancel", seed, domain.EditorCancelTapped{}, "", domain.OutcomeCancelled},
		{
			"save completes with trimmed name",
			domain.EditorState{Contact: domain.Contact{ID: "7", Name: "  Blob  "}},
			domain.EditorSaveTapped{},
			"Blob",
			domain.OutcomeCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, outcome := editor.New().Reduce(tt.state, tt.action)
			assert.Equal(t, tt.wantName, next.Contact.Name)
			assert.Equal(t, tt.wantOutcome, outcome.Kind)
			assert.Equal(t, domain.ID("7"), next.Contact.ID, "the seed id never changes")
		})
	}
}

func TestEditor_SaveCarriesSeedID(t *testing.T) {
	state := editor.Seed(domain.Contact{ID: "abc"})
	state, _ = editor.New().Reduce(state, domain.EditorSetName{Name: "Blob Jr"})
	_, outcome := editor.New().Reduce(state, domain.EditorSaveTapped{})

	assert.Equal(t, domain.OutcomeCompleted, outcome.Kind)
	assert.Equal(t, domain.Contact{ID: "abc", Name: "Blob Jr"}, outcome.Contact)
}

func TestEditor_DelegatePassesThrough(t *testing.T) {
	c := domain.Contact{ID: "abc", Name: "Blob"}
	_, outcome := editor.New().Reduce(editor.Seed(domain.Contact{ID: "abc"}), domain.EditorCompleted{Contact: c})

	assert.Equal(t, domain.OutcomeCompleted, outcome.Kind)
	assert.Equal(t, c, outcome.Contact)
}
