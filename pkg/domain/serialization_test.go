package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_JSONRoundTripPerDestination(t *testing.T) {
	seed := []domain.Contact{{ID: "1", Name: "Blob"}}

	tests := []struct {
		name        string
		destination domain.Destination
	}{
		{"none", nil},
		{"add contact", domain.AddContact{Editor: domain.EditorState{Contact: domain.Contact{ID: "9", Name: "Dra"}}}},
		{"confirm deletion", domain.ConfirmDeletion{Alert: domain.DeleteAlert("1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.NewState(seed...)
			state.Destination = tt.destination

			data, err := json.Marshal(state)
			require.NoError(t, err)

			var decoded domain.State
			require.NoError(t, json.Unmarshal(data, &decoded))

			assert.Equal(t, state.Contacts.All(), decoded.Contacts.All())
			assert.Equal(t, domain.KindOf(tt.destination), domain.KindOf(decoded.Destination))
			assert.Equal(t, state.Destination, decoded.Destination)
		})
	}
}

func TestState_UnmarshalRejectsUnknownDestination(t *testing.T) {
	var s domain.State
	err := json.Unmarshal([]byte(`{"contacts":[],"destination":{"type":"sheet"}}`), &s)
	assert.Error(t, err)
}

func TestState_CloneDoesNotAlias(t *testing.T) {
	s := domain.NewState(domain.Contact{ID: "1", Name: "Blob"})
	s.Destination = domain.ConfirmDeletion{Alert: domain.DeleteAlert("1")}

	clone := s.Clone()
	clone.Contacts.Remove("1")
	alert, ok := clone.Alert()
	require.True(t, ok)
	alert.Alert.Buttons[0].Label = "changed"

	assert.Equal(t, 1, s.Contacts.Len())
	original, _ := s.Alert()
	assert.Equal(t, "Delete", original.Alert.Buttons[0].Label)
}

func TestDeleteAlert_EncodesSingleDestructiveOutcome(t *testing.T) {
	alert := domain.DeleteAlert("42")
	assert.Equal(t, "Are you sure?", alert.Title)

	button, ok := alert.Destructive()
	require.True(t, ok)
	assert.Equal(t, "Delete", button.Label)
	assert.Equal(t, domain.AlertConfirmDeletion{ID: "42"}, button.Action)

	id, ok := domain.ConfirmDeletion{Alert: alert}.TargetID()
	require.True(t, ok)
	assert.Equal(t, domain.ID("42"), id)
}

func TestState_RevisionSurvivesJSONAndClone(t *testing.T) {
	s := domain.NewState(domain.Contact{ID: "1", Name: "Blob"})
	s.Revision = 7

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"revision":7`)

	var decoded domain.State
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, uint64(7), decoded.Revision)
	assert.Equal(t, uint64(7), s.Clone().Revision)

	data, err = json.Marshal(domain.NewState())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "revision")
}
