package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(
			domain.Contact{ID: "1", Name: "Blob"},
			domain.Contact{ID: "2", Name: "Blob Jr"},
		)
		state.Destination = domain.ConfirmDeletion{Alert: domain.DeleteAlert("2")}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.Contacts.All(), loaded.Contacts.All())
		assert.Equal(t, state.Destination, loaded.Destination)
	})

	t.Run("Save Isolates Caller", func(t *testing.T) {
		state := domain.NewState(domain.Contact{ID: "1", Name: "Blob"})
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.Contacts.Remove("1")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Contacts.Len(), "mutating the saved state must not leak into the store")
	})

	t.Run("Editor Destination Survives", func(t *testing.T) {
		state := domain.NewState()
		state.Destination = domain.AddContact{Editor: domain.EditorState{
			Contact: domain.Contact{ID: "7", Name: "Dra"},
		}}
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		editor, ok := loaded.Editor()
		require.True(t, ok)
		assert.Equal(t, "Dra", editor.Contact.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		require.NoError(t, store.Delete(ctx, sessionID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState())
		_ = store.Save(ctx, id2, domain.NewState())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
