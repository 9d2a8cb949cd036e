package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/roster/pkg/adapters/memory"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/persistence/middleware"
	"github.com/aretw0/roster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func encrypted(t *testing.T, next ports.StateStore, key []byte, fallback ...[]byte) ports.StateStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key, FallbackKeys: fallback})
	require.NoError(t, err)
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, encrypted(t, memory.NewStore(), generateKey(t)))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, generateKey(t))
	ctx := context.Background()

	original := domain.NewState(domain.Contact{ID: "1", Name: "Blob"})
	original.Destination = domain.ConfirmDeletion{Alert: domain.DeleteAlert("1")}
	require.NoError(t, secure.Save(ctx, "s", original))

	stored, err := underlying.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{middleware.EnvelopeID}, stored.Contacts.IDs())
	assert.Nil(t, stored.Destination)
	sealed, _ := stored.Contacts.At(0)
	assert.False(t, strings.Contains(sealed.Name, "Blob"))

	loaded, err := secure.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, original.Contacts.All(), loaded.Contacts.All())
	d, ok := loaded.Alert()
	require.True(t, ok)
	id, _ := d.TargetID()
	assert.Equal(t, domain.ID("1"), id)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	oldStore := encrypted(t, underlying, oldKey)
	require.NoError(t, oldStore.Save(ctx, "s", domain.NewState(domain.Contact{ID: "1", Name: "old"})))

	newStore := encrypted(t, underlying, newKey, oldKey)
	loaded, err := newStore.Load(ctx, "s")
	require.NoError(t, err, "fallback key decrypts")
	c, _ := loaded.Contacts.At(0)
	assert.Equal(t, "old", c.Name)

	require.NoError(t, newStore.Save(ctx, "s", domain.NewState(domain.Contact{ID: "1", Name: "new"})))
	_, err = oldStore.Load(ctx, "s")
	assert.Error(t, err, "the old key alone cannot read the re-encrypted snapshot")
}

func TestEncryptionMiddleware_RejectsPlainSnapshots(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "s", domain.NewState(domain.Contact{ID: "1", Name: "Blob"})))

	_, err := encrypted(t, underlying, generateKey(t)).Load(ctx, "s")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t), FallbackKeys: [][]byte{{1}}})
	assert.Error(t, err)
}
