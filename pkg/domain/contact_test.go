package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContacts_PreservesInsertionOrder(t *testing.T) {
	var c domain.Contacts
	c.Append(domain.Contact{ID: "b", Name: "Blob"})
	c.Append(domain.Contact{ID: "a", Name: "Blob Jr"})
	c.Append(domain.Contact{ID: "c", Name: "Blob Sr"})

	assert.Equal(t, []domain.ID{"b", "a", "c"}, c.IDs())
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Blob Jr", got.Name)
}

func TestContacts_RemoveReindexes(t *testing.T) {
	c := domain.NewContacts(
		domain.Contact{ID: "1", Name: "A"},
		domain.Contact{ID: "2", Name: "B"},
		domain.Contact{ID: "3", Name: "C"},
	)

	assert.True(t, c.Remove("1"))
	assert.Equal(t, []domain.ID{"2", "3"}, c.IDs())

	got, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "C", got.Name)

	at, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, domain.ID("2"), at.ID)
}

func TestContacts_RemoveAbsentIsNoop(t *testing.T) {
	c := domain.NewContacts(domain.Contact{ID: "1", Name: "A"})

	assert.False(t, c.Remove("missing"))
	assert.False(t, c.Remove("missing"))
	assert.Equal(t, 1, c.Len())

	var empty domain.Contacts
	assert.False(t, empty.Remove("1"))
}

func TestContacts_DuplicateAppendOverwritesInPlace(t *testing.T) {
	c := domain.NewContacts(
		domain.Contact{ID: "1", Name: "A"},
		domain.Contact{ID: "2", Name: "B"},
	)

	c.Append(domain.Contact{ID: "1", Name: "A2"})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []domain.ID{"1", "2"}, c.IDs())
	got, _ := c.Get("1")
	assert.Equal(t, "A2", got.Name)
}

func TestContacts_CloneIsIndependent(t *testing.T) {
	c := domain.NewContacts(domain.Contact{ID: "1", Name: "A"})
	clone := c.Clone()
	clone.Append(domain.Contact{ID: "2", Name: "B"})
	clone.Remove("1")

	assert.Equal(t, []domain.ID{"1"}, c.IDs())
	assert.Equal(t, []domain.ID{"2"}, clone.IDs())
}

func TestContacts_JSON(t *testing.T) {
	c := domain.NewContacts(
		domain.Contact{ID: "1", Name: "A"},
		domain.Contact{ID: "2", Name: "B"},
	)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`, string(data))

	var decoded domain.Contacts
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c.All(), decoded.All())

	empty, err := json.Marshal(domain.Contacts{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))

	err = json.Unmarshal([]byte(`[{"id":"1"},{"id":"1"}]`), &decoded)
	assert.Error(t, err)
}
