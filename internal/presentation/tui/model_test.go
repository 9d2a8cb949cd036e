package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/idgen"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, contacts ...domain.Contact) Model {
	t.Helper()
	store, err := roster.New(context.Background(),
		roster.WithIDGenerator(idgen.NewIncrementing(1)),
		roster.WithInitialContacts(contacts...),
	)
	require.NoError(t, err)
	return NewModel(context.Background(), store)
}

func keyRunes(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds msg to the model and runs any resulting command to completion.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if _, quit := out.(tea.QuitMsg); quit {
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func TestModel_AddContact(t *testing.T) {
	m := newModel(t)

	m = press(t, m, keyRunes("a"))
	_, editing := m.state.Editor()
	require.True(t, editing)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "nothing to do", m.flash, "a blank name cannot be saved")

	for _, r := range "Blobb" {
		m = press(t, m, keyRunes(string(r)))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Contains(t, m.View(), "Blob_")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.state.Destination)
	assert.Equal(t, []domain.Contact{{ID: "00000000-0000-0000-0000-000000000001", Name: "Blob"}}, m.state.Contacts.All())
}

func TestModel_DeleteWithConfirmation(t *testing.T) {
	m := newModel(t, domain.Contact{ID: "1", Name: "Blob"}, domain.Contact{ID: "2", Name: "Dra"})

	m = press(t, m, keyRunes("j"))
	m = press(t, m, keyRunes("d"))
	d, ok := m.state.Alert()
	require.True(t, ok)
	id, _ := d.TargetID()
	assert.Equal(t, domain.ID("2"), id)
	assert.Contains(t, m.View(), "Delete Dra?")

	m = press(t, m, keyRunes("n"))
	assert.Nil(t, m.state.Destination)
	assert.Equal(t, 2, m.state.Contacts.Len())

	m = press(t, m, keyRunes("d"))
	m = press(t, m, keyRunes("y"))
	assert.Equal(t, []domain.ID{"1"}, m.state.Contacts.IDs())
	assert.Equal(t, 0, m.cursor, "cursor follows the shrinking list")
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderer_PassesMarkdown(t *testing.T) {
	out, err := NewRenderer()("# Contacts\n\n1. Blob\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Blob")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
