// Package tui holds the terminal presentation of the contacts screen:
// markdown rendering for the line runner and a full-screen Bubble Tea model.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// sentMsg carries the outcome of a dispatched action back into Update.
type sentMsg struct {
	state   *domain.State
	changed bool
	err     error
}

// Model is the Bubble Tea model of the contacts screen. All state changes go
// through the roster.Store; the model keeps only a cursor and the last snapshot.
type Model struct {
	ctx   context.Context
	store *roster.Store

	state  *domain.State
	cursor int
	flash  string
	err    error
}

// NewModel creates the model for store.
func NewModel(ctx context.Context, store *roster.Store) Model {
	return Model{
		ctx:   ctx,
		store: store,
		state: store.State(),
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, store *roster.Store) error {
	_, err := tea.NewProgram(NewModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) send(action domain.Action) tea.Cmd {
	prev := m.state
	return func() tea.Msg {
		next, err := m.store.Send(m.ctx, action)
		if next == nil {
			next = prev
		}
		return sentMsg{state: next, changed: domain.Diff(prev, next) != nil, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sentMsg:
		m.err = msg.err
		m.state = msg.state
		if !msg.changed && msg.err == nil {
			m.flash = "nothing to do"
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		m.flash = ""
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch domain.KindOf(m.state.Destination) {
		case domain.DestinationAddContact:
			return m.updateEditor(msg)
		case domain.DestinationConfirmDeletion:
			return m.updateAlert(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.state.Contacts.Len()-1 {
			m.cursor++
		}
	case "a", "+":
		return m, m.send(domain.AddButtonTapped{})
	case "d", "x", "delete":
		if c, ok := m.state.Contacts.At(m.cursor); ok {
			return m, m.send(domain.DeleteButtonTapped{ID: c.ID})
		}
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed, _ := m.state.Editor()
	name := ed.Contact.Name

	switch msg.Type {
	case tea.KeyEnter:
		return m, m.send(domain.AddContactAction{Action: domain.EditorSaveTapped{}})
	case tea.KeyEsc:
		return m, m.send(domain.AddContactAction{Action: domain.EditorCancelTapped{}})
	case tea.KeyBackspace:
		if name == "" {
			return m, nil
		}
		runes := []rune(name)
		return m, m.send(domain.AddContactAction{Action: domain.EditorSetName{Name: string(runes[:len(runes)-1])}})
	case tea.KeyRunes, tea.KeySpace:
		return m, m.send(domain.AddContactAction{Action: domain.EditorSetName{Name: name + string(msg.Runes)}})
	}
	return m, nil
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d, _ := m.state.Alert()
	switch msg.String() {
	case "y", "enter":
		id, _ := d.TargetID()
		return m, m.send(domain.ConfirmDeletionOf(id))
	case "n", "esc":
		return m, m.send(domain.Dismiss{})
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if n := m.state.Contacts.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contacts"))
	b.WriteString("\n\n")

	if m.state.Contacts.Len() == 0 {
		b.WriteString(mutedStyle.Render("  No contacts yet."))
		b.WriteString("\n")
	}
	for i, c := range m.state.Contacts.All() {
		if i == m.cursor && m.state.Destination == nil {
			b.WriteString(cursorStyle.Render("> " + c.Name))
		} else {
			b.WriteString(itemStyle.Render(c.Name))
		}
		b.WriteString("\n")
	}

	switch d := m.state.Destination.(type) {
	case domain.AddContact:
		b.WriteString(panelStyle.Render(fmt.Sprintf("%s\n\nName: %s",
			titleStyle.Render("New contact"), inputStyle.Render(d.Editor.Contact.Name+"_"))))
		b.WriteString("\n")
		b.WriteString(help("enter", "save", "esc", "cancel"))
	case domain.ConfirmDeletion:
		body := dangerStyle.Render(d.Alert.Title)
		if id, ok := d.TargetID(); ok {
			if c, found := m.state.Contacts.Get(id); found {
				body += "\n\nDelete " + c.Name + "?"
			}
		}
		b.WriteString(alertStyle.Render(body))
		b.WriteString("\n")
		b.WriteString(help("y", "delete", "n", "cancel"))
	default:
		b.WriteString("\n")
		b.WriteString(help("a", "add", "d", "delete", "↑/↓", "move", "q", "quit"))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	} else if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.flash))
	}
	b.WriteString("\n")
	return b.String()
}

func help(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpKeyStyle.Render(pairs[i])+" "+helpDescStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
