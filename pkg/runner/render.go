package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/roster/pkg/domain"
)

// Markdown describes the screen as markdown, suitable for a ContentRenderer.
func Markdown(state *domain.State) string {
	var b strings.Builder
	b.WriteString("# Contacts\n\n")

	if state.Contacts.Len() == 0 {
		b.WriteString("_No contacts yet. Type `add` to create one._\n")
	}
	for i, c := range state.Contacts.All() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Name)
	}

	if ed, ok := state.Editor(); ok {
		b.WriteString("\n## New contact\n\n")
		if ed.Contact.Name == "" {
			b.WriteString("Name: _empty_\n\n")
		} else {
			fmt.Fprintf(&b, "Name: **%s**\n\n", ed.Contact.Name)
		}
		b.WriteString("`name <text>` · `save` · `cancel`\n")
	}

	if d, ok := state.Alert(); ok {
		fmt.Fprintf(&b, "\n## %s\n\n", d.Alert.Title)
		if d.Alert.Message != "" {
			fmt.Fprintf(&b, "%s\n\n", d.Alert.Message)
		}
		if id, ok := d.TargetID(); ok {
			if c, found := state.Contacts.Get(id); found {
				fmt.Fprintf(&b, "Delete **%s**?\n\n", c.Name)
			}
		}
		labels := make([]string, 0, len(d.Alert.Buttons))
		for _, btn := range d.Alert.Buttons {
			cmd := "cancel"
			if btn.Role == domain.RoleDestructive {
				cmd = "confirm"
			}
			labels = append(labels, fmt.Sprintf("`%s` (%s)", cmd, btn.Label))
		}
		b.WriteString(strings.Join(labels, " · "))
		b.WriteString("\n")
	}

	return b.String()
}
