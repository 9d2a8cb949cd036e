// Package graph draws the navigation graph of the contacts screen as Mermaid.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/ports"
)

// Edge is one observed transition between destinations.
type Edge struct {
	From   domain.DestinationKind
	Action string
	To     domain.DestinationKind
}

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	Current domain.DestinationKind
}

// maxDepth bounds the exploration; every destination is reachable in two steps.
const maxDepth = 3

// Explore walks the states reachable from start through reducer and returns
// every distinct transition that changed the state, sorted.
func Explore(reducer ports.Reducer, start *domain.State) []Edge {
	seen := map[Edge]bool{}
	frontier := []*domain.State{start}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []*domain.State
		for _, state := range frontier {
			for _, action := range probes(state) {
				after, _ := reducer.Reduce(state, action)
				if after == nil || domain.Diff(state, after) == nil {
					continue
				}
				e := Edge{From: domain.KindOf(state.Destination), Action: action.Kind(), To: domain.KindOf(after.Destination)}
				if !seen[e] {
					seen[e] = true
					next = append(next, after)
				}
			}
		}
		frontier = next
	}

	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		return a.To < b.To
	})
	return edges
}

// probes is the user vocabulary tried from state, stale actions included.
func probes(state *domain.State) []domain.Action {
	target := domain.ID("missing")
	if c, ok := state.Contacts.At(0); ok {
		target = c.ID
	}
	draft := domain.Contact{ID: "draft", Name: "Draft"}
	if ed, ok := state.Editor(); ok {
		draft = ed.Contact
		draft.Name = "Draft"
	}
	confirm := target
	if d, ok := state.Alert(); ok {
		confirm, _ = d.TargetID()
	}
	return []domain.Action{
		domain.AddButtonTapped{},
		domain.DeleteButtonTapped{ID: target},
		domain.Dismiss{},
		domain.AddContactAction{Action: domain.EditorSetName{Name: "Draft"}},
		domain.AddContactAction{Action: domain.EditorSaveTapped{}},
		domain.AddContactAction{Action: domain.EditorCancelTapped{}},
		domain.EditorCompletedAction(draft),
		domain.ConfirmDeletionOf(confirm),
	}
}

// GenerateMermaid produces a Mermaid flowchart from explored edges.
// The list is drawn as a rectangle, the editor as an input parallelogram and
// the prompt as a hexagon; overlay marks the destination a session is on.
func GenerateMermaid(edges []Edge, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	nodes := map[domain.DestinationKind]bool{domain.DestinationNone: true}
	for _, e := range edges {
		nodes[e.From] = true
		nodes[e.To] = true
	}
	kinds := make([]string, 0, len(nodes))
	for k := range nodes {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	for _, k := range kinds {
		opener, closer, label := "[", "]", k
		switch domain.DestinationKind(k) {
		case domain.DestinationNone:
			label = "list"
		case domain.DestinationAddContact:
			opener, closer = "[/", "/]"
		case domain.DestinationConfirmDeletion:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(k), opener, label, closer)
	}

	for _, e := range edges {
		arrow := fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(e.Action, "\"", "'"))
		if e.From == e.To {
			arrow = fmt.Sprintf("-. \"%s\" .->", e.Action)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(string(e.From)), arrow, sanitizeMermaidID(string(e.To)))
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.Current)))
	}
	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_").Replace(id)
}
