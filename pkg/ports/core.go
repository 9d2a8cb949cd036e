package ports

import "github.com/aretw0/roster/pkg/domain"

// IDGenerator mints identifiers for new contacts.
// Implementations must be safe to call from the single dispatch goroutine;
// deterministic implementations are expected in tests.
type IDGenerator interface {
	Next() domain.ID
}

// IDReserver is implemented by generators whose ids can collide with ones
// already in use, such as a counter restarted over a resumed session.
// The Store reports every id it loads before minting new ones.
type IDReserver interface {
	Reserve(ids ...domain.ID)
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() domain.ID

// Next calls f.
func (f IDGeneratorFunc) Next() domain.ID {
	return f()
}

// Editor is the add-contact editor sub-machine.
// Reduce must be pure: it returns the next editor state and how the step ended.
type Editor interface {
	Reduce(state domain.EditorState, action domain.EditorAction) (domain.EditorState, domain.EditorOutcome)
}

// Reducer is the transition function of the list feature.
type Reducer interface {
	Reduce(state *domain.State, action domain.Action) (*domain.State, []domain.Effect)
}
