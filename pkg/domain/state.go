package domain

// State represents the current snapshot of the list screen.
type State struct {
	// Contacts is the list shown on screen, in display order.
	Contacts Contacts

	// Destination is the presented overlay, or nil.
	Destination Destination

	// Revision counts committed transitions. The Store bumps it before each save
	// so a reload can tell a newer snapshot from its own write.
	Revision uint64
}

// NewState creates a state with no overlay, optionally pre-seeded with contacts.
func NewState(contacts ...Contact) *State {
	return &State{
		Contacts: NewContacts(contacts...),
	}
}

// Clone returns a deep copy, safe to hand to observers.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{Contacts: s.Contacts.Clone(), Revision: s.Revision}
	if s.Destination != nil {
		out.Destination = s.Destination.clone()
	}
	return out
}

// Editor returns the editor state when AddContact is presented.
func (s *State) Editor() (EditorState, bool) {
	d, ok := s.Destination.(AddContact)
	if !ok {
		return EditorState{}, false
	}
	return d.Editor, true
}

// Alert returns the prompt when ConfirmDeletion is presented.
func (s *State) Alert() (ConfirmDeletion, bool) {
	d, ok := s.Destination.(ConfirmDeletion)
	return d, ok
}
