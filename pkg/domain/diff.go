package domain

import "reflect"

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID identifies the target screen. Filled in by the host.
	SessionID string `json:"session_id,omitempty"`

	// Added holds contacts appended to the list, in display order.
	Added []Contact `json:"added,omitempty"`

	// Updated holds contacts whose name changed under an existing id.
	Updated []Contact `json:"updated,omitempty"`

	// Removed holds ids no longer present.
	Removed []ID `json:"removed,omitempty"`

	// Destination is set when the presented overlay kind changed.
	Destination *DestinationKind `json:"destination,omitempty"`

	// Editor is set when the editor draft changed while presented.
	Editor *EditorState `json:"editor,omitempty"`

	// TargetID is set when a new delete prompt is presented.
	TargetID *ID `json:"target_id,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}
	if oldState == nil {
		oldState = &State{}
	}

	diff := &StateDiff{}

	// 1. Contacts
	for _, c := range newState.Contacts.All() {
		prev, ok := oldState.Contacts.Get(c.ID)
		switch {
		case !ok:
			diff.Added = append(diff.Added, c)
		case prev != c:
			diff.Updated = append(diff.Updated, c)
		}
	}
	for _, id := range oldState.Contacts.IDs() {
		if !newState.Contacts.Has(id) {
			diff.Removed = append(diff.Removed, id)
		}
	}

	// 2. Destination
	oldKind, newKind := KindOf(oldState.Destination), KindOf(newState.Destination)
	if oldKind != newKind {
		diff.Destination = &newKind
	}
	if editor, ok := newState.Editor(); ok {
		prev, wasEditing := oldState.Editor()
		if !wasEditing || !reflect.DeepEqual(prev, editor) {
			diff.Editor = &editor
		}
	}
	if alert, ok := newState.Alert(); ok {
		id, _ := alert.TargetID()
		prev, wasConfirming := oldState.Alert()
		prevID, _ := prev.TargetID()
		if !wasConfirming || prevID != id {
			diff.TargetID = &id
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Updated) == 0 &&
		len(d.Removed) == 0 &&
		d.Destination == nil &&
		d.Editor == nil &&
		d.TargetID == nil
}
