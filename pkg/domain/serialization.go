package domain

import (
	"encoding/json"
	"fmt"
)

type stateJSON struct {
	Contacts    Contacts         `json:"contacts"`
	Destination *destinationJSON `json:"destination"`
	Revision    uint64           `json:"revision,omitempty"`
}

type destinationJSON struct {
	Type     DestinationKind `json:"type"`
	Editor   *EditorState    `json:"editor,omitempty"`
	TargetID ID              `json:"target_id,omitempty"`
}

// MarshalJSON encodes the state with a tagged destination.
func (s State) MarshalJSON() ([]byte, error) {
	raw := stateJSON{Contacts: s.Contacts, Revision: s.Revision}
	switch d := s.Destination.(type) {
	case nil:
	case AddContact:
		editor := d.Editor
		raw.Destination = &destinationJSON{Type: DestinationAddContact, Editor: &editor}
	case ConfirmDeletion:
		id, ok := d.TargetID()
		if !ok {
			return nil, fmt.Errorf("confirm_deletion destination has no target")
		}
		raw.Destination = &destinationJSON{Type: DestinationConfirmDeletion, TargetID: id}
	default:
		return nil, fmt.Errorf("unsupported destination %T", d)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes the tagged representation produced by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	next := State{Contacts: raw.Contacts, Revision: raw.Revision}
	if raw.Destination != nil {
		switch raw.Destination.Type {
		case DestinationAddContact:
			if raw.Destination.Editor == nil {
				return fmt.Errorf("add_contact destination without editor state")
			}
			next.Destination = AddContact{Editor: *raw.Destination.Editor}
		case DestinationConfirmDeletion:
			next.Destination = ConfirmDeletion{Alert: DeleteAlert(raw.Destination.TargetID)}
		case DestinationNone, "":
		default:
			return fmt.Errorf("unknown destination type %q", raw.Destination.Type)
		}
	}
	*s = next
	return nil
}
