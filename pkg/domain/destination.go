package domain

// Destination is the overlay presented above the list. It is a closed sum type:
// a nil Destination means nothing is presented, otherwise it is exactly one of
// AddContact or ConfirmDeletion.
type Destination interface {
	Kind() DestinationKind
	clone() Destination
}

// DestinationKind names the active Destination variant.
type DestinationKind string

const (
	DestinationNone            DestinationKind = "none"
	DestinationAddContact      DestinationKind = "add_contact"
	DestinationConfirmDeletion DestinationKind = "confirm_deletion"
)

// AddContact presents the editor sub-machine.
type AddContact struct {
	Editor EditorState `json:"editor"`
}

// ConfirmDeletion presents the delete prompt.
type ConfirmDeletion struct {
	Alert Alert `json:"alert"`
}

func (AddContact) Kind() DestinationKind      { return DestinationAddContact }
func (ConfirmDeletion) Kind() DestinationKind { return DestinationConfirmDeletion }

func (d AddContact) clone() Destination { return d }

func (d ConfirmDeletion) clone() Destination {
	buttons := make([]AlertButton, len(d.Alert.Buttons))
	copy(buttons, d.Alert.Buttons)
	d.Alert.Buttons = buttons
	return d
}

// TargetID returns the id encoded in the destructive outcome of the prompt.
func (d ConfirmDeletion) TargetID() (ID, bool) {
	b, ok := d.Alert.Destructive()
	if !ok {
		return "", false
	}
	confirm, ok := b.Action.(AlertConfirmDeletion)
	if !ok {
		return "", false
	}
	return confirm.ID, true
}

// KindOf returns the kind of d, mapping nil to DestinationNone.
func KindOf(d Destination) DestinationKind {
	if d == nil {
		return DestinationNone
	}
	return d.Kind()
}
