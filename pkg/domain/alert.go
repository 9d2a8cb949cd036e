package domain

// ButtonRole hints the rendering layer about the intent of an alert button.
type ButtonRole string

const (
	RoleDefault     ButtonRole = "default"
	RoleCancel      ButtonRole = "cancel"
	RoleDestructive ButtonRole = "destructive"
)

// AlertAction is the closed set of outcomes an Alert can encode.
type AlertAction interface {
	Kind() string
	isAlertAction()
}

// AlertConfirmDeletion is the destructive outcome of the delete prompt.
type AlertConfirmDeletion struct {
	ID ID `json:"id"`
}

func (AlertConfirmDeletion) Kind() string { return "confirm_deletion" }
func (AlertConfirmDeletion) isAlertAction() {}

// AlertButton is one selectable choice. A nil Action means the button only dismisses.
type AlertButton struct {
	Label  string      `json:"label"`
	Role   ButtonRole  `json:"role"`
	Action AlertAction `json:"-"`
}

// Alert is a declarative confirmation prompt: plain data, no dialog control code.
type Alert struct {
	Title   string        `json:"title"`
	Message string        `json:"message,omitempty"`
	Buttons []AlertButton `json:"buttons"`
}

// DeleteAlert builds the prompt shown before removing the contact with the given id.
func DeleteAlert(id ID) Alert {
	return Alert{
		Title: "Are you sure?",
		Buttons: []AlertButton{
			{Label: "Delete", Role: RoleDestructive, Action: AlertConfirmDeletion{ID: id}},
			{Label: "Cancel", Role: RoleCancel},
		},
	}
}

// Destructive returns the destructive button, if the alert has one.
func (a Alert) Destructive() (AlertButton, bool) {
	for _, b := range a.Buttons {
		if b.Role == RoleDestructive {
			return b, true
		}
	}
	return AlertButton{}, false
}
