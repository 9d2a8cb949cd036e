package domain

import "context"

// Action is a discrete request to transition the list feature.
// The set is closed: only the types in this file implement it.
type Action interface {
	// Kind is the stable wire name of the action (e.g. "add_button_tapped").
	Kind() string
	isAction()
}

// Action kinds. Routed child actions are namespaced by the destination they target.
const (
	KindAddButtonTapped      = "add_button_tapped"
	KindDeleteButtonTapped   = "delete_button_tapped"
	KindDismiss              = "dismiss"
	KindEditorSetName        = "add_contact.set_name"
	KindEditorSaveTapped     = "add_contact.save_tapped"
	KindEditorCancelTapped   = "add_contact.cancel_tapped"
	KindEditorCompleted      = "add_contact.completed"
	KindAlertConfirmDeletion = "confirm_deletion.confirm_deletion"
)

// AddButtonTapped requests the add flow.
type AddButtonTapped struct{}

// DeleteButtonTapped requests the delete prompt for ID. The id is not checked.
type DeleteButtonTapped struct {
	ID ID `json:"id"`
}

// Dismiss closes whatever overlay is presented (cancel, outside tap).
type Dismiss struct{}

// AddContactAction routes an editor action to the AddContact destination.
type AddContactAction struct {
	Action EditorAction
}

// ConfirmDeletionAction routes an alert outcome to the ConfirmDeletion destination.
type ConfirmDeletionAction struct {
	Action AlertAction
}

func (AddButtonTapped) Kind() string    { return KindAddButtonTapped }
func (DeleteButtonTapped) Kind() string { return KindDeleteButtonTapped }
func (Dismiss) Kind() string            { return KindDismiss }

func (a AddContactAction) Kind() string {
	if a.Action == nil {
		return string(DestinationAddContact)
	}
	return string(DestinationAddContact) + "." + a.Action.Kind()
}

func (a ConfirmDeletionAction) Kind() string {
	if a.Action == nil {
		return string(DestinationConfirmDeletion)
	}
	return string(DestinationConfirmDeletion) + "." + a.Action.Kind()
}

func (AddButtonTapped) isAction()       {}
func (DeleteButtonTapped) isAction()    {}
func (Dismiss) isAction()               {}
func (AddContactAction) isAction()      {}
func (ConfirmDeletionAction) isAction() {}

// EditorCompletedAction is shorthand for the routed editor delegate signal.
func EditorCompletedAction(c Contact) Action {
	return AddContactAction{Action: EditorCompleted{Contact: c}}
}

// ConfirmDeletionOf is shorthand for the routed destructive alert outcome.
func ConfirmDeletionOf(id ID) Action {
	return ConfirmDeletionAction{Action: AlertConfirmDeletion{ID: id}}
}

// Effect describes pending asynchronous work returned by a transition.
// When it completes, the resulting Action (if non-nil) is resubmitted through
// the same single dispatch entry point.
type Effect struct {
	Name string
	Run  func(ctx context.Context) (Action, error)
}
