package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Envelope is the wire form of a domain.Action.
type Envelope struct {
	Type    string          `json:"type" mapstructure:"type"`
	ID      domain.ID       `json:"id,omitempty" mapstructure:"id"`
	Name    string          `json:"name,omitempty" mapstructure:"name"`
	Contact *domain.Contact `json:"contact,omitempty" mapstructure:"contact"`
}

var contactSchema = Object("contact", Schema{
	"id":   ID(),
	"name": String(),
})

// actions maps every wire kind to the fields it requires.
var actions = map[string]Schema{
	domain.KindAddButtonTapped:      {},
	domain.KindDeleteButtonTapped:   {"id": ID()},
	domain.KindDismiss:              {},
	domain.KindEditorSetName:        {"name": String()},
	domain.KindEditorSaveTapped:     {},
	domain.KindEditorCancelTapped:   {},
	domain.KindEditorCompleted:      {"contact": contactSchema},
	domain.KindAlertConfirmDeletion: {"id": ID()},
}

// Kinds lists every action kind accepted on the wire, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(actions))
	for k := range actions {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// SchemaFor returns the field schema of kind.
func SchemaFor(kind string) (Schema, bool) {
	s, ok := actions[kind]
	return s, ok
}

// Decode validates a raw payload and converts it into an action.
func Decode(data map[string]any) (domain.Action, error) {
	kind, _ := data["type"].(string)
	if kind == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAction, &ValidationError{Key: "type", Reason: "required"})
	}
	fields, ok := actions[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, kind)
	}
	if err := Validate(fields, data); err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrInvalidAction, kind, err)
	}

	var env Envelope
	if err := mapstructure.Decode(data, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", domain.ErrInvalidAction, kind, err)
	}
	return env.Action()
}

// DecodeJSON is Decode for a JSON object.
func DecodeJSON(b []byte) (domain.Action, error) {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAction, err)
	}
	return Decode(data)
}

// Action builds the domain action described by the envelope.
// It does not validate field presence; use Decode for untrusted input.
func (e Envelope) Action() (domain.Action, error) {
	switch e.Type {
	case domain.KindAddButtonTapped:
		return domain.AddButtonTapped{}, nil
	case domain.KindDeleteButtonTapped:
		return domain.DeleteButtonTapped{ID: e.ID}, nil
	case domain.KindDismiss:
		return domain.Dismiss{}, nil
	case domain.KindEditorSetName:
		return domain.AddContactAction{Action: domain.EditorSetName{Name: e.Name}}, nil
	case domain.KindEditorSaveTapped:
		return domain.AddContactAction{Action: domain.EditorSaveTapped{}}, nil
	case domain.KindEditorCancelTapped:
		return domain.AddContactAction{Action: domain.EditorCancelTapped{}}, nil
	case domain.KindEditorCompleted:
		if e.Contact == nil {
			return nil, fmt.Errorf("%w: %s without contact", domain.ErrInvalidAction, e.Type)
		}
		return domain.EditorCompletedAction(*e.Contact), nil
	case domain.KindAlertConfirmDeletion:
		return domain.ConfirmDeletionOf(e.ID), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, e.Type)
}

// Encode returns the wire form of an action.
func Encode(action domain.Action) (Envelope, error) {
	env := Envelope{}
	switch a := action.(type) {
	case domain.AddButtonTapped, domain.Dismiss:
	case domain.DeleteButtonTapped:
		env.ID = a.ID
	case domain.AddContactAction:
		switch ea := a.Action.(type) {
		case domain.EditorSetName:
			env.Name = ea.Name
		case domain.EditorSaveTapped, domain.EditorCancelTapped:
		case domain.EditorCompleted:
			c := ea.Contact
			env.Contact = &c
		default:
			return Envelope{}, fmt.Errorf("%w: editor action %T", domain.ErrUnknownAction, a.Action)
		}
	case domain.ConfirmDeletionAction:
		confirm, ok := a.Action.(domain.AlertConfirmDeletion)
		if !ok {
			return Envelope{}, fmt.Errorf("%w: alert action %T", domain.ErrUnknownAction, a.Action)
		}
		env.ID = confirm.ID
	default:
		return Envelope{}, fmt.Errorf("%w: %T", domain.ErrUnknownAction, action)
	}
	env.Type = action.Kind()
	return env, nil
}
