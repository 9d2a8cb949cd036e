package domain

// EditorState is the state owned by the add-contact editor sub-machine.
type EditorState struct {
	// Contact is the draft being edited. Its ID is fixed at seeding time.
	Contact Contact `json:"contact"`
}

// EditorAction is the closed vocabulary of the editor sub-machine.
type EditorAction interface {
	Kind() string
	isEditorAction()
}

// EditorSetName updates the draft name.
type EditorSetName struct {
	Name string `json:"name"`
}

// EditorSaveTapped asks the editor to finish with the current draft.
type EditorSaveTapped struct{}

// EditorCancelTapped abandons the draft.
type EditorCancelTapped struct{}

// EditorCompleted is the delegate signal: the only editor action the parent inspects.
// It carries the finished contact.
type EditorCompleted struct {
	Contact Contact `json:"contact"`
}

func (EditorSetName) Kind() string      { return "set_name" }
func (EditorSaveTapped) Kind() string   { return "save_tapped" }
func (EditorCancelTapped) Kind() string { return "cancel_tapped" }
func (EditorCompleted) Kind() string    { return "completed" }

func (EditorSetName) isEditorAction()      {}
func (EditorSaveTapped) isEditorAction()   {}
func (EditorCancelTapped) isEditorAction() {}
func (EditorCompleted) isEditorAction()    {}

// OutcomeKind tells the parent how an editor step ended.
type OutcomeKind int

const (
	// OutcomeContinue keeps the editor presented.
	OutcomeContinue OutcomeKind = iota
	// OutcomeCompleted carries the finished contact to the parent.
	OutcomeCompleted
	// OutcomeCancelled asks the parent to dismiss without changes.
	OutcomeCancelled
)

// EditorOutcome is the result of one editor transition as seen by the parent.
type EditorOutcome struct {
	Kind    OutcomeKind
	Contact Contact // set when Kind == OutcomeCompleted
}
