package action

import "github.com/dshills/edtr/internal/plugin"

// Type names an action variant.
type Type string

// Action types.
const (
	TypeSetEditable      Type = "SetEditable"
	TypeInsert           Type = "Insert"
	TypeChange           Type = "Change"
	TypeRemove           Type = "Remove"
	TypeCopyToClipboard  Type = "CopyToClipboard"
	TypeFocus            Type = "Focus"
	TypeUndo             Type = "Undo"
	TypeRedo             Type = "Redo"
	TypeCommit           Type = "Commit"
	TypeRegisterPlugin   Type = "RegisterPlugin"
	TypeSetDefaultPlugin Type = "SetDefaultPlugin"
)

// Action is a structured request to change editor state.
type Action interface {
	// Type returns the action's type name.
	Type() Type

	// Validate reports structural problems with the payload.
	Validate() error

	sealed()
}

// Edit is an action that modifies the document store and is recorded
// in the history.
type Edit interface {
	Action

	// DocumentID returns the id of the edited document.
	DocumentID() string

	// CommitMode returns the batching policy for this edit.
	CommitMode() CommitMode
}

// SetEditable switches the editor between editing and read-only mode.
type SetEditable struct {
	Editable bool
}

// Insert adds a document. An empty Plugin selects the default plugin.
type Insert struct {
	ID     string
	Plugin string
	State  any
	Commit CommitMode
}

// Change replaces the plugin state of an existing document.
type Change struct {
	ID     string
	State  any
	Commit CommitMode
}

// Remove deletes a document.
type Remove struct {
	ID     string
	Commit CommitMode
}

// CopyToClipboard pushes a snapshot of a document onto the clipboard.
type CopyToClipboard struct {
	ID string
}

// Focus moves focus to a document. An empty ID clears focus.
type Focus struct {
	ID string
}

// Undo reverts the most recent batch of edits.
type Undo struct{}

// Redo re-applies the most recently undone batch.
type Redo struct{}

// Commit closes the open batch so the next edit starts a new undo step.
type Commit struct{}

// RegisterPlugin adds a plugin to the registry.
type RegisterPlugin struct {
	Descriptor plugin.Descriptor
}

// SetDefaultPlugin selects the plugin used when an insert names none.
type SetDefaultPlugin struct {
	Name string
}

func (SetEditable) Type() Type      { return TypeSetEditable }
func (Insert) Type() Type           { return TypeInsert }
func (Change) Type() Type           { return TypeChange }
func (Remove) Type() Type           { return TypeRemove }
func (CopyToClipboard) Type() Type  { return TypeCopyToClipboard }
func (Focus) Type() Type            { return TypeFocus }
func (Undo) Type() Type             { return TypeUndo }
func (Redo) Type() Type             { return TypeRedo }
func (Commit) Type() Type           { return TypeCommit }
func (RegisterPlugin) Type() Type   { return TypeRegisterPlugin }
func (SetDefaultPlugin) Type() Type { return TypeSetDefaultPlugin }

func (SetEditable) sealed()      {}
func (Insert) sealed()           {}
func (Change) sealed()           {}
func (Remove) sealed()           {}
func (CopyToClipboard) sealed()  {}
func (Focus) sealed()            {}
func (Undo) sealed()             {}
func (Redo) sealed()             {}
func (Commit) sealed()           {}
func (RegisterPlugin) sealed()   {}
func (SetDefaultPlugin) sealed() {}

func (a Insert) DocumentID() string { return a.ID }
func (a Change) DocumentID() string { return a.ID }
func (a Remove) DocumentID() string { return a.ID }

func (a Insert) CommitMode() CommitMode { return a.Commit }
func (a Change) CommitMode() CommitMode { return a.Commit }
func (a Remove) CommitMode() CommitMode { return a.Commit }
