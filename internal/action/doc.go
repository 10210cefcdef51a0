// Package action defines the closed set of actions the editor state
// accepts.
//
// Every action is a concrete struct implementing Action. The set is
// sealed: only this package can add variants, so reducers match on it
// with a type switch instead of looking handlers up by string.
//
// Edits (Insert, Change, Remove) additionally carry a CommitMode that
// tells the history how to batch them into undo steps:
//
//	CommitAuto    coalesce consecutive changes of the same document
//	ForceCommit   always start a new undo step
//	ForceCombine  always join the open undo step
//
// Structural misuse, such as an Insert without an id, is reported by
// Validate as an *InvalidActionError.
package action
