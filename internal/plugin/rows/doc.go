// Package rows edits rows documents, the containers that keep an ordered
// list of child document ids.
//
// Every operation reads the current state and returns the actions that
// carry it out. The first edit of a plan is dispatched with
// action.ForceCommit and the rest with action.ForceCombine, so a plan is
// undone and redone as one step:
//
//	actions, err := rows.Move(store.State(), pageID, 2, 0)
//	if err != nil {
//	    return err
//	}
//	return store.DispatchAll(actions...)
//
// Plans are computed against a snapshot. Dispatch them before planning
// the next operation on the same container.
package rows
