// Package state holds the composite editor state and the reducers that
// advance it.
//
// A State is an immutable snapshot with six slices: editable flag,
// plugin registry, documents, focus, clipboard and history. Reduce takes
// a snapshot and an action and returns the next snapshot:
//
//	next, err := state.Reduce(prev, action.Insert{ID: "d1", Plugin: "text", State: "hello"})
//
// Each slice has its own sub-reducer. Sub-reducers run in a fixed order
// and each one sees only its own prior slice, the action and the full
// prior snapshot, never the output of another sub-reducer. A slice that
// has no case for an action returns its prior value unchanged.
//
// Reduce is pure. It performs no I/O and consults no clock, so replaying
// the same actions from the same snapshot always yields the same result.
package state
