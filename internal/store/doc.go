// Package store owns the current editor state for one editing session.
//
// A Store applies actions one at a time through state.Reduce and swaps in
// the resulting snapshot. Readers call State and get an immutable
// snapshot; writers call Dispatch. Listeners registered with Subscribe
// are told about every accepted action after the swap, outside the lock,
// so a listener may dispatch further actions. Changes reach listeners one
// at a time in the order they were applied, also when several goroutines
// dispatch at once.
//
// Reducers never do asynchronous work. Anything that needs a timer, such
// as closing an undo step after the user pauses typing, lives here in
// Committer and talks to the store only through Dispatch.
package store
