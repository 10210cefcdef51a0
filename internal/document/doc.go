// Package document holds the normalized document store of the editor.
//
// A document is one plugin instance: the plugin type it belongs to plus
// the plugin's state. Documents are addressed by a globally unique id and
// kept in a flat Store. Ordering is not a property of the store; plugins
// such as rows keep their own ordered list of child ids.
//
// Store values are never mutated in place. Insert, Change and Remove
// return the receiver itself when nothing changed and a fresh map
// otherwise, so callers can compare snapshots cheaply and hold on to old
// ones safely.
package document
