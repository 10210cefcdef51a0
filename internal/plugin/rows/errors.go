package rows

import "errors"

var (
	// ErrNotRows is returned when the target document is missing or is
	// not a rows container.
	ErrNotRows = errors.New("not a rows document")

	// ErrIndexOutOfRange is returned for a row index outside the list.
	ErrIndexOutOfRange = errors.New("row index out of range")

	// ErrNoClipboardEntry is returned when pasting an entry the
	// clipboard does not hold.
	ErrNoClipboardEntry = errors.New("no such clipboard entry")

	// ErrNoMerger is returned when merging rows of a stateful plugin
	// that has no merge function.
	ErrNoMerger = errors.New("plugin cannot merge rows")
)
