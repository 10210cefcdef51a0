package rows

import (
	"fmt"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/plugin/builtin"
	"github.com/dshills/edtr/internal/state"
)

// MergeFunc joins the states of two adjacent rows, first being the upper
// one.
type MergeFunc func(first, second any) (any, error)

// Mergers maps plugin names to their merge functions.
type Mergers map[string]MergeFunc

// DefaultMergers returns the merge functions of the stock plugins.
func DefaultMergers() Mergers {
	return Mergers{builtin.Text: MergeText}
}

// MergeText concatenates two text states. A nil state counts as empty.
func MergeText(first, second any) (any, error) {
	a, err := text(first)
	if err != nil {
		return nil, err
	}
	b, err := text(second)
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

func text(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("text state is %T", v)
	}
}

// MergeWithPrevious plans folding the row above index into the row at
// index. The upper row is removed. Nothing is planned for the first row
// or when the two rows belong to different plugins.
func MergeWithPrevious(s state.State, rowsID string, index int, m Mergers) ([]action.Action, error) {
	ids, err := Children(s, rowsID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ids) {
		return nil, rangeError(index, len(ids))
	}
	if index == 0 {
		return nil, nil
	}
	return merge(s, rowsID, ids, index, index-1, m)
}

// MergeWithNext plans folding the row below index into the row at index.
// The lower row is removed. Nothing is planned for the last row or when
// the two rows belong to different plugins.
func MergeWithNext(s state.State, rowsID string, index int, m Mergers) ([]action.Action, error) {
	ids, err := Children(s, rowsID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ids) {
		return nil, rangeError(index, len(ids))
	}
	if index+1 == len(ids) {
		return nil, nil
	}
	return merge(s, rowsID, ids, index, index+1, m)
}

// merge keeps the row at keep and drops the row at drop.
func merge(s state.State, rowsID string, ids []string, keep, drop int, m Mergers) ([]action.Action, error) {
	kept, ok := state.Document(s, ids[keep])
	if !ok {
		return nil, nil
	}
	dropped, ok := state.Document(s, ids[drop])
	if !ok || dropped.Plugin != kept.Plugin {
		return nil, nil
	}

	var actions []action.Action
	if d, ok := state.Plugin(s, kept.Plugin); ok && d.IsStateful() {
		merged, err := mergeStates(kept, dropped, keep < drop, m)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action.Change{ID: ids[keep], State: merged})
	}

	actions = append(actions,
		action.Change{ID: rowsID, State: removeAt(ids, drop)},
		action.Remove{ID: ids[drop]},
	)
	return plan(actions...), nil
}

func mergeStates(kept, dropped document.Document, keptFirst bool, m Mergers) (any, error) {
	fn, ok := m[kept.Plugin]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMerger, kept.Plugin)
	}
	if keptFirst {
		return fn(kept.State, dropped.State)
	}
	return fn(dropped.State, kept.State)
}
