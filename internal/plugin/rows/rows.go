package rows

import (
	"fmt"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/plugin"
	"github.com/dshills/edtr/internal/plugin/builtin"
	"github.com/dshills/edtr/internal/state"
)

// Children returns the ordered child ids of the rows document id. Lists
// decoded from YAML, Lua or JSON arrive as []any and are accepted when
// every element is a string.
func Children(s state.State, id string) ([]string, error) {
	doc, ok := state.Document(s, id)
	if !ok || doc.Plugin != builtin.Rows {
		return nil, fmt.Errorf("%w: %q", ErrNotRows, id)
	}

	switch v := doc.State.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		ids := make([]string, len(v))
		for i, e := range v {
			child, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q has a non-string child at %d", ErrNotRows, id, i)
			}
			ids[i] = child
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotRows, id, doc.State)
	}
}

// Insert plans adding child as a new row at index. index may equal the
// number of rows to append. child.Plugin may name a stateless plugin.
func Insert(s state.State, rowsID string, index int, child action.Insert) ([]action.Action, error) {
	ids, err := Children(s, rowsID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(ids) {
		return nil, rangeError(index, len(ids)+1)
	}

	return plan(
		child,
		action.Change{ID: rowsID, State: insertAt(ids, index, child.ID)},
	), nil
}

// Move plans moving the row at from so that it ends up at to. Moving a
// row onto itself plans nothing.
func Move(s state.State, rowsID string, from, to int) ([]action.Action, error) {
	ids, err := Children(s, rowsID)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(ids) {
		return nil, rangeError(from, len(ids))
	}
	if to < 0 || to >= len(ids) {
		return nil, rangeError(to, len(ids))
	}
	if from == to {
		return nil, nil
	}

	id := ids[from]
	next := insertAt(removeAt(ids, from), to, id)
	return plan(action.Change{ID: rowsID, State: next}), nil
}

// Remove plans dropping the row at index and deleting its document.
func Remove(s state.State, rowsID string, index int) ([]action.Action, error) {
	ids, err := Children(s, rowsID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(ids) {
		return nil, rangeError(index, len(ids))
	}

	return plan(
		action.Change{ID: rowsID, State: removeAt(ids, index)},
		action.Remove{ID: ids[index]},
	), nil
}

// Cut plans copying the row at index to the clipboard and removing it.
func Cut(s state.State, rowsID string, index int) ([]action.Action, error) {
	removal, err := Remove(s, rowsID, index)
	if err != nil {
		return nil, err
	}
	ids, _ := Children(s, rowsID)
	return append([]action.Action{action.CopyToClipboard{ID: ids[index]}}, removal...), nil
}

// Paste plans inserting clipboard entry clip at index under id. Entry 0
// is the most recent copy.
func Paste(s state.State, rowsID string, index, clip int, id string) ([]action.Action, error) {
	entries := state.Clipboard(s)
	if clip < 0 || clip >= len(entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoClipboardEntry, clip, len(entries))
	}
	entry := entries[clip]
	return Insert(s, rowsID, index, action.Insert{
		ID:     id,
		Plugin: entry.Plugin,
		State:  plugin.CloneState(entry.State),
	})
}

// PasteText plans inserting pasted text at index under id. The plugin is
// chosen by builtin.Paste.
func PasteText(s state.State, rowsID string, index int, text, id string) ([]action.Action, error) {
	name, st := builtin.Paste(text)
	return Insert(s, rowsID, index, action.Insert{ID: id, Plugin: name, State: st})
}

func rangeError(index, n int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, n)
}

// plan sets the commit modes that make actions one undo step.
func plan(actions ...action.Action) []action.Action {
	first := true
	for i, a := range actions {
		mode := action.ForceCombine
		if first {
			mode = action.ForceCommit
		}
		switch e := a.(type) {
		case action.Insert:
			e.Commit = mode
			actions[i] = e
		case action.Change:
			e.Commit = mode
			actions[i] = e
		case action.Remove:
			e.Commit = mode
			actions[i] = e
		default:
			continue
		}
		first = false
	}
	return actions
}

func insertAt(ids []string, index int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, id)
	return append(out, ids[index:]...)
}

func removeAt(ids []string, index int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:index]...)
	return append(out, ids[index+1:]...)
}
