// Package script decodes YAML action scripts.
//
// A script is a list of steps, each naming an action type and its fields:
//
//	name: greeting
//	steps:
//	  - {do: insert, id: d1, plugin: text, state: hello}
//	  - {do: change, id: d1, state: hello world}
//	  - {do: insert, as: note, plugin: rows, commit: ForceCommit}
//	  - {do: focus, id: "@note"}
//	  - {do: undo}
//
// An insert without an id receives a generated one; "as" names it so
// later steps can refer to it as "@name".
//
// Steps prefixed rows_ edit a rows container named by "rows" and are
// planned against the state they run on:
//
//	  - {do: rows_insert, rows: "@note", index: 0, as: first, plugin: text}
//	  - {do: rows_move, rows: "@note", index: 0, to: 1}
//	  - {do: rows_cut, rows: "@note", index: 1}
//	  - {do: rows_paste, rows: "@note", index: 0, clip: 0}
//	  - {do: paste, rows: "@note", index: 0, text: "https://www.geogebra.org/m/abc"}
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/edtr/internal/action"
	"github.com/dshills/edtr/internal/document"
	"github.com/dshills/edtr/internal/plugin"
	"github.com/dshills/edtr/internal/plugin/builtin"
	"github.com/dshills/edtr/internal/plugin/rows"
	"github.com/dshills/edtr/internal/state"
)

// Script is a decoded action script.
type Script struct {
	Name     string
	Commands []Command
	// Aliases maps "as" names to the ids they were bound to.
	Aliases map[string]string
}

// FromActions returns a script of fixed actions.
func FromActions(name string, actions ...action.Action) Script {
	s := Script{Name: name, Aliases: make(map[string]string)}
	for _, a := range actions {
		s.Commands = append(s.Commands, Static{Action: a})
	}
	return s
}

// Command is one script step. Plan returns the actions that carry it out
// against s.
type Command interface {
	Name() string
	Plan(s state.State) ([]action.Action, error)
}

// Static is a command that always yields the same action.
type Static struct {
	Action action.Action
}

// Name returns the action type.
func (c Static) Name() string { return string(c.Action.Type()) }

// Plan returns the action.
func (c Static) Plan(state.State) ([]action.Action, error) {
	return []action.Action{c.Action}, nil
}

// planned is a command computed from the state at replay time.
type planned struct {
	name string
	plan func(s state.State) ([]action.Action, error)
}

func (c planned) Name() string { return c.name }

func (c planned) Plan(s state.State) ([]action.Action, error) { return c.plan(s) }

// File is the YAML layout of a script.
type File struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted action.
type Step struct {
	Do       string         `yaml:"do"`
	ID       string         `yaml:"id"`
	As       string         `yaml:"as"`
	Plugin   string         `yaml:"plugin"`
	State    any            `yaml:"state"`
	Commit   string         `yaml:"commit"`
	Editable *bool          `yaml:"editable"`
	Name     string         `yaml:"name"`
	Stateful bool           `yaml:"stateful"`
	Initial  any            `yaml:"initial"`
	Config   map[string]any `yaml:"config"`

	Rows  string `yaml:"rows"`
	Index int    `yaml:"index"`
	To    int    `yaml:"to"`
	Clip  int    `yaml:"clip"`
	Text  string `yaml:"text"`
}

// StepError reports a step that could not be turned into a command.
type StepError struct {
	Index  int
	Do     string
	Reason string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Index+1, e.Do, e.Reason)
}

// ReadFile decodes the script at path.
func ReadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read decodes a script from r.
func Read(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML script data.
func Parse(data []byte) (Script, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Script{}, fmt.Errorf("parsing script: %w", err)
	}
	return f.Compile()
}

// Compile converts the steps to commands, generating ids where needed.
func (f File) Compile() (Script, error) {
	s := Script{Name: f.Name, Aliases: make(map[string]string)}

	for i, st := range f.Steps {
		c, err := st.compile(s.Aliases)
		if err != nil {
			return Script{}, &StepError{Index: i, Do: st.Do, Reason: err.Error()}
		}
		s.Commands = append(s.Commands, c)
	}
	return s, nil
}

func (st Step) compile(aliases map[string]string) (Command, error) {
	do := strings.ToLower(st.Do)
	if strings.HasPrefix(do, "rows_") || do == "paste" {
		return st.compileRows(do, aliases)
	}

	a, err := st.compileAction(do, aliases)
	if err != nil {
		return nil, err
	}
	return Static{Action: a}, nil
}

func (st Step) compileAction(do string, aliases map[string]string) (action.Action, error) {
	id, err := resolve(st.ID, aliases)
	if err != nil {
		return nil, err
	}
	mode, err := action.ParseCommitMode(st.Commit)
	if err != nil {
		return nil, err
	}

	switch do {
	case "insert":
		return action.Insert{ID: st.bind(id, aliases), Plugin: st.Plugin, State: st.State, Commit: mode}, nil
	case "change":
		return action.Change{ID: id, State: st.State, Commit: mode}, nil
	case "remove":
		return action.Remove{ID: id, Commit: mode}, nil
	case "copy", "copy_to_clipboard":
		return action.CopyToClipboard{ID: id}, nil
	case "focus":
		return action.Focus{ID: id}, nil
	case "undo":
		return action.Undo{}, nil
	case "redo":
		return action.Redo{}, nil
	case "commit":
		return action.Commit{}, nil
	case "set_editable":
		if st.Editable == nil {
			return nil, fmt.Errorf("editable is required")
		}
		return action.SetEditable{Editable: *st.Editable}, nil
	case "set_default_plugin":
		return action.SetDefaultPlugin{Name: st.Name}, nil
	case "register_plugin":
		d := plugin.Descriptor{Name: st.Name, Capability: plugin.Stateless, Config: st.Config}
		if st.Stateful {
			d.Capability = plugin.Stateful
			d.InitialState = st.Initial
		}
		return action.RegisterPlugin{Descriptor: d}, nil
	case "":
		return nil, fmt.Errorf("missing action type")
	default:
		return nil, fmt.Errorf("unknown action type %q", st.Do)
	}
}

// compileRows builds the commands that edit a rows container.
func (st Step) compileRows(do string, aliases map[string]string) (Command, error) {
	id, err := resolve(st.ID, aliases)
	if err != nil {
		return nil, err
	}
	container, err := resolve(st.Rows, aliases)
	if err != nil {
		return nil, err
	}
	if container == "" && do != "paste" {
		return nil, fmt.Errorf("rows is required")
	}
	index := st.Index

	var plan func(s state.State) ([]action.Action, error)
	switch do {
	case "rows_insert":
		child := action.Insert{ID: st.bind(id, aliases), Plugin: st.Plugin, State: st.State}
		plan = func(s state.State) ([]action.Action, error) {
			return rows.Insert(s, container, index, child)
		}
	case "rows_move":
		to := st.To
		plan = func(s state.State) ([]action.Action, error) {
			return rows.Move(s, container, index, to)
		}
	case "rows_remove":
		plan = func(s state.State) ([]action.Action, error) {
			return rows.Remove(s, container, index)
		}
	case "rows_cut":
		plan = func(s state.State) ([]action.Action, error) {
			return rows.Cut(s, container, index)
		}
	case "rows_merge_previous":
		plan = func(s state.State) ([]action.Action, error) {
			return rows.MergeWithPrevious(s, container, index, rows.DefaultMergers())
		}
	case "rows_merge_next":
		plan = func(s state.State) ([]action.Action, error) {
			return rows.MergeWithNext(s, container, index, rows.DefaultMergers())
		}
	case "rows_paste":
		child, clip := st.bind(id, aliases), st.Clip
		plan = func(s state.State) ([]action.Action, error) {
			return rows.Paste(s, container, index, clip, child)
		}
	case "paste":
		if st.Text == "" {
			return nil, fmt.Errorf("text is required")
		}
		child, text := st.bind(id, aliases), st.Text
		if container == "" {
			name, pasted := builtin.Paste(text)
			return Static{Action: action.Insert{ID: child, Plugin: name, State: pasted}}, nil
		}
		plan = func(s state.State) ([]action.Action, error) {
			return rows.PasteText(s, container, index, text, child)
		}
	default:
		return nil, fmt.Errorf("unknown action type %q", st.Do)
	}
	return planned{name: do, plan: plan}, nil
}

// bind returns id, or a generated one when id is empty, and records it
// under the step's "as" name.
func (st Step) bind(id string, aliases map[string]string) string {
	if id == "" {
		id = document.NewID()
	}
	if st.As != "" {
		aliases[st.As] = id
	}
	return id
}

func resolve(id string, aliases map[string]string) (string, error) {
	name, ok := strings.CutPrefix(id, "@")
	if !ok {
		return id, nil
	}
	bound, ok := aliases[name]
	if !ok {
		return "", fmt.Errorf("unknown alias %q", id)
	}
	return bound, nil
}
