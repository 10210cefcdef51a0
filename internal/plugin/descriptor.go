package plugin

import "fmt"

// Descriptor describes a registered plugin type.
//
// Only Capability and InitialState affect the document core. Config is
// opaque data handed through to whatever renders the plugin.
type Descriptor struct {
	// Name is the plugin type name documents refer to (e.g. "text").
	Name string

	// Capability selects stateful or stateless documents.
	Capability Capability

	// InitialState seeds documents of a stateful plugin that are inserted
	// without an explicit state. Each document receives its own copy from
	// NewState; the value held here must not be modified once registered.
	InitialState any

	// Config is plugin-specific configuration.
	Config map[string]any
}

// IsStateful returns true if documents of this plugin carry state.
func (d Descriptor) IsStateful() bool {
	return d.Capability == Stateful
}

// NewState returns a copy of InitialState that a new document may own.
func (d Descriptor) NewState() any {
	return CloneState(d.InitialState)
}

// CloneState copies a plugin state value. Slices and maps, including
// nested ones, are copied; other values are returned as they are.
func CloneState(v any) any {
	switch v := v.(type) {
	case []string:
		return append(make([]string, 0, len(v)), v...)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = CloneState(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = CloneState(e)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, e := range v {
			out[k] = e
		}
		return out
	default:
		return v
	}
}

// Validate checks that the descriptor can be registered.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlugin)
	}
	if !d.Capability.IsValid() {
		return fmt.Errorf("%w: %s has unknown capability %d", ErrInvalidPlugin, d.Name, d.Capability)
	}
	return nil
}
