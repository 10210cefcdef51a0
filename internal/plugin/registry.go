package plugin

import (
	"fmt"
	"sort"
)

// Registry maps plugin type names to descriptors and records the default
// plugin type.
//
// A Registry is an immutable value. Register and WithDefault return a new
// Registry and leave the receiver untouched.
type Registry struct {
	defaultPlugin string
	plugins       map[string]Descriptor
}

// NewRegistry creates a registry holding the given descriptors.
func NewRegistry(descriptors ...Descriptor) (Registry, error) {
	var r Registry
	for _, d := range descriptors {
		next, err := r.Register(d)
		if err != nil {
			return Registry{}, err
		}
		r = next
	}
	return r, nil
}

// Register returns a registry with d added.
// Registering a name twice is rejected with ErrAlreadyRegistered.
func (r Registry) Register(d Descriptor) (Registry, error) {
	if err := d.Validate(); err != nil {
		return r, err
	}
	if _, exists := r.plugins[d.Name]; exists {
		return r, fmt.Errorf("%w: %s", ErrAlreadyRegistered, d.Name)
	}

	plugins := make(map[string]Descriptor, len(r.plugins)+1)
	for name, existing := range r.plugins {
		plugins[name] = existing
	}
	plugins[d.Name] = d

	return Registry{defaultPlugin: r.defaultPlugin, plugins: plugins}, nil
}

// WithDefault returns a registry whose default plugin is name.
// An empty name clears the default; unknown names are rejected.
func (r Registry) WithDefault(name string) (Registry, error) {
	if name != "" {
		if _, ok := r.plugins[name]; !ok {
			return r, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
		}
	}
	return Registry{defaultPlugin: name, plugins: r.plugins}, nil
}

// Get returns the descriptor registered under name.
func (r Registry) Get(name string) (Descriptor, bool) {
	d, ok := r.plugins[name]
	return d, ok
}

// Has returns true if name is registered.
func (r Registry) Has(name string) bool {
	_, ok := r.plugins[name]
	return ok
}

// Default returns the default plugin type, or "" when none is set.
func (r Registry) Default() string {
	return r.defaultPlugin
}

// ResolveName returns name, or the default plugin type when name is empty.
func (r Registry) ResolveName(name string) string {
	if name == "" {
		return r.defaultPlugin
	}
	return name
}

// GetOrDefault resolves name, falling back to the default plugin when name
// is empty.
func (r Registry) GetOrDefault(name string) (Descriptor, bool) {
	return r.Get(r.ResolveName(name))
}

// Plugins returns a copy of the registered descriptors keyed by name.
func (r Registry) Plugins() map[string]Descriptor {
	out := make(map[string]Descriptor, len(r.plugins))
	for name, d := range r.plugins {
		out[name] = d
	}
	return out
}

// Names returns the registered plugin names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered plugins.
func (r Registry) Len() int {
	return len(r.plugins)
}
