// Package builtin provides the descriptors of the stock editor plugins.
package builtin

import "github.com/dshills/edtr/internal/plugin"

// Stock plugin type names.
const (
	Text      = "text"
	Rows      = "rows"
	GeoGebra  = "geogebra"
	Separator = "separator"
)

// Descriptors returns the stock plugin descriptors.
//
// Rows stores the ordered child document ids, which is how ordering is
// layered on top of the unordered document store.
func Descriptors() []plugin.Descriptor {
	return []plugin.Descriptor{
		{
			Name:         Text,
			Capability:   plugin.Stateful,
			InitialState: "",
		},
		{
			Name:         Rows,
			Capability:   plugin.Stateful,
			InitialState: []string{},
		},
		{
			Name:         GeoGebra,
			Capability:   plugin.Stateful,
			InitialState: "",
			Config:       map[string]any{"baseURL": "https://www.geogebra.org/material/iframe/id/"},
		},
		{
			Name:       Separator,
			Capability: plugin.Stateless,
		},
	}
}

// Registry returns a registry holding the stock plugins with text as the
// default plugin.
func Registry() plugin.Registry {
	r, err := plugin.NewRegistry(Descriptors()...)
	if err != nil {
		panic("builtin: " + err.Error())
	}
	r, err = r.WithDefault(Text)
	if err != nil {
		panic("builtin: " + err.Error())
	}
	return r
}
