// Package plugin describes document types.
//
// A plugin is the type of a document. The state core only needs two
// facts about it: whether documents of the type carry state (its
// Capability) and what state a fresh document starts with. Rendering and
// other UI concerns live outside this package.
//
// A Registry maps plugin names to descriptors and optionally names a
// default plugin, used when an insert does not say which type it wants.
// Registries are immutable values; Register and WithDefault return
// updated copies:
//
//	reg, err := plugin.NewRegistry(
//	    plugin.Descriptor{Name: "text", Capability: plugin.Stateful, InitialState: ""},
//	    plugin.Descriptor{Name: "separator", Capability: plugin.Stateless},
//	)
//	if err != nil {
//	    return err
//	}
//	reg, err = reg.WithDefault("text")
//
// Stock descriptors are in package builtin; package lua loads more from
// scripts.
package plugin
