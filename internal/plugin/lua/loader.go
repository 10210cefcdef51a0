package lua

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edtr/internal/plugin"
)

// Result holds what a set of scripts declared.
type Result struct {
	Descriptors []plugin.Descriptor
	// Default is the last name passed to default(), if any.
	Default string
}

// Loader runs plugin scripts and collects their declarations.
type Loader struct {
	opts []StateOption
}

// NewLoader creates a loader whose states use opts.
func NewLoader(opts ...StateOption) *Loader {
	return &Loader{opts: opts}
}

// LoadFiles runs each file in its own state. Entries may be glob patterns;
// matches are loaded in lexical order.
func (l *Loader) LoadFiles(ctx context.Context, patterns ...string) (Result, error) {
	var res Result
	for _, pattern := range patterns {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return Result{}, fmt.Errorf("plugin script pattern %q: %w", pattern, err)
		}
		if len(paths) == 0 {
			paths = []string{pattern}
		}
		sort.Strings(paths)

		for _, path := range paths {
			r, err := l.run(ctx, func(s *State) error { return s.DoFile(ctx, path) })
			if err != nil {
				return Result{}, fmt.Errorf("loading plugin script %s: %w", path, err)
			}
			res.merge(r)
		}
	}
	return res, nil
}

// LoadString runs a single chunk of Lua code.
func (l *Loader) LoadString(ctx context.Context, code string) (Result, error) {
	return l.run(ctx, func(s *State) error { return s.DoString(ctx, code) })
}

func (l *Loader) run(ctx context.Context, exec func(*State) error) (Result, error) {
	s := NewState(l.opts...)
	defer s.Close()

	var res Result
	var declErr error

	s.RegisterFunc("register", func(L *lua.LState) int {
		d, err := declaration(L.CheckTable(1))
		if err != nil {
			if declErr == nil {
				declErr = err
			}
			L.RaiseError("%s", err.Error())
			return 0
		}
		res.Descriptors = append(res.Descriptors, d)
		return 0
	})
	s.RegisterFunc("default", func(L *lua.LState) int {
		res.Default = L.CheckString(1)
		return 0
	})

	if err := exec(s); err != nil {
		if declErr != nil {
			return Result{}, declErr
		}
		return Result{}, err
	}
	return res, nil
}

func (r *Result) merge(o Result) {
	r.Descriptors = append(r.Descriptors, o.Descriptors...)
	if o.Default != "" {
		r.Default = o.Default
	}
}

// declaration converts a register{...} table into a descriptor.
func declaration(t *lua.LTable) (plugin.Descriptor, error) {
	name, ok := tableString(t, "name")
	if !ok || name == "" {
		return plugin.Descriptor{}, fmt.Errorf("%w: name is required", ErrBadDeclaration)
	}

	d := plugin.Descriptor{Name: name, Capability: plugin.Stateless}

	if c, ok := tableString(t, "capability"); ok {
		capability, valid := plugin.ParseCapability(c)
		if !valid {
			return plugin.Descriptor{}, fmt.Errorf("%w: plugin %q: unknown capability %q", ErrBadDeclaration, name, c)
		}
		d.Capability = capability
	}
	if stateful, ok := tableBool(t, "stateful"); ok && stateful {
		d.Capability = plugin.Stateful
	}

	if init := t.RawGetString("initial"); init != lua.LNil {
		if !d.IsStateful() {
			return plugin.Descriptor{}, fmt.Errorf("%w: plugin %q: initial state on a stateless plugin", ErrBadDeclaration, name)
		}
		d.InitialState = ToGoValue(init)
	}

	if cfg, ok := t.RawGetString("config").(*lua.LTable); ok {
		m, isMap := ToGoValue(cfg).(map[string]any)
		if !isMap {
			return plugin.Descriptor{}, fmt.Errorf("%w: plugin %q: config must be a table of named fields", ErrBadDeclaration, name)
		}
		d.Config = m
	}

	return d, nil
}
