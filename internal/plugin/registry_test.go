package plugin

import (
	"errors"
	"testing"
)

func TestCapabilityString(t *testing.T) {
	tests := []struct {
		c    Capability
		want string
	}{
		{Stateless, "stateless"},
		{Stateful, "stateful"},
		{Capability(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Capability(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseCapability(t *testing.T) {
	if c, ok := ParseCapability("stateful"); !ok || c != Stateful {
		t.Errorf("ParseCapability(stateful) = %v, %v", c, ok)
	}
	if c, ok := ParseCapability(""); !ok || c != Stateless {
		t.Errorf("ParseCapability(\"\") = %v, %v", c, ok)
	}
	if _, ok := ParseCapability("sometimes"); ok {
		t.Error("expected unknown capability to fail")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	var r Registry

	r, err := r.Register(Descriptor{Name: "text", Capability: Stateful, InitialState: ""})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	d, ok := r.Get("text")
	if !ok {
		t.Fatal("expected text to be registered")
	}
	if !d.IsStateful() {
		t.Error("expected text to be stateful")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing plugin lookup to fail")
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r, err := NewRegistry(Descriptor{Name: "text", Capability: Stateful})
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Register(Descriptor{Name: "text"})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	var r Registry
	if _, err := r.Register(Descriptor{}); !errors.Is(err, ErrInvalidPlugin) {
		t.Errorf("expected ErrInvalidPlugin for empty name, got %v", err)
	}
	if _, err := r.Register(Descriptor{Name: "x", Capability: Capability(7)}); !errors.Is(err, ErrInvalidPlugin) {
		t.Errorf("expected ErrInvalidPlugin for bad capability, got %v", err)
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	base, err := NewRegistry(Descriptor{Name: "text", Capability: Stateful})
	if err != nil {
		t.Fatal(err)
	}

	next, err := base.Register(Descriptor{Name: "rows", Capability: Stateful})
	if err != nil {
		t.Fatal(err)
	}

	if base.Has("rows") {
		t.Error("Register modified the receiver")
	}
	if !next.Has("rows") || !next.Has("text") {
		t.Error("expected new registry to hold both plugins")
	}

	plugins := next.Plugins()
	delete(plugins, "text")
	if !next.Has("text") {
		t.Error("Plugins() exposed internal map")
	}
}

func TestRegistryDefault(t *testing.T) {
	r, err := NewRegistry(
		Descriptor{Name: "text", Capability: Stateful},
		Descriptor{Name: "separator"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if r.Default() != "" {
		t.Errorf("expected no default, got %q", r.Default())
	}
	if _, ok := r.GetOrDefault(""); ok {
		t.Error("expected GetOrDefault(\"\") to fail without a default")
	}

	if _, err := r.WithDefault("missing"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}

	r, err = r.WithDefault("text")
	if err != nil {
		t.Fatal(err)
	}

	d, ok := r.GetOrDefault("")
	if !ok || d.Name != "text" {
		t.Errorf("GetOrDefault(\"\") = %v, %v", d.Name, ok)
	}
	d, ok = r.GetOrDefault("separator")
	if !ok || d.Name != "separator" {
		t.Errorf("GetOrDefault(separator) = %v, %v", d.Name, ok)
	}

	r, err = r.WithDefault("")
	if err != nil || r.Default() != "" {
		t.Errorf("expected default to clear, got %q, %v", r.Default(), err)
	}
}

func TestRegistryNames(t *testing.T) {
	r, err := NewRegistry(
		Descriptor{Name: "text"},
		Descriptor{Name: "geogebra"},
		Descriptor{Name: "rows"},
	)
	if err != nil {
		t.Fatal(err)
	}

	names := r.Names()
	want := []string{"geogebra", "rows", "text"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestDescriptorNewStateCopies(t *testing.T) {
	d := Descriptor{
		Name:         "rows",
		Capability:   Stateful,
		InitialState: map[string]any{"ids": []string{"a"}, "meta": []any{"x"}},
	}

	st := d.NewState().(map[string]any)
	st["ids"].([]string)[0] = "changed"
	st["meta"].([]any)[0] = "changed"
	st["extra"] = true

	initial := d.InitialState.(map[string]any)
	if initial["ids"].([]string)[0] != "a" || initial["meta"].([]any)[0] != "x" {
		t.Errorf("NewState shares nested values with InitialState: %v", initial)
	}
	if _, ok := initial["extra"]; ok {
		t.Error("NewState shares the top-level map with InitialState")
	}

	if got := (Descriptor{InitialState: "s"}).NewState(); got != "s" {
		t.Errorf("NewState() = %v, want scalar passed through", got)
	}
}
