package plugin

// Capability tells the core whether documents of a plugin carry state.
type Capability int

// Plugin capabilities.
const (
	// Stateless plugins never store plugin state on their documents.
	Stateless Capability = iota

	// Stateful plugins store an opaque state value on each document.
	Stateful
)

// String returns a string representation of the capability.
func (c Capability) String() string {
	switch c {
	case Stateless:
		return "stateless"
	case Stateful:
		return "stateful"
	default:
		return "unknown"
	}
}

// ParseCapability parses "stateful" or "stateless".
func ParseCapability(s string) (Capability, bool) {
	switch s {
	case "stateful", "STATEFUL":
		return Stateful, true
	case "stateless", "STATELESS", "":
		return Stateless, true
	default:
		return Stateless, false
	}
}

// IsValid returns true if c is one of the known capabilities.
func (c Capability) IsValid() bool {
	return c == Stateless || c == Stateful
}
