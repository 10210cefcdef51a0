package action

import "fmt"

// CommitMode tells the history how to batch an edit.
type CommitMode int

// Commit modes.
const (
	// CommitAuto coalesces consecutive changes of one document and starts
	// a new batch for anything else.
	CommitAuto CommitMode = iota

	// ForceCommit always starts a new batch.
	ForceCommit

	// ForceCombine always merges into the open batch.
	ForceCombine
)

// String returns a string representation of the commit mode.
func (m CommitMode) String() string {
	switch m {
	case CommitAuto:
		return "auto"
	case ForceCommit:
		return "ForceCommit"
	case ForceCombine:
		return "ForceCombine"
	default:
		return "unknown"
	}
}

// ParseCommitMode parses a commit mode name. The empty string is CommitAuto.
func ParseCommitMode(s string) (CommitMode, error) {
	switch s {
	case "", "auto":
		return CommitAuto, nil
	case "ForceCommit", "commit":
		return ForceCommit, nil
	case "ForceCombine", "combine":
		return ForceCombine, nil
	default:
		return CommitAuto, fmt.Errorf("unknown commit mode %q", s)
	}
}

func (m CommitMode) valid() bool {
	return m >= CommitAuto && m <= ForceCombine
}
