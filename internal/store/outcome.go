package store

import "fmt"

// OutcomeKind distinguishes full from degraded persistence.
type OutcomeKind int

const (
	// FullSuccess means the configuration reached the privileged directory.
	FullSuccess OutcomeKind = iota
	// PartialSuccess means only the staging copy was written.
	PartialSuccess
)

// String returns a human-readable kind.
func (k OutcomeKind) String() string {
	switch k {
	case FullSuccess:
		return "full"
	case PartialSuccess:
		return "partial"
	default:
		return "unknown"
	}
}

// Reason explains why a write was only partially successful.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonHelperFailed means the elevation helper ran but the copy failed.
	ReasonHelperFailed
	// ReasonHelperUnavailable means the elevation helper could not be started.
	ReasonHelperUnavailable
)

// String returns a human-readable reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonHelperFailed:
		return "helper_failed"
	case ReasonHelperUnavailable:
		return "helper_unavailable"
	default:
		return "unknown"
	}
}

// Outcome is the result of a successful or degraded Write.
// A hard failure is reported through the error return instead.
type Outcome struct {
	Kind OutcomeKind
	// Path is where the configuration was durably written: the privileged
	// path on FullSuccess, the staging path on PartialSuccess.
	Path string
	// Target is the privileged path that was attempted.
	Target string
	Reason Reason
	// Detail carries the helper's raw error output, if any.
	Detail string
}

// Message renders the outcome for display.
func (o Outcome) Message() string {
	switch {
	case o.Kind == FullSuccess:
		return fmt.Sprintf("configuration saved to %s", o.Path)
	case o.Reason == ReasonHelperUnavailable:
		return fmt.Sprintf("configuration saved to %s (could not run the elevation helper)", o.Path)
	default:
		return fmt.Sprintf("configuration saved to %s (could not write %s)", o.Path, o.Target)
	}
}
