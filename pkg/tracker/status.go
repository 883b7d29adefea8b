package tracker

import "github.com/ackama/tracker-db/pkg/debver"

// Tracker status strings with defined semantics. Everything else, including
// "undetermined", classifies as indeterminate.
const (
	statusOpen     = "open"
	statusResolved = "resolved"
)

// StatusKind is the closed classification of a release's raw status field.
type StatusKind int

const (
	// KindIndeterminate covers unknown status strings and resolved entries
	// whose fix information is missing or malformed. It must never silently
	// resolve to either bound of the range.
	KindIndeterminate StatusKind = iota
	KindOpen
	KindResolved
)

func (k StatusKind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindResolved:
		return "resolved"
	default:
		return "indeterminate"
	}
}

// ReleaseStatus is a parsed per-release status. Raw keeps the original
// status string for diagnostics regardless of the classification.
type ReleaseStatus struct {
	Kind StatusKind

	// FixedVersion is set only for KindResolved and has already passed the
	// version lexer. The sentinel "0" is kept as-is.
	FixedVersion string

	Raw     string
	Urgency string
}

// ParseStatus maps a raw release entry onto the closed status variant. It
// always succeeds: unknown status strings and data-quality gaps degrade to
// KindIndeterminate rather than aborting the document.
func ParseStatus(raw ReleaseEntry) ReleaseStatus {
	rs := ReleaseStatus{
		Kind:    KindIndeterminate,
		Raw:     raw.Status,
		Urgency: raw.Urgency,
	}

	switch raw.Status {
	case statusOpen:
		rs.Kind = KindOpen
	case statusResolved:
		// A resolved status with no fix version recorded is a data-quality
		// gap, not proof of safety.
		if raw.FixedVersion == "" || !debver.Valid(raw.FixedVersion) {
			break
		}
		rs.Kind = KindResolved
		rs.FixedVersion = raw.FixedVersion
	}

	return rs
}
