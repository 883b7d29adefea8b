package types

// Range boundary sentinels. They round-trip through JSON exactly as written
// here; downstream consumers match on them byte for byte.
const (
	// VersionUnbounded marks a range with no known upper bound.
	VersionUnbounded = "unbounded"

	// VersionFloor is the lower bound of every affected range.
	VersionFloor = "0"

	// FixedVersionSentinel is the tracker's "fixed before tracking began"
	// marker. A release carrying it was never affected.
	FixedVersionSentinel = "0"
)

// AffectedRange is a half-open version interval [Introduced, Fixed) for one
// ecosystem. Each distribution release is its own ecosystem; ranges are never
// merged across releases.
type AffectedRange struct {
	// Ecosystem identifies the release, e.g. "debian bookworm".
	Ecosystem string `json:"ecosystem"`

	// Introduced is the lower bound. The tracker gives no per-release
	// introduction data, so it is always VersionFloor for non-empty ranges.
	Introduced string `json:"introduced,omitempty"`

	// Fixed is the exclusive upper bound: a version string, or
	// VersionUnbounded when no fix exists.
	Fixed string `json:"fixed,omitempty"`

	// Empty marks a release that was checked and never affected
	// (FixedVersionSentinel), as opposed to a release that was never checked.
	Empty bool `json:"empty,omitempty"`

	// LowConfidence marks ranges derived from incomplete or contradictory
	// data, e.g. a resolved status with no fixed version. Consumers may
	// exclude these from security-critical decisions.
	LowConfidence bool `json:"low_confidence,omitempty"`

	// Urgency is the tracker's urgency string, carried through verbatim and
	// never interpreted.
	Urgency string `json:"urgency,omitempty"`
}

// VulnerabilityRecord is the canonical form of one CVE against one source
// package. Records are built once by the reconciler and not mutated after.
type VulnerabilityRecord struct {
	ID          string          `json:"id"`
	Package     string          `json:"package"`
	Description string          `json:"description,omitempty"`
	Scope       string          `json:"scope,omitempty"`
	DebianBug   int             `json:"debianbug,omitempty"`
	Affected    []AffectedRange `json:"affected"`
}
