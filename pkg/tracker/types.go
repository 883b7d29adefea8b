// Package tracker normalizes Debian security tracker dumps into canonical
// vulnerability records: it parses per-release status data, resolves affected
// version ranges and reconciles them across releases.
package tracker

import "fmt"

// Document is the raw tracker dump: package name -> CVE ID -> entry.
// Unknown keys inside entries are ignored on decode for forward
// compatibility with upstream schema growth.
type Document map[string]map[string]CveEntry

// CveEntry is one CVE against one source package as published by the
// tracker. Scope and DebianBug are advisory only and carried through
// unvalidated.
type CveEntry struct {
	Description string                  `json:"description"`
	Scope       string                  `json:"scope"`
	DebianBug   int                     `json:"debianbug"`
	Releases    map[string]ReleaseEntry `json:"releases"`
}

// ReleaseEntry is the per-release breakdown of one CVE. Status is an open
// string set upstream; unknown values are preserved, not rejected.
// An empty FixedVersion means the tracker published no fix version.
type ReleaseEntry struct {
	Status       string            `json:"status"`
	Repositories map[string]string `json:"repositories"`
	FixedVersion string            `json:"fixed_version"`
	Urgency      string            `json:"urgency"`
}

// StructuralError reports a CVE entry that violates the required document
// shape. It aborts only the offending entry; the pass continues.
type StructuralError struct {
	Package string
	ID      string
	Reason  string
}

func (e StructuralError) Error() string {
	return fmt.Sprintf("structural error in %s/%s: %s", e.Package, e.ID, e.Reason)
}
