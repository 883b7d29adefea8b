package tracker

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/ackama/tracker-db/pkg/types"
)

// Each release maps to its own ecosystem bucket.
// e.g. "bookworm" => "debian bookworm"
const ecosystemFormat = "debian %s"

// Reconcile relabels the per-release ranges of one CVE+package pair into the
// canonical affected set. Ranges are never merged across releases: a
// distribution release is a distinct deployment target.
//
// The output is ordered by release name in byte order, so reconciling the
// same input always yields byte-identical serialized output. Contradictory
// signals within a release (a resolved status without a fix version) arrive
// here already flagged low-confidence by the parser and are surfaced, never
// dropped.
func Reconcile(perRelease map[string]types.AffectedRange) []types.AffectedRange {
	releases := lo.Keys(perRelease)
	sort.Strings(releases)

	affected := make([]types.AffectedRange, 0, len(releases))
	for _, release := range releases {
		r := perRelease[release]
		r.Ecosystem = fmt.Sprintf(ecosystemFormat, release)
		affected = append(affected, r)
	}
	return affected
}
