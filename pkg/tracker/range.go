package tracker

import (
	"github.com/samber/oops"

	"github.com/ackama/tracker-db/pkg/debver"
	"github.com/ackama/tracker-db/pkg/types"
)

// Resolve turns one parsed release status into an affected range for that
// release. The ecosystem label is attached later by the reconciler.
//
//   - Open: affected from the floor with no upper bound.
//   - Resolved at v: affected in [floor, v).
//   - Resolved at the "0" sentinel: empty range. The release is emitted as
//     present-but-unaffected so consumers can tell "checked, safe" from
//     "never checked".
//   - Indeterminate: unbounded like Open, but flagged low-confidence so
//     callers can filter it out without discarding confidently-open ranges.
func Resolve(status ReleaseStatus) types.AffectedRange {
	r := types.AffectedRange{
		Introduced: types.VersionFloor,
		Fixed:      types.VersionUnbounded,
		Urgency:    status.Urgency,
	}

	switch status.Kind {
	case KindOpen:
	case KindResolved:
		if status.FixedVersion == types.FixedVersionSentinel {
			r.Introduced = ""
			r.Fixed = ""
			r.Empty = true
			break
		}
		r.Fixed = status.FixedVersion
	default:
		r.LowConfidence = true
	}

	return r
}

// Contains reports whether ver falls inside the affected range. It fails
// only when ver itself does not lex as a Debian version.
func Contains(r types.AffectedRange, ver string) (bool, error) {
	eb := oops.With("ecosystem", r.Ecosystem).With("version", ver)

	if r.Empty {
		return false, nil
	}

	v, err := debver.NewVersion(ver)
	if err != nil {
		return false, eb.Wrapf(err, "failed to parse version")
	}

	if r.Introduced != "" && r.Introduced != types.VersionFloor {
		introduced, err := debver.NewVersion(r.Introduced)
		if err != nil {
			return false, eb.With("introduced", r.Introduced).Wrapf(err, "failed to parse lower bound")
		}
		if v.LessThan(introduced) {
			return false, nil
		}
	}

	if r.Fixed == types.VersionUnbounded {
		return true, nil
	}

	fixed, err := debver.NewVersion(r.Fixed)
	if err != nil {
		return false, eb.With("fixed", r.Fixed).Wrapf(err, "failed to parse upper bound")
	}
	return v.LessThan(fixed), nil
}
