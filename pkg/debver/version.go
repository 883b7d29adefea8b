// Package debver implements the total order over Debian package versions
// (epoch:upstream-revision) used for every affected-range decision.
package debver

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// ErrMalformedVersion is returned when a version string contains characters
// outside the Debian version character set. Unusual but legal strings never
// produce it.
var ErrMalformedVersion = xerrors.New("malformed version")

// Version is a parsed Debian package version.
type Version struct {
	epoch    int
	upstream string
	revision string
}

// NewVersion parses s into epoch, upstream version and Debian revision.
// A missing epoch defaults to 0 and a missing revision compares as the
// empty string.
func NewVersion(s string) (Version, error) {
	var v Version

	rest := s
	if idx := strings.Index(rest, ":"); idx >= 0 {
		epoch, err := strconv.Atoi(rest[:idx])
		if err != nil || epoch < 0 {
			return Version{}, xerrors.Errorf("invalid epoch %q in %q: %w", rest[:idx], s, ErrMalformedVersion)
		}
		v.epoch = epoch
		rest = rest[idx+1:]
	}

	if idx := strings.LastIndex(rest, "-"); idx >= 0 {
		v.upstream = rest[:idx]
		v.revision = rest[idx+1:]
	} else {
		v.upstream = rest
	}

	if v.upstream == "" {
		return Version{}, xerrors.Errorf("empty upstream version in %q: %w", s, ErrMalformedVersion)
	}
	for _, part := range []string{v.upstream, v.revision} {
		for i := 0; i < len(part); i++ {
			if !allowed(part[i]) {
				return Version{}, xerrors.Errorf("invalid character %q in %q: %w", part[i], s, ErrMalformedVersion)
			}
		}
	}

	return v, nil
}

// Valid reports whether s parses as a Debian version.
func Valid(s string) bool {
	_, err := NewVersion(s)
	return err == nil
}

func (v Version) String() string {
	s := v.upstream
	if v.epoch > 0 {
		s = strconv.Itoa(v.epoch) + ":" + s
	}
	if v.revision != "" {
		s += "-" + v.revision
	}
	return s
}

// Compare returns -1, 0 or 1 when v is less than, equal to or greater than
// other. Epochs dominate, then upstream versions, then revisions.
func (v Version) Compare(other Version) int {
	if v.epoch != other.epoch {
		if v.epoch < other.epoch {
			return -1
		}
		return 1
	}
	if res := compareFragment(v.upstream, other.upstream); res != 0 {
		return res
	}
	return compareFragment(v.revision, other.revision)
}

// LessThan reports whether v sorts strictly before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// Compare parses both strings and compares them. It is the string-level
// convenience the rest of the engine uses.
func Compare(a, b string) (int, error) {
	va, err := NewVersion(a)
	if err != nil {
		return 0, xerrors.Errorf("version error: %w", err)
	}
	vb, err := NewVersion(b)
	if err != nil {
		return 0, xerrors.Errorf("version error: %w", err)
	}
	return va.Compare(vb), nil
}

func allowed(c byte) bool {
	return isDigit(c) || isAlpha(c) ||
		c == '.' || c == '+' || c == '~' || c == ':' || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// order maps a byte to its sort weight within a non-digit run: `~` sorts
// before end-of-string (weight 0), letters before everything else.
func order(c byte) int {
	switch {
	case c == '~':
		return -1
	case isDigit(c):
		return 0
	case isAlpha(c):
		return int(c)
	default:
		return int(c) + 256
	}
}

// compareFragment implements the dpkg upstream/revision sub-order: the
// strings are walked alternating between maximal non-digit runs (compared
// bytewise through order) and maximal digit runs (compared numerically with
// no magnitude limit).
func compareFragment(a, b string) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		// non-digit run
		for (i < len(a) && !isDigit(a[i])) || (j < len(b) && !isDigit(b[j])) {
			var ac, bc int
			if i < len(a) {
				ac = order(a[i])
			}
			if j < len(b) {
				bc = order(b[j])
			}
			if ac != bc {
				if ac < bc {
					return -1
				}
				return 1
			}
			i++
			j++
		}

		// digit run, leading zeros carry no magnitude
		for i < len(a) && a[i] == '0' {
			i++
		}
		for j < len(b) && b[j] == '0' {
			j++
		}
		firstDiff := 0
		for i < len(a) && j < len(b) && isDigit(a[i]) && isDigit(b[j]) {
			if firstDiff == 0 {
				firstDiff = int(a[i]) - int(b[j])
			}
			i++
			j++
		}
		if i < len(a) && isDigit(a[i]) {
			return 1
		}
		if j < len(b) && isDigit(b[j]) {
			return -1
		}
		if firstDiff != 0 {
			if firstDiff < 0 {
				return -1
			}
			return 1
		}
	}
	return 0
}
