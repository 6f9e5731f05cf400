// Package format canonicalizes raw phone-number candidates into the digit
// strings used as directory addresses. The core contract is "raw digits in,
// canonical digits out"; the regional substitution rules are configuration,
// not part of the invariant.
package format

import "strings"

// Policy maps a digit string (already stripped of non-digits) to its
// canonical directory-address form. Implementations must be pure.
type Policy interface {
	Canonicalize(digits string) string
}

// RegionPolicy implements the trunk-prefix substitution used by most
// national dialing plans: a leading Trunk is replaced by Prefix, and if the
// result then starts with Prefix+Marker the marker is dropped. The zero
// value performs no substitution.
type RegionPolicy struct {
	Trunk  string // local dialing prefix to strip, e.g. "0"
	Prefix string // country+mobile prefix that replaces it, e.g. "549"
	Marker string // secondary mobile marker removed after Prefix, e.g. "15"
}

// Canonicalize applies the regional substitution. Already-canonical input
// (no leading trunk prefix) passes through unchanged.
func (p RegionPolicy) Canonicalize(digits string) string {
	if p.Trunk == "" || !strings.HasPrefix(digits, p.Trunk) {
		return digits
	}

	digits = p.Prefix + digits[len(p.Trunk):]
	if p.Marker != "" && strings.HasPrefix(digits[len(p.Prefix):], p.Marker) {
		digits = p.Prefix + digits[len(p.Prefix)+len(p.Marker):]
	}
	return digits
}

// Formatter turns raw input lines into directory addresses using a Policy.
type Formatter struct {
	policy Policy
}

// New creates a Formatter. A nil policy means digits pass through as-is.
func New(policy Policy) *Formatter {
	return &Formatter{policy: policy}
}

// Format strips all non-digit characters and applies the regional policy.
// It returns the empty string when raw contains no digits; callers must
// treat that as "skip".
func (f *Formatter) Format(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}
	if f.policy == nil {
		return digits
	}
	return f.policy.Canonicalize(digits)
}
