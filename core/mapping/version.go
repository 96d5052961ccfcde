package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the mapping-format compatibility version a definition was
// authored against. It gates whether certain structural violations are
// deprecations or hard failures.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ChainedFieldsEnforcedFrom is the first version at which chained
// multi-fields are rejected instead of deprecated.
var ChainedFieldsEnforcedFrom = Version{Major: 8}

// ParseVersion parses a "major.minor.patch" token. Minor and patch may be
// omitted and default to zero.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version token %q", s)
	}

	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version token %q", s)
		}
		numbers[i] = n
	}

	return Version{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}, nil
}

// MustParseVersion is ParseVersion for trusted literals; it panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is ordered before, equal to, or after other.
func (v Version) Compare(other Version) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, pair := range pairs {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

// Before reports whether v is strictly older than other.
func (v Version) Before(other Version) bool {
	return v.Compare(other) < 0
}

// OnOrAfter reports whether v is other or newer.
func (v Version) OnOrAfter(other Version) bool {
	return v.Compare(other) >= 0
}

// EnforcementMode is how a version-gated structural rule is applied.
type EnforcementMode int

const (
	// ModeWarn records a deprecation and keeps parsing.
	ModeWarn EnforcementMode = iota
	// ModeReject fails the parse.
	ModeReject
)

// ChainedFieldsMode returns how chained multi-fields are treated for
// definitions authored against the given version. Pure function of the
// version, so behavior is deterministic and testable per version.
func ChainedFieldsMode(v Version) EnforcementMode {
	if v.OnOrAfter(ChainedFieldsEnforcedFrom) {
		return ModeReject
	}
	return ModeWarn
}
