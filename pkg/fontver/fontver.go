// Package fontver parses font revision strings from name table ID 5 into
// comparable numeric tuples.
package fontver

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tuple holds the numeric segments of a parsed font revision.
// A nil Tuple means no revision was seen and orders below everything,
// including Tuple{0}.
type Tuple []int

type Comparison int

const (
	ComparisonLess Comparison = iota - 1
	ComparisonEqual
	ComparisonGreater
)

func (c Comparison) String() string {
	switch c {
	case ComparisonLess:
		return "less"
	case ComparisonEqual:
		return "equal"
	case ComparisonGreater:
		return "greater"
	default:
		return "unknown"
	}
}

var versionPrefix = regexp.MustCompile(`(?i)^version\s+`)

// Parse converts a revision string into a Tuple. The leading "Version" word
// is dropped, the rest splits on dots, and each segment keeps only its
// digits (an empty segment counts as 0):
//
//	"Version 7.03"    -> {7, 3}
//	"Version 5.01.2x" -> {5, 1, 2}
//	"13.0d1e3"        -> {13, 13}
//
// Empty input parses to Tuple{0}, not nil, so a font that carries a blank
// revision still outranks a source that never reported one.
func Parse(raw string) Tuple {
	if raw == "" {
		return Tuple{0}
	}
	s := versionPrefix.ReplaceAllString(raw, "")
	segments := strings.Split(s, ".")
	t := make(Tuple, len(segments))
	for i, segment := range segments {
		t[i] = segmentValue(segment)
	}
	return t
}

func segmentValue(segment string) int {
	var digits strings.Builder
	for _, r := range segment {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// Digit runs too long for int still order above any sane revision.
		return math.MaxInt
	}
	return n
}

// Compare orders a against b segment by segment. When one tuple is a strict
// prefix of the other, the shorter orders first. A nil tuple orders below
// any non-nil tuple.
func Compare(a, b Tuple) Comparison {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return ComparisonEqual
		case a == nil:
			return ComparisonLess
		default:
			return ComparisonGreater
		}
	}
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if a[i] < b[i] {
			return ComparisonLess
		}
		if a[i] > b[i] {
			return ComparisonGreater
		}
	}
	if len(a) < len(b) {
		return ComparisonLess
	}
	if len(a) > len(b) {
		return ComparisonGreater
	}
	return ComparisonEqual
}

// String renders the tuple in dotted form, "" for nil.
func (t Tuple) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
