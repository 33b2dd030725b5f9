package scoring

import (
	"strings"
)

// CompareMode selects how two answers are canonicalized before comparison.
type CompareMode string

const (
	// CaseInsensitive folds both sides to lower case. Default for gap-fill,
	// matching, heading and true/false style answers.
	CaseInsensitive CompareMode = "case_insensitive"

	// UpperExact folds both sides to upper case. Used for single-letter
	// choice answers (A/B/C/D) so the stored key casing is irrelevant.
	// The mode is chosen per sub-section by the layout, never detected.
	UpperExact CompareMode = "upper_exact"
)

// Normalize canonicalizes a raw answer for comparison: leading/trailing
// whitespace is stripped, runs of internal whitespace collapse to a single
// space, and the result is case-folded per mode. ASCII folding is
// sufficient; exam content is English-only.
func Normalize(raw string, mode CompareMode) string {
	s := strings.Join(strings.Fields(raw), " ")
	if mode == UpperExact {
		return strings.ToUpper(s)
	}
	return strings.ToLower(s)
}
