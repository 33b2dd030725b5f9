package scoring

// ItemResult records the outcome of one answer position.
type ItemResult struct {
	Position  int    `json:"position"`
	Submitted string `json:"submitted"`
	Expected  string `json:"expected"`
	Correct   bool   `json:"correct"`
}

// SectionResult aggregates one scored sub-section.
type SectionResult struct {
	Name         string       `json:"name"`
	Items        []ItemResult `json:"items"`
	CorrectCount int          `json:"correct_count"`
	TotalCount   int          `json:"total_count"`
}

// ScoreSection compares submitted answers against the expected answers for
// one sub-section. The expected slice is authoritative for length: a
// submission shorter than the key scores the missing trailing positions as
// incorrect, and surplus submitted values are ignored. Exactly one scalar
// answer is accepted per position: no partial credit, no fuzzy matching.
func ScoreSection(name string, submitted, expected []string, mode CompareMode) SectionResult {
	res := SectionResult{
		Name:       name,
		Items:      make([]ItemResult, len(expected)),
		TotalCount: len(expected),
	}

	for i, want := range expected {
		var got string
		if i < len(submitted) {
			got = submitted[i]
		}

		correct := Normalize(got, mode) == Normalize(want, mode)
		if correct {
			res.CorrectCount++
		}

		res.Items[i] = ItemResult{
			Position:  i,
			Submitted: got,
			Expected:  want,
			Correct:   correct,
		}
	}

	return res
}
