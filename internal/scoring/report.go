package scoring

// Report is the full scoring result for one submission.
// Invariants: TotalCorrect == Σ Sections.CorrectCount,
// TotalPossible == Σ Sections.TotalCount, 0 <= TotalCorrect <= TotalPossible.
type Report struct {
	Format        string          `json:"format"`
	Sections      []SectionResult `json:"sections"`
	TotalCorrect  int             `json:"total_correct"`
	TotalPossible int             `json:"total_possible"`
}

// SectionTotals is the compact per-section score shape returned to clients.
type SectionTotals struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// PerSection returns the compact per-section totals keyed by section name.
func (r *Report) PerSection() map[string]SectionTotals {
	out := make(map[string]SectionTotals, len(r.Sections))
	for _, s := range r.Sections {
		out[s.Name] = SectionTotals{Correct: s.CorrectCount, Total: s.TotalCount}
	}
	return out
}

// Section returns the named section result, or nil if absent.
func (r *Report) Section(name string) *SectionResult {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}
