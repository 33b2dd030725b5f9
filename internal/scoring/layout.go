package scoring

// SectionSpec declares one logical sub-section of an exam format: where its
// expected answers live inside the stored answer groups and how they compare.
//
// Legacy keys store some logical sections concatenated into one array
// (e.g. reading part4 = [4x MC, 5x TF]). Offset/Length slice the source
// group into the logical section. Length < 0 means "to the end".
type SectionSpec struct {
	// Name is the logical section name, also the submission group key.
	Name string

	// SourceGroup is the stored answer-group this section's key lives in.
	SourceGroup string

	Offset int
	Length int

	Mode CompareMode

	// Label is the human-readable section title used in archive documents.
	Label string
}

// Layout is the declarative decomposition schema for one exam format.
// Section order is canonical: it fixes the scoring and archive numbering,
// so reports for the same submission are byte-identical across runs.
type Layout struct {
	Format   string
	Sections []SectionSpec
}

// CEFRReading is the layout for CEFR reading mocks.
// Storage format: part4 = [4x MC, 5x TF], part5 = [5x gap, 2x MC].
var CEFRReading = Layout{
	Format: "cefr_reading",
	Sections: []SectionSpec{
		{Name: "part1", SourceGroup: "part1", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 1"},
		{Name: "part2", SourceGroup: "part2", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 2"},
		{Name: "part3", SourceGroup: "part3", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 3"},
		{Name: "part4MC", SourceGroup: "part4", Offset: 0, Length: 4, Mode: UpperExact, Label: "Part 4 MC"},
		{Name: "part4TF", SourceGroup: "part4", Offset: 4, Length: 5, Mode: CaseInsensitive, Label: "Part 4 TF"},
		{Name: "part5Mini", SourceGroup: "part5", Offset: 0, Length: 5, Mode: CaseInsensitive, Label: "Part 5 Mini"},
		{Name: "part5MC", SourceGroup: "part5", Offset: 5, Length: 2, Mode: UpperExact, Label: "Part 5 MC"},
	},
}

// CEFRListening is the layout for CEFR listening mocks: six parts stored
// one group each, no concatenated arrays.
var CEFRListening = Layout{
	Format: "cefr_listening",
	Sections: []SectionSpec{
		{Name: "part_1", SourceGroup: "part_1", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 1"},
		{Name: "part_2", SourceGroup: "part_2", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 2"},
		{Name: "part_3", SourceGroup: "part_3", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 3"},
		{Name: "part_4", SourceGroup: "part_4", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 4"},
		{Name: "part_5", SourceGroup: "part_5", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 5"},
		{Name: "part_6", SourceGroup: "part_6", Offset: 0, Length: -1, Mode: CaseInsensitive, Label: "Part 6"},
	},
}

// slice extracts the section's expected answers from the stored groups.
// Out-of-range offsets clamp to an empty slice rather than panicking, so a
// malformed key degrades to an empty (zero-total) section instead of
// aborting the whole report.
func (s SectionSpec) slice(groups map[string][]string) []string {
	src := groups[s.SourceGroup]

	start := s.Offset
	if start > len(src) {
		start = len(src)
	}

	end := len(src)
	if s.Length >= 0 && start+s.Length < end {
		end = start + s.Length
	}

	return src[start:end]
}

// Score decomposes the stored key groups per the layout and scores every
// logical section against the submitted groups, in canonical layout order.
// Scoring is pure and idempotent: the same key and submission always
// produce an identical report.
func (l Layout) Score(keyGroups, submittedGroups map[string][]string) *Report {
	rep := &Report{
		Format:   l.Format,
		Sections: make([]SectionResult, 0, len(l.Sections)),
	}

	for _, spec := range l.Sections {
		sec := ScoreSection(spec.Name, submittedGroups[spec.Name], spec.slice(keyGroups), spec.Mode)
		rep.Sections = append(rep.Sections, sec)
		rep.TotalCorrect += sec.CorrectCount
		rep.TotalPossible += sec.TotalCount
	}

	return rep
}
