package scoring

import (
	"reflect"
	"testing"
)

func TestScoreSectionAllCorrectWithFolding(t *testing.T) {
	expected := []string{"fifteen", "true", "B"}
	submitted := []string{"Fifteen", " True", "b"}

	// Mirror the end-to-end scenario: plain items fold case-insensitively,
	// letter answers fold in upper_exact mode; all three match here either way.
	res := ScoreSection("part1", submitted, expected, CaseInsensitive)

	if res.CorrectCount != 3 || res.TotalCount != 3 {
		t.Fatalf("got %d/%d, want 3/3", res.CorrectCount, res.TotalCount)
	}
	for _, item := range res.Items {
		if !item.Correct {
			t.Errorf("position %d unexpectedly incorrect (%q vs %q)", item.Position, item.Submitted, item.Expected)
		}
	}
}

func TestScoreSectionShortSubmission(t *testing.T) {
	// part4MC scenario: 4 letter items, submission short by one.
	expected := []string{"A", "C", "B", "D"}
	submitted := []string{"a", "c", "x"}

	res := ScoreSection("part4MC", submitted, expected, UpperExact)

	if res.TotalCount != 4 {
		t.Fatalf("TotalCount = %d, want 4 (expected is authoritative)", res.TotalCount)
	}
	if res.CorrectCount != 2 {
		t.Fatalf("CorrectCount = %d, want 2", res.CorrectCount)
	}

	wantCorrect := []bool{true, true, false, false}
	for i, item := range res.Items {
		if item.Correct != wantCorrect[i] {
			t.Errorf("position %d: correct = %v, want %v", i, item.Correct, wantCorrect[i])
		}
	}
	if res.Items[3].Submitted != "" {
		t.Errorf("missing trailing position should read as empty, got %q", res.Items[3].Submitted)
	}
}

func TestScoreSectionEmptySubmission(t *testing.T) {
	expected := []string{"one", "two", "three"}

	res := ScoreSection("part1", nil, expected, CaseInsensitive)

	if res.TotalCount != 3 || res.CorrectCount != 0 {
		t.Fatalf("got %d/%d, want 0/3", res.CorrectCount, res.TotalCount)
	}
}

func TestScoreSectionSurplusAnswersIgnored(t *testing.T) {
	expected := []string{"yes"}
	submitted := []string{"yes", "extra", "more"}

	res := ScoreSection("part1", submitted, expected, CaseInsensitive)

	if res.TotalCount != 1 || res.CorrectCount != 1 {
		t.Fatalf("got %d/%d, want 1/1", res.CorrectCount, res.TotalCount)
	}
	if len(res.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(res.Items))
	}
}

func TestScoreSectionUpperExactLetters(t *testing.T) {
	// expected "a" vs submitted "A" and expected "A" vs submitted "a ".
	res := ScoreSection("mc", []string{"A", "a "}, []string{"a", "A"}, UpperExact)
	if res.CorrectCount != 2 {
		t.Fatalf("CorrectCount = %d, want 2", res.CorrectCount)
	}
}

func TestScoreSectionDeterministic(t *testing.T) {
	expected := []string{"alpha", "beta", "gamma"}
	submitted := []string{"Alpha", "wrong"}

	first := ScoreSection("p", submitted, expected, CaseInsensitive)
	second := ScoreSection("p", submitted, expected, CaseInsensitive)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated scoring produced different results")
	}
}
