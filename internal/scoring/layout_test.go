package scoring

import (
	"reflect"
	"testing"
)

func readingKey() map[string][]string {
	return map[string][]string{
		"part1": {"fifteen", "true", "B", "garden", "seven", "monday"},
		"part2": {"1", "4", "2", "7", "3", "6", "5", "2", "1", "7"},
		"part3": {"3", "1", "8", "5", "2", "6"},
		// Legacy concatenated groups: part4 = [4x MC, 5x TF], part5 = [5x gap, 2x MC].
		"part4": {"A", "C", "B", "D", "true", "false", "not given", "true", "false"},
		"part5": {"water", "energy", "cells", "growth", "light", "B", "D"},
	}
}

func TestReadingLayoutDecomposition(t *testing.T) {
	rep := CEFRReading.Score(readingKey(), nil)

	wantTotals := map[string]int{
		"part1": 6, "part2": 10, "part3": 6,
		"part4MC": 4, "part4TF": 5, "part5Mini": 5, "part5MC": 2,
	}

	per := rep.PerSection()
	for name, want := range wantTotals {
		if per[name].Total != want {
			t.Errorf("section %s total = %d, want %d", name, per[name].Total, want)
		}
	}
	if rep.TotalPossible != 38 {
		t.Errorf("TotalPossible = %d, want 38", rep.TotalPossible)
	}
	if rep.TotalCorrect != 0 {
		t.Errorf("TotalCorrect = %d, want 0 for blank submission", rep.TotalCorrect)
	}
}

func TestReadingLayoutCanonicalOrder(t *testing.T) {
	rep := CEFRReading.Score(readingKey(), nil)

	want := []string{"part1", "part2", "part3", "part4MC", "part4TF", "part5Mini", "part5MC"}
	if len(rep.Sections) != len(want) {
		t.Fatalf("section count = %d, want %d", len(rep.Sections), len(want))
	}
	for i, name := range want {
		if rep.Sections[i].Name != name {
			t.Errorf("section[%d] = %s, want %s", i, rep.Sections[i].Name, name)
		}
	}
}

func TestReadingLayoutScoresSlices(t *testing.T) {
	submitted := map[string][]string{
		"part1": {"Fifteen", " True", "b", "GARDEN", "eight", ""},
		// MC answers match case-insensitively through upper folding;
		// "x" and the missing fourth answer are wrong.
		"part4MC": {"a", "c", "x"},
		"part4TF": {"True", "FALSE", "Not  Given", "false", "true"},
		"part5MC": {"b", "d"},
	}

	rep := CEFRReading.Score(readingKey(), submitted)
	per := rep.PerSection()

	if got := per["part1"]; got.Correct != 4 {
		t.Errorf("part1 correct = %d, want 4", got.Correct)
	}
	if got := per["part4MC"]; got.Correct != 2 || got.Total != 4 {
		t.Errorf("part4MC = %d/%d, want 2/4", got.Correct, got.Total)
	}
	if got := per["part4TF"]; got.Correct != 3 {
		t.Errorf("part4TF correct = %d, want 3", got.Correct)
	}
	if got := per["part5MC"]; got.Correct != 2 {
		t.Errorf("part5MC correct = %d, want 2", got.Correct)
	}
	if got := per["part5Mini"]; got.Correct != 0 || got.Total != 5 {
		t.Errorf("part5Mini = %d/%d, want 0/5", got.Correct, got.Total)
	}
}

func TestReportAggregateInvariant(t *testing.T) {
	submitted := map[string][]string{
		"part1":   {"fifteen", "wrong"},
		"part4MC": {"A", "C", "B", "D"},
	}

	rep := CEFRReading.Score(readingKey(), submitted)

	sumCorrect, sumTotal := 0, 0
	for _, s := range rep.Sections {
		sumCorrect += s.CorrectCount
		sumTotal += s.TotalCount
	}
	if rep.TotalCorrect != sumCorrect {
		t.Errorf("TotalCorrect = %d, want sum %d", rep.TotalCorrect, sumCorrect)
	}
	if rep.TotalPossible != sumTotal {
		t.Errorf("TotalPossible = %d, want sum %d", rep.TotalPossible, sumTotal)
	}
	if rep.TotalCorrect < 0 || rep.TotalCorrect > rep.TotalPossible {
		t.Errorf("0 <= %d <= %d violated", rep.TotalCorrect, rep.TotalPossible)
	}
}

func TestScoreIdempotent(t *testing.T) {
	submitted := map[string][]string{
		"part1":   {"Fifteen", " True", "b"},
		"part2":   {"1", "4"},
		"part4MC": {"a", "c", "x"},
	}

	first := CEFRReading.Score(readingKey(), submitted)
	second := CEFRReading.Score(readingKey(), submitted)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated scoring of the same submission produced different reports")
	}
}

func TestListeningLayout(t *testing.T) {
	key := map[string][]string{
		"part_1": {"hotel", "9:30"},
		"part_2": {"true", "false"},
		"part_3": {"B"},
		"part_4": {"library"},
		"part_5": {"not given"},
		"part_6": {"C", "A"},
	}
	submitted := map[string][]string{
		"part_1": {"Hotel", "9:30"},
		"part_3": {"b"},
		"part_6": {"c"},
	}

	rep := CEFRListening.Score(key, submitted)

	if rep.TotalPossible != 9 {
		t.Errorf("TotalPossible = %d, want 9", rep.TotalPossible)
	}
	if rep.TotalCorrect != 4 {
		t.Errorf("TotalCorrect = %d, want 4", rep.TotalCorrect)
	}
}

func TestLayoutMalformedKeyDegrades(t *testing.T) {
	// Key shorter than the declared slice boundaries must not panic;
	// the affected sections degrade to fewer (or zero) items.
	key := map[string][]string{
		"part4": {"A", "C"}, // Declared as 4 MC + 5 TF
	}

	rep := CEFRReading.Score(key, map[string][]string{"part4MC": {"a", "c"}})

	per := rep.PerSection()
	if got := per["part4MC"]; got.Correct != 2 || got.Total != 2 {
		t.Errorf("part4MC = %d/%d, want 2/2", got.Correct, got.Total)
	}
	if got := per["part4TF"]; got.Total != 0 {
		t.Errorf("part4TF total = %d, want 0", got.Total)
	}
}
