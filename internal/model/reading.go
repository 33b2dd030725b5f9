package model

import (
	"encoding/json"
	"time"
)

// ReadingMock is a CEFR reading mock exam. Each part holds the rendered
// question content (texts, statements, options) as free-form JSON authored
// by the content team; the scoring engine never inspects it.
type ReadingMock struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Part1     json.RawMessage `json:"part1"`
	Part2     json.RawMessage `json:"part2"`
	Part3     json.RawMessage `json:"part3"`
	Part4     json.RawMessage `json:"part4"`
	Part5     json.RawMessage `json:"part5"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReadingAnswerKey holds the correct answers for a reading mock.
// Legacy storage format: part4 = [4x MC, 5x TF], part5 = [5x gap, 2x MC].
// The scoring layout decomposes these concatenated arrays.
type ReadingAnswerKey struct {
	ID     int      `json:"id"`
	MockID int      `json:"mock_id"`
	Part1  []string `json:"part1"`
	Part2  []string `json:"part2"`
	Part3  []string `json:"part3"`
	Part4  []string `json:"part4"`
	Part5  []string `json:"part5"`
}

// Groups returns the key's answer groups by storage name.
func (k *ReadingAnswerKey) Groups() map[string][]string {
	return map[string][]string{
		"part1": k.Part1,
		"part2": k.Part2,
		"part3": k.Part3,
		"part4": k.Part4,
		"part5": k.Part5,
	}
}

// CreateReadingMockRequest is the payload for authoring a reading mock.
type CreateReadingMockRequest struct {
	Title string          `json:"title" binding:"required,max=100"`
	Part1 json.RawMessage `json:"part1" binding:"required"`
	Part2 json.RawMessage `json:"part2" binding:"required"`
	Part3 json.RawMessage `json:"part3" binding:"required"`
	Part4 json.RawMessage `json:"part4" binding:"required"`
	Part5 json.RawMessage `json:"part5" binding:"required"`
}

// UpsertReadingAnswersRequest is the payload for creating/updating the answer key.
type UpsertReadingAnswersRequest struct {
	Part1 []string `json:"part1" binding:"required"`
	Part2 []string `json:"part2" binding:"required"`
	Part3 []string `json:"part3" binding:"required"`
	Part4 []string `json:"part4" binding:"required"`
	Part5 []string `json:"part5" binding:"required"`
}

// ReadingSubmissionRequest carries the taker's answers keyed by logical
// section. Missing sections are tolerated and scored as all-blank.
type ReadingSubmissionRequest struct {
	Part1    []string `json:"part1"`
	Part2    []string `json:"part2"`
	Part3    []string `json:"part3"`
	Part4MC  []string `json:"part4MC"`
	Part4TF  []string `json:"part4TF"`
	Part5Min []string `json:"part5Mini"`
	Part5MC  []string `json:"part5MC"`
}

// Sections returns the submitted answers keyed by logical section name.
func (r *ReadingSubmissionRequest) Sections() map[string][]string {
	return map[string][]string{
		"part1":     r.Part1,
		"part2":     r.Part2,
		"part3":     r.Part3,
		"part4MC":   r.Part4MC,
		"part4TF":   r.Part4TF,
		"part5Mini": r.Part5Min,
		"part5MC":   r.Part5MC,
	}
}
