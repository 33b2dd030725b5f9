package model

import (
	"encoding/json"
	"time"
)

// ListeningMock is a CEFR listening mock exam with six audio parts.
// Data holds the rendered question content as free-form JSON.
type ListeningMock struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Data       json.RawMessage `json:"data"`
	AudioPart1 string          `json:"audio_part_1"`
	AudioPart2 string          `json:"audio_part_2"`
	AudioPart3 string          `json:"audio_part_3"`
	AudioPart4 string          `json:"audio_part_4"`
	AudioPart5 string          `json:"audio_part_5"`
	AudioPart6 string          `json:"audio_part_6"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListeningAnswerKey holds the correct answers for a listening mock,
// one group per audio part.
type ListeningAnswerKey struct {
	ID     int      `json:"id"`
	MockID int      `json:"mock_id"`
	Part1  []string `json:"part_1"`
	Part2  []string `json:"part_2"`
	Part3  []string `json:"part_3"`
	Part4  []string `json:"part_4"`
	Part5  []string `json:"part_5"`
	Part6  []string `json:"part_6"`
}

// Groups returns the key's answer groups by storage name.
func (k *ListeningAnswerKey) Groups() map[string][]string {
	return map[string][]string{
		"part_1": k.Part1,
		"part_2": k.Part2,
		"part_3": k.Part3,
		"part_4": k.Part4,
		"part_5": k.Part5,
		"part_6": k.Part6,
	}
}

// CreateListeningMockRequest is the payload for authoring a listening mock.
type CreateListeningMockRequest struct {
	Title      string          `json:"title" binding:"required,max=100"`
	Data       json.RawMessage `json:"data" binding:"required"`
	AudioPart1 string          `json:"audio_part_1" binding:"required,url"`
	AudioPart2 string          `json:"audio_part_2" binding:"required,url"`
	AudioPart3 string          `json:"audio_part_3" binding:"required,url"`
	AudioPart4 string          `json:"audio_part_4" binding:"required,url"`
	AudioPart5 string          `json:"audio_part_5" binding:"required,url"`
	AudioPart6 string          `json:"audio_part_6" binding:"required,url"`
}

// UpsertListeningAnswersRequest is the payload for creating/updating the answer key.
type UpsertListeningAnswersRequest struct {
	Part1 []string `json:"part_1" binding:"required"`
	Part2 []string `json:"part_2" binding:"required"`
	Part3 []string `json:"part_3" binding:"required"`
	Part4 []string `json:"part_4" binding:"required"`
	Part5 []string `json:"part_5" binding:"required"`
	Part6 []string `json:"part_6" binding:"required"`
}

// ListeningSubmissionRequest carries the taker's answers keyed by part.
// Missing parts are tolerated and scored as all-blank.
type ListeningSubmissionRequest struct {
	Part1 []string `json:"part_1"`
	Part2 []string `json:"part_2"`
	Part3 []string `json:"part_3"`
	Part4 []string `json:"part_4"`
	Part5 []string `json:"part_5"`
	Part6 []string `json:"part_6"`
}

// Sections returns the submitted answers keyed by logical section name.
func (r *ListeningSubmissionRequest) Sections() map[string][]string {
	return map[string][]string{
		"part_1": r.Part1,
		"part_2": r.Part2,
		"part_3": r.Part3,
		"part_4": r.Part4,
		"part_5": r.Part5,
		"part_6": r.Part6,
	}
}
