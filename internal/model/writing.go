package model

import (
	"time"
)

// WritingMock is a CEFR writing mock with two task prompts.
type WritingMock struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Task1     string    `json:"task1"`
	Task2     string    `json:"task2"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionStatus enumerates the lifecycle of a subjective submission.
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "PENDING"
	SubmissionStatusEvaluated SubmissionStatus = "EVALUATED"
)

// WritingEvaluation is the rubric an examiner fills in for a writing
// submission. All criteria are on the 0–9 half-band scale.
type WritingEvaluation struct {
	TaskAchievement float64 `json:"task_achievement" binding:"min=0,max=9"`
	Coherence       float64 `json:"coherence" binding:"min=0,max=9"`
	LexicalResource float64 `json:"lexical_resource" binding:"min=0,max=9"`
	Grammar         float64 `json:"grammar" binding:"min=0,max=9"`
	Band            string  `json:"band" binding:"required,max=4"`
	Comments        string  `json:"comments" binding:"max=4000"`
}

// WritingSubmission is a taker's writing attempt awaiting human evaluation.
type WritingSubmission struct {
	ID          int                `json:"id"`
	MockID      int                `json:"mock_id"`
	UserID      int                `json:"user_id"`
	Task1Answer string             `json:"task1_answer"`
	Task2Answer string             `json:"task2_answer"`
	Status      SubmissionStatus   `json:"status"`
	Evaluation  *WritingEvaluation `json:"evaluation,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	EvaluatedAt *time.Time         `json:"evaluated_at,omitempty"`
}

// CreateWritingMockRequest is the payload for authoring a writing mock.
type CreateWritingMockRequest struct {
	Title string `json:"title" binding:"required,max=100"`
	Task1 string `json:"task1" binding:"required"`
	Task2 string `json:"task2" binding:"required"`
}

// WritingSubmissionRequest is the payload for submitting a writing attempt.
type WritingSubmissionRequest struct {
	Task1Answer string `json:"task1_answer" binding:"required"`
	Task2Answer string `json:"task2_answer" binding:"required"`
}
