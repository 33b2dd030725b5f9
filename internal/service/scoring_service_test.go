package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/archive"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/model"
)

type fakeReadingStore struct {
	mock *model.ReadingMock
	key  *model.ReadingAnswerKey
}

func (f *fakeReadingStore) GetMock(_ context.Context, id int) (*model.ReadingMock, error) {
	if f.mock == nil || f.mock.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.mock, nil
}

func (f *fakeReadingStore) GetAnswerKey(_ context.Context, mockID int) (*model.ReadingAnswerKey, error) {
	if f.key == nil || f.key.MockID != mockID {
		return nil, pgx.ErrNoRows
	}
	return f.key, nil
}

type fakeListeningStore struct {
	mock *model.ListeningMock
	key  *model.ListeningAnswerKey
}

func (f *fakeListeningStore) GetMock(_ context.Context, id int) (*model.ListeningMock, error) {
	if f.mock == nil || f.mock.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.mock, nil
}

func (f *fakeListeningStore) GetAnswerKey(_ context.Context, mockID int) (*model.ListeningAnswerKey, error) {
	if f.key == nil || f.key.MockID != mockID {
		return nil, pgx.ErrNoRows
	}
	return f.key, nil
}

type fakeQueue struct {
	docs []archive.Document
	err  error
}

func (f *fakeQueue) Enqueue(_ context.Context, doc archive.Document) error {
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, doc)
	return nil
}

func readingFixture() *fakeReadingStore {
	return &fakeReadingStore{
		mock: &model.ReadingMock{ID: 7, Title: "Mock 7"},
		key: &model.ReadingAnswerKey{
			MockID: 7,
			Part1:  []string{"library", "station"},
			Part2:  []string{"b", "d"},
			Part3:  []string{"c"},
			Part4:  []string{"A", "C", "B", "D", "true", "false", "true", "true", "false"},
			Part5:  []string{"economy", "growth", "market", "trade", "policy", "B", "D"},
		},
	}
}

func testMeta() archive.SubmissionMeta {
	return archive.SubmissionMeta{
		UserID:      5,
		Username:    "bekzod",
		Email:       "bekzod@example.com",
		SubmittedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestScoreReading(t *testing.T) {
	cfg := &config.Config{ReadingArchiveChannel: "-100111"}
	q := &fakeQueue{}
	svc := NewScoringService(cfg, readingFixture(), &fakeListeningStore{}, nil, q, zerolog.Nop())

	req := &model.ReadingSubmissionRequest{
		Part1:    []string{"Library", "park"},
		Part2:    []string{"B", "d"},
		Part3:    []string{"c"},
		Part4MC:  []string{"a", "c", "x"},
		Part4TF:  []string{"TRUE", "false", "false", "true", "false"},
		Part5Min: []string{"economy", "GROWTH"},
		Part5MC:  []string{"b", "A"},
	}

	res, err := svc.ScoreReading(context.Background(), 7, req, testMeta())
	if err != nil {
		t.Fatalf("ScoreReading: %v", err)
	}

	if res.TotalPossible != 21 {
		t.Errorf("total possible = %d, want 21", res.TotalPossible)
	}
	// part1 1, part2 2, part3 1, part4MC 2, part4TF 4, part5Mini 2, part5MC 1
	if res.TotalCorrect != 13 {
		t.Errorf("total correct = %d, want 13", res.TotalCorrect)
	}
	if got := res.PerSection["part4MC"]; got.Correct != 2 || got.Total != 4 {
		t.Errorf("part4MC = %+v, want 2/4", got)
	}
	if got := res.PerSection["part4TF"]; got.Correct != 4 || got.Total != 5 {
		t.Errorf("part4TF = %+v, want 4/5", got)
	}
	if res.Band == "" {
		t.Error("band should be set when total possible > 0")
	}

	if len(q.docs) != 1 {
		t.Fatalf("expected 1 archived document, got %d", len(q.docs))
	}
	if q.docs[0].ChatID != "-100111" {
		t.Errorf("doc chat id = %q", q.docs[0].ChatID)
	}
	if q.docs[0].MimeType != "text/html" {
		t.Errorf("doc mime type = %q", q.docs[0].MimeType)
	}
}

func TestScoreReadingIdempotent(t *testing.T) {
	cfg := &config.Config{}
	svc := NewScoringService(cfg, readingFixture(), &fakeListeningStore{}, nil, nil, zerolog.Nop())

	req := &model.ReadingSubmissionRequest{
		Part1:   []string{"library"},
		Part4MC: []string{"a", "c"},
	}

	first, err := svc.ScoreReading(context.Background(), 7, req, testMeta())
	if err != nil {
		t.Fatalf("first score: %v", err)
	}
	second, err := svc.ScoreReading(context.Background(), 7, req, testMeta())
	if err != nil {
		t.Fatalf("second score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestScoreReadingNotFound(t *testing.T) {
	cfg := &config.Config{}
	store := readingFixture()
	svc := NewScoringService(cfg, store, &fakeListeningStore{}, nil, nil, zerolog.Nop())

	_, err := svc.ScoreReading(context.Background(), 99, &model.ReadingSubmissionRequest{}, testMeta())
	if !errors.Is(err, ErrMockNotFound) {
		t.Errorf("missing mock: got %v, want ErrMockNotFound", err)
	}

	store.key = nil
	_, err = svc.ScoreReading(context.Background(), 7, &model.ReadingSubmissionRequest{}, testMeta())
	if !errors.Is(err, ErrAnswerKeyNotFound) {
		t.Errorf("missing key: got %v, want ErrAnswerKeyNotFound", err)
	}
}

func TestScoreReadingArchiveFailureIsSwallowed(t *testing.T) {
	cfg := &config.Config{ReadingArchiveChannel: "-100111"}
	q := &fakeQueue{err: errors.New("redis down")}
	svc := NewScoringService(cfg, readingFixture(), &fakeListeningStore{}, nil, q, zerolog.Nop())

	res, err := svc.ScoreReading(context.Background(), 7, &model.ReadingSubmissionRequest{
		Part1: []string{"library", "station"},
	}, testMeta())
	if err != nil {
		t.Fatalf("archive failure must not fail scoring: %v", err)
	}
	if res.PerSection["part1"].Correct != 2 {
		t.Errorf("part1 = %+v, want 2 correct", res.PerSection["part1"])
	}
}

func TestScoreListening(t *testing.T) {
	cfg := &config.Config{}
	ls := &fakeListeningStore{
		mock: &model.ListeningMock{ID: 3, Title: "Listening 3"},
		key: &model.ListeningAnswerKey{
			MockID: 3,
			Part1:  []string{"hotel", "9am"},
			Part2:  []string{"b"},
			Part3:  []string{"true", "false"},
			Part4:  []string{"c"},
			Part5:  []string{"station"},
			Part6:  []string{"a", "d"},
		},
	}
	svc := NewScoringService(cfg, &fakeReadingStore{}, ls, nil, nil, zerolog.Nop())

	res, err := svc.ScoreListening(context.Background(), 3, &model.ListeningSubmissionRequest{
		Part1: []string{"Hotel", "9 am"},
		Part2: []string{"B"},
		Part3: []string{"true"},
		Part6: []string{"a"},
	}, testMeta())
	if err != nil {
		t.Fatalf("ScoreListening: %v", err)
	}
	if res.TotalPossible != 9 {
		t.Errorf("total possible = %d, want 9", res.TotalPossible)
	}
	// hotel, B, true, a correct; "9 am" normalizes to "9 am" != "9am"
	if res.TotalCorrect != 4 {
		t.Errorf("total correct = %d, want 4", res.TotalCorrect)
	}
}
