package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/archive"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/scoring"
)

var (
	ErrMockNotFound      = errors.New("mock not found")
	ErrAnswerKeyNotFound = errors.New("answer key not found")
)

const answerKeyCacheTTL = 10 * time.Minute

// ReadingStore is the slice of the reading repository the scorer needs.
type ReadingStore interface {
	GetMock(ctx context.Context, id int) (*model.ReadingMock, error)
	GetAnswerKey(ctx context.Context, mockID int) (*model.ReadingAnswerKey, error)
}

// ListeningStore is the slice of the listening repository the scorer needs.
type ListeningStore interface {
	GetMock(ctx context.Context, id int) (*model.ListeningMock, error)
	GetAnswerKey(ctx context.Context, mockID int) (*model.ListeningAnswerKey, error)
}

// ArchiveQueue accepts review documents for out-of-band delivery.
type ArchiveQueue interface {
	Enqueue(ctx context.Context, doc archive.Document) error
}

// SubmissionResult is what the taker sees after submitting: per-section
// breakdown plus a band estimate. Expected answers are never included.
type SubmissionResult struct {
	MockID        int                              `json:"mock_id"`
	PerSection    map[string]scoring.SectionTotals `json:"per_section"`
	TotalCorrect  int                              `json:"total_correct"`
	TotalPossible int                              `json:"total_possible"`
	Band          string                           `json:"band"`
}

// ScoringService evaluates reading and listening submissions against stored
// answer keys and queues a review document for archival.
type ScoringService struct {
	cfg       *config.Config
	reading   ReadingStore
	listening ListeningStore
	rdb       *goredis.Client
	queue     ArchiveQueue
	log       zerolog.Logger
}

func NewScoringService(cfg *config.Config, reading ReadingStore, listening ListeningStore, rdb *goredis.Client, queue ArchiveQueue, log zerolog.Logger) *ScoringService {
	return &ScoringService{cfg: cfg, reading: reading, listening: listening, rdb: rdb, queue: queue, log: log}
}

// ScoreReading scores a reading submission. Scoring is pure and repeatable;
// only the archive side effect leaves the request path, and its failure never
// affects the returned result.
func (s *ScoringService) ScoreReading(ctx context.Context, mockID int, req *model.ReadingSubmissionRequest, meta archive.SubmissionMeta) (*SubmissionResult, error) {
	mock, err := s.reading.GetMock(ctx, mockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMockNotFound
		}
		return nil, fmt.Errorf("load mock: %w", err)
	}

	key := &model.ReadingAnswerKey{}
	if err := s.loadAnswerKey(ctx, "reading", mockID, key, func(ctx context.Context) (any, error) {
		return s.reading.GetAnswerKey(ctx, mockID)
	}); err != nil {
		return nil, err
	}

	rep := scoring.CEFRReading.Score(key.Groups(), req.Sections())

	meta.MockID = mockID
	meta.ModuleTitle = "CEFR Reading"
	s.enqueueArchive(ctx, rep, meta, scoring.CEFRReading, s.cfg.ReadingArchiveChannel, mock.Title)

	return resultFrom(mockID, rep), nil
}

// ScoreListening scores a listening submission.
func (s *ScoringService) ScoreListening(ctx context.Context, mockID int, req *model.ListeningSubmissionRequest, meta archive.SubmissionMeta) (*SubmissionResult, error) {
	mock, err := s.listening.GetMock(ctx, mockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMockNotFound
		}
		return nil, fmt.Errorf("load mock: %w", err)
	}

	key := &model.ListeningAnswerKey{}
	if err := s.loadAnswerKey(ctx, "listening", mockID, key, func(ctx context.Context) (any, error) {
		return s.listening.GetAnswerKey(ctx, mockID)
	}); err != nil {
		return nil, err
	}

	rep := scoring.CEFRListening.Score(key.Groups(), req.Sections())

	meta.MockID = mockID
	meta.ModuleTitle = "CEFR Listening"
	s.enqueueArchive(ctx, rep, meta, scoring.CEFRListening, s.cfg.ListeningArchiveChannel, mock.Title)

	return resultFrom(mockID, rep), nil
}

// InvalidateAnswerKeyCache drops the cached key after an author update.
func (s *ScoringService) InvalidateAnswerKeyCache(ctx context.Context, module string, mockID int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.AnswerKeyKey(module, mockID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("module", module).Int("mock_id", mockID).Msg("answer key cache invalidation failed")
	}
}

// loadAnswerKey fills dst from the Redis cache when possible, falling back to
// the store. Cache failures degrade to a store read, never to an error.
func (s *ScoringService) loadAnswerKey(ctx context.Context, module string, mockID int, dst any, fetch func(context.Context) (any, error)) error {
	cacheKey := config.CacheKey.AnswerKeyKey(module, mockID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(cached), dst); jsonErr == nil {
				return nil
			}
			// Corrupt cache entry: fall through to the store.
			s.rdb.Del(ctx, cacheKey)
		} else if !errors.Is(err, goredis.Nil) {
			s.log.Warn().Err(err).Str("key", cacheKey).Msg("answer key cache read failed")
		}
	}

	fetched, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAnswerKeyNotFound
		}
		return fmt.Errorf("load answer key: %w", err)
	}

	raw, err := json.Marshal(fetched)
	if err != nil {
		return fmt.Errorf("encode answer key: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode answer key: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, answerKeyCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", cacheKey).Msg("answer key cache write failed")
		}
	}
	return nil
}

// enqueueArchive renders the review document and hands it to the archive
// queue. Best-effort by contract: failures are logged and swallowed.
func (s *ScoringService) enqueueArchive(ctx context.Context, rep *scoring.Report, meta archive.SubmissionMeta, layout scoring.Layout, chatID, mockTitle string) {
	if s.queue == nil || chatID == "" {
		return
	}

	labels := make(map[string]string, len(layout.Sections))
	for _, sec := range layout.Sections {
		labels[sec.Name] = sec.Label
	}

	body, err := archive.RenderReviewHTML(rep, meta, labels, nil)
	if err != nil {
		s.log.Error().Err(err).Int("mock_id", meta.MockID).Msg("archive render failed")
		return
	}

	doc := archive.Document{
		ChatID:   chatID,
		Filename: fmt.Sprintf("%s_%s_user%d.html", rep.Format, meta.SubmittedAt.UTC().Format("20060102_150405"), meta.UserID),
		Caption: fmt.Sprintf("%s | %s | %s | %d/%d",
			meta.ModuleTitle, mockTitle, meta.Username, rep.TotalCorrect, rep.TotalPossible),
		MimeType: "text/html",
		Body:     body,
	}
	if err := s.queue.Enqueue(ctx, doc); err != nil {
		s.log.Error().Err(err).Int("mock_id", meta.MockID).Msg("archive enqueue failed")
	}
}

func resultFrom(mockID int, rep *scoring.Report) *SubmissionResult {
	return &SubmissionResult{
		MockID:        mockID,
		PerSection:    rep.PerSection(),
		TotalCorrect:  rep.TotalCorrect,
		TotalPossible: rep.TotalPossible,
		Band:          scoring.Band(rep.TotalCorrect, rep.TotalPossible),
	}
}
