package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/archive"
	"github.com/tilmock/cefr-backend/internal/config"
)

const (
	ArchivePollTimeout = 1 * time.Second
	ArchiveSendTimeout = 90 * time.Second
	ArchiveMaxRetries  = 2
)

// ArchiveWorker drains the archive queue and delivers review documents to
// Telegram. Delivery is best-effort: a document that still fails after
// retries is logged and dropped, never blocking the queue.
type ArchiveWorker struct {
	rdb      *redis.Client
	telegram *archive.TelegramClient
	log      zerolog.Logger
}

func NewArchiveWorker(rdb *redis.Client, telegram *archive.TelegramClient, log zerolog.Logger) *ArchiveWorker {
	return &ArchiveWorker{
		rdb:      rdb,
		telegram: telegram,
		log:      log.With().Str("component", "archive_worker").Logger(),
	}
}

func (w *ArchiveWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ArchiveWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Draining archive queue...")
			w.drain()
			return

		default:
			item, err := w.rdb.BLPop(ctx, ArchivePollTimeout, config.WorkerKey.ArchiveDocumentsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}
			w.deliver(item[1])
		}
	}
}

// drain sends whatever is still queued, without blocking shutdown on an
// empty queue.
func (w *ArchiveWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), ArchiveSendTimeout)
	defer cancel()

	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.ArchiveDocumentsQueue).Result()
		if err != nil {
			if err != redis.Nil {
				w.log.Error().Err(err).Msg("drain LPop error")
			}
			return
		}
		w.deliver(raw)
	}
}

func (w *ArchiveWorker) deliver(raw string) {
	var doc archive.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		w.log.Error().Err(err).Msg("Invalid JSON payload")
		return
	}

	var err error
	for attempt := 0; attempt <= ArchiveMaxRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), ArchiveSendTimeout)
		err = w.telegram.SendDocument(ctx, doc)
		cancel()
		if err == nil {
			w.log.Info().
				Str("chat_id", doc.ChatID).
				Str("filename", doc.Filename).
				Msg("archive document delivered")
			return
		}
		w.log.Warn().Err(err).Int("attempt", attempt+1).Str("filename", doc.Filename).Msg("archive delivery failed")
	}

	w.log.Error().Err(err).Str("filename", doc.Filename).Msg("archive document dropped after retries")
}
