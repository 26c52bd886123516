package interview

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
	"github.com/interview-coach-team/interview-coach/internal/domain/repositories"
	"github.com/interview-coach-team/interview-coach/pkg/jobcontext"
)

const storageRetries = 3

// Archiver writes the final transcript text to object storage
type Archiver interface {
	ArchiveTranscript(ctx context.Context, sessionID, transcript string) error
}

// Gateway is the persistence boundary of the live session engine. Every
// write retries with exponential backoff and is then logged and swallowed on
// failure: a database outage degrades durability, never a running interview.
type Gateway struct {
	metrics     repositories.MetricsRepository
	transcripts repositories.TranscriptRepository
	feedback    repositories.FeedbackRepository
	archive     Archiver
	logger      *zap.Logger
}

// NewGateway creates a persistence gateway. archive may be nil when no
// object storage is configured.
func NewGateway(
	metrics repositories.MetricsRepository,
	transcripts repositories.TranscriptRepository,
	feedback repositories.FeedbackRepository,
	archive Archiver,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		metrics:     metrics,
		transcripts: transcripts,
		feedback:    feedback,
		archive:     archive,
		logger:      logger,
	}
}

// AutoSave replaces the session's singleton auto-save metrics record
func (g *Gateway) AutoSave(ctx context.Context, sessionID, userKey string, snap entities.MetricsSnapshot) {
	record := entities.NewMetricsRecord(sessionID, userKey, snap, true)
	g.run(ctx, "metrics auto-save", sessionID, func(ctx context.Context) error {
		return g.metrics.UpsertAutoSave(ctx, record)
	})
}

// FinalSave appends the immutable end-of-interview metrics record
func (g *Gateway) FinalSave(ctx context.Context, sessionID, userKey string, snap entities.MetricsSnapshot) {
	record := entities.NewMetricsRecord(sessionID, userKey, snap, false)
	g.run(ctx, "metrics final-save", sessionID, func(ctx context.Context) error {
		return g.metrics.InsertFinal(ctx, record)
	})
}

// SaveTranscript stores the finished transcript
func (g *Gateway) SaveTranscript(ctx context.Context, record *entities.TranscriptRecord) {
	g.run(ctx, "transcript save", record.SessionID, func(ctx context.Context) error {
		return g.transcripts.Save(ctx, record)
	})
}

// ArchiveTranscript pushes the formatted transcript text to object storage
func (g *Gateway) ArchiveTranscript(ctx context.Context, sessionID, transcript string) {
	if g.archive == nil {
		return
	}
	g.run(ctx, "transcript archive", sessionID, func(ctx context.Context) error {
		return g.archive.ArchiveTranscript(ctx, sessionID, transcript)
	})
}

// SaveFeedback stores the post-interview feedback report
func (g *Gateway) SaveFeedback(ctx context.Context, report *entities.FeedbackReport) {
	g.run(ctx, "feedback save", report.SessionID, func(ctx context.Context) error {
		return g.feedback.Save(ctx, report)
	})
}

// run executes one storage operation with retry, logging the terminal error
func (g *Gateway) run(ctx context.Context, operation, sessionID string, fn func(ctx context.Context) error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), storageRetries),
		ctx,
	)

	err := backoff.Retry(func() error {
		return fn(ctx)
	}, policy)
	if err != nil {
		fields := []zap.Field{
			zap.String("operation", operation),
			zap.String("session_id", sessionID),
			zap.Error(apperrors.ErrStorageFailure(operation, err)),
		}
		// finalization and auto-save run under a job context; surface its
		// identity and age when present
		if id, ok := jobcontext.SessionID(ctx); ok && id != sessionID {
			fields = append(fields, zap.String("job_session_id", id))
		}
		if userKey, ok := jobcontext.UserKey(ctx); ok {
			fields = append(fields, zap.String("user_key", userKey))
		}
		if started, ok := jobcontext.StartTime(ctx); ok {
			fields = append(fields, zap.Duration("job_elapsed", time.Since(started)))
		}
		g.logger.Error("storage operation failed", fields...)
	}
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}
