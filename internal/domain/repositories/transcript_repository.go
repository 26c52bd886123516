package repositories

import (
	"context"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for interview
// transcripts.
type TranscriptRepository interface {
	// Save stores the transcript for a session, replacing any earlier copy
	// written for the same session.
	Save(ctx context.Context, record *entities.TranscriptRecord) error

	// GetBySessionID returns the transcript for a session, or nil if none
	// exists.
	GetBySessionID(ctx context.Context, sessionID string) (*entities.TranscriptRecord, error)

	// ListByUser returns all transcripts for a user ordered by start time
	// descending.
	ListByUser(ctx context.Context, userKey string) ([]*entities.TranscriptRecord, error)
}

// FeedbackRepository defines persistence operations for post-interview
// feedback reports.
type FeedbackRepository interface {
	Save(ctx context.Context, report *entities.FeedbackReport) error
	GetBySessionID(ctx context.Context, sessionID string) (*entities.FeedbackReport, error)
}
