package repositories

import (
	"context"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// MetricsRepository defines persistence operations for behavioral metrics
// snapshots.
type MetricsRepository interface {
	// UpsertAutoSave replaces the session's singleton auto-save record with
	// the given one. Exactly one auto-save row per session survives the call.
	UpsertAutoSave(ctx context.Context, record *entities.MetricsRecord) error

	// InsertFinal appends an immutable final-save record. It never
	// overwrites existing rows.
	InsertFinal(ctx context.Context, record *entities.MetricsRecord) error

	// GetAutoSave returns the session's current auto-save record, or nil if
	// none exists.
	GetAutoSave(ctx context.Context, sessionID string) (*entities.MetricsRecord, error)

	// ListBySession returns all records for a session ordered by creation
	// time.
	ListBySession(ctx context.Context, sessionID string) ([]*entities.MetricsRecord, error)
}
