package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Save stores the transcript for a session. Repeated saves for the same
// session overwrite the stored turns (the transcript only ever grows, so the
// latest copy is the complete one).
func (r *TranscriptRepository) Save(ctx context.Context, record *entities.TranscriptRecord) error {
	if record == nil {
		return errors.New("transcript record cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// GetBySessionID retrieves a transcript by session ID
func (r *TranscriptRepository) GetBySessionID(ctx context.Context, sessionID string) (*entities.TranscriptRecord, error) {
	var record entities.TranscriptRecord
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByUser retrieves all transcripts for a user, newest first
func (r *TranscriptRepository) ListByUser(ctx context.Context, userKey string) ([]*entities.TranscriptRecord, error) {
	var records []*entities.TranscriptRecord
	err := r.db.WithContext(ctx).
		Where("user_key = ?", userKey).
		Order("started_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
