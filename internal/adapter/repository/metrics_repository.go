package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// MetricsRepository handles metrics snapshot persistence
type MetricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// UpsertAutoSave replaces the session's auto-save record inside one
// transaction, keeping the singleton invariant even under a concurrent
// auto-save tick.
func (r *MetricsRepository) UpsertAutoSave(ctx context.Context, record *entities.MetricsRecord) error {
	if record == nil {
		return errors.New("metrics record cannot be nil")
	}
	record.IsAutoSave = true

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("session_id = ? AND is_auto_save = ?", record.SessionID, true).
			Delete(&entities.MetricsRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
}

// InsertFinal appends an immutable final-save record
func (r *MetricsRepository) InsertFinal(ctx context.Context, record *entities.MetricsRecord) error {
	if record == nil {
		return errors.New("metrics record cannot be nil")
	}
	record.IsAutoSave = false
	return r.db.WithContext(ctx).Create(record).Error
}

// GetAutoSave retrieves the session's current auto-save record
func (r *MetricsRepository) GetAutoSave(ctx context.Context, sessionID string) (*entities.MetricsRecord, error) {
	var record entities.MetricsRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND is_auto_save = ?", sessionID, true).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListBySession retrieves all records for a session ordered by creation time
func (r *MetricsRepository) ListBySession(ctx context.Context, sessionID string) ([]*entities.MetricsRecord, error) {
	var records []*entities.MetricsRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
