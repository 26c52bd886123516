package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// FeedbackRepository handles feedback report persistence
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Save stores a feedback report
func (r *FeedbackRepository) Save(ctx context.Context, report *entities.FeedbackReport) error {
	if report == nil {
		return errors.New("feedback report cannot be nil")
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// GetBySessionID retrieves the feedback report for a session
func (r *FeedbackRepository) GetBySessionID(ctx context.Context, sessionID string) (*entities.FeedbackReport, error) {
	var report entities.FeedbackReport
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}
