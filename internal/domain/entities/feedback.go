package entities

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackReport is the post-interview analysis generated from the final
// transcript: strengths, improvement areas and numeric ratings.
type FeedbackReport struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID           string    `json:"session_id" gorm:"type:varchar(255);not null;index"`
	UserKey             string    `json:"user_key" gorm:"type:varchar(255);not null;index"`
	Strengths           []string  `json:"strengths" gorm:"type:jsonb;serializer:json"`
	AreasForImprovement []string  `json:"areas_for_improvement" gorm:"type:jsonb;serializer:json"`
	Recommendations     []string  `json:"recommendations" gorm:"type:jsonb;serializer:json"`
	CommunicationRating int       `json:"communication_rating"`
	TechnicalRating     int       `json:"technical_rating"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (FeedbackReport) TableName() string {
	return "interview_feedback"
}

// NewFeedbackReport creates a feedback report for a session
func NewFeedbackReport(sessionID, userKey string) *FeedbackReport {
	return &FeedbackReport{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserKey:   userKey,
	}
}
