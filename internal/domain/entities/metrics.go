package entities

import (
	"time"

	"github.com/google/uuid"
)

// MetricsSnapshot is a read-only copy of a behavioral metrics tracker's
// counters: for each tracked signal an occurrence count and a cumulative
// duration in seconds.
type MetricsSnapshot struct {
	HandDetectionCount    int     `json:"handDetectionCount"`
	HandDetectionDuration float64 `json:"handDetectionDuration"`
	LossEyeContactCount   int     `json:"lossEyeContactCount"`
	LookingAwayDuration   float64 `json:"lookingAwayDuration"`
	BadPostureCount       int     `json:"badPostureCount"`
	BadPostureDuration    float64 `json:"badPostureDuration"`
}

// MetricsRecord is the persisted form of a metrics snapshot. At most one
// record with IsAutoSave=true exists per session; final saves are immutable
// appends with IsAutoSave=false.
type MetricsRecord struct {
	ID                    uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID             string    `json:"session_id" gorm:"type:varchar(255);not null;index"`
	UserKey               string    `json:"user_key" gorm:"type:varchar(255);not null;index"`
	HandDetectionCount    int       `json:"hand_detection_count" gorm:"not null"`
	HandDetectionDuration float64   `json:"hand_detection_duration" gorm:"not null"`
	LossEyeContactCount   int       `json:"loss_eye_contact_count" gorm:"not null"`
	LookingAwayDuration   float64   `json:"looking_away_duration" gorm:"not null"`
	BadPostureCount       int       `json:"bad_posture_count" gorm:"not null"`
	BadPostureDuration    float64   `json:"bad_posture_duration" gorm:"not null"`
	IsAutoSave            bool      `json:"is_auto_save" gorm:"not null;default:false;index"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MetricsRecord) TableName() string {
	return "interview_metrics"
}

// NewMetricsRecord creates a record from a snapshot
func NewMetricsRecord(sessionID, userKey string, snap MetricsSnapshot, isAutoSave bool) *MetricsRecord {
	return &MetricsRecord{
		ID:                    uuid.New(),
		SessionID:             sessionID,
		UserKey:               userKey,
		HandDetectionCount:    snap.HandDetectionCount,
		HandDetectionDuration: snap.HandDetectionDuration,
		LossEyeContactCount:   snap.LossEyeContactCount,
		LookingAwayDuration:   snap.LookingAwayDuration,
		BadPostureCount:       snap.BadPostureCount,
		BadPostureDuration:    snap.BadPostureDuration,
		IsAutoSave:            isAutoSave,
	}
}

// Snapshot converts the record back to its in-memory form
func (r *MetricsRecord) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		HandDetectionCount:    r.HandDetectionCount,
		HandDetectionDuration: r.HandDetectionDuration,
		LossEyeContactCount:   r.LossEyeContactCount,
		LookingAwayDuration:   r.LookingAwayDuration,
		BadPostureCount:       r.BadPostureCount,
		BadPostureDuration:    r.BadPostureDuration,
	}
}
