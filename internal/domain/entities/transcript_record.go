package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptRecord is the stored transcript of a finished interview session
type TranscriptRecord struct {
	ID            uuid.UUID                          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID     string                             `json:"session_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	UserKey       string                             `json:"user_key" gorm:"type:varchar(255);not null;index"`
	Turns         []Turn                             `json:"turns" gorm:"type:jsonb;serializer:json"`
	QuestionCount int                                `json:"question_count"`
	ResumeContext datatypes.JSONType[map[string]any] `json:"resume_context,omitempty" gorm:"type:jsonb"`
	StartedAt     time.Time                          `json:"started_at"`
	EndedAt       *time.Time                         `json:"ended_at,omitempty"`
	CreatedAt     time.Time                          `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TranscriptRecord) TableName() string {
	return "interview_transcripts"
}

// NewTranscriptRecord creates a transcript record for a session
func NewTranscriptRecord(sessionID, userKey string, turns []Turn, questionCount int, startedAt time.Time, endedAt *time.Time) *TranscriptRecord {
	return &TranscriptRecord{
		ID:            uuid.New(),
		SessionID:     sessionID,
		UserKey:       userKey,
		Turns:         turns,
		QuestionCount: questionCount,
		StartedAt:     startedAt,
		EndedAt:       endedAt,
	}
}

// FormatTranscript renders turns as the plain-text transcript handed to the
// feedback step and archived to object storage.
func FormatTranscript(turns []Turn) string {
	var b strings.Builder
	b.WriteString("Interview Transcript:\n\n")
	for _, t := range turns {
		role := strings.ToUpper(string(t.Role[:1])) + string(t.Role[1:])
		fmt.Fprintf(&b, "%s: %s\n\n", role, t.Text)
	}
	return b.String()
}
