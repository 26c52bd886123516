package interview

import (
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// StartResponse is returned when an interview opens
type StartResponse struct {
	SessionID    string `json:"session_id"`
	Question     string `json:"question"`
	RoomName     string `json:"room_name,omitempty"`
	LivekitToken string `json:"livekit_token,omitempty"`
	LivekitURL   string `json:"livekit_url,omitempty"`
}

// AnswerResponse carries the interviewer's reply to an answer
type AnswerResponse struct {
	Reply string `json:"reply"`
	Ended bool   `json:"ended"`
	// Transcript is present when this answer terminated the interview
	Transcript string `json:"transcript,omitempty"`
	// TranscribedAnswer echoes the speech-to-text result for audio answers
	TranscribedAnswer string `json:"transcribed_answer,omitempty"`
}

// EndResponse is returned when an interview closes
type EndResponse struct {
	Closing    string                   `json:"closing"`
	Transcript string                   `json:"transcript"`
	Metrics    entities.MetricsSnapshot `json:"metrics"`
}

// MetricsResponse is the live behavioral metrics snapshot
type MetricsResponse struct {
	Metrics entities.MetricsSnapshot `json:"metrics"`
}

// ReportResponse aggregates the stored artifacts of a finished interview
type ReportResponse struct {
	Transcript *entities.TranscriptRecord `json:"transcript"`
	Metrics    []*entities.MetricsRecord  `json:"metrics"`
	Feedback   *entities.FeedbackReport   `json:"feedback,omitempty"`
}

// HistoryResponse lists a user's past interviews
type HistoryResponse struct {
	Interviews []*entities.TranscriptRecord `json:"interviews"`
}
