package entities

import "time"

// TurnRole identifies the speaker of a transcript turn
type TurnRole string

const (
	TurnRoleInterviewer TurnRole = "interviewer"
	TurnRoleCandidate   TurnRole = "candidate"
)

// Turn is one utterance in an interview transcript. Turns are append-only:
// once added to a transcript they are never mutated.
type Turn struct {
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn stamped with the current time
func NewTurn(role TurnRole, text string) Turn {
	return Turn{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

// InterviewPhase is the dialogue state machine phase
type InterviewPhase string

const (
	PhaseNotStarted     InterviewPhase = "not_started"
	PhaseAwaitingAnswer InterviewPhase = "awaiting_answer"
	PhaseCorrecting     InterviewPhase = "correcting"
	PhaseEnded          InterviewPhase = "ended"
)
