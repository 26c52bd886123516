package interview

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// Session is the dialogue state machine for one live interview. All
// mutations run under a per-session lock acquired with TryLock, so a second
// concurrent request is rejected instead of queued: the candidate should
// never have two interviewer replies racing each other.
type Session struct {
	id            string
	userKey       string
	oracle        Oracle
	validator     *AnswerValidator
	logger        *zap.Logger
	oracleTimeout time.Duration

	mu            sync.Mutex
	phase         entities.InterviewPhase
	turns         []entities.Turn
	questionIndex int
	resumeContext map[string]any
	startedAt     time.Time
	endedAt       *time.Time
	closing       string
	transcript    string
}

// NewSession creates a session in the NotStarted phase
func NewSession(id, userKey string, resumeContext map[string]any, oracle Oracle, validator *AnswerValidator, logger *zap.Logger, oracleTimeout time.Duration) *Session {
	if resumeContext == nil {
		resumeContext = map[string]any{}
	}
	return &Session{
		id:            id,
		userKey:       userKey,
		oracle:        oracle,
		validator:     validator,
		logger:        logger,
		oracleTimeout: oracleTimeout,
		phase:         entities.PhaseNotStarted,
		resumeContext: resumeContext,
	}
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// UserKey returns the owning user's key
func (s *Session) UserKey() string { return s.userKey }

// Phase returns the current phase
func (s *Session) Phase() entities.InterviewPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Turns returns a copy of the transcript so far
func (s *Session) Turns() []entities.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// QuestionIndex returns the number of main questions asked beyond the opener
func (s *Session) QuestionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionIndex
}

// StartedAt returns the session start time (zero before Start)
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// EndedAt returns the end time, or nil while the session is live
func (s *Session) EndedAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// ResumeContext returns the resume data the interviewer conditions on
func (s *Session) ResumeContext() map[string]any {
	return s.resumeContext
}

// Start opens the interview with a personalized question. If the oracle
// cannot answer, the session degrades to a fixed opening line rather than
// failing: a candidate sitting down for an interview always gets greeted.
func (s *Session) Start(ctx context.Context) (string, error) {
	if !s.mu.TryLock() {
		return "", apperrors.ErrSessionBusy(s.id)
	}
	defer s.mu.Unlock()

	if s.phase != entities.PhaseNotStarted {
		return "", apperrors.ErrSessionWrongPhase(string(s.phase), string(entities.PhaseNotStarted))
	}

	s.startedAt = time.Now().UTC()

	question, err := s.generate(ctx, buildOpeningPrompt(s.resumeContext))
	if err != nil {
		s.logger.Warn("opening question generation failed, using fallback",
			zap.String("session_id", s.id),
			zap.Error(err))
		question = fallbackOpeningQuestion
	}

	s.turns = append(s.turns, entities.NewTurn(entities.TurnRoleInterviewer, question))
	s.phase = entities.PhaseAwaitingAnswer

	return question, nil
}

// SubmitAnswer processes one candidate answer. A recognized termination
// command routes to End. A flagged answer gets a correction and the same
// question index; a clean answer gets the next question. On an oracle
// failure while generating the reply the candidate turn is rolled back and
// the session state is unchanged.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (reply string, ended bool, err error) {
	if !s.mu.TryLock() {
		return "", false, apperrors.ErrSessionBusy(s.id)
	}
	defer s.mu.Unlock()

	if s.phase != entities.PhaseAwaitingAnswer {
		return "", false, apperrors.ErrSessionWrongPhase(string(s.phase), string(entities.PhaseAwaitingAnswer))
	}

	if ParseCommand(answer) == CommandEndInterview {
		closing, _ := s.endLocked(ctx)
		return closing, true, nil
	}

	s.turns = append(s.turns, entities.NewTurn(entities.TurnRoleCandidate, answer))

	verdict := s.validator.Validate(ctx, answer)
	if verdict.Flagged() {
		s.phase = entities.PhaseCorrecting

		var prompt string
		if verdict.HasInappropriateLanguage {
			prompt = buildInappropriateCorrectionPrompt(answer, verdict.InappropriateLanguageDetails)
		} else {
			prompt = buildFactualCorrectionPrompt(answer, verdict.FactualErrorDetails)
		}

		correction, genErr := s.generate(ctx, prompt)
		if genErr != nil {
			// roll back: no partial turns, question index untouched
			s.turns = s.turns[:len(s.turns)-1]
			s.phase = entities.PhaseAwaitingAnswer
			return "", false, s.mapOracleError(genErr)
		}

		s.turns = append(s.turns, entities.NewTurn(entities.TurnRoleInterviewer, correction))
		s.phase = entities.PhaseAwaitingAnswer
		return correction, false, nil
	}

	question, genErr := s.generate(ctx, buildNextQuestionPrompt(s.resumeContext, s.turns))
	if genErr != nil {
		s.turns = s.turns[:len(s.turns)-1]
		return "", false, s.mapOracleError(genErr)
	}

	s.turns = append(s.turns, entities.NewTurn(entities.TurnRoleInterviewer, question))
	s.questionIndex++
	return question, false, nil
}

// End closes the interview and returns the closing statement plus the
// formatted transcript. Ending an already-ended session returns the recorded
// closing and transcript without adding turns.
func (s *Session) End(ctx context.Context) (closing, transcript string, err error) {
	if !s.mu.TryLock() {
		return "", "", apperrors.ErrSessionBusy(s.id)
	}
	defer s.mu.Unlock()

	if s.phase == entities.PhaseNotStarted {
		return "", "", apperrors.ErrSessionWrongPhase(string(s.phase), string(entities.PhaseAwaitingAnswer))
	}
	if s.phase == entities.PhaseEnded {
		return s.closing, s.transcript, nil
	}

	closing, transcript = s.endLocked(ctx)
	return closing, transcript, nil
}

// endLocked performs the termination transition. Caller holds the lock and
// has verified the session is live.
func (s *Session) endLocked(ctx context.Context) (closing, transcript string) {
	now := time.Now().UTC()
	s.endedAt = &now

	closing, err := s.generate(ctx, buildClosingPrompt(s.resumeContext))
	if err != nil {
		s.logger.Warn("closing statement generation failed, using fallback",
			zap.String("session_id", s.id),
			zap.Error(err))
		closing = fallbackClosingStatement(s.resumeContext)
	}

	// the transcript covers the conversation up to, not including, the closing
	transcript = entities.FormatTranscript(s.turns)

	s.turns = append(s.turns, entities.NewTurn(entities.TurnRoleInterviewer, closing))
	s.phase = entities.PhaseEnded
	s.closing = closing
	s.transcript = transcript

	return closing, transcript
}

// generate runs one oracle call bounded by the configured timeout
func (s *Session) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()
	return s.oracle.Generate(ctx, prompt)
}

func (s *Session) mapOracleError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrOracleTimeout(err)
	}
	return apperrors.ErrOracleUnavailable(err)
}
