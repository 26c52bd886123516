package interview

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

const cleanAnalysis = `{"has_factual_errors": false, "factual_error_details": "", "has_inappropriate_language": false, "inappropriate_language_details": ""}`

// interviewerOracle answers analysis prompts with a fixed verdict and
// everything else from a script
func interviewerOracle(analysis string, replies ...string) *funcOracle {
	i := 0
	return &funcOracle{fn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Return a JSON object") {
			return analysis, nil
		}
		if i >= len(replies) {
			return "Anything else you would like to add?", nil
		}
		reply := replies[i]
		i++
		return reply, nil
	}}
}

func newTestSession(oracle Oracle) *Session {
	logger := zap.NewNop()
	validator := NewAnswerValidator(oracle, logger, time.Second)
	return NewSession("sess-1", "user-1", map[string]any{"name": "Dana"}, oracle, validator, logger, time.Second)
}

func TestSessionFiveTurnConversation(t *testing.T) {
	oracle := interviewerOracle(cleanAnalysis, "Q1", "Q2", "Q3")
	s := newTestSession(oracle)
	ctx := context.Background()

	q, err := s.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if q != "Q1" {
		t.Errorf("opening question = %q, want Q1", q)
	}

	if _, _, err := s.SubmitAnswer(ctx, "A1"); err != nil {
		t.Fatalf("SubmitAnswer 1: %v", err)
	}
	if _, _, err := s.SubmitAnswer(ctx, "A2"); err != nil {
		t.Fatalf("SubmitAnswer 2: %v", err)
	}

	turns := s.Turns()
	wantRoles := []entities.TurnRole{
		entities.TurnRoleInterviewer,
		entities.TurnRoleCandidate,
		entities.TurnRoleInterviewer,
		entities.TurnRoleCandidate,
		entities.TurnRoleInterviewer,
	}
	if len(turns) != len(wantRoles) {
		t.Fatalf("got %d turns, want %d", len(turns), len(wantRoles))
	}
	for i, want := range wantRoles {
		if turns[i].Role != want {
			t.Errorf("turn %d role = %s, want %s", i, turns[i].Role, want)
		}
	}
	wantTexts := []string{"Q1", "A1", "Q2", "A2", "Q3"}
	for i, want := range wantTexts {
		if turns[i].Text != want {
			t.Errorf("turn %d text = %q, want %q", i, turns[i].Text, want)
		}
	}
	if got := s.QuestionIndex(); got != 2 {
		t.Errorf("QuestionIndex = %d, want 2", got)
	}
}

func TestSessionCorrectionKeepsQuestionIndex(t *testing.T) {
	flagged := `{"has_factual_errors": true, "factual_error_details": "wrong protocol", "has_inappropriate_language": false, "inappropriate_language_details": ""}`
	oracle := interviewerOracle(flagged, "Q1", "Actually, that is not quite right. Would you like to revise?")
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := len(s.Turns())

	reply, ended, err := s.SubmitAnswer(ctx, "TCP is a stateless protocol")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if ended {
		t.Error("correction must not end the interview")
	}
	if !strings.Contains(reply, "revise") {
		t.Errorf("reply = %q, want the correction", reply)
	}

	if got := len(s.Turns()); got != before+2 {
		t.Errorf("turns grew by %d, want 2", got-before)
	}
	if got := s.QuestionIndex(); got != 0 {
		t.Errorf("QuestionIndex = %d, want 0 after correction", got)
	}
	if got := s.Phase(); got != entities.PhaseAwaitingAnswer {
		t.Errorf("phase = %s, want %s", got, entities.PhaseAwaitingAnswer)
	}
}

func TestSessionTerminationPhraseEndsWithoutCandidateTurn(t *testing.T) {
	oracle := interviewerOracle(cleanAnalysis, "Q1", "Goodbye and thanks!")
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	closing, ended, err := s.SubmitAnswer(ctx, "End Interview")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !ended {
		t.Fatal("termination phrase must end the interview")
	}
	if closing != "Goodbye and thanks!" {
		t.Errorf("closing = %q", closing)
	}
	if got := s.Phase(); got != entities.PhaseEnded {
		t.Errorf("phase = %s, want ended", got)
	}

	// the command itself is not part of the transcript; only the opener and
	// the closing are
	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	for _, turn := range turns {
		if turn.Role != entities.TurnRoleInterviewer {
			t.Errorf("unexpected %s turn %q", turn.Role, turn.Text)
		}
	}
}

func TestSessionEndIsIdempotent(t *testing.T) {
	oracle := interviewerOracle(cleanAnalysis, "Q1", "Closing")
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	closing1, transcript1, err := s.End(ctx)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	turnsAfterFirst := len(s.Turns())

	closing2, transcript2, err := s.End(ctx)
	if err != nil {
		t.Fatalf("second End: %v", err)
	}
	if closing2 != closing1 || transcript2 != transcript1 {
		t.Error("second End must return the recorded closing and transcript")
	}
	if got := len(s.Turns()); got != turnsAfterFirst {
		t.Errorf("second End added turns: %d -> %d", turnsAfterFirst, got)
	}
}

func TestSessionTranscriptFormat(t *testing.T) {
	oracle := interviewerOracle(cleanAnalysis, "Q1", "Q2", "Closing")
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, _, err := s.SubmitAnswer(ctx, "A1"); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	_, transcript, err := s.End(ctx)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	if !strings.HasPrefix(transcript, "Interview Transcript:\n\n") {
		t.Errorf("transcript missing header: %q", transcript[:40])
	}
	if !strings.Contains(transcript, "Interviewer: Q1\n\n") {
		t.Error("transcript missing interviewer line")
	}
	if !strings.Contains(transcript, "Candidate: A1\n\n") {
		t.Error("transcript missing candidate line")
	}
	if strings.Contains(transcript, "Closing") {
		t.Error("transcript must not include the closing statement")
	}
}

func TestSessionOracleTimeoutRollsBack(t *testing.T) {
	oracle := &funcOracle{fn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Return a JSON object") {
			return cleanAnalysis, nil
		}
		if strings.Contains(prompt, "generate the next interview question") {
			return "", context.DeadlineExceeded
		}
		return "Q1", nil
	}}
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := s.Turns()

	_, _, err := s.SubmitAnswer(ctx, "A1")
	if !apperrors.IsCode(err, apperrors.ErrorCode_ORACLE_TIMEOUT) {
		t.Fatalf("err = %v, want ORACLE_TIMEOUT", err)
	}

	after := s.Turns()
	if len(after) != len(before) {
		t.Errorf("turns changed on timeout: %d -> %d", len(before), len(after))
	}
	if got := s.QuestionIndex(); got != 0 {
		t.Errorf("QuestionIndex = %d, want 0", got)
	}
	if got := s.Phase(); got != entities.PhaseAwaitingAnswer {
		t.Errorf("phase = %s, want awaiting_answer", got)
	}
}

func TestSessionStartFallsBackWhenOracleDown(t *testing.T) {
	oracle := &funcOracle{fn: func(ctx context.Context, prompt string) (string, error) {
		return "", context.DeadlineExceeded
	}}
	s := newTestSession(oracle)

	q, err := s.Start(context.Background())
	if err != nil {
		t.Fatalf("Start must degrade, not fail: %v", err)
	}
	if q != fallbackOpeningQuestion {
		t.Errorf("opening = %q, want the fallback", q)
	}
	if got := s.Phase(); got != entities.PhaseAwaitingAnswer {
		t.Errorf("phase = %s, want awaiting_answer", got)
	}
}

func TestSessionConcurrentMutationIsRejected(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	oracle := &funcOracle{fn: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Return a JSON object") {
			close(started)
			<-block
			return cleanAnalysis, nil
		}
		return "Q", nil
	}}
	s := newTestSession(oracle)
	ctx := context.Background()

	if _, err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.SubmitAnswer(ctx, "A1")
	}()

	<-started
	if _, _, err := s.End(ctx); !apperrors.IsCode(err, apperrors.ErrorCode_SESSION_BUSY) {
		t.Errorf("End during in-flight answer: err = %v, want SESSION_BUSY", err)
	}
	close(block)
	<-done
}
