package interview

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
	"github.com/interview-coach-team/interview-coach/internal/infrastructure/external/livekit"
	"github.com/interview-coach-team/interview-coach/internal/usecase/vision"
	"github.com/interview-coach-team/interview-coach/pkg/config"
	"github.com/interview-coach-team/interview-coach/pkg/jobcontext"
)

// SpeechTranscriber turns recorded answer audio into text
type SpeechTranscriber interface {
	TranscribeReader(ctx context.Context, audio io.Reader) (string, error)
	TranscribeURL(ctx context.Context, audioURL string) (string, error)
}

// AnswerAudioStore archives recorded answers and returns a URL the
// transcription service can fetch them from
type AnswerAudioStore interface {
	UploadAnswerAudio(ctx context.Context, sessionID string, audio io.Reader, size int64, contentType string) (string, error)
}

// RoomTokenIssuer provisions the camera-feed room for a session
type RoomTokenIssuer interface {
	URL() string
	RoomName(sessionID string) string
	GenerateToken(userKey, sessionID string, options *livekit.TokenOptions) (string, error)
}

// ProfileCache stores resume context between requests
type ProfileCache interface {
	Put(ctx context.Context, userKey string, resumeContext map[string]any) error
	Get(ctx context.Context, userKey string) (map[string]any, error)
	Invalidate(ctx context.Context, userKey string) error
}

// Service orchestrates the live interview engine: session registry, dialogue,
// behavioral metrics pipeline and persistence.
type Service struct {
	store         *Store
	oracle        Oracle
	validator     *AnswerValidator
	gateway       *Gateway
	speech        SpeechTranscriber
	audio         AnswerAudioStore
	rooms         RoomTokenIssuer
	profiles      ProfileCache
	logger        *zap.Logger
	cfg           config.InterviewConfig
	oracleTimeout time.Duration

	newClassifier func() vision.FrameClassifier
}

// NewService wires the interview service. speech, audio, rooms and profiles
// may be nil when the corresponding integration is not configured.
func NewService(
	store *Store,
	oracle Oracle,
	validator *AnswerValidator,
	gateway *Gateway,
	speech SpeechTranscriber,
	audio AnswerAudioStore,
	rooms RoomTokenIssuer,
	profiles ProfileCache,
	logger *zap.Logger,
	cfg config.InterviewConfig,
	oracleTimeout time.Duration,
) *Service {
	return &Service{
		store:         store,
		oracle:        oracle,
		validator:     validator,
		gateway:       gateway,
		speech:        speech,
		audio:         audio,
		rooms:         rooms,
		profiles:      profiles,
		logger:        logger,
		cfg:           cfg,
		oracleTimeout: oracleTimeout,
		newClassifier: func() vision.FrameClassifier {
			return vision.NewSimulatedClassifier(time.Now().UnixNano())
		},
	}
}

// StartResult is returned by StartInterview
type StartResult struct {
	SessionID  string
	Question   string
	RoomName   string
	RoomToken  string
	LiveKitURL string
}

// AnswerResult is returned by SubmitAnswer and SubmitAudioAnswer
type AnswerResult struct {
	Reply      string
	Ended      bool
	Transcript string // set when the answer terminated the interview
}

// EndResult is returned by EndInterview
type EndResult struct {
	Closing    string
	Transcript string
	Metrics    entities.MetricsSnapshot
}

// StartInterview creates and opens a session for the user. A user has at
// most one live session; racing starts leave exactly one winner.
func (s *Service) StartInterview(ctx context.Context, userKey string, resumeContext map[string]any) (*StartResult, error) {
	// a request without resume data reuses the last cached one, so a
	// follow-up interview doesn't make the candidate re-upload
	if len(resumeContext) == 0 && s.profiles != nil {
		cached, err := s.profiles.Get(ctx, userKey)
		if err != nil {
			s.logger.Warn("failed to read cached resume context",
				zap.String("user_key", userKey),
				zap.Error(err))
			if invErr := s.profiles.Invalidate(ctx, userKey); invErr != nil {
				s.logger.Warn("failed to drop unreadable resume context",
					zap.String("user_key", userKey),
					zap.Error(invErr))
			}
		} else if len(cached) > 0 {
			resumeContext = cached
		}
	}

	sessionID := uuid.NewString()
	session := NewSession(sessionID, userKey, resumeContext, s.oracle, s.validator, s.logger, s.oracleTimeout)

	tracker := vision.NewTracker()
	sampler := vision.NewSampler(tracker, s.newClassifier(), s.cfg.SampleInterval)

	active := &ActiveSession{
		Dialogue: session,
		Tracker:  tracker,
		Sampler:  sampler,
	}

	if err := s.store.Create(userKey, active); err != nil {
		return nil, err
	}

	question, err := session.Start(ctx)
	if err != nil {
		s.store.Remove(userKey)
		return nil, err
	}

	if s.profiles != nil && len(session.ResumeContext()) > 0 {
		if err := s.profiles.Put(ctx, userKey, session.ResumeContext()); err != nil {
			s.logger.Warn("failed to cache resume context",
				zap.String("user_key", userKey),
				zap.Error(err))
		}
	}

	result := &StartResult{
		SessionID: sessionID,
		Question:  question,
	}

	if s.rooms != nil {
		token, err := s.rooms.GenerateToken(userKey, sessionID, nil)
		if err != nil {
			s.logger.Warn("failed to issue camera room token",
				zap.String("session_id", sessionID),
				zap.Error(err))
		} else {
			result.RoomName = s.rooms.RoomName(sessionID)
			result.RoomToken = token
			result.LiveKitURL = s.rooms.URL()
		}
	}

	if s.cfg.SimulateVision {
		sampler.Start()
	}

	autoSaveCtx, cancel := context.WithCancel(context.Background())
	active.cancelAutoSave = cancel
	go s.autoSaveLoop(autoSaveCtx, sessionID, userKey, tracker)

	s.logger.Info("interview started",
		zap.String("session_id", sessionID),
		zap.String("user_key", userKey))

	return result, nil
}

// SubmitAnswer processes one text answer for the user's live session
func (s *Service) SubmitAnswer(ctx context.Context, userKey, answer string) (*AnswerResult, error) {
	active, ok := s.store.Get(userKey)
	if !ok {
		return nil, apperrors.ErrNoActiveSession(userKey)
	}

	// question cap reached: close out instead of asking another question
	if s.cfg.MaxQuestions > 0 && active.Dialogue.QuestionIndex() >= s.cfg.MaxQuestions {
		end, err := s.EndInterview(ctx, userKey)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{Reply: end.Closing, Ended: true, Transcript: end.Transcript}, nil
	}

	reply, ended, err := active.Dialogue.SubmitAnswer(ctx, answer)
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{Reply: reply, Ended: ended}
	if ended {
		_, transcript, _ := active.Dialogue.End(ctx)
		result.Transcript = transcript
		s.finalize(ctx, userKey, active)
	}
	return result, nil
}

// SubmitAudioAnswer archives a recorded answer, transcribes it and processes
// the text. The transcribed text is returned alongside the interviewer's
// reply. When object storage is configured the recording is kept under the
// session and transcription reads from the archived copy; archival failures
// fall back to streaming the audio to the transcriber directly.
func (s *Service) SubmitAudioAnswer(ctx context.Context, userKey string, audio io.Reader, contentType string) (*AnswerResult, string, error) {
	if s.speech == nil {
		return nil, "", apperrors.ErrTranscriptionFailed(stderrors.New("transcription is not configured"))
	}

	active, ok := s.store.Get(userKey)
	if !ok {
		return nil, "", apperrors.ErrNoActiveSession(userKey)
	}

	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, "", apperrors.ErrTranscriptionFailed(err)
	}

	var audioURL string
	if s.audio != nil {
		audioURL, err = s.audio.UploadAnswerAudio(ctx, active.Dialogue.ID(), bytes.NewReader(data), int64(len(data)), contentType)
		if err != nil {
			s.logger.Warn("failed to archive answer audio",
				zap.String("session_id", active.Dialogue.ID()),
				zap.Error(err))
			audioURL = ""
		}
	}

	var text string
	if audioURL != "" {
		text, err = s.speech.TranscribeURL(ctx, audioURL)
	} else {
		text, err = s.speech.TranscribeReader(ctx, bytes.NewReader(data))
	}
	if err != nil {
		return nil, "", apperrors.ErrTranscriptionFailed(err)
	}

	result, err := s.SubmitAnswer(ctx, userKey, text)
	if err != nil {
		return nil, text, err
	}
	return result, text, nil
}

// EndInterview closes the user's live session and returns the closing
// statement, transcript and final metrics.
func (s *Service) EndInterview(ctx context.Context, userKey string) (*EndResult, error) {
	active, ok := s.store.Get(userKey)
	if !ok {
		return nil, apperrors.ErrNoActiveSession(userKey)
	}

	closing, transcript, err := active.Dialogue.End(ctx)
	if err != nil {
		return nil, err
	}

	s.finalize(ctx, userKey, active)

	return &EndResult{
		Closing:    closing,
		Transcript: transcript,
		Metrics:    active.Tracker.Stop(),
	}, nil
}

// SessionMetrics returns the live metrics snapshot for the user's session
func (s *Service) SessionMetrics(userKey string) (entities.MetricsSnapshot, error) {
	active, ok := s.store.Get(userKey)
	if !ok {
		return entities.MetricsSnapshot{}, apperrors.ErrNoActiveSession(userKey)
	}
	return active.Tracker.Snapshot(), nil
}

// Shutdown ends every live session and flushes its final state
func (s *Service) Shutdown(ctx context.Context) {
	for _, active := range s.store.Drain() {
		userKey := active.Dialogue.UserKey()
		if _, _, err := active.Dialogue.End(ctx); err != nil {
			s.logger.Warn("failed to end session during shutdown",
				zap.String("session_id", active.Dialogue.ID()),
				zap.Error(err))
		}
		s.finalize(ctx, userKey, active)
	}
}

// finalize tears down the runtime of a finished session exactly once:
// metrics pipeline stop, final persistence, feedback generation, registry
// removal.
func (s *Service) finalize(ctx context.Context, userKey string, active *ActiveSession) {
	active.finalizeOnce.Do(func() {
		// finalization must survive the triggering request being canceled
		ctx, cancel := jobcontext.Begin(ctx, active.Dialogue.ID(), userKey, time.Minute)
		defer cancel()

		if active.cancelAutoSave != nil {
			active.cancelAutoSave()
		}
		active.Sampler.Stop()
		final := active.Tracker.Stop()

		session := active.Dialogue

		// a concurrent request may briefly hold the session lock; retry
		// rather than archiving an empty transcript
		var transcript string
		endErr := backoff.Retry(func() error {
			var err error
			_, transcript, err = session.End(ctx)
			return err
		}, backoff.WithContext(backoff.WithMaxRetries(newBackOff(), storageRetries), ctx))

		s.gateway.FinalSave(ctx, session.ID(), userKey, final)

		record := entities.NewTranscriptRecord(
			session.ID(), userKey, session.Turns(), session.QuestionIndex(),
			session.StartedAt(), session.EndedAt(),
		)
		record.ResumeContext = datatypes.NewJSONType(session.ResumeContext())
		s.gateway.SaveTranscript(ctx, record)

		if endErr != nil {
			s.logger.Error("failed to read final transcript, skipping archive and feedback",
				zap.String("session_id", session.ID()),
				zap.Error(endErr))
		} else {
			s.gateway.ArchiveTranscript(ctx, session.ID(), transcript)
			s.generateFeedback(ctx, session, transcript)
		}

		s.store.Remove(userKey)

		s.logger.Info("interview finalized",
			zap.String("session_id", session.ID()),
			zap.String("user_key", userKey),
			zap.Int("questions", session.QuestionIndex()))
	})
}

// feedbackAnalysis is the JSON shape requested from the oracle
type feedbackAnalysis struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendations     []string `json:"recommendations"`
	CommunicationRating int      `json:"communication_rating"`
	TechnicalRating     int      `json:"technical_rating"`
}

// generateFeedback asks the oracle for a post-interview report. Best-effort:
// a failure is logged and the interview record stands without one.
func (s *Service) generateFeedback(ctx context.Context, session *Session, transcript string) {
	genCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	response, err := s.oracle.Generate(genCtx, buildFeedbackPrompt(transcript))
	if err != nil {
		s.logger.Warn("feedback generation failed",
			zap.String("session_id", session.ID()),
			zap.Error(err))
		return
	}

	var analysis feedbackAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		s.logger.Warn("feedback analysis returned malformed JSON",
			zap.String("session_id", session.ID()),
			zap.Error(err))
		return
	}

	report := entities.NewFeedbackReport(session.ID(), session.UserKey())
	report.Strengths = analysis.Strengths
	report.AreasForImprovement = analysis.AreasForImprovement
	report.Recommendations = analysis.Recommendations
	report.CommunicationRating = analysis.CommunicationRating
	report.TechnicalRating = analysis.TechnicalRating

	s.gateway.SaveFeedback(ctx, report)
}

// autoSaveLoop periodically persists the running metrics snapshot so a crash
// loses at most one interval of behavioral data.
func (s *Service) autoSaveLoop(ctx context.Context, sessionID, userKey string, tracker *vision.Tracker) {
	ticker := time.NewTicker(s.cfg.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			saveCtx, cancel := jobcontext.Begin(context.Background(), sessionID, userKey, 10*time.Second)
			s.gateway.AutoSave(saveCtx, sessionID, userKey, tracker.Snapshot())
			cancel()
		}
	}
}
