package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	dto "github.com/interview-coach-team/interview-coach/internal/adapter/dto/interview"
	"github.com/interview-coach-team/interview-coach/internal/domain/repositories"
	httpmw "github.com/interview-coach-team/interview-coach/internal/infrastructure/http/middleware"
	interviewUsecase "github.com/interview-coach-team/interview-coach/internal/usecase/interview"
)

// Interview handles live interview HTTP requests
type Interview struct {
	service     *interviewUsecase.Service
	transcripts repositories.TranscriptRepository
	metrics     repositories.MetricsRepository
	feedback    repositories.FeedbackRepository
	logger      *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(
	service *interviewUsecase.Service,
	transcripts repositories.TranscriptRepository,
	metrics repositories.MetricsRepository,
	feedback repositories.FeedbackRepository,
	logger *zap.Logger,
) *Interview {
	return &Interview{
		service:     service,
		transcripts: transcripts,
		metrics:     metrics,
		feedback:    feedback,
		logger:      logger,
	}
}

// Start handles POST /interviews
// @Summary      Start an interview
// @Description  Opens a live mock-interview session for the authenticated user and returns the opening question
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      interview.StartRequest  true  "Resume context"
// @Success      201      {object}  interview.StartResponse  "Interview started"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Failure      409      {object}  common.ErrorResponse  "An interview is already active"
// @Router       /interviews [post]
func (h *Interview) Start(c echo.Context) error {
	var req dto.StartRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid_request", err)
	}

	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	result, err := h.service.StartInterview(c.Request().Context(), userID.String(), req.ResumeContext)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.StartResponse{
		SessionID:    result.SessionID,
		Question:     result.Question,
		RoomName:     result.RoomName,
		LivekitToken: result.RoomToken,
		LivekitURL:   result.LiveKitURL,
	})
}

// Answer handles POST /interviews/answer
// @Summary      Submit an answer
// @Description  Submits a text answer; the reply is the next question, a correction, or the closing statement if the answer terminated the interview
// @Tags         Interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      interview.AnswerRequest  true  "Candidate answer"
// @Success      200      {object}  interview.AnswerResponse  "Interviewer reply"
// @Failure      404      {object}  common.ErrorResponse  "No active session"
// @Failure      409      {object}  common.ErrorResponse  "Another operation is in progress"
// @Failure      504      {object}  common.ErrorResponse  "Dialogue service timed out"
// @Router       /interviews/answer [post]
func (h *Interview) Answer(c echo.Context) error {
	var req dto.AnswerRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid_request", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, "validation_failed", err)
	}

	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	result, err := h.service.SubmitAnswer(c.Request().Context(), userID.String(), req.Answer)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AnswerResponse{
		Reply:      result.Reply,
		Ended:      result.Ended,
		Transcript: result.Transcript,
	})
}

// AudioAnswer handles POST /interviews/answer/audio
// @Summary      Submit a recorded answer
// @Description  Uploads answer audio, transcribes it and processes the text as an answer
// @Tags         Interviews
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio  formData  file  true  "Answer audio recording"
// @Success      200    {object}  interview.AnswerResponse  "Interviewer reply"
// @Failure      400    {object}  common.ErrorResponse  "Missing audio file"
// @Failure      404    {object}  common.ErrorResponse  "No active session"
// @Failure      500    {object}  common.ErrorResponse  "Transcription failed"
// @Router       /interviews/answer/audio [post]
func (h *Interview) AudioAnswer(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return respondBadRequest(c, "missing_audio", err)
	}

	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondBadRequest(c, "unreadable_audio", err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, text, err := h.service.SubmitAudioAnswer(c.Request().Context(), userID.String(), file, contentType)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AnswerResponse{
		Reply:             result.Reply,
		Ended:             result.Ended,
		Transcript:        result.Transcript,
		TranscribedAnswer: text,
	})
}

// End handles POST /interviews/end
// @Summary      End the interview
// @Description  Closes the live session and returns the closing statement, transcript and final behavioral metrics
// @Tags         Interviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  interview.EndResponse  "Interview closed"
// @Failure      404  {object}  common.ErrorResponse  "No active session"
// @Failure      409  {object}  common.ErrorResponse  "Another operation is in progress"
// @Router       /interviews/end [post]
func (h *Interview) End(c echo.Context) error {
	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	result, err := h.service.EndInterview(c.Request().Context(), userID.String())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.EndResponse{
		Closing:    result.Closing,
		Transcript: result.Transcript,
		Metrics:    result.Metrics,
	})
}

// Metrics handles GET /interviews/metrics
// @Summary      Live behavioral metrics
// @Description  Returns the current metrics snapshot of the user's live session
// @Tags         Interviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  interview.MetricsResponse  "Current snapshot"
// @Failure      404  {object}  common.ErrorResponse  "No active session"
// @Router       /interviews/metrics [get]
func (h *Interview) Metrics(c echo.Context) error {
	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	snapshot, err := h.service.SessionMetrics(userID.String())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MetricsResponse{Metrics: snapshot})
}

// Report handles GET /interviews/:session_id/report
// @Summary      Interview report
// @Description  Returns the stored transcript, metrics records and feedback of a finished interview
// @Tags         Interviews
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path      string  true  "Session ID"
// @Success      200         {object}  interview.ReportResponse  "Stored report"
// @Failure      403         {object}  common.ErrorResponse  "Report belongs to another user"
// @Failure      404         {object}  common.ErrorResponse  "Unknown session"
// @Router       /interviews/{session_id}/report [get]
func (h *Interview) Report(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return respondError(c, apperrors.ErrInvalidArgument("session_id is required"))
	}

	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	ctx := c.Request().Context()

	transcript, err := h.transcripts.GetBySessionID(ctx, sessionID)
	if err != nil {
		return respondError(c, apperrors.ErrInternal(err))
	}
	if transcript == nil {
		return respondError(c, apperrors.ErrNotFound("interview"))
	}
	if transcript.UserKey != userID.String() {
		return respondError(c, apperrors.ErrForbidden("this interview belongs to another user"))
	}

	metricsRecords, err := h.metrics.ListBySession(ctx, sessionID)
	if err != nil {
		return respondError(c, apperrors.ErrInternal(err))
	}

	feedback, err := h.feedback.GetBySessionID(ctx, sessionID)
	if err != nil {
		return respondError(c, apperrors.ErrInternal(err))
	}

	return c.JSON(http.StatusOK, dto.ReportResponse{
		Transcript: transcript,
		Metrics:    metricsRecords,
		Feedback:   feedback,
	})
}

// History handles GET /interviews/history
// @Summary      Interview history
// @Description  Lists the authenticated user's past interviews, newest first
// @Tags         Interviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  interview.HistoryResponse  "Past interviews"
// @Router       /interviews/history [get]
func (h *Interview) History(c echo.Context) error {
	userID, ok := httpmw.UserIDFromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrUnauthenticated())
	}

	records, err := h.transcripts.ListByUser(c.Request().Context(), userID.String())
	if err != nil {
		return respondError(c, apperrors.ErrInternal(err))
	}

	return c.JSON(http.StatusOK, dto.HistoryResponse{Interviews: records})
}
