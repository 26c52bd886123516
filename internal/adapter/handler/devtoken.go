package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	jwtpkg "github.com/interview-coach-team/interview-coach/pkg/jwt"
)

// DevToken issues access tokens for local development and integration
// testing. The route is only registered outside production; real tokens come
// from the coaching platform's auth service.
type DevToken struct {
	jwtManager *jwtpkg.Manager
}

// NewDevTokenHandler creates a dev token handler
func NewDevTokenHandler(jwtManager *jwtpkg.Manager) *DevToken {
	return &DevToken{jwtManager: jwtManager}
}

type devTokenRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type devTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Issue handles POST /dev/token
func (h *DevToken) Issue(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid_request", err)
	}

	userID := uuid.New()
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return respondBadRequest(c, "invalid_user_id", err)
		}
		userID = parsed
	}

	token, err := h.jwtManager.GenerateAccessToken(userID, req.Email, "candidate")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token_generation_failed"})
	}

	return c.JSON(http.StatusOK, devTokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtManager.GetAccessExpiry().Seconds()),
	})
}
