package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/adapter/dto/common"
)

// respondError translates an application error into the uniform error payload
func respondError(c echo.Context, err error) error {
	var appErr apperrors.AppError
	if stderrors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Error:   appErr.Code.String(),
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Error:   apperrors.ErrorCode_INTERNAL.String(),
		Message: "Internal server error",
	})
}

// respondBadRequest is used for bind/validation failures before the request
// reaches a usecase
func respondBadRequest(c echo.Context, reason string, err error) error {
	return c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Error:   reason,
		Message: err.Error(),
	})
}
