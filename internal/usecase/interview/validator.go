package interview

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/interview-coach-team/interview-coach/errors"
	"github.com/interview-coach-team/interview-coach/internal/domain/entities"
)

// AnswerValidator screens candidate answers for factual errors and
// inappropriate language. It fails open: any oracle or parse failure yields a
// clean verdict, so a broken analysis path can never stall the interview.
type AnswerValidator struct {
	oracle  Oracle
	logger  *zap.Logger
	timeout time.Duration
}

// NewAnswerValidator creates a validator over the given oracle
func NewAnswerValidator(oracle Oracle, logger *zap.Logger, timeout time.Duration) *AnswerValidator {
	return &AnswerValidator{
		oracle:  oracle,
		logger:  logger,
		timeout: timeout,
	}
}

// Validate analyzes one answer with a single oracle call
func (v *AnswerValidator) Validate(ctx context.Context, answer string) entities.ValidationVerdict {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	response, err := v.oracle.Generate(ctx, buildAnalysisPrompt(answer))
	if err != nil {
		v.logger.Warn("answer analysis unavailable, failing open",
			zap.Error(err))
		return entities.CleanVerdict()
	}

	var verdict entities.ValidationVerdict
	if err := json.Unmarshal([]byte(extractJSON(response)), &verdict); err != nil {
		v.logger.Warn("answer analysis returned malformed JSON, failing open",
			zap.Error(apperrors.ErrValidatorMalformedResponse(err)))
		return entities.CleanVerdict()
	}

	return verdict
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
