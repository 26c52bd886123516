package interview

import "context"

// Oracle is the dialogue backend generating interviewer utterances. The
// Gemini client satisfies this; tests substitute scripted fakes.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
