package interview

import "strings"

// Command is a control instruction recognized inside a candidate answer
type Command int

const (
	// CommandNone means the input is an ordinary answer
	CommandNone Command = iota
	// CommandEndInterview terminates the session
	CommandEndInterview
)

// menu ids kept for backwards compatibility with the voice-menu frontend,
// where "4" is the end-interview option
var endPhrases = map[string]struct{}{
	"end interview":     {},
	"end the interview": {},
	"4":                 {},
}

// ParseCommand recognizes control phrases in a candidate's input. Matching is
// case-insensitive and ignores surrounding whitespace and trailing
// punctuation.
func ParseCommand(input string) Command {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.TrimRight(normalized, ".!?")
	normalized = strings.TrimSpace(normalized)

	if _, ok := endPhrases[normalized]; ok {
		return CommandEndInterview
	}
	return CommandNone
}
