package errors

// ErrorCode identifies a class of application error.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN

	// Interview session lifecycle
	ErrorCode_SESSION_ALREADY_ACTIVE
	ErrorCode_SESSION_BUSY
	ErrorCode_NO_ACTIVE_SESSION
	ErrorCode_SESSION_WRONG_PHASE

	// External dependencies
	ErrorCode_ORACLE_UNAVAILABLE
	ErrorCode_ORACLE_TIMEOUT
	ErrorCode_VALIDATOR_MALFORMED_RESPONSE
	ErrorCode_TRANSCRIPTION_FAILED
	ErrorCode_STORAGE_FAILURE
)

var codeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                    "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:              "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                    "FORBIDDEN",
	ErrorCode_SESSION_ALREADY_ACTIVE:       "SESSION_ALREADY_ACTIVE",
	ErrorCode_SESSION_BUSY:                 "SESSION_BUSY",
	ErrorCode_NO_ACTIVE_SESSION:            "NO_ACTIVE_SESSION",
	ErrorCode_SESSION_WRONG_PHASE:          "SESSION_WRONG_PHASE",
	ErrorCode_ORACLE_UNAVAILABLE:           "ORACLE_UNAVAILABLE",
	ErrorCode_ORACLE_TIMEOUT:               "ORACLE_TIMEOUT",
	ErrorCode_VALIDATOR_MALFORMED_RESPONSE: "VALIDATOR_MALFORMED_RESPONSE",
	ErrorCode_TRANSCRIPTION_FAILED:         "TRANSCRIPTION_FAILED",
	ErrorCode_STORAGE_FAILURE:              "STORAGE_FAILURE",
}

// String returns the canonical name of the error code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
