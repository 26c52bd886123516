package common

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is a simple acknowledgment payload
type MessageResponse struct {
	Message string `json:"message"`
}
