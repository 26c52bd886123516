package interview

// StartRequest begins a new interview session. ResumeContext is the parsed
// resume/profile data the interviewer conditions its questions on.
type StartRequest struct {
	ResumeContext map[string]any `json:"resume_context"`
}

// AnswerRequest submits one text answer
type AnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1,max=10000"`
}
