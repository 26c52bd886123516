package entities

// ValidationVerdict is the result of analyzing one candidate answer. It is
// ephemeral: consumed immediately by the dialogue session and never persisted.
// The JSON field names match the structured output requested from the oracle.
type ValidationVerdict struct {
	HasFactualErrors             bool   `json:"has_factual_errors"`
	FactualErrorDetails          string `json:"factual_error_details"`
	HasInappropriateLanguage     bool   `json:"has_inappropriate_language"`
	InappropriateLanguageDetails string `json:"inappropriate_language_details"`
}

// Flagged reports whether the answer needs a correction instead of the next
// question.
func (v ValidationVerdict) Flagged() bool {
	return v.HasFactualErrors || v.HasInappropriateLanguage
}

// CleanVerdict returns the fail-open verdict used when the validator cannot
// produce a usable analysis.
func CleanVerdict() ValidationVerdict {
	return ValidationVerdict{}
}
