package message

// GenerationRequest is the relay payload: a persona description and the
// user's message for one turn.
type GenerationRequest struct {
	CharacterPrompt string `json:"characterPrompt"`
	UserMessage     string `json:"userMessage"`
}

// Complete reports whether both fields are present. Whitespace is not
// trimmed; callers trim before sending.
func (r GenerationRequest) Complete() bool {
	return r.CharacterPrompt != "" && r.UserMessage != ""
}

// GenerationResult is the relay success body.
type GenerationResult struct {
	Text string `json:"text"`
}

// ErrorBody is the relay failure body for client-side faults.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ProviderErrorBody is the failure body of a provider call. Details is
// always written, even when the provider gave no message.
type ProviderErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
