package model

// ContentAnalysis is the structured classification derived from a raw
// marketing prompt. It is recomputed per request and never persisted.
type ContentAnalysis struct {
	Industry      Industry    `json:"industry"`
	Tone          Tone        `json:"tone"`
	VisualStyle   VisualStyle `json:"visualStyle"`
	Complexity    Complexity  `json:"complexity"`
	Keywords      []string    `json:"keywords"`
	SuggestedFlow []Category  `json:"suggestedFlow"`
}
