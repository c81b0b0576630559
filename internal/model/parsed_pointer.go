package model

// ParsedPointer is a model-proposed pointer awaiting approval.
type ParsedPointer struct {
	Title             string  `json:"title"`
	Topic             Topic   `json:"topic"`
	ActionSteps       string  `json:"action_steps"`
	SimilarityScore   float64 `json:"similarity_score"`
	ExistingPointerID string  `json:"existing_pointer_id,omitempty"`
	AIReasoning       string  `json:"ai_reasoning"`
	IsUpdate          bool    `json:"is_update"`
}

type SuggestedQuestion struct {
	Question   string     `json:"question"`
	Topic      Topic      `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Source     string     `json:"source,omitempty"`
}

// TargetsExisting reports whether applying the suggestion updates an existing
// pointer rather than creating a new one.
func (p ParsedPointer) TargetsExisting() bool {
	return p.IsUpdate && p.ExistingPointerID != ""
}
