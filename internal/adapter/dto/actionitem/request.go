package actionitem

// ExtractRequest represents a transcript submitted for action item extraction
type ExtractRequest struct {
	Text         string   `json:"text" validate:"max=500000"`
	Participants []string `json:"participants,omitempty" validate:"max=500,dive,notblank,max=200"`
	Strategy     string   `json:"strategy,omitempty" validate:"omitempty,oneof=auto keyword syntactic"`
}
