package actionitem

// ActionItemResponse represents one extracted action item
type ActionItemResponse struct {
	Task     string  `json:"task"`
	Assignee *string `json:"assignee"`
	Deadline *string `json:"deadline"`
	Context  string  `json:"context"`
}

// ExtractResponse represents the result of an extraction
type ExtractResponse struct {
	Strategy string               `json:"strategy"`
	Count    int                  `json:"count"`
	Cached   bool                 `json:"cached"`
	Items    []ActionItemResponse `json:"items"`
}

// HealthResponse represents service health and capability states
type HealthResponse struct {
	Status       string            `json:"status"`
	Environment  string            `json:"environment"`
	Capabilities map[string]string `json:"capabilities"`
}
