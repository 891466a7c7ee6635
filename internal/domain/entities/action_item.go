package entities

import "strings"

// ActionItem is one task extracted from a meeting transcript
type ActionItem struct {
	Task     string  `json:"task"`
	Assignee *string `json:"assignee"`
	Deadline *string `json:"deadline"`
	Context  string  `json:"context"`
}

// NewActionItem creates an action item for a task found in sentence
func NewActionItem(task, sentence string) (*ActionItem, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrEmptyTask
	}
	return &ActionItem{
		Task:    task,
		Context: sentence,
	}, nil
}

// WithAssignee sets the assignee when name is not empty
func (a *ActionItem) WithAssignee(name string) *ActionItem {
	if name != "" {
		a.Assignee = &name
	}
	return a
}

// WithDeadline sets the deadline when value is not empty
func (a *ActionItem) WithDeadline(value string) *ActionItem {
	if value != "" {
		a.Deadline = &value
	}
	return a
}

// AssigneeName returns the assignee or an empty string
func (a *ActionItem) AssigneeName() string {
	if a.Assignee == nil {
		return ""
	}
	return *a.Assignee
}

// DeadlineValue returns the deadline or an empty string
func (a *ActionItem) DeadlineValue() string {
	if a.Deadline == nil {
		return ""
	}
	return *a.Deadline
}
