package presenter

import (
	"github.com/johnquangdev/meeting-actions/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	"github.com/johnquangdev/meeting-actions/pkg/nlp"
)

// ToActionItemResponse converts an ActionItem entity to its DTO
func ToActionItemResponse(item entities.ActionItem) actionitem.ActionItemResponse {
	return actionitem.ActionItemResponse{
		Task:     item.Task,
		Assignee: item.Assignee,
		Deadline: item.Deadline,
		Context:  item.Context,
	}
}

// ToActionItemResponses converts a list of action items, never returning nil
func ToActionItemResponses(items []entities.ActionItem) []actionitem.ActionItemResponse {
	responses := make([]actionitem.ActionItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToActionItemResponse(item)
	}
	return responses
}

// ToExtractResponse converts an extraction result to its DTO
func ToExtractResponse(out *actionitems.Extraction) *actionitem.ExtractResponse {
	if out == nil {
		return nil
	}

	return &actionitem.ExtractResponse{
		Strategy: out.Strategy.String(),
		Count:    len(out.Items),
		Cached:   out.Cached,
		Items:    ToActionItemResponses(out.Items),
	}
}

// ToHealthResponse reports capability states by name
func ToHealthResponse(environment string, capabilities map[string]nlp.State) *actionitem.HealthResponse {
	states := make(map[string]string, len(capabilities))
	for name, state := range capabilities {
		states[name] = string(state)
	}

	return &actionitem.HealthResponse{
		Status:       "ok",
		Environment:  environment,
		Capabilities: states,
	}
}
