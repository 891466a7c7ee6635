package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/errors"
	"github.com/johnquangdev/meeting-actions/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-actions/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-actions/internal/usecase/actionitems"
	ucerrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
	"github.com/johnquangdev/meeting-actions/pkg/validator"
)

// ActionItems handles action item extraction endpoints
type ActionItems struct {
	svc    actionitems.Service
	logger *zap.Logger
}

// NewActionItemsHandler creates a new action items handler
func NewActionItemsHandler(svc actionitems.Service, logger *zap.Logger) *ActionItems {
	return &ActionItems{svc: svc, logger: logger}
}

// Extract extracts action items from a transcript
// @Summary      Extract action items
// @Description  Splits the transcript into sentences and returns the action items found, with assignee and deadline when they can be determined
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        request  body      actionitem.ExtractRequest   true  "Transcript and optional participant roster"
// @Success      200      {object}  actionitem.ExtractResponse  "Extracted action items"
// @Failure      400      {object}  map[string]interface{}      "Malformed body or invalid fields"
// @Router       /action-items/extract [post]
func (h *ActionItems) Extract(c echo.Context) error {
	var req actionitem.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(validator.Message(err)))
	}

	strategy, err := actionitems.ParseStrategy(req.Strategy)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrUnknownStrategy(req.Strategy))
	}

	out, err := h.svc.Extract(c.Request().Context(), actionitems.ExtractRequest{
		Text:         req.Text,
		Participants: req.Participants,
		Strategy:     strategy,
	})
	if err != nil {
		if stdErrors.Is(err, ucerrors.ErrUnknownStrategy) {
			return HandleError(h.logger, c, errors.ErrUnknownStrategy(req.Strategy))
		}
		return HandleError(h.logger, c, errors.ErrExtractionFailed(err))
	}

	return HandleSuccess(h.logger, c, presenter.ToExtractResponse(out))
}
