package dto

import "github.com/openclaw/interaction-bridge/internal/domain/entity"

// BlockActionEvent is the JSON payload enqueued for a button or menu action on
// a posted message. The summary fields flatten into the top-level object.
type BlockActionEvent struct {
	InteractionType string `json:"interactionType"` // always "block_action"
	entity.InteractionSummary
}

// ViewEvent is the JSON payload enqueued for a modal submission or close.
// IsCleared is set only for view_closed events: true when Slack reports the
// whole modal stack was cleared, false otherwise.
type ViewEvent struct {
	InteractionType   string              `json:"interactionType"` // view_submission | view_closed
	ActionID          string              `json:"actionId"`        // "view:<callbackId>"
	CallbackID        string              `json:"callbackId"`
	ViewID            string              `json:"viewId,omitempty"`
	UserID            string              `json:"userId,omitempty"`
	TeamID            string              `json:"teamId,omitempty"`
	PrivateMetadata   string              `json:"privateMetadata,omitempty"`
	RoutedChannelID   string              `json:"routedChannelId,omitempty"`
	RoutedChannelType string              `json:"routedChannelType,omitempty"`
	Inputs            []entity.ModalInput `json:"inputs"`
	IsCleared         *bool               `json:"isCleared,omitempty"`
}
