package entity

// InteractionSummary is the flat, normalized record of one interactive-component
// action. Every select variant (static, user, channel, conversation, single or
// multi) flattens into SelectedValues; buttons and free-text inputs flatten into
// Value/InputValue. Optional fields carry omitempty so that absent data stays
// absent in the serialized payload.
type InteractionSummary struct {
	ActionID         string   `json:"actionId"`
	BlockID          string   `json:"blockId,omitempty"`
	ActionType       string   `json:"actionType,omitempty"`
	Value            string   `json:"value,omitempty"`
	SelectedValues   []string `json:"selectedValues,omitempty"`
	SelectedLabels   []string `json:"selectedLabels,omitempty"`
	SelectedDate     string   `json:"selectedDate,omitempty"`
	SelectedTime     string   `json:"selectedTime,omitempty"`
	SelectedDateTime int64    `json:"selectedDateTime,omitempty"`
	InputValue       string   `json:"inputValue,omitempty"`

	// Context from the event envelope.
	UserID    string `json:"userId,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	MessageTS string `json:"messageTs,omitempty"`
}

// IsButton returns true if this summarizes a button click.
func (s *InteractionSummary) IsButton() bool {
	return s.ActionType == "button"
}

// IsSelect returns true if this summarizes any select-menu variant.
func (s *InteractionSummary) IsSelect() bool {
	switch s.ActionType {
	case "static_select", "multi_static_select",
		"users_select", "multi_users_select",
		"channels_select", "multi_channels_select",
		"conversations_select", "multi_conversations_select":
		return true
	}
	return false
}

// ModalInput is an InteractionSummary keyed by its (BlockID, ActionID) pair,
// one per input found in a submitted modal's state.
type ModalInput = InteractionSummary
