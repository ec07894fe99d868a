package dto

import "encoding/json"

// Interaction payload types as sent by Slack.
const (
	PayloadTypeBlockActions   = "block_actions"
	PayloadTypeViewSubmission = "view_submission"
	PayloadTypeViewClosed     = "view_closed"
)

// InteractionPayload mirrors the subset of Slack's interaction callback JSON
// the bridge consumes. It is decoded directly from the wire (Socket Mode
// request payload or the webhook form's payload field) so that every field the
// normalizer needs is under our control. Absent fields decode to zero values
// and are treated as "not present", never as errors.
type InteractionPayload struct {
	Type        string      `json:"type"`
	User        UserRef     `json:"user"`
	Team        TeamRef     `json:"team"`
	Channel     ChannelRef  `json:"channel"`
	Message     MessageRef  `json:"message"`
	Actions     []RawAction `json:"actions"`
	View        ViewRef     `json:"view"`
	TriggerID   string      `json:"trigger_id"`
	ResponseURL string      `json:"response_url"`
	IsCleared   bool        `json:"is_cleared"`
}

// UserRef identifies the acting user.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TeamRef identifies the workspace.
type TeamRef struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

// ChannelRef identifies the channel an interaction originated from.
type ChannelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageRef is the message a block action was attached to. Blocks stay raw;
// only the UI updater parses them, and only when a rewrite is attempted.
type MessageRef struct {
	TS     string          `json:"ts"`
	Text   string          `json:"text"`
	Blocks json.RawMessage `json:"blocks"`
}

// ViewRef is the modal a view event refers to.
type ViewRef struct {
	ID              string    `json:"id"`
	TeamID          string    `json:"team_id"`
	CallbackID      string    `json:"callback_id"`
	PrivateMetadata string    `json:"private_metadata"`
	State           ViewState `json:"state"`
}

// ViewState is the nested blockId -> actionId -> raw action mapping Slack
// reports for a modal's inputs.
type ViewState struct {
	Values map[string]map[string]RawAction `json:"values"`
}

// RawAction is one interactive element's payload: a button, any select
// variant, a date/time picker, or a plain text input. Which selection fields
// are populated depends on the element type.
type RawAction struct {
	Type     string  `json:"type"`
	ActionID string  `json:"action_id"`
	BlockID  string  `json:"block_id"`
	Text     TextRef `json:"text"`
	Value    string  `json:"value"`
	ActionTS string  `json:"action_ts"`

	SelectedOption        *OptionRef  `json:"selected_option,omitempty"`
	SelectedOptions       []OptionRef `json:"selected_options,omitempty"`
	SelectedUser          string      `json:"selected_user,omitempty"`
	SelectedUsers         []string    `json:"selected_users,omitempty"`
	SelectedChannel       string      `json:"selected_channel,omitempty"`
	SelectedChannels      []string    `json:"selected_channels,omitempty"`
	SelectedConversation  string      `json:"selected_conversation,omitempty"`
	SelectedConversations []string    `json:"selected_conversations,omitempty"`
	SelectedDate          string      `json:"selected_date,omitempty"`
	SelectedTime          string      `json:"selected_time,omitempty"`
	SelectedDateTime      int64       `json:"selected_date_time,omitempty"`
}

// Label returns the element's display text, falling back to its action ID.
func (a RawAction) Label() string {
	if a.Text.Text != "" {
		return a.Text.Text
	}
	return a.ActionID
}

// TextRef is a Block Kit text object.
type TextRef struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// OptionRef is one selectable option of a select element.
type OptionRef struct {
	Text  TextRef `json:"text"`
	Value string  `json:"value"`
}

// ParseInteractionPayload decodes an interaction callback from raw JSON.
func ParseInteractionPayload(raw []byte) (InteractionPayload, error) {
	var p InteractionPayload
	err := json.Unmarshal(raw, &p)
	return p, err
}
