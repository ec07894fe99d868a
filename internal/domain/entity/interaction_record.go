package entity

import (
	"encoding/json"
	"time"
)

// InteractionType identifies which interactive surface produced an event.
type InteractionType string

const (
	InteractionTypeBlockAction    InteractionType = "block_action"
	InteractionTypeViewSubmission InteractionType = "view_submission"
	InteractionTypeViewClosed     InteractionType = "view_closed"
)

// InteractionRecord is one append-only audit row describing a system event
// enqueued for the agent runtime. Records are written best-effort after the
// event is already on the queue; they never participate in handler control
// flow.
type InteractionRecord struct {
	ID              string
	InteractionType InteractionType
	ActionID        string
	UserID          string
	ChannelID       string
	SessionKey      string
	ContextKey      string
	Payload         json.RawMessage // the enqueued event payload as serialized
	CreatedAt       time.Time
}
