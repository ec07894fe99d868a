package interaction

import (
	"context"
	"encoding/json"
)

// EventTextPrefix is prepended to every enqueued system event's text so the
// agent runtime can recognize interaction events.
const EventTextPrefix = "Slack interaction: "

// AckFunc acknowledges the interaction to the host platform. Handlers must
// invoke it before doing any other work; Slack shows a client-side error
// indicator when acknowledgment is late.
type AckFunc func()

// Enqueuer is the internal system-event queue. Enqueue is fire-and-forget:
// durability and delivery are the queue's responsibility, not the handler's.
type Enqueuer interface {
	Enqueue(text, sessionKey, contextKey string)
}

// UIUpdater mutates previously sent Slack surfaces. Both operations are
// best-effort from the handlers' perspective.
type UIUpdater interface {
	// ConfirmAction rewrites the actions block identified by blockID in the
	// message's block list into a static confirmation showing label, pruning
	// bulk rows once nothing actionable remains, and pushes the result back.
	ConfirmAction(ctx context.Context, channelID, messageTS, fallbackText, blockID, label string, rawBlocks json.RawMessage) error

	// RespondEphemeral sends a message visible only to the acting user.
	RespondEphemeral(ctx context.Context, channelID, userID, text string) error
}
