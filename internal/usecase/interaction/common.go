package interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// joinContextKey builds the downstream correlation key by joining the non-empty
// parts with ":".
func joinContextKey(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ":")
}

// encodeEvent serializes an event payload and prepends the event text prefix.
// Marshaling these payloads cannot realistically fail; if it somehow does, an
// empty object keeps the event well-formed.
func encodeEvent(payload any) (string, json.RawMessage) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}
	return EventTextPrefix + string(raw), raw
}

// hasBlockList reports whether a message carried a non-empty block list.
func hasBlockList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	s := string(trimmed)
	return s != "null" && s != "[]"
}

// recordInteraction writes an audit row for an already-enqueued event. Fully
// best-effort: a nil repository or a failed write only produces a log line.
func recordInteraction(
	ctx context.Context,
	repo repository.InteractionRecordRepository,
	log logger.Logger,
	kind entity.InteractionType,
	actionID, userID, channelID, sessionKey, contextKey string,
	payload json.RawMessage,
) {
	if repo == nil {
		return
	}
	record := &entity.InteractionRecord{
		ID:              uuid.New().String(),
		InteractionType: kind,
		ActionID:        actionID,
		UserID:          userID,
		ChannelID:       channelID,
		SessionKey:      sessionKey,
		ContextKey:      contextKey,
		Payload:         payload,
		CreatedAt:       time.Now().UTC(),
	}
	if err := repo.Save(ctx, record); err != nil {
		log.Warn("failed to record interaction",
			"action_id", actionID,
			"error", err,
		)
	}
}
