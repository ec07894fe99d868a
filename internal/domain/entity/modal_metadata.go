package entity

import (
	"encoding/json"
	"strings"
)

// ModalMetadata is the structured payload a modal carries in its
// private_metadata string. It is set when the modal is opened and round-tripped
// back on submit/close. It pins a session directly, hints at a channel for the
// session router, or carries nothing at all.
type ModalMetadata struct {
	SessionKey  string `json:"sessionKey,omitempty"`
	ChannelID   string `json:"channelId,omitempty"`
	ChannelType string `json:"channelType,omitempty"`
}

// IsZero returns true when no routing information was embedded.
func (m ModalMetadata) IsZero() bool {
	return m.SessionKey == "" && m.ChannelID == "" && m.ChannelType == ""
}

// DecodeModalMetadata parses a modal's private_metadata string. Empty,
// whitespace-only, or malformed input yields the zero value; it never fails.
func DecodeModalMetadata(raw string) ModalMetadata {
	var meta ModalMetadata
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return ModalMetadata{}
	}
	return meta
}
