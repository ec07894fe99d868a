package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeModalMetadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ModalMetadata
	}{
		{
			name:     "empty string",
			raw:      "",
			expected: ModalMetadata{},
		},
		{
			name:     "whitespace only",
			raw:      "  \n\t ",
			expected: ModalMetadata{},
		},
		{
			name:     "malformed json",
			raw:      "{not json at all",
			expected: ModalMetadata{},
		},
		{
			name:     "session key",
			raw:      `{"sessionKey":"agent:ops:slack:im:D1"}`,
			expected: ModalMetadata{SessionKey: "agent:ops:slack:im:D1"},
		},
		{
			name: "channel hint",
			raw:  `{"channelId":"C1","channelType":"group"}`,
			expected: ModalMetadata{
				ChannelID:   "C1",
				ChannelType: "group",
			},
		},
		{
			name:     "unknown fields ignored",
			raw:      `{"channelId":"C1","somethingElse":42}`,
			expected: ModalMetadata{ChannelID: "C1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeModalMetadata(tt.raw))
		})
	}
}

func TestModalMetadata_IsZero(t *testing.T) {
	assert.True(t, ModalMetadata{}.IsZero())
	assert.False(t, ModalMetadata{SessionKey: "k"}.IsZero())
	assert.False(t, ModalMetadata{ChannelID: "C1"}.IsZero())
	assert.False(t, ModalMetadata{ChannelType: "im"}.IsZero())
}
