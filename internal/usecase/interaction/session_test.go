package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
)

func TestDefaultResolver_Resolve(t *testing.T) {
	resolver := NewDefaultResolver("ops", "")

	tests := []struct {
		name     string
		hint     SessionHint
		expected string
	}{
		{
			name:     "no hint falls back to main session",
			hint:     SessionHint{},
			expected: "agent:ops:main",
		},
		{
			name:     "channel hint",
			hint:     SessionHint{ChannelID: "C123", ChannelType: "channel"},
			expected: "agent:ops:slack:channel:C123",
		},
		{
			name:     "missing channel type defaults to channel",
			hint:     SessionHint{ChannelID: "D456"},
			expected: "agent:ops:slack:channel:D456",
		},
		{
			name:     "im channel type",
			hint:     SessionHint{ChannelID: "D456", ChannelType: "im"},
			expected: "agent:ops:slack:im:D456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolver.Resolve(context.Background(), tt.hint))
		})
	}
}

func TestNewDefaultResolver_Defaults(t *testing.T) {
	resolver := NewDefaultResolver("", "")
	assert.Equal(t, "agent:main:main", resolver.Resolve(context.Background(), SessionHint{}))

	resolver = NewDefaultResolver("ops", "agent:ops:inbox")
	assert.Equal(t, "agent:ops:inbox", resolver.Resolve(context.Background(), SessionHint{}))
}

func TestDefaultResolver_Update(t *testing.T) {
	resolver := NewDefaultResolver("ops", "")

	resolver.Update("oncall", "")

	assert.Equal(t, "agent:oncall:main", resolver.Resolve(context.Background(), SessionHint{}))
	assert.Equal(t, "agent:oncall:slack:channel:C1",
		resolver.Resolve(context.Background(), SessionHint{ChannelID: "C1"}))

	resolver.Update("", "")
	assert.Equal(t, "agent:main:main", resolver.Resolve(context.Background(), SessionHint{}))
}

// trackingResolver counts calls so routing tests can assert whether the
// resolver was consulted at all.
type trackingResolver struct {
	calls []SessionHint
	key   string
}

func (r *trackingResolver) Resolve(_ context.Context, hint SessionHint) string {
	r.calls = append(r.calls, hint)
	return r.key
}

func TestRouteSession_EmbeddedKeyWinsWithoutResolver(t *testing.T) {
	resolver := &trackingResolver{key: "unused"}

	key := RouteSession(context.Background(), resolver, entity.ModalMetadata{
		SessionKey: "agent:ops:slack:channel:C999",
		ChannelID:  "C123",
	})

	assert.Equal(t, "agent:ops:slack:channel:C999", key)
	assert.Empty(t, resolver.calls)
}

func TestRouteSession_ChannelHint(t *testing.T) {
	resolver := &trackingResolver{key: "agent:ops:slack:im:D1"}

	key := RouteSession(context.Background(), resolver, entity.ModalMetadata{
		ChannelID:   "D1",
		ChannelType: "im",
	})

	assert.Equal(t, "agent:ops:slack:im:D1", key)
	assert.Equal(t, []SessionHint{{ChannelID: "D1", ChannelType: "im"}}, resolver.calls)
}

func TestRouteSession_NoMetadata(t *testing.T) {
	resolver := &trackingResolver{key: "agent:ops:main"}

	key := RouteSession(context.Background(), resolver, entity.ModalMetadata{})

	assert.Equal(t, "agent:ops:main", key)
	assert.Equal(t, []SessionHint{{}}, resolver.calls)
}
