package interaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/openclaw/interaction-bridge/internal/domain/entity"
)

// SessionHint carries optional channel context for session-key resolution.
type SessionHint struct {
	ChannelID   string
	ChannelType string
}

// SessionKeyResolver maps a channel hint to the agent session that should
// receive the event. An empty hint asks the resolver for its default session.
type SessionKeyResolver interface {
	Resolve(ctx context.Context, hint SessionHint) string
}

// DefaultResolver derives session keys from channel context using the
// agent-runtime convention "agent:<agent>:slack:<channelType>:<channelID>",
// falling back to the configured main session when no hint is available.
type DefaultResolver struct {
	mu      sync.RWMutex
	agentID string
	mainKey string
}

// NewDefaultResolver creates a resolver for the given agent. mainKey may be
// empty, in which case "agent:<agent>:main" is used as the default session.
func NewDefaultResolver(agentID, mainKey string) *DefaultResolver {
	if agentID == "" {
		agentID = "main"
	}
	if mainKey == "" {
		mainKey = fmt.Sprintf("agent:%s:main", agentID)
	}
	return &DefaultResolver{agentID: agentID, mainKey: mainKey}
}

// Resolve implements SessionKeyResolver.
func (r *DefaultResolver) Resolve(_ context.Context, hint SessionHint) string {
	r.mu.RLock()
	agentID, mainKey := r.agentID, r.mainKey
	r.mu.RUnlock()

	if hint.ChannelID == "" {
		return mainKey
	}
	channelType := hint.ChannelType
	if channelType == "" {
		channelType = "channel"
	}
	return fmt.Sprintf("agent:%s:slack:%s:%s", agentID, channelType, hint.ChannelID)
}

// Update swaps the agent identity. Used by config hot reload.
func (r *DefaultResolver) Update(agentID, mainKey string) {
	if agentID == "" {
		agentID = "main"
	}
	if mainKey == "" {
		mainKey = fmt.Sprintf("agent:%s:main", agentID)
	}
	r.mu.Lock()
	r.agentID = agentID
	r.mainKey = mainKey
	r.mu.Unlock()
}

// RouteSession resolves the session key for a modal event from its decoded
// private metadata, in three tiers: an embedded session key is used verbatim;
// an embedded channel hint is handed to the resolver; otherwise the resolver
// is asked with no hints at all and applies its default-session policy.
func RouteSession(ctx context.Context, resolver SessionKeyResolver, meta entity.ModalMetadata) string {
	if meta.SessionKey != "" {
		return meta.SessionKey
	}
	if meta.ChannelID != "" {
		return resolver.Resolve(ctx, SessionHint{
			ChannelID:   meta.ChannelID,
			ChannelType: meta.ChannelType,
		})
	}
	return resolver.Resolve(ctx, SessionHint{})
}
