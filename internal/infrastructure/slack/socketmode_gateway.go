package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/config"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/resilience"
)

// InteractionHandler consumes interactive-component payloads delivered over
// Socket Mode. ack must be invoked before any other work; the gateway calls it
// itself after the handler returns in case the handler declined the event, so
// every envelope is acknowledged exactly once.
type InteractionHandler interface {
	HandleInteraction(ctx context.Context, ack func(), payload json.RawMessage)
}

// BackoffConfig controls reconnection pacing.
type BackoffConfig struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

// DefaultBackoffConfig returns the default reconnection pacing.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Initial:    500 * time.Millisecond,
		Max:        60 * time.Second,
		Multiplier: 1.5,
	}
}

// Backoff returns the delay before the given attempt (0-based).
func (c BackoffConfig) Backoff(attempt int) time.Duration {
	d := float64(c.Initial) * math.Pow(c.Multiplier, float64(attempt))
	if d > float64(c.Max) {
		d = float64(c.Max)
	}
	return time.Duration(d)
}

// Gateway runs the Socket Mode connection and routes interactive events to the
// registered handler. Slash commands and Events API envelopes are acknowledged
// and dropped; the bridge only handles interactions.
type Gateway struct {
	client    *socketmode.Client
	api       *slack.Client
	cfg       config.SocketModeConfig
	logger    logger.Logger
	backoff   BackoffConfig
	breaker   *resilience.CircuitBreaker
	handler   InteractionHandler
	connected atomic.Bool
	teamID    string
}

// NewGateway creates a Socket Mode gateway.
func NewGateway(botToken string, cfg config.SocketModeConfig, log logger.Logger) (*Gateway, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if cfg.AppToken == "" {
		return nil, fmt.Errorf("socket mode app token is required")
	}

	api := slack.New(
		botToken,
		slack.OptionDebug(cfg.Debug),
		slack.OptionAppLevelToken(cfg.AppToken),
	)

	return &Gateway{
		client:  socketmode.New(api, socketmode.OptionDebug(cfg.Debug)),
		api:     api,
		cfg:     cfg,
		logger:  log,
		backoff: DefaultBackoffConfig(),
		breaker: resilience.NewCircuitBreaker("slack-socketmode", 5, time.Minute),
	}, nil
}

// SetInteractionHandler registers the handler for interactive events. A nil
// handler leaves interactions unrouted; envelopes are still acknowledged.
func (g *Gateway) SetInteractionHandler(h InteractionHandler) {
	g.handler = h
}

// Run verifies authentication (with backoff and a circuit breaker against
// persistent failure), starts the event loop, and blocks on the Socket Mode
// connection until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	for attempt := 0; ; attempt++ {
		if !g.breaker.Allow() {
			return fmt.Errorf("circuit breaker open after %d consecutive failures", g.breaker.Failures())
		}

		auth, err := g.api.AuthTestContext(ctx)
		if err == nil {
			g.breaker.RecordSuccess()
			g.teamID = auth.TeamID
			g.logger.Info("slack auth verified",
				"team_id", auth.TeamID,
				"bot_user_id", auth.UserID,
			)
			break
		}

		g.logger.Warn("slack auth test failed",
			"error", err,
			"attempt", attempt+1,
		)
		if g.breaker.RecordFailure() {
			return fmt.Errorf("circuit breaker opened: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.backoff.Backoff(attempt)):
		}
	}

	go g.eventLoop(ctx)

	g.connected.Store(true)
	defer g.connected.Store(false)
	return g.client.RunContext(ctx)
}

func (g *Gateway) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-g.client.Events:
			g.handleEvent(ctx, evt)
		}
	}
}

func (g *Gateway) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		g.logger.Info("connecting to slack via socket mode")

	case socketmode.EventTypeConnectionError:
		g.logger.Error("socket mode connection error", "error", evt.Data)

	case socketmode.EventTypeConnected:
		g.logger.Info("connected to slack via socket mode")

	case socketmode.EventTypeInteractive:
		if evt.Request == nil {
			return
		}
		req := *evt.Request
		ackOnce := sync.OnceFunc(func() { g.client.Ack(req) })
		if g.handler != nil {
			g.handler.HandleInteraction(ctx, ackOnce, req.Payload)
		}
		// The handler acks first on every path it handles; this covers
		// payloads it declined.
		ackOnce()

	case socketmode.EventTypeSlashCommand, socketmode.EventTypeEventsAPI:
		// Out of scope for the bridge; acknowledge so Slack does not retry.
		if evt.Request != nil {
			g.client.Ack(*evt.Request)
		}
		g.logger.Debug("ignoring non-interaction envelope", "type", evt.Type)

	default:
		g.logger.Debug("unhandled socket mode event", "type", evt.Type)
	}
}

// IsConnected reports whether the gateway believes the connection is up.
func (g *Gateway) IsConnected() bool {
	return g.connected.Load()
}

// TeamID returns the workspace ID seen at auth time.
func (g *Gateway) TeamID() string {
	return g.teamID
}

// API exposes the underlying Web API client for sharing with the UI updater.
func (g *Gateway) API() *slack.Client {
	return g.api
}
