package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openclaw/interaction-bridge/internal/adapter/handler"
	"github.com/openclaw/interaction-bridge/internal/adapter/handler/middleware"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/observability"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	SlackInteraction *handler.SlackInteractionHandler
	Health           *handler.HealthHandler
	Ready            *handler.ReadyHandler
	Metrics          *handler.MetricsHandler
	Records          *handler.RecordsHandler
	Reload           *handler.ReloadHandler
}

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	SigningSecret  string
	RequestTimeout time.Duration
	Metrics        *observability.Metrics
}

// NewRouter creates the HTTP router with all handlers.
func NewRouter(handlers *Handlers, opts RouterOptions, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	if handlers.Health != nil {
		mux.Handle("/health", handlers.Health)
		mux.Handle("/", handlers.Health) // Root path returns health
	}
	if handlers.Ready != nil {
		mux.Handle("/ready", handlers.Ready)
	}

	if handlers.Metrics != nil {
		mux.Handle("/metrics", handlers.Metrics)
	}

	// Interaction webhook, guarded by Slack signature verification
	if handlers.SlackInteraction != nil {
		var h http.Handler = handlers.SlackInteraction
		h = middleware.SlackAuth(opts.SigningSecret, logger)(h)
		mux.Handle("/webhook/slack/interactions", h)
	}

	if handlers.Records != nil {
		mux.Handle("/api/interactions/recent", handlers.Records)
	}

	if handlers.Reload != nil {
		mux.Handle("/-/reload", handlers.Reload)
	}

	// Apply middleware stack
	var h http.Handler = mux
	if opts.RequestTimeout > 0 {
		h = middleware.Timeout(opts.RequestTimeout, logger)(h)
	}
	if opts.Metrics != nil {
		h = middleware.Observability(opts.Metrics)(h)
	}
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
