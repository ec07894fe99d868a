package handler

import (
	"context"
	"net/http"

	"github.com/openclaw/interaction-bridge/internal/domain/logger"
)

// SlackInteractionHandler handles Slack interactive component callbacks
// delivered over HTTP. Signature verification is handled by the
// middleware.SlackAuth middleware.
//
// Slack requires an acknowledgement within three seconds, so the handler
// writes 200 and flushes before any downstream processing runs.
type SlackInteractionHandler struct {
	router *InteractionRouter
	logger logger.Logger
}

// NewSlackInteractionHandler creates a new Slack interaction handler.
func NewSlackInteractionHandler(router *InteractionRouter, log logger.Logger) *SlackInteractionHandler {
	if log == nil {
		log = logger.Nop{}
	}
	return &SlackInteractionHandler{
		router: router,
		logger: log,
	}
}

// ServeHTTP handles POST /webhook/slack/interactions
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form", "error", err)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	payload := r.FormValue("payload")
	if payload == "" {
		http.Error(w, "missing payload", http.StatusBadRequest)
		return
	}

	acked := false
	ack := func() {
		if acked {
			return
		}
		acked = true
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}

	// Processing continues past the flushed ack, so detach from the
	// request context before downstream middleware cancels it.
	h.router.HandleInteraction(context.WithoutCancel(r.Context()), ack, []byte(payload))

	// Backstop in case a handler path returned without acking.
	ack()
}
