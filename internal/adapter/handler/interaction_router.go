package handler

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/observability"
	"github.com/openclaw/interaction-bridge/internal/usecase/interaction"
)

// InteractionRouter parses raw interaction payloads and dispatches them
// to the matching use case. Payloads whose action IDs do not carry the
// configured prefix are acknowledged and dropped so that other apps'
// components pass through untouched.
type InteractionRouter struct {
	blockAction *interaction.BlockActionUseCase
	view        *interaction.ViewUseCase
	metrics     *observability.Metrics
	logger      logger.Logger

	mu           sync.RWMutex
	actionPrefix string
}

// NewInteractionRouter creates a router. The metrics argument may be nil.
func NewInteractionRouter(
	blockAction *interaction.BlockActionUseCase,
	view *interaction.ViewUseCase,
	actionPrefix string,
	metrics *observability.Metrics,
	log logger.Logger,
) *InteractionRouter {
	if log == nil {
		log = logger.Nop{}
	}
	return &InteractionRouter{
		blockAction:  blockAction,
		view:         view,
		actionPrefix: actionPrefix,
		metrics:      metrics,
		logger:       log,
	}
}

// HandleInteraction implements the gateway's handler contract.
// The ack callback is always invoked, whether or not the payload is ours.
func (r *InteractionRouter) HandleInteraction(ctx context.Context, ack func(), payload json.RawMessage) {
	start := time.Now()

	p, err := dto.ParseInteractionPayload(payload)
	if err != nil {
		ack()
		r.logger.Warn("dropping unparseable interaction payload", "error", err)
		return
	}

	switch p.Type {
	case dto.PayloadTypeBlockActions:
		r.routeBlockAction(ctx, ack, p, start)
	case dto.PayloadTypeViewSubmission:
		r.routeView(ctx, ack, p, start, false)
	case dto.PayloadTypeViewClosed:
		r.routeView(ctx, ack, p, start, true)
	default:
		ack()
		r.logger.Debug("ignoring interaction payload type", "type", p.Type)
	}
}

func (r *InteractionRouter) routeBlockAction(ctx context.Context, ack func(), p dto.InteractionPayload, start time.Time) {
	if len(p.Actions) > 0 && !r.matchesPrefix(p.Actions[0].ActionID) {
		ack()
		r.recordIgnored(ctx, dto.PayloadTypeBlockActions)
		return
	}
	if r.blockAction == nil {
		ack()
		r.logger.Warn("block action received but no handler configured")
		return
	}

	result := r.blockAction.Execute(ctx, ack, p)
	r.recordProcessed(ctx, "block_action", result.UI.String(), start)
}

func (r *InteractionRouter) routeView(ctx context.Context, ack func(), p dto.InteractionPayload, start time.Time, closed bool) {
	if !r.matchesPrefix(p.View.CallbackID) {
		ack()
		r.recordIgnored(ctx, p.Type)
		return
	}
	if r.view == nil {
		ack()
		r.logger.Warn("view interaction received but no handler configured", "callback_id", p.View.CallbackID)
		return
	}

	if closed {
		r.view.ExecuteClosed(ctx, ack, p)
		r.recordProcessed(ctx, "view_closed", "enqueued", start)
		return
	}
	r.view.ExecuteSubmission(ctx, ack, p)
	r.recordProcessed(ctx, "view_submission", "enqueued", start)
}

// matchesPrefix reports whether an identifier belongs to this app.
// An empty configured prefix accepts everything.
func (r *InteractionRouter) matchesPrefix(id string) bool {
	r.mu.RLock()
	prefix := r.actionPrefix
	r.mu.RUnlock()
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(id, prefix)
}

// SetActionPrefix swaps the prefix filter. Used by config hot reload.
func (r *InteractionRouter) SetActionPrefix(prefix string) {
	r.mu.Lock()
	r.actionPrefix = prefix
	r.mu.Unlock()
}

func (r *InteractionRouter) recordProcessed(ctx context.Context, kind, outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordInteraction(ctx, kind, outcome, time.Since(start))
}

func (r *InteractionRouter) recordIgnored(ctx context.Context, kind string) {
	r.logger.Debug("interaction without configured prefix ignored", "type", kind)
	if r.metrics == nil {
		return
	}
	r.metrics.RecordInteractionIgnored(ctx, kind)
}
