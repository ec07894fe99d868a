package interaction

import (
	"context"
	"fmt"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// BlockActionUseCase turns button clicks and menu selections on posted
// messages into system events, and confirms button clicks by rewriting the
// originating message.
type BlockActionUseCase struct {
	queue    Enqueuer
	resolver SessionKeyResolver
	ui       UIUpdater
	records  repository.InteractionRecordRepository
	logger   logger.Logger
}

// NewBlockActionUseCase creates a new BlockActionUseCase. ui and records may
// be nil; the UI confirmation and the audit write are then skipped.
func NewBlockActionUseCase(
	queue Enqueuer,
	resolver SessionKeyResolver,
	ui UIUpdater,
	records repository.InteractionRecordRepository,
	log logger.Logger,
) *BlockActionUseCase {
	return &BlockActionUseCase{
		queue:    queue,
		resolver: resolver,
		ui:       ui,
		records:  records,
		logger:   log,
	}
}

// BlockActionResult describes what a single invocation did, for logs, metrics,
// and tests. It carries no error: every failure mode is recovered internally.
type BlockActionResult struct {
	ActionID   string
	ActionType string
	SessionKey string
	ContextKey string
	UI         UIOutcome
}

// Execute processes one block action. Acknowledgment happens first,
// unconditionally; everything after it is best-effort.
func (uc *BlockActionUseCase) Execute(ctx context.Context, ack AckFunc, p dto.InteractionPayload) BlockActionResult {
	if ack != nil {
		ack()
	}

	var action dto.RawAction
	if len(p.Actions) > 0 {
		action = p.Actions[0]
	}

	actionID := action.ActionID
	if actionID == "" {
		actionID = "unknown"
	}
	userID := p.User.ID
	if userID == "" {
		userID = "unknown"
	}
	channelID := p.Channel.ID
	messageTS := p.Message.TS

	summary := Summarize(action)
	summary.ActionID = actionID
	summary.BlockID = action.BlockID
	summary.UserID = userID
	summary.ChannelID = channelID
	summary.MessageTS = messageTS

	event := dto.BlockActionEvent{
		InteractionType:    string(entity.InteractionTypeBlockAction),
		InteractionSummary: summary,
	}

	uc.logger.Info("slack block action received",
		"action_id", actionID,
		"action_type", summary.ActionType,
		"user_id", userID,
		"channel_id", channelID,
	)

	sessionKey := uc.resolver.Resolve(ctx, SessionHint{
		ChannelID:   channelID,
		ChannelType: "channel",
	})
	contextKey := joinContextKey("slack:interaction", channelID, messageTS, actionID)

	text, payload := encodeEvent(event)
	uc.queue.Enqueue(text, sessionKey, contextKey)

	recordInteraction(ctx, uc.records, uc.logger,
		entity.InteractionTypeBlockAction,
		actionID, userID, channelID, sessionKey, contextKey, payload)

	return BlockActionResult{
		ActionID:   actionID,
		ActionType: summary.ActionType,
		SessionKey: sessionKey,
		ContextKey: contextKey,
		UI:         uc.confirmUI(ctx, p, action, actionID, userID),
	}
}

// confirmUI runs the best-effort confirmation chain for button clicks:
// rewrite the message, fall back to an ephemeral notice, swallow silently.
// Select-type actions never trigger a rewrite.
func (uc *BlockActionUseCase) confirmUI(ctx context.Context, p dto.InteractionPayload, action dto.RawAction, actionID, userID string) UIOutcome {
	if uc.ui == nil || action.Type != "button" {
		return UISkipped
	}
	if p.Channel.ID == "" || p.Message.TS == "" || !hasBlockList(p.Message.Blocks) {
		return UISkipped
	}

	err := uc.ui.ConfirmAction(ctx,
		p.Channel.ID, p.Message.TS, p.Message.Text,
		action.BlockID, action.Label(), p.Message.Blocks)
	if err == nil {
		return UIUpdated
	}

	uc.logger.Warn("message update failed, falling back to ephemeral",
		"action_id", actionID,
		"channel_id", p.Channel.ID,
		"error", err,
	)

	notice := fmt.Sprintf("Button %q clicked!", actionID)
	if err := uc.ui.RespondEphemeral(ctx, p.Channel.ID, userID, notice); err != nil {
		// The event is already acknowledged and enqueued; only the visual
		// confirmation is lost.
		uc.logger.Debug("ephemeral fallback failed",
			"action_id", actionID,
			"error", err,
		)
		return UIFailed
	}
	return UIFallback
}
