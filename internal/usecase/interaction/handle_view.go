package interaction

import (
	"context"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
)

// ViewUseCase turns modal submissions and closes into system events. There is
// no message to mutate for view events, so there is no UI step.
type ViewUseCase struct {
	queue    Enqueuer
	resolver SessionKeyResolver
	records  repository.InteractionRecordRepository
	logger   logger.Logger
}

// NewViewUseCase creates a new ViewUseCase. records may be nil.
func NewViewUseCase(
	queue Enqueuer,
	resolver SessionKeyResolver,
	records repository.InteractionRecordRepository,
	log logger.Logger,
) *ViewUseCase {
	return &ViewUseCase{
		queue:    queue,
		resolver: resolver,
		records:  records,
		logger:   log,
	}
}

// ViewResult describes what a single view-event invocation did.
type ViewResult struct {
	CallbackID string
	SessionKey string
	ContextKey string
	InputCount int
}

// ExecuteSubmission processes a modal submission.
func (uc *ViewUseCase) ExecuteSubmission(ctx context.Context, ack AckFunc, p dto.InteractionPayload) ViewResult {
	return uc.execute(ctx, ack, p, entity.InteractionTypeViewSubmission)
}

// ExecuteClosed processes a modal close, including stack clears.
func (uc *ViewUseCase) ExecuteClosed(ctx context.Context, ack AckFunc, p dto.InteractionPayload) ViewResult {
	return uc.execute(ctx, ack, p, entity.InteractionTypeViewClosed)
}

func (uc *ViewUseCase) execute(ctx context.Context, ack AckFunc, p dto.InteractionPayload, kind entity.InteractionType) ViewResult {
	if ack != nil {
		ack()
	}

	callbackID := p.View.CallbackID
	if callbackID == "" {
		callbackID = "unknown"
	}
	userID := p.User.ID
	if userID == "" {
		userID = "unknown"
	}
	viewID := p.View.ID
	teamID := p.View.TeamID
	if teamID == "" {
		teamID = p.Team.ID
	}

	inputs := FlattenViewState(p.View.State.Values)
	meta := entity.DecodeModalMetadata(p.View.PrivateMetadata)
	sessionKey := RouteSession(ctx, uc.resolver, meta)

	event := dto.ViewEvent{
		InteractionType:   string(kind),
		ActionID:          "view:" + callbackID,
		CallbackID:        callbackID,
		ViewID:            viewID,
		UserID:            userID,
		TeamID:            teamID,
		PrivateMetadata:   p.View.PrivateMetadata,
		RoutedChannelID:   meta.ChannelID,
		RoutedChannelType: meta.ChannelType,
		Inputs:            inputs,
	}

	contextPrefix := "slack:interaction:view"
	if kind == entity.InteractionTypeViewClosed {
		contextPrefix = "slack:interaction:view-closed"
		cleared := p.IsCleared
		event.IsCleared = &cleared
	}

	uc.logger.Info("slack view event received",
		"interaction_type", string(kind),
		"callback_id", callbackID,
		"view_id", viewID,
		"user_id", userID,
		"inputs", len(inputs),
	)

	contextKey := joinContextKey(contextPrefix, callbackID, viewID, userID)

	text, payload := encodeEvent(event)
	uc.queue.Enqueue(text, sessionKey, contextKey)

	recordInteraction(ctx, uc.records, uc.logger,
		kind, event.ActionID, userID, meta.ChannelID, sessionKey, contextKey, payload)

	return ViewResult{
		CallbackID: callbackID,
		SessionKey: sessionKey,
		ContextKey: contextKey,
		InputCount: len(inputs),
	}
}
