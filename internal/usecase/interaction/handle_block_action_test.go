package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/entity"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
)

type enqueuedEvent struct {
	Text       string
	SessionKey string
	ContextKey string
}

// fakeQueue records enqueued events and, when given a trace, the point in the
// call sequence at which each enqueue happened.
type fakeQueue struct {
	events []enqueuedEvent
	trace  *[]string
}

func (q *fakeQueue) Enqueue(text, sessionKey, contextKey string) {
	if q.trace != nil {
		*q.trace = append(*q.trace, "enqueue")
	}
	q.events = append(q.events, enqueuedEvent{Text: text, SessionKey: sessionKey, ContextKey: contextKey})
}

type confirmCall struct {
	ChannelID    string
	MessageTS    string
	FallbackText string
	BlockID      string
	Label        string
}

type ephemeralCall struct {
	ChannelID string
	UserID    string
	Text      string
}

type fakeUI struct {
	confirmErr   error
	ephemeralErr error
	confirms     []confirmCall
	ephemerals   []ephemeralCall
}

func (u *fakeUI) ConfirmAction(_ context.Context, channelID, messageTS, fallbackText, blockID, label string, _ json.RawMessage) error {
	u.confirms = append(u.confirms, confirmCall{
		ChannelID:    channelID,
		MessageTS:    messageTS,
		FallbackText: fallbackText,
		BlockID:      blockID,
		Label:        label,
	})
	return u.confirmErr
}

func (u *fakeUI) RespondEphemeral(_ context.Context, channelID, userID, text string) error {
	u.ephemerals = append(u.ephemerals, ephemeralCall{ChannelID: channelID, UserID: userID, Text: text})
	return u.ephemeralErr
}

type fakeRecordRepo struct {
	saved   []*entity.InteractionRecord
	saveErr error
}

func (r *fakeRecordRepo) Save(_ context.Context, record *entity.InteractionRecord) error {
	r.saved = append(r.saved, record)
	return r.saveErr
}

func (r *fakeRecordRepo) FindByID(context.Context, string) (*entity.InteractionRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) FindByContextKey(context.Context, string) ([]*entity.InteractionRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) ListRecent(context.Context, int) ([]*entity.InteractionRecord, error) {
	return nil, nil
}

func buttonPayload() dto.InteractionPayload {
	return dto.InteractionPayload{
		Type:    dto.PayloadTypeBlockActions,
		User:    dto.UserRef{ID: "U100"},
		Channel: dto.ChannelRef{ID: "C200"},
		Message: dto.MessageRef{
			TS:     "1700000000.000100",
			Text:   "Deploy requested",
			Blocks: json.RawMessage(`[{"type":"actions","block_id":"deploy_row","elements":[{"type":"button","action_id":"deploy_approve","text":{"type":"plain_text","text":"Approve"}}]}]`),
		},
		Actions: []dto.RawAction{{
			Type:     "button",
			ActionID: "deploy_approve",
			BlockID:  "deploy_row",
			Text:     dto.TextRef{Type: "plain_text", Text: "Approve"},
			Value:    "approve",
		}},
	}
}

func TestBlockActionUseCase_AckBeforeEnqueue(t *testing.T) {
	var trace []string
	queue := &fakeQueue{trace: &trace}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), nil, nil, logger.Nop{})

	ack := func() { trace = append(trace, "ack") }
	uc.Execute(context.Background(), ack, buttonPayload())

	require.Len(t, trace, 2)
	assert.Equal(t, []string{"ack", "enqueue"}, trace)
}

func TestBlockActionUseCase_EnqueuesOneEvent(t *testing.T) {
	queue := &fakeQueue{}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), nil, nil, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	require.Len(t, queue.events, 1)
	event := queue.events[0]

	assert.Equal(t, "agent:ops:slack:channel:C200", event.SessionKey)
	assert.Equal(t, "slack:interaction:C200:1700000000.000100:deploy_approve", event.ContextKey)
	assert.Equal(t, event.SessionKey, result.SessionKey)
	assert.Equal(t, event.ContextKey, result.ContextKey)
	assert.Equal(t, "deploy_approve", result.ActionID)
	assert.Equal(t, "button", result.ActionType)

	require.True(t, strings.HasPrefix(event.Text, EventTextPrefix))
	var decoded dto.BlockActionEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(event.Text, EventTextPrefix)), &decoded))
	assert.Equal(t, "block_action", decoded.InteractionType)
	assert.Equal(t, "deploy_approve", decoded.ActionID)
	assert.Equal(t, "U100", decoded.UserID)
	assert.Equal(t, "C200", decoded.ChannelID)
	assert.Equal(t, "1700000000.000100", decoded.MessageTS)
	assert.Equal(t, "approve", decoded.Value)
}

func TestBlockActionUseCase_DefaultsForMissingFields(t *testing.T) {
	queue := &fakeQueue{}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), nil, nil, logger.Nop{})

	result := uc.Execute(context.Background(), nil, dto.InteractionPayload{
		Type: dto.PayloadTypeBlockActions,
	})

	assert.Equal(t, "unknown", result.ActionID)
	assert.Equal(t, "agent:ops:main", result.SessionKey)
	// Empty channel and ts collapse out of the context key.
	assert.Equal(t, "slack:interaction:unknown", result.ContextKey)

	require.Len(t, queue.events, 1)
	var decoded dto.BlockActionEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(queue.events[0].Text, EventTextPrefix)), &decoded))
	assert.Equal(t, "unknown", decoded.UserID)
}

func TestBlockActionUseCase_ConfirmsButtonClick(t *testing.T) {
	queue := &fakeQueue{}
	ui := &fakeUI{}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), ui, nil, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	assert.Equal(t, UIUpdated, result.UI)
	require.Len(t, ui.confirms, 1)
	call := ui.confirms[0]
	assert.Equal(t, "C200", call.ChannelID)
	assert.Equal(t, "1700000000.000100", call.MessageTS)
	assert.Equal(t, "Deploy requested", call.FallbackText)
	assert.Equal(t, "deploy_row", call.BlockID)
	assert.Equal(t, "Approve", call.Label)
	assert.Empty(t, ui.ephemerals)
}

func TestBlockActionUseCase_EphemeralFallback(t *testing.T) {
	queue := &fakeQueue{}
	ui := &fakeUI{confirmErr: errors.New("message_not_found")}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), ui, nil, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	assert.Equal(t, UIFallback, result.UI)
	require.Len(t, ui.ephemerals, 1)
	assert.Equal(t, "C200", ui.ephemerals[0].ChannelID)
	assert.Equal(t, "U100", ui.ephemerals[0].UserID)
	assert.Equal(t, `Button "deploy_approve" clicked!`, ui.ephemerals[0].Text)

	// The event still went out regardless of the UI failure.
	assert.Len(t, queue.events, 1)
}

func TestBlockActionUseCase_UIFailureIsSilent(t *testing.T) {
	queue := &fakeQueue{}
	ui := &fakeUI{
		confirmErr:   errors.New("message_not_found"),
		ephemeralErr: errors.New("channel_not_found"),
	}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), ui, nil, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	assert.Equal(t, UIFailed, result.UI)
	assert.Len(t, queue.events, 1)
}

func TestBlockActionUseCase_SkipsUIForSelects(t *testing.T) {
	ui := &fakeUI{}
	uc := NewBlockActionUseCase(&fakeQueue{}, NewDefaultResolver("ops", ""), ui, nil, logger.Nop{})

	p := buttonPayload()
	p.Actions[0].Type = "static_select"
	p.Actions[0].SelectedOption = &dto.OptionRef{Value: "canary"}

	result := uc.Execute(context.Background(), nil, p)

	assert.Equal(t, UISkipped, result.UI)
	assert.Empty(t, ui.confirms)
	assert.Empty(t, ui.ephemerals)
}

func TestBlockActionUseCase_SkipsUIWithoutMessageContext(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.InteractionPayload)
	}{
		{"no channel", func(p *dto.InteractionPayload) { p.Channel.ID = "" }},
		{"no message ts", func(p *dto.InteractionPayload) { p.Message.TS = "" }},
		{"no blocks", func(p *dto.InteractionPayload) { p.Message.Blocks = nil }},
		{"empty block list", func(p *dto.InteractionPayload) { p.Message.Blocks = json.RawMessage(`[]`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &fakeUI{}
			uc := NewBlockActionUseCase(&fakeQueue{}, NewDefaultResolver("ops", ""), ui, nil, logger.Nop{})

			p := buttonPayload()
			tt.mutate(&p)

			result := uc.Execute(context.Background(), nil, p)

			assert.Equal(t, UISkipped, result.UI)
			assert.Empty(t, ui.confirms)
		})
	}
}

func TestBlockActionUseCase_RecordsAuditRow(t *testing.T) {
	records := &fakeRecordRepo{}
	uc := NewBlockActionUseCase(&fakeQueue{}, NewDefaultResolver("ops", ""), nil, records, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	require.Len(t, records.saved, 1)
	saved := records.saved[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, entity.InteractionTypeBlockAction, saved.InteractionType)
	assert.Equal(t, "deploy_approve", saved.ActionID)
	assert.Equal(t, "U100", saved.UserID)
	assert.Equal(t, "C200", saved.ChannelID)
	assert.Equal(t, result.SessionKey, saved.SessionKey)
	assert.Equal(t, result.ContextKey, saved.ContextKey)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.True(t, json.Valid(saved.Payload))
}

func TestBlockActionUseCase_SaveFailureDoesNotPropagate(t *testing.T) {
	queue := &fakeQueue{}
	records := &fakeRecordRepo{saveErr: errors.New("disk full")}
	uc := NewBlockActionUseCase(queue, NewDefaultResolver("ops", ""), nil, records, logger.Nop{})

	result := uc.Execute(context.Background(), nil, buttonPayload())

	assert.Len(t, queue.events, 1)
	assert.Equal(t, "deploy_approve", result.ActionID)
}
