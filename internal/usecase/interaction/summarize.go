package interaction

import (
	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/entity"
)

// Summarize normalizes one raw interactive element into the common summary
// shape. It fills every field except ActionID, BlockID, and the envelope
// context (user/channel/ts), which the caller supplies. Pure function: absent
// or malformed sub-fields are treated as "not present", never as errors.
func Summarize(action dto.RawAction) entity.InteractionSummary {
	summary := entity.InteractionSummary{
		ActionType: action.Type,
	}

	// Union of every selection variant, in fixed order: single option,
	// multi options, user(s), channel(s), conversation(s). Empty entries are
	// dropped; an empty result stays nil so it is omitted on serialization.
	var values []string
	if action.SelectedOption != nil && action.SelectedOption.Value != "" {
		values = append(values, action.SelectedOption.Value)
	}
	for _, opt := range action.SelectedOptions {
		if opt.Value != "" {
			values = append(values, opt.Value)
		}
	}
	values = appendNonEmpty(values, action.SelectedUser)
	values = appendAllNonEmpty(values, action.SelectedUsers)
	values = appendNonEmpty(values, action.SelectedChannel)
	values = appendAllNonEmpty(values, action.SelectedChannels)
	values = appendNonEmpty(values, action.SelectedConversation)
	values = appendAllNonEmpty(values, action.SelectedConversations)
	summary.SelectedValues = values

	// Labels are extracted from multi-option selections only. Single-option
	// selections intentionally do not populate labels.
	var labels []string
	for _, opt := range action.SelectedOptions {
		if opt.Text.Text != "" {
			labels = append(labels, opt.Text.Text)
		}
	}
	summary.SelectedLabels = labels

	summary.SelectedDate = action.SelectedDate
	summary.SelectedTime = action.SelectedTime
	summary.SelectedDateTime = action.SelectedDateTime

	// Value covers plain buttons; InputValue mirrors it for free-text inputs.
	summary.Value = action.Value
	summary.InputValue = action.Value

	return summary
}

func appendNonEmpty(dst []string, v string) []string {
	if v != "" {
		dst = append(dst, v)
	}
	return dst
}

func appendAllNonEmpty(dst []string, vs []string) []string {
	for _, v := range vs {
		if v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}
