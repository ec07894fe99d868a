package interaction

import (
	"sort"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
	"github.com/openclaw/interaction-bridge/internal/domain/entity"
)

// FlattenViewState converts a modal's nested blockId -> actionId -> raw action
// state into an ordered list of inputs, one per (block, action) pair, reusing
// the summarizer per leaf. Keys are iterated in sorted order so output is
// deterministic. A nil or empty mapping yields an empty list.
func FlattenViewState(values map[string]map[string]dto.RawAction) []entity.ModalInput {
	inputs := make([]entity.ModalInput, 0, len(values))

	blockIDs := make([]string, 0, len(values))
	for blockID := range values {
		blockIDs = append(blockIDs, blockID)
	}
	sort.Strings(blockIDs)

	for _, blockID := range blockIDs {
		actions := values[blockID]
		actionIDs := make([]string, 0, len(actions))
		for actionID := range actions {
			actionIDs = append(actionIDs, actionID)
		}
		sort.Strings(actionIDs)

		for _, actionID := range actionIDs {
			input := Summarize(actions[actionID])
			input.BlockID = blockID
			input.ActionID = actionID
			inputs = append(inputs, input)
		}
	}

	return inputs
}
