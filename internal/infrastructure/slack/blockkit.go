package slack

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// bulkActionMarker flags elements that operate on every item at once rather
// than a single one. An actions block is a bulk row when all of its elements
// carry the marker in their action ID.
const bulkActionMarker = "_all_"

// ConfirmActionBlocks rewrites a message's block list after a button click:
// the clicked actions block (matched by blockID) becomes a static context
// block showing a checkmark and the button's label. When no individual action
// rows remain, bulk rows are stripped too, along with any divider sitting
// directly above a bulk row, collapsing the message to its confirmation state.
func ConfirmActionBlocks(raw json.RawMessage, blockID, label string) ([]slack.Block, error) {
	var parsed slack.Blocks
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing message blocks: %w", err)
	}

	blocks := parsed.BlockSet
	for i, b := range blocks {
		if ab, ok := b.(*slack.ActionBlock); ok && ab.BlockID == blockID {
			blocks[i] = confirmationBlock(blockID, label)
		}
	}

	if hasIndividualActionRows(blocks) {
		return blocks, nil
	}

	pruned := make([]slack.Block, 0, len(blocks))
	for i, b := range blocks {
		if ab, ok := b.(*slack.ActionBlock); ok && isBulkActionBlock(ab) {
			continue
		}
		if _, ok := b.(*slack.DividerBlock); ok && i+1 < len(blocks) {
			if ab, ok := blocks[i+1].(*slack.ActionBlock); ok && isBulkActionBlock(ab) {
				continue
			}
		}
		pruned = append(pruned, b)
	}
	return pruned, nil
}

func confirmationBlock(blockID, label string) *slack.ContextBlock {
	text := slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("✅ %s", label), false, false)
	return slack.NewContextBlock(blockID, text)
}

// hasIndividualActionRows reports whether any actions block remains that is
// not a bulk row.
func hasIndividualActionRows(blocks []slack.Block) bool {
	for _, b := range blocks {
		if ab, ok := b.(*slack.ActionBlock); ok && !isBulkActionBlock(ab) {
			return true
		}
	}
	return false
}

// isBulkActionBlock reports whether every element of an actions block carries
// the bulk marker. Blocks with no elements are not considered bulk.
func isBulkActionBlock(ab *slack.ActionBlock) bool {
	if ab.Elements == nil || len(ab.Elements.ElementSet) == 0 {
		return false
	}
	for _, el := range ab.Elements.ElementSet {
		if !strings.Contains(elementActionID(el), bulkActionMarker) {
			return false
		}
	}
	return true
}

// elementActionID extracts the action ID from any known interactive element.
// Unknown element types yield "" and therefore never count toward a bulk row.
func elementActionID(el slack.BlockElement) string {
	switch e := el.(type) {
	case *slack.ButtonBlockElement:
		return e.ActionID
	case *slack.SelectBlockElement:
		return e.ActionID
	case *slack.MultiSelectBlockElement:
		return e.ActionID
	case *slack.OverflowBlockElement:
		return e.ActionID
	case *slack.DatePickerBlockElement:
		return e.ActionID
	case *slack.TimePickerBlockElement:
		return e.ActionID
	case *slack.DateTimePickerBlockElement:
		return e.ActionID
	case *slack.PlainTextInputBlockElement:
		return e.ActionID
	case *slack.RadioButtonsBlockElement:
		return e.ActionID
	case *slack.CheckboxGroupsBlockElement:
		return e.ActionID
	}
	return ""
}
