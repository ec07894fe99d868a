package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openclaw/interaction-bridge/internal/adapter/dto"
)

func TestFlattenViewState_Empty(t *testing.T) {
	inputs := FlattenViewState(nil)

	assert.NotNil(t, inputs)
	assert.Len(t, inputs, 0)

	inputs = FlattenViewState(map[string]map[string]dto.RawAction{})
	assert.NotNil(t, inputs)
	assert.Len(t, inputs, 0)
}

func TestFlattenViewState_SortedOrder(t *testing.T) {
	values := map[string]map[string]dto.RawAction{
		"block_b": {
			"field_z": {Type: "plain_text_input", Value: "zeta"},
			"field_a": {Type: "plain_text_input", Value: "alpha"},
		},
		"block_a": {
			"field_m": {Type: "static_select", SelectedOption: &dto.OptionRef{Value: "mid"}},
		},
	}

	inputs := FlattenViewState(values)

	assert.Len(t, inputs, 3)
	assert.Equal(t, "block_a", inputs[0].BlockID)
	assert.Equal(t, "field_m", inputs[0].ActionID)
	assert.Equal(t, []string{"mid"}, inputs[0].SelectedValues)

	assert.Equal(t, "block_b", inputs[1].BlockID)
	assert.Equal(t, "field_a", inputs[1].ActionID)
	assert.Equal(t, "alpha", inputs[1].InputValue)

	assert.Equal(t, "block_b", inputs[2].BlockID)
	assert.Equal(t, "field_z", inputs[2].ActionID)
	assert.Equal(t, "zeta", inputs[2].InputValue)
}

func TestFlattenViewState_Deterministic(t *testing.T) {
	values := map[string]map[string]dto.RawAction{
		"b1": {"a1": {Value: "1"}, "a2": {Value: "2"}},
		"b2": {"a3": {Value: "3"}},
		"b3": {"a4": {Value: "4"}},
	}

	first := FlattenViewState(values)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FlattenViewState(values))
	}
}
