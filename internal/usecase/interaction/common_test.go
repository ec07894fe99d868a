package interaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinContextKey(t *testing.T) {
	assert.Equal(t, "slack:interaction:C1:123:btn",
		joinContextKey("slack:interaction", "C1", "123", "btn"))
	assert.Equal(t, "slack:interaction:btn",
		joinContextKey("slack:interaction", "", "", "btn"))
	assert.Equal(t, "slack:interaction",
		joinContextKey("slack:interaction", "", "", ""))
}

func TestHasBlockList(t *testing.T) {
	assert.False(t, hasBlockList(nil))
	assert.False(t, hasBlockList(json.RawMessage("")))
	assert.False(t, hasBlockList(json.RawMessage("null")))
	assert.False(t, hasBlockList(json.RawMessage("  [] ")))
	assert.True(t, hasBlockList(json.RawMessage(`[{"type":"section"}]`)))
}

func TestUIOutcomeString(t *testing.T) {
	assert.Equal(t, "skipped", UISkipped.String())
	assert.Equal(t, "updated", UIUpdated.String())
	assert.Equal(t, "fallback", UIFallback.String())
	assert.Equal(t, "failed", UIFailed.String())
}
