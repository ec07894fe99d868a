package interaction

// UIOutcome is the result of the best-effort UI confirmation chain for a block
// action: update the message, fall back to an ephemeral notice on failure, and
// swallow silently when that fails too.
type UIOutcome int

const (
	// UISkipped means no rewrite was attempted: the action was not a button,
	// or channel/timestamp/blocks were missing from the envelope.
	UISkipped UIOutcome = iota
	// UIUpdated means the message rewrite succeeded.
	UIUpdated
	// UIFallback means the rewrite failed but the ephemeral notice was sent.
	UIFallback
	// UIFailed means both the rewrite and the ephemeral fallback failed.
	UIFailed
)

// String returns a label suitable for logs and metric attributes.
func (o UIOutcome) String() string {
	switch o {
	case UISkipped:
		return "skipped"
	case UIUpdated:
		return "updated"
	case UIFallback:
		return "fallback"
	case UIFailed:
		return "failed"
	default:
		return "unknown"
	}
}
