package slack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slack-go/slack"
)

// Client wraps the Slack Web API for the UI mutations the bridge performs.
// It implements the interaction use case's UIUpdater port.
type Client struct {
	api *slack.Client
}

// NewClient creates a client from a bot token.
func NewClient(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

// NewClientWithAPI wraps an existing API client, e.g. the one the Socket Mode
// gateway already holds.
func NewClientWithAPI(api *slack.Client) *Client {
	return &Client{api: api}
}

// ConfirmAction rewrites the clicked actions block into a confirmation and
// pushes the updated block list back, preserving the original fallback text.
func (c *Client) ConfirmAction(ctx context.Context, channelID, messageTS, fallbackText, blockID, label string, rawBlocks json.RawMessage) error {
	blocks, err := ConfirmActionBlocks(rawBlocks, blockID, label)
	if err != nil {
		return err
	}

	_, _, _, err = c.api.UpdateMessageContext(ctx, channelID, messageTS,
		slack.MsgOptionText(fallbackText, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("updating message: %w", err)
	}
	return nil
}

// RespondEphemeral posts a message visible only to the given user.
func (c *Client) RespondEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := c.api.PostEphemeralContext(ctx, channelID, userID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("posting ephemeral response: %w", err)
	}
	return nil
}

// API exposes the underlying Web API client.
func (c *Client) API() *slack.Client {
	return c.api
}
