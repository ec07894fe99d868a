package app

import (
	"fmt"

	"github.com/openclaw/interaction-bridge/internal/infrastructure/queue"
	infraslack "github.com/openclaw/interaction-bridge/internal/infrastructure/slack"
)

func (app *Application) initializeClients() error {
	app.bus = queue.NewBus(app.config.Queue.BufferSize)

	if !app.config.IsSlackEnabled() {
		app.logger.Warn("slack integration disabled, bridge will only serve HTTP endpoints")
		return nil
	}

	app.slackClient = infraslack.NewClient(app.config.Slack.BotToken)

	if app.config.IsSocketMode() {
		gateway, err := infraslack.NewGateway(
			app.config.Slack.BotToken,
			app.config.Slack.SocketMode,
			app.domainLogger,
		)
		if err != nil {
			return fmt.Errorf("socket mode gateway: %w", err)
		}
		app.gateway = gateway
		// Reuse the gateway's API client so both share one token and
		// rate-limit bucket.
		app.slackClient = infraslack.NewClientWithAPI(gateway.API())

		app.logger.Info("Slack Socket Mode enabled")
	} else {
		app.logger.Info("Slack webhook mode enabled",
			"path", "/webhook/slack/interactions",
		)
	}

	return nil
}
