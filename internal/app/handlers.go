package app

import (
	"github.com/openclaw/interaction-bridge/internal/adapter/handler"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/server"
	"github.com/openclaw/interaction-bridge/internal/usecase/interaction"
)

func (app *Application) initializeUseCases() {
	app.resolver = interaction.NewDefaultResolver(
		app.config.Session.AgentID,
		app.config.Session.MainKey,
	)

	// The slack client is nil when the integration is disabled; the use
	// case then skips the UI confirmation step.
	var ui interaction.UIUpdater
	if app.slackClient != nil {
		ui = app.slackClient
	}

	app.blockAction = interaction.NewBlockActionUseCase(
		app.bus,
		app.resolver,
		ui,
		app.records,
		app.domainLogger,
	)
	app.view = interaction.NewViewUseCase(
		app.bus,
		app.resolver,
		app.records,
		app.domainLogger,
	)

	app.router = handler.NewInteractionRouter(
		app.blockAction,
		app.view,
		app.config.Slack.ActionPrefix,
		app.telemetry.Metrics,
		app.domainLogger,
	)

	if app.gateway != nil {
		app.gateway.SetInteractionHandler(app.router)
	}
}

func (app *Application) setupServer() error {
	app.handlers = &server.Handlers{
		Health:  handler.NewHealthHandler(),
		Ready:   handler.NewReadyHandler(map[string]repository.Pinger{"storage": app.dbPinger}),
		Metrics: handler.NewMetricsHandler(),
		Records: handler.NewRecordsHandler(app.records, app.domainLogger),
		Reload:  handler.NewReloadHandler(app.configManager, app.domainLogger),
	}

	// The interaction webhook only exists outside Socket Mode.
	if app.config.IsSlackEnabled() && !app.config.IsSocketMode() {
		app.handlers.SlackInteraction = handler.NewSlackInteractionHandler(app.router, app.domainLogger)
	}

	router := server.NewRouter(app.handlers, server.RouterOptions{
		SigningSecret:  app.config.Slack.SigningSecret,
		RequestTimeout: app.config.Server.RequestTimeout,
		Metrics:        app.telemetry.Metrics,
	}, app.logger)

	app.server = server.New(app.config.Server, router, app.logger)
	return nil
}
