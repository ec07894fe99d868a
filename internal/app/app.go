package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/openclaw/interaction-bridge/internal/adapter/handler"
	"github.com/openclaw/interaction-bridge/internal/domain/logger"
	"github.com/openclaw/interaction-bridge/internal/domain/repository"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/config"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/observability"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/queue"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/server"
	infraslack "github.com/openclaw/interaction-bridge/internal/infrastructure/slack"
	"github.com/openclaw/interaction-bridge/internal/usecase/interaction"
)

// Application holds all application dependencies and lifecycle.
type Application struct {
	config        *config.Config
	configManager *config.ConfigManager
	logger        *slog.Logger
	logLevel      *slog.LevelVar
	domainLogger  logger.Logger
	telemetry     *observability.Telemetry

	// Storage
	records  repository.InteractionRecordRepository
	dbPinger repository.Pinger
	dbCloser io.Closer

	// Event queue and Slack clients
	bus         *queue.Bus
	slackClient *infraslack.Client
	gateway     *infraslack.Gateway

	// Use cases and routing
	resolver    *interaction.DefaultResolver
	blockAction *interaction.BlockActionUseCase
	view        *interaction.ViewUseCase
	router      *handler.InteractionRouter

	// HTTP layer
	handlers *server.Handlers
	server   *server.Server
}

// New creates a new Application instance.
func New(configPath string) (*Application, error) {
	app := &Application{}

	if err := app.bootstrap(configPath); err != nil {
		return nil, err
	}

	return app, nil
}

// Start runs the application until the context is cancelled. It brings up
// the HTTP server, the Socket Mode gateway when configured, the config
// watcher, and a tap that logs every event leaving the queue.
func (app *Application) Start(ctx context.Context) error {
	app.logger.Info("starting interaction-bridge",
		"port", app.config.Server.Port,
		"socket_mode", app.config.IsSocketMode(),
		"storage_type", app.config.Storage.Type,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	go func() {
		if err := app.configManager.Watch(runCtx); err != nil {
			app.logger.Warn("config watcher stopped", "error", err)
		}
	}()

	go app.drainEvents(runCtx)

	if app.gateway != nil {
		go func() {
			if err := app.gateway.Run(runCtx); err != nil {
				errChan <- err
			}
		}()
	}

	go func() {
		errChan <- app.server.Run(runCtx)
	}()

	select {
	case <-runCtx.Done():
		return nil
	case err := <-errChan:
		return err
	}
}

// drainEvents consumes the system event queue and logs each event. The
// agent runtime attaches its own subscriber in production; this tap keeps
// the queue observable even without one.
func (app *Application) drainEvents(ctx context.Context) {
	events := app.bus.Subscribe("debug-tap")
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			app.logger.Debug("system event dispatched",
				"event_id", evt.ID,
				"session_key", evt.SessionKey,
				"context_key", evt.ContextKey,
			)
		}
	}
}

// Shutdown gracefully stops the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down interaction-bridge")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.bus != nil {
		app.bus.Close()
	}

	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Error("failed to shutdown telemetry", "error", err)
		}
	}

	if app.dbCloser != nil {
		if err := app.dbCloser.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
			return err
		}
	}

	app.logger.Info("interaction-bridge stopped")
	return nil
}
