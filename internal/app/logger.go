package app

import (
	"log/slog"
	"os"

	"github.com/openclaw/interaction-bridge/internal/infrastructure/config"
)

// setupLogger configures slog from the loaded config. The level lives in
// a LevelVar so hot reload can change it without recreating the logger.
func (app *Application) setupLogger() {
	app.logLevel = new(slog.LevelVar)
	app.logLevel.Set(parseLevel(app.config.Logging.Level))

	opts := &slog.HandlerOptions{
		Level: app.logLevel,
	}

	var h slog.Handler
	if app.config.Logging.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	app.logger = slog.New(h)
	app.domainLogger = &slogAdapter{logger: app.logger}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// registerReloadHooks applies reloadable config keys to live components.
func (app *Application) registerReloadHooks() {
	app.configManager.OnReload(func(cfg *config.Config) {
		app.logLevel.Set(parseLevel(cfg.Logging.Level))
		if app.router != nil {
			app.router.SetActionPrefix(cfg.Slack.ActionPrefix)
		}
		if app.resolver != nil {
			app.resolver.Update(cfg.Session.AgentID, cfg.Session.MainKey)
		}
	})
}

// slogAdapter adapts slog.Logger to the domain Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Info(msg, keysAndValues...)
}

func (a *slogAdapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Warn(msg, keysAndValues...)
}

func (a *slogAdapter) Error(msg string, keysAndValues ...any) {
	a.logger.Error(msg, keysAndValues...)
}
