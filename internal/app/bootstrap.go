package app

import (
	"fmt"
)

func (app *Application) bootstrap(configPath string) error {
	// 1. Load configuration and set up the manager
	if err := app.setupConfigManager(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// 2. Setup logger
	app.setupLogger()
	app.configManager.SetLogger(app.domainLogger)

	// 3. Setup telemetry (OpenTelemetry)
	if err := app.setupTelemetry(); err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	// 4. Initialize storage layer
	if err := app.initializeStorage(); err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// 5. Initialize event queue and Slack clients
	if err := app.initializeClients(); err != nil {
		return fmt.Errorf("initializing clients: %w", err)
	}

	// 6. Initialize use cases and the interaction router
	app.initializeUseCases()

	// 7. Initialize HTTP handlers and server
	if err := app.setupServer(); err != nil {
		return fmt.Errorf("setting up server: %w", err)
	}

	// 8. Register hot-reload callbacks
	app.registerReloadHooks()

	return nil
}
