package app

import (
	"context"
	"fmt"

	"github.com/openclaw/interaction-bridge/internal/infrastructure/config"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/persistence/memory"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/persistence/mysql"
	"github.com/openclaw/interaction-bridge/internal/infrastructure/persistence/sqlite"
)

// setupConfigManager loads the configuration and prepares hot reload.
func (app *Application) setupConfigManager(configPath string) error {
	manager, err := config.NewConfigManager(configPath, nil)
	if err != nil {
		return err
	}
	app.configManager = manager
	app.config = manager.Current()
	return nil
}

func (app *Application) initializeStorage() error {
	switch app.config.Storage.Type {
	case "mysql":
		db, err := mysql.NewDB(&app.config.Storage.MySQL)
		if err != nil {
			return fmt.Errorf("mysql init: %w", err)
		}

		if err := mysql.NewMigrator(db.Conn()).Up(context.Background()); err != nil {
			db.Close()
			return fmt.Errorf("mysql migration: %w", err)
		}

		app.records = mysql.NewInteractionRecordRepository(db)
		app.dbPinger = db
		app.dbCloser = db

		app.logger.Info("MySQL storage initialized",
			"host", app.config.Storage.MySQL.Host,
			"database", app.config.Storage.MySQL.Database,
			"pool_max_open", app.config.Storage.MySQL.Pool.MaxOpenConns,
		)

	case "sqlite":
		db, err := sqlite.NewDB(app.config.Storage.SQLite.Path)
		if err != nil {
			return fmt.Errorf("sqlite init: %w", err)
		}

		if err := db.Migrate(context.Background()); err != nil {
			db.Close()
			return fmt.Errorf("sqlite migration: %w", err)
		}

		app.records = sqlite.NewInteractionRecordRepository(db)
		app.dbPinger = db
		app.dbCloser = db

		app.logger.Info("SQLite storage initialized",
			"path", app.config.Storage.SQLite.Path,
		)

	case "memory", "":
		repo := memory.NewInteractionRecordRepository()
		app.records = repo
		app.dbPinger = repo

		app.logger.Info("in-memory storage initialized")

	default:
		return fmt.Errorf("unknown storage type: %s", app.config.Storage.Type)
	}

	return nil
}
