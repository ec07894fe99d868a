package config

import (
	"fmt"
	"time"
)

// reloadableKeys defines the whitelist of configuration keys that can be hot-reloaded.
var reloadableKeys = map[string]bool{
	"logging.level":       true,
	"logging.format":      true,
	"slack.action_prefix": true,
	"session.agent_id":    true,
	"session.main_key":    true,
}

// staticKeys defines configuration keys that require application restart.
var staticKeys = map[string]string{
	"server.port":       "HTTP listener restart required",
	"storage.type":      "Storage backend initialization required",
	"storage.sqlite":    "Database connection recreation required",
	"storage.mysql":     "Database connection pool recreation required",
	"slack.bot_token":   "Slack client recreation required",
	"slack.socket_mode": "Socket Mode connection restart required",
	"queue.buffer_size": "Event queue recreation required",
}

// IsReloadable returns true if the given config key can be hot-reloaded.
func IsReloadable(key string) bool {
	return reloadableKeys[key]
}

// getRestartReason returns the reason why a static config key requires restart.
func getRestartReason(key string) string {
	if reason, ok := staticKeys[key]; ok {
		return reason
	}
	return "unknown configuration requires restart"
}

// ValidateLogLevel checks if the log level is valid.
func ValidateLogLevel(level string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// ValidateLogFormat checks if the log format is valid.
func ValidateLogFormat(format string) error {
	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (must be json or text)", format)
	}
	return nil
}

// ValidateNonEmpty checks if a string is non-empty.
func ValidateNonEmpty(value string, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateDuration checks if a duration is greater than zero.
func ValidateDuration(duration time.Duration, fieldName string) error {
	if duration <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	return nil
}

// ValidatePort checks if a port number is valid.
func ValidatePort(port int, fieldName string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", fieldName, port)
	}
	return nil
}

// ValidateStorageType checks if the storage type is valid.
func ValidateStorageType(storageType string) error {
	validTypes := map[string]bool{
		"memory": true,
		"sqlite": true,
		"mysql":  true,
	}
	if !validTypes[storageType] {
		return fmt.Errorf("invalid storage type: %s (must be memory, sqlite, or mysql)", storageType)
	}
	return nil
}

// Validate performs comprehensive validation on the configuration.
// Returns an error if any validation fails.
func (c *Config) Validate() error {
	var errors []string

	// Server validation
	if err := ValidatePort(c.Server.Port, "server.port"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ReadTimeout, "server.read_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.WriteTimeout, "server.write_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.RequestTimeout, "server.request_timeout"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateDuration(c.Server.ShutdownTimeout, "server.shutdown_timeout"); err != nil {
		errors = append(errors, err.Error())
	}

	// Storage validation
	if err := ValidateStorageType(c.Storage.Type); err != nil {
		errors = append(errors, err.Error())
	}

	if c.Storage.Type == "sqlite" {
		if err := ValidateNonEmpty(c.Storage.SQLite.Path, "storage.sqlite.path"); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if c.Storage.Type == "mysql" {
		if err := ValidateNonEmpty(c.Storage.MySQL.Host, "storage.mysql.host"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidatePort(c.Storage.MySQL.Port, "storage.mysql.port"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Database, "storage.mysql.database"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Username, "storage.mysql.username"); err != nil {
			errors = append(errors, err.Error())
		}
		if err := ValidateNonEmpty(c.Storage.MySQL.Password, "storage.mysql.password"); err != nil {
			errors = append(errors, err.Error())
		}

		if c.Storage.MySQL.Pool.MaxOpenConns < 1 {
			errors = append(errors, "storage.mysql.pool.max_open_conns must be at least 1")
		}
		if c.Storage.MySQL.Pool.MaxIdleConns < 0 {
			errors = append(errors, "storage.mysql.pool.max_idle_conns cannot be negative")
		}
		if c.Storage.MySQL.Pool.MaxIdleConns > c.Storage.MySQL.Pool.MaxOpenConns {
			errors = append(errors, "storage.mysql.pool.max_idle_conns cannot exceed max_open_conns")
		}
	}

	// Slack validation
	if c.IsSlackEnabled() {
		if err := ValidateNonEmpty(c.Slack.BotToken, "slack.bot_token"); err != nil {
			errors = append(errors, err.Error())
		}

		if c.Slack.SocketMode.Enabled {
			// Socket Mode requires app token; signing secret only matters for webhooks
			if err := ValidateNonEmpty(c.Slack.SocketMode.AppToken, "slack.socket_mode.app_token"); err != nil {
				errors = append(errors, err.Error())
			}
		} else {
			if err := ValidateNonEmpty(c.Slack.SigningSecret, "slack.signing_secret"); err != nil {
				errors = append(errors, err.Error())
			}
		}
	}

	// Session validation
	if err := ValidateNonEmpty(c.Session.AgentID, "session.agent_id"); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateNonEmpty(c.Session.MainKey, "session.main_key"); err != nil {
		errors = append(errors, err.Error())
	}

	// Queue validation
	if c.Queue.BufferSize < 1 {
		errors = append(errors, "queue.buffer_size must be at least 1")
	}

	// Logging validation
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		errors = append(errors, err.Error())
	}
	if err := ValidateLogFormat(c.Logging.Format); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", joinErrors(errors))
	}

	return nil
}

// joinErrors joins multiple error messages with newlines and bullets.
func joinErrors(errors []string) string {
	if len(errors) == 0 {
		return ""
	}
	result := errors[0]
	for i := 1; i < len(errors); i++ {
		result += "\n  - " + errors[i]
	}
	return result
}
