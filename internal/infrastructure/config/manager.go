package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openclaw/interaction-bridge/internal/domain/logger"
)

// ErrRequiresRestart is returned when a config change touches a static key.
var ErrRequiresRestart = errors.New("configuration change requires restart")

// ConfigManager holds the live configuration and supports hot reload of
// whitelisted keys. Static key changes are rejected with ErrRequiresRestart.
type ConfigManager struct {
	path   string
	logger logger.Logger

	mu       sync.RWMutex
	current  *Config
	onReload []func(*Config)
}

// NewConfigManager loads the initial config from path and returns a manager.
func NewConfigManager(path string, log logger.Logger) (*ConfigManager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &ConfigManager{
		path:    path,
		logger:  log,
		current: cfg,
	}, nil
}

// SetLogger swaps the manager's logger. Call during startup only, once
// the real logger exists; the config has to load before logging can.
func (m *ConfigManager) SetLogger(log logger.Logger) {
	if log == nil {
		return
	}
	m.mu.Lock()
	m.logger = log
	m.mu.Unlock()
}

// Current returns the active configuration.
func (m *ConfigManager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnReload registers a callback invoked after a successful reload.
func (m *ConfigManager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReload = append(m.onReload, fn)
}

// TryReload re-reads the config file and applies it if only reloadable
// keys changed. Returns ErrRequiresRestart when a static key changed.
func (m *ConfigManager) TryReload() error {
	next, err := Load(m.path)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}

	m.mu.Lock()
	prev := m.current

	if key := firstStaticChange(prev, next); key != "" {
		m.mu.Unlock()
		m.logger.Warn("config reload rejected",
			"key", key,
			"reason", getRestartReason(key),
		)
		return ErrRequiresRestart
	}

	m.current = next
	callbacks := make([]func(*Config), len(m.onReload))
	copy(callbacks, m.onReload)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(next)
	}

	m.logger.Info("configuration reloaded", "path", m.path)
	return nil
}

// firstStaticChange returns the first static key that differs between
// the two configs, or "" when only reloadable keys changed.
func firstStaticChange(prev, next *Config) string {
	if prev.Server != next.Server {
		return "server.port"
	}
	if prev.Storage.Type != next.Storage.Type {
		return "storage.type"
	}
	if prev.Storage.SQLite != next.Storage.SQLite {
		return "storage.sqlite"
	}
	if !reflect.DeepEqual(prev.Storage.MySQL, next.Storage.MySQL) {
		return "storage.mysql"
	}
	if prev.Slack.Enabled != next.Slack.Enabled || prev.Slack.BotToken != next.Slack.BotToken || prev.Slack.SigningSecret != next.Slack.SigningSecret {
		return "slack.bot_token"
	}
	if prev.Slack.SocketMode != next.Slack.SocketMode {
		return "slack.socket_mode"
	}
	if prev.Queue != next.Queue {
		return "queue.buffer_size"
	}
	return ""
}

// Watch monitors the config file for changes and reloads automatically.
// It blocks until the context is cancelled.
func (m *ConfigManager) Watch(ctx context.Context) error {
	if m.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editor rename-and-replace writes are seen.
	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching config directory: %w", err)
	}

	target := filepath.Clean(m.path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	reloads := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Coalesce rapid successive writes.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case reloads <- struct{}{}:
				default:
				}
			})

		case <-reloads:
			if err := m.TryReload(); err != nil {
				if errors.Is(err, ErrRequiresRestart) {
					continue
				}
				m.logger.Error("automatic config reload failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("config watcher error", "error", err)
		}
	}
}
