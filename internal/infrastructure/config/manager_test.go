package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T, content string) (*ConfigManager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	manager, err := NewConfigManager(path, nil)
	require.NoError(t, err)
	return manager, path
}

func rewrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConfigManager_TryReloadReloadableKeys(t *testing.T) {
	manager, path := setupManager(t, `
logging:
  level: info
`)

	var reloaded *Config
	manager.OnReload(func(cfg *Config) { reloaded = cfg })

	rewrite(t, path, `
logging:
  level: debug
slack:
  action_prefix: "bridge:"
session:
  agent_id: oncall
`)

	require.NoError(t, manager.TryReload())

	current := manager.Current()
	assert.Equal(t, "debug", current.Logging.Level)
	assert.Equal(t, "bridge:", current.Slack.ActionPrefix)
	assert.Equal(t, "oncall", current.Session.AgentID)

	require.NotNil(t, reloaded, "reload callback should have fired")
	assert.Equal(t, "debug", reloaded.Logging.Level)
}

func TestConfigManager_TryReloadStaticKeyRejected(t *testing.T) {
	manager, path := setupManager(t, `
server:
  port: 8080
`)

	callbackFired := false
	manager.OnReload(func(*Config) { callbackFired = true })

	rewrite(t, path, `
server:
  port: 9090
`)

	err := manager.TryReload()
	assert.ErrorIs(t, err, ErrRequiresRestart)

	// The running config keeps its old values.
	assert.Equal(t, 8080, manager.Current().Server.Port)
	assert.False(t, callbackFired)
}

func TestConfigManager_TryReloadStorageChangeRejected(t *testing.T) {
	manager, path := setupManager(t, `
storage:
  type: memory
`)

	rewrite(t, path, `
storage:
  type: sqlite
  sqlite:
    path: ":memory:"
`)

	assert.ErrorIs(t, manager.TryReload(), ErrRequiresRestart)
	assert.Equal(t, "memory", manager.Current().Storage.Type)
}

func TestConfigManager_TryReloadInvalidConfig(t *testing.T) {
	manager, path := setupManager(t, `
logging:
  level: info
`)

	rewrite(t, path, `
logging:
  level: louder
`)

	err := manager.TryReload()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRequiresRestart)
	assert.Equal(t, "info", manager.Current().Logging.Level)
}

func TestConfigManager_NoChangeIsNoop(t *testing.T) {
	manager, _ := setupManager(t, `
logging:
  level: info
`)

	require.NoError(t, manager.TryReload())
	assert.Equal(t, "info", manager.Current().Logging.Level)
}

func TestIsReloadable(t *testing.T) {
	assert.True(t, IsReloadable("logging.level"))
	assert.True(t, IsReloadable("slack.action_prefix"))
	assert.True(t, IsReloadable("session.agent_id"))
	assert.False(t, IsReloadable("server.port"))
	assert.False(t, IsReloadable("storage.type"))
	assert.False(t, IsReloadable("slack.bot_token"))
}
