package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
bot:
  name: TestBot
  accumulate_factor: 7
arena:
  width: 20
  height: 25
  turn_timeout_ms: 500
mapgen:
  max_production: 10
ui:
  window:
    width: 1024
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "TestBot", c.Bot.Name)
	assert.Equal(t, 7, c.Bot.AccumulateFactor)
	assert.Equal(t, 20, c.Arena.Width)
	assert.Equal(t, 25, c.Arena.Height)
	assert.Equal(t, 500, c.Arena.TurnTimeoutMs)
	assert.Equal(t, 10, c.MapGen.MaxProduction)
	assert.Equal(t, 1024, c.UI.Window.Width)
	// untouched keys keep their defaults
	assert.Equal(t, "brevity.log", c.Bot.LogFile)
	assert.Equal(t, 900, c.UI.Window.Height)
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, "BrevityBot", c.Bot.Name)
	assert.Equal(t, 5, c.Bot.AccumulateFactor)
	assert.Equal(t, 30, c.Arena.Width)
	assert.Equal(t, 2, c.Arena.Players)
	assert.Equal(t, 255, c.MapGen.StartStrength)
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()

	t.Setenv("HALITE_BOT_ACCUMULATE_FACTOR", "3")
	t.Setenv("HALITE_ARENA_WIDTH", "40")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 3, c.Bot.AccumulateFactor)
	assert.Equal(t, 40, c.Arena.Width)
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("mapgen:\n  max_strength: 300\n"), 0644))

	resetGlobals()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))

	Set("bot.accumulate_factor", 9)
	Set("ui.game.tile_size", 12)

	c := Get()
	assert.Equal(t, 9, c.Bot.AccumulateFactor)
	assert.Equal(t, 12, c.UI.Game.TileSize)
}

func TestValidate(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init(""))
	base := *Get()

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"empty bot name", func(c *Config) { c.Bot.Name = "" }, "bot.name"},
		{"negative factor", func(c *Config) { c.Bot.AccumulateFactor = -1 }, "bot.accumulate_factor"},
		{"zero width", func(c *Config) { c.Arena.Width = 0 }, "arena dimensions"},
		{"no players", func(c *Config) { c.Arena.Players = 0 }, "arena.players"},
		{"zero timeout", func(c *Config) { c.Arena.TurnTimeoutMs = 0 }, "arena timeouts"},
		{"inverted production", func(c *Config) { c.MapGen.MinProduction = 20 }, "production range"},
		{"start strength", func(c *Config) { c.MapGen.StartStrength = 256 }, "start_strength"},
		{"tile size", func(c *Config) { c.UI.Game.TileSize = 0 }, "tile_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := Validate(&c)
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(baseConfig, []byte("arena:\n  width: 20\n  height: 20\n"), 0644))

	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	require.NoError(t, os.WriteFile(envConfig, []byte("arena:\n  width: 50\n  log_level: error\n"), 0644))

	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	resetGlobals()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 50, c.Arena.Width)
	assert.Equal(t, 20, c.Arena.Height)
	assert.Equal(t, "error", c.Arena.LogLevel)
}
