package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Bot    BotConfig    `mapstructure:"bot"`
	Arena  ArenaConfig  `mapstructure:"arena"`
	MapGen MapGenConfig `mapstructure:"mapgen"`
	UI     UIConfig     `mapstructure:"ui"`
}

// BotConfig holds settings for the agent binary
type BotConfig struct {
	Name     string `mapstructure:"name"`
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
	// A tile waits until its strength reaches production * AccumulateFactor before moving inward.
	AccumulateFactor int `mapstructure:"accumulate_factor"`
}

// ArenaConfig holds settings for the local game host
type ArenaConfig struct {
	Width         int    `mapstructure:"width"`
	Height        int    `mapstructure:"height"`
	Players       int    `mapstructure:"players"`
	MaxTurns      int    `mapstructure:"max_turns"`
	Seed          int64  `mapstructure:"seed"`
	InitTimeoutMs int    `mapstructure:"init_timeout_ms"`
	TurnTimeoutMs int    `mapstructure:"turn_timeout_ms"`
	DBPath        string `mapstructure:"db_path"`
	HealthAddr    string `mapstructure:"health_addr"`
	LogLevel      string `mapstructure:"log_level"`
}

// MapGenConfig holds map generation settings
type MapGenConfig struct {
	MinProduction   int `mapstructure:"min_production"`
	MaxProduction   int `mapstructure:"max_production"`
	MinStrength     int `mapstructure:"min_strength"`
	MaxStrength     int `mapstructure:"max_strength"`
	StartStrength   int `mapstructure:"start_strength"`
	MinSpawnSpacing int `mapstructure:"min_spawn_spacing"`
}

// UIConfig holds viewer configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds viewer playback settings
type UIGameConfig struct {
	TileSize     int `mapstructure:"tile_size"`
	TurnInterval int `mapstructure:"turn_interval"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("bot.name", "BrevityBot")
	v.SetDefault("bot.log_file", "brevity.log")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.accumulate_factor", 5)

	v.SetDefault("arena.width", 30)
	v.SetDefault("arena.height", 30)
	v.SetDefault("arena.players", 2)
	v.SetDefault("arena.max_turns", 0)
	v.SetDefault("arena.seed", 0)
	v.SetDefault("arena.init_timeout_ms", 15000)
	v.SetDefault("arena.turn_timeout_ms", 1000)
	v.SetDefault("arena.db_path", "data/arena.db")
	v.SetDefault("arena.health_addr", "")
	v.SetDefault("arena.log_level", "info")

	v.SetDefault("mapgen.min_production", 1)
	v.SetDefault("mapgen.max_production", 15)
	v.SetDefault("mapgen.min_strength", 5)
	v.SetDefault("mapgen.max_strength", 255)
	v.SetDefault("mapgen.start_strength", 255)
	v.SetDefault("mapgen.min_spawn_spacing", 5)

	v.SetDefault("ui.window.width", 900)
	v.SetDefault("ui.window.height", 900)
	v.SetDefault("ui.window.title", "Halite Viewer")
	v.SetDefault("ui.game.tile_size", 30)
	v.SetDefault("ui.game.turn_interval", 10)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/halite")
	}

	v.SetEnvPrefix("HALITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search path only
		// ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Bot.Name == "" {
		return fmt.Errorf("bot.name must not be empty")
	}
	if c.Bot.AccumulateFactor <= 0 {
		return fmt.Errorf("bot.accumulate_factor must be positive")
	}

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena dimensions must be positive")
	}
	if c.Arena.Players < 1 {
		return fmt.Errorf("arena.players must be at least 1")
	}
	if c.Arena.MaxTurns < 0 {
		return fmt.Errorf("arena.max_turns must be non-negative")
	}
	if c.Arena.InitTimeoutMs <= 0 || c.Arena.TurnTimeoutMs <= 0 {
		return fmt.Errorf("arena timeouts must be positive")
	}

	if c.MapGen.MinProduction < 0 || c.MapGen.MaxProduction < c.MapGen.MinProduction {
		return fmt.Errorf("mapgen production range is invalid")
	}
	if c.MapGen.MinStrength < 0 || c.MapGen.MaxStrength < c.MapGen.MinStrength || c.MapGen.MaxStrength > 255 {
		return fmt.Errorf("mapgen strength range must be within 0..255")
	}
	if c.MapGen.StartStrength < 0 || c.MapGen.StartStrength > 255 {
		return fmt.Errorf("mapgen.start_strength must be between 0 and 255")
	}
	if c.MapGen.MinSpawnSpacing < 1 {
		return fmt.Errorf("mapgen.min_spawn_spacing must be at least 1")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}
	if c.UI.Game.TurnInterval <= 0 {
		return fmt.Errorf("ui.game.turn_interval must be positive")
	}

	return nil
}
