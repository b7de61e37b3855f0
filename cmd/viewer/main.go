package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/game"
	"github.com/jerold/Halite/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	width := flag.Int("width", -1, "Map width (-1 to use config default)")
	height := flag.Int("height", -1, "Map height (-1 to use config default)")
	players := flag.Int("players", -1, "Number of built-in players (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Map seed (-1 to use config default, 0 for time based)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *width != -1 {
		cfg.Arena.Width = *width
	}
	if *height != -1 {
		cfg.Arena.Height = *height
	}
	if *players != -1 {
		cfg.Arena.Players = *players
	}
	if *seed != -1 {
		cfg.Arena.Seed = *seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Arena.LogLevel
	}
	if cfg.Arena.Seed == 0 {
		cfg.Arena.Seed = time.Now().UnixNano()
	}

	setupLogging(*logLevel)

	uiGame, err := ui.NewUIGame(game.ConfigFromApp(cfg, log.Logger, nil), cfg.Bot.AccumulateFactor, cfg.Arena.Seed, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start match")
	}

	if config.ConfigFilePath() != "" {
		config.WatchConfig(uiGame.ApplyConfig)
	}

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(uiGame); err != nil {
		log.Fatal().Err(err).Msg("Viewer stopped")
	}
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
