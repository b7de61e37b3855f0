package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jerold/Halite/internal/agent"
	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/protocol"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logFile := flag.String("log-file", "", "Log file path (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		// stdout belongs to the game host, so the only place left to complain is stderr.
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Bot.LogLevel
	}
	if *logFile == "" {
		*logFile = cfg.Bot.LogFile
	}

	closeLog := setupLogging(*logLevel, *logFile)
	defer func() { _ = closeLog() }()

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Bot stopped")
		// os.Exit skips the deferred close.
		_ = closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	conn := protocol.NewConn(in, out)

	tag, m, err := conn.GetInit()
	if err != nil {
		return err
	}
	if err := conn.SendInit(cfg.Bot.Name); err != nil {
		return err
	}

	bot := agent.New(cfg.Bot.AccumulateFactor, log.Logger)
	logger := log.With().Int("player_id", tag).Logger()
	logger.Info().
		Str("name", cfg.Bot.Name).
		Int("width", m.Width).
		Int("height", m.Height).
		Int("accumulate_factor", bot.AccumulateFactor()).
		Msg("Initialized")

	for turn := 1; ; turn++ {
		m, err = conn.GetFrame()
		if errors.Is(err, io.EOF) {
			logger.Info().Int("turns", turn-1).Msg("Host closed the game")
			return nil
		}
		if err != nil {
			return err
		}

		moves := bot.Moves(m, tag)
		if err := conn.SendFrame(moves); err != nil {
			return err
		}
		logger.Debug().Int("turn", turn).Int("owned", len(moves)).Msg("Sent moves")
	}
}

// setupLogging points the global logger at a file. Stdout carries the game protocol and
// must never receive log output. The returned closer may be called more than once.
func setupLogging(level, path string) func() error {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var out io.Writer = io.Discard
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err == nil {
		out = f
	}

	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	var (
		once     sync.Once
		closeErr error
	)
	return func() error {
		once.Do(func() {
			if f != nil {
				closeErr = f.Close()
			}
		})
		return closeErr
	}
}
