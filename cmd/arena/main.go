package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jerold/Halite/internal/arena"
	"github.com/jerold/Halite/internal/config"
	"github.com/jerold/Halite/internal/game"
	"github.com/jerold/Halite/internal/monitoring"
)

const builtinSpec = "builtin"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	width := flag.Int("width", -1, "Map width (-1 to use config default)")
	height := flag.Int("height", -1, "Map height (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Map seed (-1 to use config default, 0 for time based)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit (-1 to use config default, 0 for 10*sqrt(w*h))")
	games := flag.Int("games", 1, "Number of matches to play")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	dbPath := flag.String("db", "", "Results database path (empty to use config default, \"-\" to disable)")
	healthAddr := flag.String("health-addr", "", "gRPC health endpoint address (empty to use config default)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] player...\n\nEach player is %q or a command that speaks the Halite protocol.\n\n", os.Args[0], builtinSpec)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *width != -1 {
		cfg.Arena.Width = *width
	}
	if *height != -1 {
		cfg.Arena.Height = *height
	}
	if *seed != -1 {
		cfg.Arena.Seed = *seed
	}
	if *maxTurns != -1 {
		cfg.Arena.MaxTurns = *maxTurns
	}
	if *logLevel == "" {
		*logLevel = cfg.Arena.LogLevel
	}
	switch *dbPath {
	case "":
		*dbPath = cfg.Arena.DBPath
	case "-":
		*dbPath = ""
	}
	if *healthAddr == "" {
		*healthAddr = cfg.Arena.HealthAddr
	}

	setupLogging(*logLevel)

	specs := flag.Args()
	if len(specs) == 0 {
		specs = make([]string, cfg.Arena.Players)
		for i := range specs {
			specs[i] = builtinSpec
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var health *healthServer
	if *healthAddr != "" {
		var err error
		if health, err = startHealthServer(*healthAddr); err != nil {
			log.Fatal().Err(err).Str("address", *healthAddr).Msg("Failed to start health endpoint")
		}
		defer health.Stop()
	}

	// Each remote player holds at most one pending exchange goroutine.
	monitor := monitoring.NewGoroutineMonitor(30*time.Second, 10+4*len(specs), log.Logger)
	monitor.Start()
	defer monitor.Stop()

	opts := runOptions{
		Config:  cfg,
		Specs:   specs,
		Games:   *games,
		DBPath:  *dbPath,
		Health:  health,
		Monitor: monitor,
		Started: time.Now(),
	}
	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Arena stopped")
		cancel()
		os.Exit(1)
	}
}

type runOptions struct {
	Config  *config.Config
	Specs   []string
	Games   int
	DBPath  string
	Health  *healthServer
	Monitor *monitoring.GoroutineMonitor
	Started time.Time
}

// run plays opts.Games matches in a row and writes one JSON result per line to out.
func run(ctx context.Context, opts runOptions, out io.Writer) error {
	cfg := opts.Config

	var store *arena.Store
	if opts.DBPath != "" {
		var err error
		if store, err = arena.Open(opts.DBPath, log.Logger); err != nil {
			return err
		}
		defer store.Close()
	}

	seed := cfg.Arena.Seed
	if seed == 0 {
		seed = opts.Started.UnixNano()
	}

	opts.Health.SetServing(true)
	defer opts.Health.SetServing(false)

	if opts.Monitor != nil {
		opts.Monitor.RegisterComponent("players", len(opts.Specs))
	}

	enc := json.NewEncoder(out)
	for i := 0; i < max(opts.Games, 1); i++ {
		players, err := buildPlayers(opts.Specs, cfg)
		if err != nil {
			return err
		}

		gameCfg := game.ConfigFromApp(cfg, log.Logger, nil)
		match := arena.NewMatch(arena.MatchConfig{
			Game:        gameCfg,
			Seed:        seed + int64(i),
			InitTimeout: time.Duration(cfg.Arena.InitTimeoutMs) * time.Millisecond,
			TurnTimeout: time.Duration(cfg.Arena.TurnTimeoutMs) * time.Millisecond,
		}, players, log.Logger)

		result, err := match.Run(ctx)
		if err != nil {
			return err
		}

		if store != nil {
			if err := store.SaveResult(ctx, result); err != nil {
				log.Error().Err(err).Str("match_id", result.ID).Msg("Failed to save match result")
			}
		}
		if err := enc.Encode(result); err != nil {
			return err
		}
		if opts.Monitor != nil && opts.Monitor.Check() {
			log.Warn().Interface("goroutines", opts.Monitor.GetMetrics()).Msg("Goroutines still growing after match")
		}
	}
	return nil
}

// buildPlayers turns each spec into a player. On error every player started so far is closed.
func buildPlayers(specs []string, cfg *config.Config) ([]arena.Player, error) {
	players := make([]arena.Player, 0, len(specs))
	for _, spec := range specs {
		if spec == builtinSpec {
			players = append(players, arena.NewLocalPlayer(cfg.Bot.Name, cfg.Bot.AccumulateFactor, log.Logger))
			continue
		}
		p, err := arena.StartProcess(spec, log.Logger)
		if err != nil {
			for _, started := range players {
				_ = started.Close()
			}
			return nil, err
		}
		players = append(players, p)
	}
	if len(players) == 0 {
		return nil, errors.New("no players given")
	}
	return players, nil
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// stdout carries match results, logs go to stderr.
	if os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
