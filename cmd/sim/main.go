package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skirmish/internal/config"
	"skirmish/internal/database"
	"skirmish/internal/game"
	"skirmish/internal/logs"
	"skirmish/internal/sim"
	"skirmish/pkg/maps"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	dbPath := flag.String("db", "", "History database path (\"-\" disables it)")
	seed := flag.Int64("seed", 0, "Random seed (0 keeps the configured value)")
	size := flag.String("size", "", "Map size: small, medium or large")
	name := flag.String("name", "", "Player name")
	script := flag.String("script", "", "File of JSON command messages to play first")
	maxTurns := flag.Int("max-turns", 0, "Stop after this many turns")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if *size != "" {
		cfg.Game.MapSize = *size
	}
	if *name != "" {
		cfg.Game.PlayerName = *name
	}
	if *maxTurns > 0 {
		cfg.Game.MaxTurns = *maxTurns
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}

	log := logs.New("skirmish", cfg.Log)

	if err := run(cfg, *script, log); err != nil {
		log.Error("simulation failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func run(cfg config.Config, scriptPath string, log *zap.Logger) error {
	mapSize, err := maps.ParseSize(cfg.Game.MapSize)
	if err != nil {
		return err
	}
	settings := game.Settings{
		PlayerName:   cfg.Game.PlayerName,
		OpponentName: cfg.Game.OpponentName,
		MapSize:      mapSize,
		Seed:         cfg.Game.Seed,
	}
	sessionID := uuid.New().String()
	opts := game.Options{ID: sessionID, Logger: log.Named("engine")}

	var db *database.DB
	if cfg.Database.Path != "" && cfg.Database.Path != "-" {
		db, err = database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if _, err := db.CreateSession(sessionID, settings); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		opts.Recorder = db.HistoryRecorder(sessionID)
		log.Info("history enabled", zap.String("db", cfg.Database.Path))
	}

	g, err := game.NewGame(settings, opts)
	if err != nil {
		return err
	}
	log.Debug("map\n" + g.RenderMap())

	simCfg := sim.Config{MaxTurns: cfg.Game.MaxTurns}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		simCfg.Script = f
	}

	runner, err := sim.New(g, db, log.Named("sim"), simCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	switch {
	case out.Draw:
		fmt.Printf("Draw on turn %d\n", out.Turn)
	case out.Over:
		winner, _ := g.Player(out.WinnerID)
		fmt.Printf("%s wins on turn %d\n", winner.Name, out.Turn)
	default:
		fmt.Printf("No result after %d turns\n", out.Turn-1)
	}
	return nil
}
