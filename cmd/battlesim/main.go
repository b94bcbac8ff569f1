package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/squadbattle/internal/battle"
	"github.com/udisondev/squadbattle/internal/config"
	"github.com/udisondev/squadbattle/internal/db"
	"github.com/udisondev/squadbattle/internal/sim"
	"github.com/udisondev/squadbattle/internal/skill"
)

const DefaultConfigPath = "config/battlesim.yaml"

type options struct {
	configPath string
	attacker   string
	defender   string
	seed       int64
	battles    int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file (default $SQUADBATTLE_CONFIG or "+DefaultConfigPath+")")
	flag.StringVar(&opts.attacker, "attacker", "", "attacker squad YAML file")
	flag.StringVar(&opts.defender, "defender", "", "defender squad YAML file")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed for reproducibility (0 = time based)")
	flag.IntVar(&opts.battles, "n", 1, "number of battles; more than one prints a batch summary and is never persisted")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out, logOut io.Writer) error {
	if opts.attacker == "" || opts.defender == "" {
		return errors.New("both -attacker and -defender are required")
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = DefaultConfigPath
		if p := os.Getenv("SQUADBATTLE_CONFIG"); p != "" {
			cfgPath = p
		}
	}
	cfg, err := config.LoadBattleSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	reg, err := skill.LoadFile(cfg.SkillCatalog)
	if err != nil {
		return fmt.Errorf("loading skill catalog: %w", err)
	}
	if err := battle.ValidateRegistry(reg); err != nil {
		return fmt.Errorf("validating skill catalog: %w", err)
	}

	var attacker, defender squadFile
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		attacker, err = loadSquad(opts.attacker)
		return err
	})
	g.Go(func() (err error) {
		defender, err = loadSquad(opts.defender)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("battlesim starting",
		"seed", seed,
		"battles", opts.battles,
		"attacker", attacker.Members.Size(),
		"defender", defender.Members.Size())

	engine := battle.NewEngine(reg, battle.Config{
		VarianceMin: cfg.Variance.Min,
		VarianceMax: cfg.Variance.Max,
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if opts.battles > 1 {
		if cfg.Persist {
			slog.Warn("persist is ignored for batches, only single battles are recorded", "battles", opts.battles)
		}
		summary, err := sim.Run(ctx, engine, attacker.Members, defender.Members, sim.Options{
			Seed:    seed,
			Battles: opts.battles,
			Workers: cfg.Batch.Workers,
		})
		if err != nil {
			return fmt.Errorf("running batch: %w", err)
		}
		return enc.Encode(summary)
	}

	res, err := engine.Resolve(attacker.Members, defender.Members, battle.NewRand(seed))
	if err != nil {
		return fmt.Errorf("resolving battle: %w", err)
	}
	if cfg.Persist {
		if err := persist(ctx, cfg.Database.DSN(), seed, attacker, defender, res); err != nil {
			return err
		}
	}
	return enc.Encode(res)
}

func persist(ctx context.Context, dsn string, seed int64, attacker, defender squadFile, res *battle.Result) error {
	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for _, sf := range []squadFile{attacker, defender} {
		if err := database.Characters().Upsert(ctx, sf.Members...); err != nil {
			return fmt.Errorf("storing characters: %w", err)
		}
		if sf.OwnerID == 0 {
			continue
		}
		if err := database.Squads().Save(ctx, sf.OwnerID, sf.Members); err != nil {
			return fmt.Errorf("storing squad: %w", err)
		}
	}

	id, err := database.Battles().Save(ctx, db.NewBattleRecord(seed, attacker.OwnerID, defender.OwnerID, res))
	if err != nil {
		return fmt.Errorf("storing battle: %w", err)
	}
	slog.Info("battle recorded", "id", id, "outcome", res.Outcome)
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
