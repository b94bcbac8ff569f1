// Package sim runs batches of independent seeded battles.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/squadbattle/internal/battle"
	"github.com/udisondev/squadbattle/internal/model"
)

// ErrNoBattles is returned when Options.Battles is not positive.
var ErrNoBattles = errors.New("batch must contain at least one battle")

// Options controls a batch.
type Options struct {
	// Seed of the first battle; battle i is seeded with Seed+i.
	Seed int64
	// Battles is the number of battles to resolve.
	Battles int
	// Workers bounds concurrent resolutions. Zero means GOMAXPROCS.
	Workers int
}

// Summary aggregates a batch. It depends only on Options and the teams,
// never on scheduling.
type Summary struct {
	Battles           int     `json:"battles"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Draws             int     `json:"draws"`
	WinRate           float64 `json:"win_rate"`
	MeanAttackerTotal float64 `json:"mean_attacker_total"`
	MeanDefenderTotal float64 `json:"mean_defender_total"`
}

// Resolver resolves one battle. *battle.Engine satisfies it.
type Resolver interface {
	Resolve(attacker, defender model.Team, rng battle.Source) (*battle.Result, error)
}

// Run resolves opts.Battles battles between the same two teams, each with
// its own random source. The first failing battle cancels the batch.
func Run(ctx context.Context, r Resolver, attacker, defender model.Team, opts Options) (Summary, error) {
	if opts.Battles <= 0 {
		return Summary{}, ErrNoBattles
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*battle.Result, opts.Battles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range opts.Battles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := opts.Seed + int64(i)
			res, err := r.Resolve(attacker, defender, battle.NewRand(seed))
			if err != nil {
				return fmt.Errorf("battle %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	s := summarize(results)
	slog.Debug("batch finished",
		"battles", s.Battles,
		"wins", s.Wins,
		"losses", s.Losses,
		"draws", s.Draws,
		"workers", workers)
	return s, nil
}

func summarize(results []*battle.Result) Summary {
	s := Summary{Battles: len(results)}
	var attacker, defender int64
	for _, res := range results {
		switch res.Outcome {
		case battle.Win:
			s.Wins++
		case battle.Loss:
			s.Losses++
		case battle.Draw:
			s.Draws++
		}
		attacker += int64(res.AttackerTotal)
		defender += int64(res.DefenderTotal)
	}
	n := float64(s.Battles)
	s.WinRate = float64(s.Wins) / n
	s.MeanAttackerTotal = float64(attacker) / n
	s.MeanDefenderTotal = float64(defender) / n
	return s
}
