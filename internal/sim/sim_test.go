package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/squadbattle/internal/battle"
	"github.com/udisondev/squadbattle/internal/model"
	"github.com/udisondev/squadbattle/internal/skill"
)

func teams() (model.Team, model.Team) {
	attacker := model.Team{
		{AnilistID: 1, Name: "Saber", BasePower: 1200, AbilityTags: []string{"Berserk", "Queen of the Zodiacs"}},
		{AnilistID: 2, Name: "Archer", BasePower: 900, AbilityTags: []string{"Lucky 7"}},
	}
	defender := model.Team{
		{AnilistID: 3, Name: "Lancer", BasePower: 1000, AbilityTags: []string{"Revive"}},
		{AnilistID: 4, Name: "Caster", BasePower: 1100, AbilityTags: []string{"Kamikaze"}},
	}
	return attacker, defender
}

func TestRun_DeterministicAcrossWorkerCounts(t *testing.T) {
	engine := battle.NewEngine(skill.Default(), battle.DefaultConfig())
	attacker, defender := teams()

	serial, err := Run(context.Background(), engine, attacker, defender, Options{Seed: 11, Battles: 200, Workers: 1})
	require.NoError(t, err)
	parallel, err := Run(context.Background(), engine, attacker, defender, Options{Seed: 11, Battles: 200, Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, 200, serial.Wins+serial.Losses+serial.Draws)
	assert.InDelta(t, float64(serial.Wins)/200, serial.WinRate, 1e-12)
}

func TestRun_MatchesSingleBattles(t *testing.T) {
	engine := battle.NewEngine(skill.Default(), battle.DefaultConfig())
	attacker, defender := teams()

	var wins int
	for i := range 20 {
		res, err := engine.Resolve(attacker, defender, battle.NewRand(int64(100+i)))
		require.NoError(t, err)
		if res.Outcome == battle.Win {
			wins++
		}
	}

	s, err := Run(context.Background(), engine, attacker, defender, Options{Seed: 100, Battles: 20, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, wins, s.Wins)
}

func TestRun_NoBattles(t *testing.T) {
	_, err := Run(context.Background(), nil, nil, nil, Options{})
	assert.ErrorIs(t, err, ErrNoBattles)
}

type failingResolver struct {
	calls atomic.Int32
	err   error
}

func (f *failingResolver) Resolve(model.Team, model.Team, battle.Source) (*battle.Result, error) {
	f.calls.Add(1)
	return nil, f.err
}

func TestRun_PropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	r := &failingResolver{err: boom}

	_, err := Run(context.Background(), r, nil, nil, Options{Battles: 50, Workers: 1})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "battle 0")
	assert.Less(t, int(r.calls.Load()), 50)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := battle.NewEngine(skill.Default(), battle.DefaultConfig())
	attacker, defender := teams()

	_, err := Run(ctx, engine, attacker, defender, Options{Battles: 10})

	assert.ErrorIs(t, err, context.Canceled)
}
