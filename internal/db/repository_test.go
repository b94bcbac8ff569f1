package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/squadbattle/internal/battle"
	"github.com/udisondev/squadbattle/internal/model"
	"github.com/udisondev/squadbattle/internal/skill"
)

func sampleTeam() model.Team {
	return model.Team{
		{AnilistID: 40881, Name: "Sun", BasePower: 1200, Rarity: model.RaritySSR, AbilityTags: []string{"The Onyx Moon"}},
		nil,
		{AnilistID: 40882, Name: "Moon", BasePower: 900, AbilityTags: []string{"The Amber Sun", "Surge"}},
	}
}

func TestCharacterRepository_UpsertAndLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(pool)

	require.NoError(t, repo.Upsert(ctx, sampleTeam()...))

	updated := &model.Character{AnilistID: 40882, Name: "Moon", BasePower: 1500, Rarity: model.RarityUR}
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.LoadByIDs(ctx, []int{40881, 40882, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Sun", got[40881].Name)
	assert.Equal(t, model.RaritySSR, got[40881].Rarity)
	assert.Equal(t, []string{"The Onyx Moon"}, got[40881].AbilityTags)

	assert.Equal(t, 1500, got[40882].BasePower)
	assert.Equal(t, model.RarityUR, got[40882].Rarity)
	assert.Empty(t, got[40882].AbilityTags)
}

func TestCharacterRepository_RejectsInvalid(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCharacterRepository(pool)

	err := repo.Upsert(context.Background(), &model.Character{AnilistID: 5, Name: "Bad", BasePower: -1})

	assert.Error(t, err)
}

func TestSquadRepository_SaveAndLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	team := sampleTeam()
	require.NoError(t, NewCharacterRepository(pool).Upsert(ctx, team...))
	repo := NewSquadRepository(pool)

	require.NoError(t, repo.Save(ctx, 77, team))

	got, err := repo.Load(ctx, 77)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Sun", got[0].Name)
	assert.Nil(t, got[1])
	assert.Equal(t, "Moon", got[2].Name)
	assert.Equal(t, model.RarityR, got[2].Rarity)

	// Full rewrite.
	require.NoError(t, repo.Save(ctx, 77, model.Team{team[2]}))
	got, err = repo.Load(ctx, 77)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 40882, got[0].AnilistID)

	empty, err := repo.Load(ctx, 78)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestSquadRepository_UnknownCharacterRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	team := sampleTeam()
	require.NoError(t, NewCharacterRepository(pool).Upsert(ctx, team...))
	repo := NewSquadRepository(pool)
	require.NoError(t, repo.Save(ctx, 5, team))

	err := repo.Save(ctx, 5, model.Team{{AnilistID: 999, Name: "Ghost", BasePower: 1}})
	require.Error(t, err)

	got, err := repo.Load(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Size(), "previous squad survives a failed save")
}

func TestBattleRepository_SaveAndList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewBattleRepository(pool)

	team := sampleTeam()
	engine := battle.NewEngine(skill.Default(), battle.DefaultConfig())
	res, err := engine.Resolve(team, model.Team{team[0]}, battle.NewRand(9))
	require.NoError(t, err)

	id, err := repo.Save(ctx, NewBattleRecord(9, 1, 2, res))
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = repo.Save(ctx, NewBattleRecord(10, 3, 4, res))
	require.NoError(t, err)

	for _, owner := range []int64{1, 2} {
		list, err := repo.ListByOwner(ctx, owner, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)

		rec := list[0]
		assert.Equal(t, id, rec.ID)
		assert.Equal(t, int64(9), rec.Seed)
		assert.Equal(t, *res, rec.Result)
		assert.False(t, rec.CreatedAt.IsZero())
	}

	none, err := repo.ListByOwner(ctx, 99, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	pool := setupTestDB(t)

	assert.NoError(t, migratePool(context.Background(), pool))
}
