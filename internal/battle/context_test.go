package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/squadbattle/internal/model"
)

func TestContext_InitialState(t *testing.T) {
	ctx := newContext(squad(3, 100), nil, script())

	assert.Equal(t, []int{0, 1, 2}, ctx.Occupied(Attacker))
	assert.Empty(t, ctx.Occupied(Defender))
	for slot := range slots {
		assert.Equal(t, 1.0, ctx.Multiplier(Attacker, slot))
		assert.Zero(t, ctx.Flat(Attacker, slot))
		assert.False(t, ctx.Eliminated(Attacker, slot))
	}
	assert.Len(t, ctx.Team(Defender), slots)
	assert.NoError(t, ctx.Err())
}

func TestContext_MultiplyComposes(t *testing.T) {
	ctx := newContext(squad(1, 100), nil, script())

	ctx.Multiply(Attacker, 0, 1.25)
	ctx.Multiply(Attacker, 0, 0.9)
	ctx.AddFlat(Attacker, 0, 7)
	ctx.AddFlat(Attacker, 0, 3)

	assert.InDelta(t, 1.125, ctx.Multiplier(Attacker, 0), 1e-9)
	assert.Equal(t, 10.0, ctx.Flat(Attacker, 0))
}

func TestContext_EliminateRemovesTarget(t *testing.T) {
	ctx := newContext(squad(3, 100), nil, script())

	ctx.Eliminate(Attacker, 1)

	assert.True(t, ctx.Eliminated(Attacker, 1))
	assert.Zero(t, ctx.Multiplier(Attacker, 1))
	assert.Equal(t, []int{0, 2}, ctx.Targetable(Attacker))
	assert.Equal(t, []int{0, 1, 2}, ctx.Occupied(Attacker))
}

func TestContext_InvalidWrites(t *testing.T) {
	tests := []struct {
		name  string
		write func(*Context)
	}{
		{"slot out of range", func(c *Context) { c.Multiply(Attacker, 5, 2) }},
		{"negative slot", func(c *Context) { c.AddFlat(Attacker, -1, 2) }},
		{"empty slot", func(c *Context) { c.Eliminate(Defender, 0) }},
		{"unknown side", func(c *Context) { c.Multiply(Side(2), 0, 2) }},
		{"log slot out of range", func(c *Context) { c.AddLog(Attacker, 9, "x") }},
		{"variance of empty slot", func(c *Context) { c.SetVarianceOverride(Attacker, 4, 1.1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(squad(1, 100), nil, script())

			tt.write(ctx)

			require.Error(t, ctx.Err())
			assert.ErrorIs(t, ctx.Err(), ErrInternal)
		})
	}
}

func TestContext_FirstViolationWins(t *testing.T) {
	ctx := newContext(squad(1, 100), nil, script())

	ctx.Multiply(Attacker, 7, 2)
	ctx.Multiply(Defender, 3, 2)

	assert.Contains(t, ctx.Err().Error(), "slot 7")
}

func TestContext_Logs(t *testing.T) {
	ctx := newContext(squad(2, 100), nil, script())

	ctx.AddLog(Attacker, NoSlot, "team")
	ctx.AddLog(Attacker, 1, "second")
	ctx.Logf(Attacker, 0, "first %d", 1)

	assert.Equal(t, []string{"first 1", "second", "team"}, collectLogs(ctx, Attacker))
	assert.Equal(t, []string{}, collectLogs(ctx, Defender))
	assert.NoError(t, ctx.Err())
}

func TestContext_Suppression(t *testing.T) {
	ctx := newContext(nil, nil, script())

	ctx.SuppressSkill(Defender, "The Joker")

	assert.True(t, ctx.IsSuppressed(Defender, "the joker"))
	assert.True(t, ctx.IsSuppressed(Defender, " THE JOKER "))
	assert.False(t, ctx.IsSuppressed(Attacker, "The Joker"))
}

func TestContext_FindCharacter(t *testing.T) {
	team := model.Team{unitID(7, "A", 1), nil, unitID(8, "B", 1), unitID(7, "C", 1)}
	ctx := newContext(team, nil, script())

	assert.Equal(t, 0, ctx.FindCharacter(Attacker, 7, NoSlot))
	assert.Equal(t, 3, ctx.FindCharacter(Attacker, 7, 0))
	assert.Equal(t, -1, ctx.FindCharacter(Attacker, 8, 2))
	assert.Equal(t, -1, ctx.FindCharacter(Defender, 7, NoSlot))
}

func TestContext_FlagKeys(t *testing.T) {
	assert.Equal(t, "snake_trap:defender", SnakeTrapKey(Defender))
	assert.Equal(t, "variance_override:attacker_3", VarianceOverrideKey(Attacker, 3))

	ctx := newContext(squad(4, 100), nil, script())
	ctx.SetFlag(SnakeTrapKey(Attacker), true)
	ctx.SetVarianceOverride(Attacker, 3, 1.1)

	assert.True(t, ctx.SnakeTrap(Attacker))
	assert.False(t, ctx.SnakeTrap(Defender))
	v, ok := ctx.VarianceOverride(Attacker, 3)
	require.True(t, ok)
	assert.Equal(t, 1.1, v)
	_, ok = ctx.VarianceOverride(Attacker, 2)
	assert.False(t, ok)
}

func TestContext_ActiveSkillsAndHolders(t *testing.T) {
	team := model.Team{
		unit("A", 100, "Surge", "Guard"),
		unit("B", 100, "Surge"),
		unit("C", 100, "Berserk"),
	}
	ctx := newContext(team, nil, script())
	_, err := fixedEngine(t).instantiate(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Surge", "Guard", "Berserk"}, ctx.ActiveSkills(Attacker))
	assert.Equal(t, []int{0, 1}, ctx.SkillHolders(Attacker, "surge"))

	ctx.SuppressSkill(Attacker, "Surge")

	assert.Equal(t, []string{"Guard", "Berserk"}, ctx.ActiveSkills(Attacker))
}

func TestPowers(t *testing.T) {
	ctx := newContext(squad(2, 100), squad(1, 100), script())
	p := &Powers{ctx: ctx}
	p.v[Attacker] = [slots]int{300, 500}
	p.v[Defender] = [slots]int{400}

	assert.Equal(t, 500, p.Max(Attacker))
	assert.Equal(t, 800, p.Total(Attacker))

	p.Swap(Attacker, 0, Defender, 0)
	assert.Equal(t, [slots]int{400, 500}, p.Side(Attacker))
	assert.Equal(t, [slots]int{300}, p.Side(Defender))

	p.Set(Attacker, 1, -20)
	assert.Zero(t, p.Get(Attacker, 1))
	assert.NoError(t, ctx.Err())

	p.Set(Attacker, 3, 100)
	assert.ErrorIs(t, ctx.Err(), ErrInternal)
	assert.Zero(t, p.Get(Attacker, 3))
}

func TestSide(t *testing.T) {
	assert.Equal(t, Defender, Attacker.Enemy())
	assert.Equal(t, Attacker, Defender.Enemy())
	assert.Equal(t, "attacker", Attacker.String())
	assert.Equal(t, Loss, Win.Invert())
	assert.Equal(t, Draw, Draw.Invert())
	assert.Equal(t, Win, compareTotals(2, 1))
	assert.Equal(t, Draw, compareTotals(1, 1))
}

func TestContext_ActiveSkillsSkipsEliminatedHolders(t *testing.T) {
	team := model.Team{unit("A", 100, "Guard"), unit("B", 100, "Surge"), unit("C", 100, "Surge")}
	ctx := newContext(team, nil, script())
	_, err := fixedEngine(t).instantiate(ctx)
	require.NoError(t, err)

	ctx.Eliminate(Attacker, 0)
	ctx.Eliminate(Attacker, 1)

	assert.Equal(t, []string{"Surge"}, ctx.ActiveSkills(Attacker))
}
