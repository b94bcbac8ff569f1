package battle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/squadbattle/internal/model"
	"github.com/udisondev/squadbattle/internal/skill"
)

// scriptedSource replays queued draws. Float64 and Intn have separate
// queues; an exhausted Float64 queue returns 0.999 (no proc fires) and an
// exhausted Intn queue returns 0.
type scriptedSource struct {
	floats []float64
	ints   []int

	floatCalls int
	intCalls   int
}

func script() *scriptedSource { return &scriptedSource{} }

func (s *scriptedSource) withFloats(v ...float64) *scriptedSource {
	s.floats = append(s.floats, v...)
	return s
}

func (s *scriptedSource) withInts(v ...int) *scriptedSource {
	s.ints = append(s.ints, v...)
	return s
}

func (s *scriptedSource) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return 0.999
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted Intn value out of range")
	}
	return v
}

func unit(name string, power int, tags ...string) *model.Character {
	return &model.Character{AnilistID: 1, Name: name, BasePower: power, AbilityTags: tags}
}

func unitID(id int, name string, power int, tags ...string) *model.Character {
	return &model.Character{AnilistID: id, Name: name, BasePower: power, AbilityTags: tags}
}

func squad(n, power int) model.Team {
	t := make(model.Team, n)
	for i := range t {
		t[i] = unitID(9000+i, "Grunt", power)
	}
	return t
}

func fixedEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(skill.Default(), FixedVariance(1.0))
}

func resolveFixed(t *testing.T, attacker, defender model.Team, rng Source) *Result {
	t.Helper()
	res, err := fixedEngine(t).Resolve(attacker, defender, rng)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// testRegistry builds a registry from the default catalogue entries plus extra.
func testRegistry(t *testing.T, extra ...skill.Metadata) *skill.Registry {
	t.Helper()
	base := skill.Default()
	entries := make([]skill.Metadata, 0, base.Len()+len(extra))
	for _, name := range base.List() {
		m, _ := base.Get(name)
		entries = append(entries, *m)
	}
	entries = append(entries, extra...)
	reg, err := skill.NewRegistry(entries)
	require.NoError(t, err)
	return reg
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
