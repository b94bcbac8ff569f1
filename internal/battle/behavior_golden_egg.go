package battle

// goldenEggBehavior multiplies its own slot by (1+value) on a rare proc.
type goldenEggBehavior struct {
	base
}

func newGoldenEgg(b Binding) Behavior { return &goldenEggBehavior{base: newBase(b)} }

func (s *goldenEggBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	if !chance(ctx.RNG(), s.meta.Chance) {
		return 1.0
	}
	factor := 1 + s.meta.Value
	s.logf(ctx, "the golden egg hatches ×%.2f", factor)
	return factor
}

func init() {
	RegisterBehavior("golden_egg", newGoldenEgg)
}
