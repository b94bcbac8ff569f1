package battle

// berserkBehavior raises its own slot by (1+value) with probability chance.
type berserkBehavior struct {
	base
}

func newBerserk(b Binding) Behavior { return &berserkBehavior{base: newBase(b)} }

func (s *berserkBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	if !chance(ctx.RNG(), s.meta.Chance) {
		return 1.0
	}
	factor := 1 + s.meta.Value
	s.logf(ctx, "goes berserk ×%.2f", factor)
	return factor
}

func init() {
	RegisterBehavior("berserk", newBerserk)
}
