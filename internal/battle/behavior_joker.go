package battle

// jokerBehavior flips a coin: (1+value) on heads, (1-value) on tails.
type jokerBehavior struct {
	base
}

func newJoker(b Binding) Behavior { return &jokerBehavior{base: newBase(b)} }

func (s *jokerBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	if chance(ctx.RNG(), s.meta.Chance) {
		factor := 1 + s.meta.Value
		s.logf(ctx, "the joker grins ×%.2f", factor)
		return factor
	}
	factor := max(1-s.meta.Value, 0)
	s.logf(ctx, "the joker frowns ×%.2f", factor)
	return factor
}

func init() {
	RegisterBehavior("joker", newJoker)
}
