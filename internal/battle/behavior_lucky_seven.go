package battle

// luckySevenBehavior rolls two independent procs: a large multiplier and a
// flat bonus. values = [multiplier chance, multiplier, flat chance, flat].
type luckySevenBehavior struct {
	base
}

func newLuckySeven(b Binding) Behavior { return &luckySevenBehavior{base: newBase(b)} }

func (s *luckySevenBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	var (
		multChance = s.meta.ValueAt(0, 0.07)
		mult       = s.meta.ValueAt(1, 8.77)
		flatChance = s.meta.ValueAt(2, 0.77)
		flat       = s.meta.ValueAt(3, 7777)
	)

	factor := 1.0
	if chance(ctx.RNG(), multChance) {
		factor = mult
		s.logf(ctx, "jackpot ×%.2f", mult)
	}
	if chance(ctx.RNG(), flatChance) {
		ctx.AddFlat(s.side, s.slot, flat)
		s.logf(ctx, "lucky bonus +%.0f", flat)
	}
	return factor
}

func init() {
	RegisterBehavior("lucky_seven", newLuckySeven)
}
