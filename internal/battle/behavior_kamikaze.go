package battle

// kamikazeBehavior eliminates one random enemy unit at battle start.
// Units with zero base power are not targets. The owner survives.
type kamikazeBehavior struct {
	base
}

func newKamikaze(b Binding) Behavior { return &kamikazeBehavior{base: newBase(b)} }

func (s *kamikazeBehavior) OnBattleStart(ctx *Context) {
	var targets []int
	for _, slot := range ctx.Targetable(s.enemy()) {
		if ctx.Character(s.enemy(), slot).BasePower > 0 {
			targets = append(targets, slot)
		}
	}
	if len(targets) == 0 {
		s.logf(ctx, "finds no target")
		return
	}
	slot := pick(ctx.RNG(), targets)
	ctx.Eliminate(s.enemy(), slot)

	victim := ctx.Character(s.enemy(), slot)
	s.logf(ctx, "crashes into %s", victim.Name)
	ctx.Logf(s.enemy(), slot, "%s was eliminated by %s's Kamikaze", victim.Name, s.owner.Name)
}

func init() {
	RegisterBehavior("kamikaze", newKamikaze)
}
