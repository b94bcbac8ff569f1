package battle

// guardBehavior weakens every enemy unit by value at battle start.
type guardBehavior struct {
	base
}

func newGuard(b Binding) Behavior { return &guardBehavior{base: newBase(b)} }

func (s *guardBehavior) OnBattleStart(ctx *Context) {
	factor := 1 - s.meta.Value
	targets := ctx.Targetable(s.enemy())
	for _, slot := range targets {
		ctx.Multiply(s.enemy(), slot, factor)
	}
	s.logf(ctx, "raises a guard")
	ctx.Logf(s.enemy(), NoSlot, "Guard from %s: %d units ×%.2f", s.owner.Name, len(targets), factor)
}

func init() {
	RegisterBehavior("guard", newGuard)
}
