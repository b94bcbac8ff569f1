package battle

// surgeBehavior raises its own slot by (1+value).
type surgeBehavior struct {
	base
}

func newSurge(b Binding) Behavior { return &surgeBehavior{base: newBase(b)} }

func (s *surgeBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	factor := 1 + s.meta.Value
	s.logf(ctx, "power surges ×%.2f", factor)
	return factor
}

func init() {
	RegisterBehavior("surge", newSurge)
}
