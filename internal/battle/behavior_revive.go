package battle

// reviveBehavior turns a defeat into a draw with probability value.
// A value of 0 never fires, but the roll is still drawn.
// An armed snake trap on the same side takes precedence and no roll is made.
type reviveBehavior struct {
	base
}

func newRevive(b Binding) Behavior { return &reviveBehavior{base: newBase(b)} }

func (s *reviveBehavior) OnBattleEnd(ctx *Context, outcome Outcome) (Outcome, bool) {
	if outcome != Loss || ctx.SnakeTrap(s.side) {
		return "", false
	}
	if !chance(ctx.RNG(), s.meta.Value) {
		return "", false
	}
	s.logf(ctx, "rises again, the battle ends in a draw")
	return Draw, true
}

func init() {
	RegisterBehavior("revive", newRevive)
}
