package battle

// Synergy skills look their partner up once, by anilist ID, among the
// owner's teammates. No link between the two units outlives the lookup.

// amberSunBehavior: with its partner on the team, the partner's multiplier
// grows by (1+value) in phase 1 and the owner's power by (1+value) in phase 2.
type amberSunBehavior struct {
	base
}

func newAmberSun(b Binding) Behavior { return &amberSunBehavior{base: newBase(b)} }

func (s *amberSunBehavior) OnBattleStart(ctx *Context) {
	partner := ctx.FindCharacter(s.side, s.meta.PartnerID, s.slot)
	if partner < 0 {
		return
	}
	factor := 1 + s.meta.Value
	ctx.Multiply(s.side, partner, factor)
	ctx.Logf(s.side, partner, "%s basks in %s's Amber Sun ×%.2f",
		ctx.Character(s.side, partner).Name, s.owner.Name, factor)
}

func (s *amberSunBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	if ctx.FindCharacter(s.side, s.meta.PartnerID, NoSlot) < 0 {
		return 1.0
	}
	factor := 1 + s.meta.Value
	s.logf(ctx, "shines with its partner ×%.2f", factor)
	return factor
}

// eternityBehavior raises the owner by (1+value) when its partner is a teammate.
type eternityBehavior struct {
	base
}

func newEternity(b Binding) Behavior { return &eternityBehavior{base: newBase(b)} }

func (s *eternityBehavior) PowerModifier(ctx *Context, _ float64) float64 {
	if ctx.FindCharacter(s.side, s.meta.PartnerID, s.slot) < 0 {
		return 1.0
	}
	factor := 1 + s.meta.Value
	s.logf(ctx, "bound for eternity ×%.2f", factor)
	return factor
}

// ephemeralityBehavior raises every unit of the team by (1+value) at battle
// start when the owner's partner is a teammate.
type ephemeralityBehavior struct {
	base
}

func newEphemerality(b Binding) Behavior { return &ephemeralityBehavior{base: newBase(b)} }

func (s *ephemeralityBehavior) OnBattleStart(ctx *Context) {
	if ctx.FindCharacter(s.side, s.meta.PartnerID, s.slot) < 0 {
		return
	}
	factor := 1 + s.meta.Value
	targets := ctx.Targetable(s.side)
	for _, slot := range targets {
		ctx.Multiply(s.side, slot, factor)
	}
	s.logf(ctx, "a fleeting moment lifts the team")
	ctx.Logf(s.side, NoSlot, "Ephemerality from %s: %d units ×%.2f", s.owner.Name, len(targets), factor)
}

func init() {
	RegisterBehavior("amber_sun", newAmberSun)
	RegisterBehavior("eternity", newEternity)
	RegisterBehavior("ephemerality", newEphemerality)
}
