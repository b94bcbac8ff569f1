package battle

import "strings"

// ZodiacSkillName can never be picked by skill-sealing effects.
const ZodiacSkillName = "Queen of the Zodiacs"

// onyxMoonBehavior seals one random enemy skill. With its companion on the
// team, every enemy unit carrying the sealed skill also loses value.
type onyxMoonBehavior struct {
	base
}

func newOnyxMoon(b Binding) Behavior { return &onyxMoonBehavior{base: newBase(b)} }

func (s *onyxMoonBehavior) OnBattleStart(ctx *Context) {
	sealed := sealRandomSkill(ctx, &s.base)
	if sealed == "" {
		return
	}
	if ctx.FindCharacter(s.side, s.meta.PartnerID, s.slot) < 0 {
		return
	}
	factor := 1 - s.meta.Value
	for _, slot := range ctx.SkillHolders(s.enemy(), sealed) {
		if ctx.Eliminated(s.enemy(), slot) {
			continue
		}
		ctx.Multiply(s.enemy(), slot, factor)
		ctx.Logf(s.enemy(), slot, "%s is dimmed by the Onyx Moon ×%.2f",
			ctx.Character(s.enemy(), slot).Name, factor)
	}
}

// sealRandomSkill suppresses one active enemy skill chosen uniformly at
// random, never the zodiac. Returns the sealed name, or "" when nothing
// could be sealed (no draw is made then).
func sealRandomSkill(ctx *Context, b *base) string {
	var candidates []string
	for _, name := range ctx.ActiveSkills(b.enemy()) {
		if strings.EqualFold(name, ZodiacSkillName) {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		b.logf(ctx, "finds no skill to seal")
		return ""
	}
	name := pick(ctx.RNG(), candidates)
	ctx.SuppressSkill(b.enemy(), name)
	b.logf(ctx, "seals the enemy's %s", name)
	ctx.Logf(b.enemy(), NoSlot, "%s was sealed by %s", name, b.owner.Name)
	return name
}

func init() {
	RegisterBehavior("onyx_moon", newOnyxMoon)
}
