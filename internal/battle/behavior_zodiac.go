package battle

// ZodiacSign is one of the twelve outcomes of the zodiac lottery.
type ZodiacSign int

const (
	SignRat ZodiacSign = iota
	SignOx
	SignTiger
	SignRabbit
	SignDragon
	SignSnake
	SignHorse
	SignSheep
	SignMonkey
	SignRooster
	SignDog
	SignPig

	zodiacSigns = 12
)

var signNames = [zodiacSigns]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Sheep", "Monkey", "Rooster", "Dog", "Pig",
}

func (s ZodiacSign) String() string {
	if s < 0 || s >= zodiacSigns {
		return "Unknown"
	}
	return signNames[s]
}

// zodiacParams are read from the catalogue values list, in this order.
type zodiacParams struct {
	rat, ox, tiger, rabbit, dragon float64
	horseSelf, horseMate           float64
	roosterTeam, roosterSelf       float64
}

// zodiacBehavior draws a sign in phase 1. Sheep, Monkey and Dog only
// record their effect there; the same behavior applies it in phase 3.
// Snake arms a trap that turns a defeat into a draw in phase 4.
type zodiacBehavior struct {
	base
	p      zodiacParams
	sign   ZodiacSign
	drawn  bool
	queued bool
}

func newZodiac(b Binding) Behavior {
	m := b.Meta
	return &zodiacBehavior{
		base: newBase(b),
		p: zodiacParams{
			rat:         m.ValueAt(0, 1.20),
			ox:          m.ValueAt(1, 0.85),
			tiger:       m.ValueAt(2, 1.05),
			rabbit:      m.ValueAt(3, 0.93),
			dragon:      m.ValueAt(4, 1.10),
			horseSelf:   m.ValueAt(5, 0.90),
			horseMate:   m.ValueAt(6, 1.20),
			roosterTeam: m.ValueAt(7, 1.03),
			roosterSelf: m.ValueAt(8, 1.06),
		},
	}
}

// Sign returns the drawn sign; ok is false before phase 1.
func (z *zodiacBehavior) Sign() (ZodiacSign, bool) { return z.sign, z.drawn }

func (z *zodiacBehavior) OnBattleStart(ctx *Context) {
	z.sign = ZodiacSign(ctx.RNG().Intn(zodiacSigns))
	z.drawn = true
	z.logf(ctx, "the zodiac turns to the %s", z.sign)

	switch z.sign {
	case SignRat:
		ctx.Multiply(z.side, z.slot, z.p.rat)
		z.logf(ctx, "Rat ×%.2f", z.p.rat)

	case SignOx:
		targets := ctx.Targetable(z.enemy())
		if len(targets) == 0 {
			return
		}
		slot := pick(ctx.RNG(), targets)
		ctx.Multiply(z.enemy(), slot, z.p.ox)
		ctx.Logf(z.enemy(), slot, "%s is trampled by the Ox ×%.2f", ctx.Character(z.enemy(), slot).Name, z.p.ox)

	case SignTiger:
		for _, slot := range ctx.Targetable(z.side) {
			ctx.Multiply(z.side, slot, z.p.tiger)
		}
		ctx.Logf(z.side, NoSlot, "Tiger from %s: team ×%.2f", z.owner.Name, z.p.tiger)

	case SignRabbit:
		for _, slot := range ctx.Targetable(z.enemy()) {
			ctx.Multiply(z.enemy(), slot, z.p.rabbit)
		}
		ctx.Logf(z.enemy(), NoSlot, "Rabbit from %s: team ×%.2f", z.owner.Name, z.p.rabbit)

	case SignDragon:
		ctx.SetVarianceOverride(z.side, z.slot, z.p.dragon)
		z.logf(ctx, "Dragon fixes fortune at ×%.2f", z.p.dragon)

	case SignSnake:
		ctx.SetFlag(SnakeTrapKey(z.side), true)
		z.logf(ctx, "Snake lies in wait")

	case SignHorse:
		ctx.Multiply(z.side, z.slot, z.p.horseSelf)
		var mates []int
		for _, slot := range ctx.Targetable(z.side) {
			if slot != z.slot {
				mates = append(mates, slot)
			}
		}
		if len(mates) == 0 {
			z.logf(ctx, "Horse ×%.2f, no one to carry", z.p.horseSelf)
			return
		}
		mate := pick(ctx.RNG(), mates)
		ctx.Multiply(z.side, mate, z.p.horseMate)
		z.logf(ctx, "Horse ×%.2f, carries %s ×%.2f", z.p.horseSelf, ctx.Character(z.side, mate).Name, z.p.horseMate)

	case SignSheep, SignMonkey, SignDog:
		z.queued = true
		ctx.queuePostEffect(z.side, z.slot, z.sign.String())

	case SignRooster:
		for _, slot := range ctx.Targetable(z.side) {
			ctx.Multiply(z.side, slot, z.p.roosterTeam)
		}
		ctx.Multiply(z.side, z.slot, z.p.roosterSelf)
		ctx.Logf(z.side, NoSlot, "Rooster from %s: team ×%.2f", z.owner.Name, z.p.roosterTeam)

	case SignPig:
		sealRandomSkill(ctx, &z.base)
	}
}

// OnPostPower reads the live powers, including phase-3 changes made by
// behaviors that ran earlier in this phase.
func (z *zodiacBehavior) OnPostPower(ctx *Context, powers *Powers) {
	if !z.queued {
		return
	}
	switch z.sign {
	case SignSheep:
		v := powers.Max(z.enemy())
		powers.Set(z.side, z.slot, v)
		z.logf(ctx, "Sheep mirrors the strongest enemy: %d", v)

	case SignDog:
		v := powers.Max(z.side)
		powers.Set(z.side, z.slot, v)
		z.logf(ctx, "Dog matches the strongest ally: %d", v)

	case SignMonkey:
		targets := ctx.Targetable(z.enemy())
		if len(targets) == 0 {
			z.logf(ctx, "Monkey finds no one to trick")
			return
		}
		slot := pick(ctx.RNG(), targets)
		mine, theirs := powers.Get(z.side, z.slot), powers.Get(z.enemy(), slot)
		powers.Swap(z.side, z.slot, z.enemy(), slot)
		z.logf(ctx, "Monkey swaps %d for %d", mine, theirs)
		ctx.Logf(z.enemy(), slot, "%s was tricked by the Monkey: %d -> %d",
			ctx.Character(z.enemy(), slot).Name, theirs, mine)
	}
}

func (z *zodiacBehavior) OnBattleEnd(ctx *Context, outcome Outcome) (Outcome, bool) {
	if z.sign != SignSnake || !z.drawn || outcome != Loss || !ctx.SnakeTrap(z.side) {
		return "", false
	}
	z.logf(ctx, "the Snake strikes, the battle ends in a draw")
	return Draw, true
}

func init() {
	RegisterBehavior("zodiac", newZodiac)
}
