package battle

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/squadbattle/internal/model"
	"github.com/udisondev/squadbattle/internal/skill"
)

// Config tunes the engine.
type Config struct {
	// VarianceMin and VarianceMax bound the per-slot jitter of phase 2.
	// When they are equal the jitter is fixed and no draw is made.
	VarianceMin float64
	VarianceMax float64
}

// DefaultConfig returns the standard [0.9, 1.1] variance window.
func DefaultConfig() Config {
	return Config{VarianceMin: 0.9, VarianceMax: 1.1}
}

// FixedVariance returns a config with the jitter pinned to v.
func FixedVariance(v float64) Config {
	return Config{VarianceMin: v, VarianceMax: v}
}

func (c Config) validate() error {
	if c.VarianceMin < 0 || c.VarianceMax < c.VarianceMin {
		return fmt.Errorf("variance window [%v, %v] is invalid", c.VarianceMin, c.VarianceMax)
	}
	return nil
}

// Engine resolves battles against one skill registry.
// It holds no per-battle state, so one Engine serves concurrent battles
// as long as each gets its own Source.
type Engine struct {
	registry *skill.Registry
	cfg      Config
}

// NewEngine creates an engine. A zero Config means DefaultConfig.
func NewEngine(reg *skill.Registry, cfg Config) *Engine {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Engine{registry: reg, cfg: cfg}
}

// Resolve runs one battle with the default configuration.
func Resolve(attacker, defender model.Team, reg *skill.Registry, rng Source) (*Result, error) {
	return NewEngine(reg, DefaultConfig()).Resolve(attacker, defender, rng)
}

// Resolve runs the four-phase pipeline and reports the result.
// On error no partial result is returned.
func (e *Engine) Resolve(attacker, defender model.Team, rng Source) (res *Result, err error) {
	if err := e.validate(attacker, defender, rng); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: panic during resolution: %v", ErrInternal, r)
		}
	}()

	ctx := newContext(attacker, defender, rng)
	order, err := e.instantiate(ctx)
	if err != nil {
		return nil, err
	}

	e.runStart(ctx, order)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	powers := e.computePowers(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.runPostPower(ctx, order, powers)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	outcome := e.runEnd(ctx, powers)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return report(ctx, powers, outcome), nil
}

func (e *Engine) validate(attacker, defender model.Team, rng Source) error {
	if e.registry == nil {
		return fmt.Errorf("%w: nil skill registry", ErrInvalidInput)
	}
	if rng == nil {
		return fmt.Errorf("%w: nil random source", ErrInvalidInput)
	}
	if err := e.cfg.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := attacker.Validate(); err != nil {
		return fmt.Errorf("%w: attacker: %v", ErrInvalidInput, err)
	}
	if err := defender.Validate(); err != nil {
		return fmt.Errorf("%w: defender: %v", ErrInvalidInput, err)
	}
	return nil
}

// instantiate builds behaviors for both sides in evaluation order:
// attacker slots 0..4, then defender slots 0..4, registry order within a slot.
func (e *Engine) instantiate(ctx *Context) ([]Behavior, error) {
	var order []Behavior
	for _, side := range Sides {
		seen := make(map[string]struct{})
		for slot, ch := range ctx.teams[side] {
			if ch == nil {
				continue
			}
			for _, meta := range e.slotSkills(ch) {
				key := normalizeName(meta.Name)
				if _, dup := seen[key]; dup && !meta.Stackable && !meta.Overlap {
					slog.Debug("duplicate skill collapsed",
						"skill", meta.Name, "side", side, "slot", slot)
					continue
				}
				seen[key] = struct{}{}

				b, err := newBehavior(Binding{Meta: meta, Owner: ch, Side: side, Slot: slot})
				if err != nil {
					return nil, err
				}
				ctx.behaviors[side] = append(ctx.behaviors[side], b)
				order = append(order, b)
			}
		}
	}
	return order, nil
}

// slotSkills resolves a character's tags to battle skills, deduplicated and
// sorted by registry order.
func (e *Engine) slotSkills(ch *model.Character) []*skill.Metadata {
	var metas []*skill.Metadata
	for _, tag := range ch.AbilityTags {
		meta, ok := e.registry.Get(tag)
		if !ok {
			slog.Warn("ignoring unknown skill tag", "tag", tag, "character", ch.Name, "anilist_id", ch.AnilistID)
			continue
		}
		if !meta.IsBattle() {
			continue
		}
		if slices.Contains(metas, meta) {
			continue
		}
		metas = append(metas, meta)
	}
	slices.SortStableFunc(metas, func(a, b *skill.Metadata) int {
		return e.registry.Order(a.Name) - e.registry.Order(b.Name)
	})
	return metas
}

// active reports whether b may fire: its skill is not sealed for its side
// and, outside phase 4, its owner is still standing.
func active(ctx *Context, b Behavior, endPhase bool) bool {
	if ctx.IsSuppressed(b.Side(), b.Name()) {
		return false
	}
	return endPhase || !ctx.Eliminated(b.Side(), b.Slot())
}

// runStart is phase 1. Suppression takes effect immediately for the
// behaviors that follow.
func (e *Engine) runStart(ctx *Context, order []Behavior) {
	for _, b := range order {
		if !active(ctx, b, false) {
			continue
		}
		b.OnBattleStart(ctx)
		if ctx.Err() != nil {
			return
		}
	}
}

// computePowers is phase 2.
func (e *Engine) computePowers(ctx *Context) *Powers {
	powers := &Powers{ctx: ctx}
	for _, side := range Sides {
		for slot, ch := range ctx.teams[side] {
			if ch == nil || ctx.Eliminated(side, slot) {
				continue
			}

			p := float64(ch.BasePower)
			for _, b := range ctx.behaviors[side] {
				if b.Slot() != slot || !active(ctx, b, false) {
					continue
				}
				p *= b.PowerModifier(ctx, p)
			}
			p = p*ctx.Multiplier(side, slot) + ctx.Flat(side, slot)
			p = max(0, p*e.variance(ctx, side, slot))

			powers.v[side][slot] = toPower(p)
		}
	}
	return powers
}

// toPower rounds p and saturates it at maxPower. NaN counts as 0.
func toPower(p float64) int {
	if !(p > 0) {
		return 0
	}
	if p >= maxPower {
		return maxPower
	}
	return int(math.Round(p))
}

func (e *Engine) variance(ctx *Context, side Side, slot int) float64 {
	if v, ok := ctx.VarianceOverride(side, slot); ok {
		return v
	}
	if e.cfg.VarianceMin == e.cfg.VarianceMax {
		return e.cfg.VarianceMin
	}
	return e.cfg.VarianceMin + ctx.RNG().Float64()*(e.cfg.VarianceMax-e.cfg.VarianceMin)
}

// runPostPower is phase 3.
func (e *Engine) runPostPower(ctx *Context, order []Behavior, powers *Powers) {
	for _, b := range order {
		if !active(ctx, b, false) {
			continue
		}
		b.OnPostPower(ctx, powers)
		if ctx.Err() != nil {
			return
		}
	}
}

// runEnd is phase 4. Only the losing side's end hooks run; the first one
// that changes the outcome wins and later hooks cannot move it elsewhere.
func (e *Engine) runEnd(ctx *Context, powers *Powers) Outcome {
	outcome := compareTotals(powers.Total(Attacker), powers.Total(Defender))

	var loser Side
	switch outcome {
	case Win:
		loser = Defender
	case Loss:
		loser = Attacker
	default:
		return outcome
	}

	view := Loss
	changed := false
	for _, b := range ctx.behaviors[loser] {
		if !active(ctx, b, true) {
			continue
		}
		next, ok := b.OnBattleEnd(ctx, view)
		if !ok || next == view || (changed && next != Draw) {
			continue
		}
		slog.Debug("battle outcome overridden", "skill", b.Name(), "side", loser, "from", view, "to", next)
		view, changed = next, true
	}

	if loser == Defender {
		return view.Invert()
	}
	return view
}
