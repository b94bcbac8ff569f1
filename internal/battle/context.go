package battle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/squadbattle/internal/model"
)

// NoSlot addresses the team-wide log buffer in AddLog.
const NoSlot = -1

const slots = model.MaxSquadSize

// Flag keys shared between phases.
const (
	// FlagZodiacPostEffects holds the []string of phase-3 zodiac effects queued in phase 1.
	FlagZodiacPostEffects = "zodiac_post_effects"
)

// SnakeTrapKey is the flag set when side's zodiac drew the Snake.
func SnakeTrapKey(side Side) string { return "snake_trap:" + side.String() }

// VarianceOverrideKey is the flag pinning the variance of one slot.
func VarianceOverrideKey(side Side, slot int) string {
	return "variance_override:" + side.String() + "_" + strconv.Itoa(slot)
}

// Context is the mutable state of a single battle.
// It is owned by one resolution and never shared between battles.
type Context struct {
	teams       [2][slots]*model.Character
	multipliers [2][slots]float64
	flat        [2][slots]float64
	eliminated  [2][slots]bool
	suppressed  [2]map[string]struct{}

	logs [2][slots][]string
	misc [2][]string

	flags map[string]any
	rng   Source

	behaviors [2][]Behavior

	err error
}

func newContext(attacker, defender model.Team, rng Source) *Context {
	ctx := &Context{
		teams: [2][slots]*model.Character{attacker.Slots(), defender.Slots()},
		flags: make(map[string]any),
		rng:   rng,
	}
	for _, side := range Sides {
		ctx.suppressed[side] = make(map[string]struct{})
		for slot := range slots {
			ctx.multipliers[side][slot] = 1.0
		}
	}
	return ctx
}

// RNG returns the battle's random source.
func (c *Context) RNG() Source { return c.rng }

// Character returns the unit in slot, or nil for an empty or invalid slot.
func (c *Context) Character(side Side, slot int) *model.Character {
	if !side.valid() || slot < 0 || slot >= slots {
		return nil
	}
	return c.teams[side][slot]
}

// Team returns a copy of the side's roster, padded to five slots.
func (c *Context) Team(side Side) model.Team {
	t := make(model.Team, slots)
	copy(t, c.teams[side][:])
	return t
}

// Occupied returns the non-empty slots of side in ascending order.
func (c *Context) Occupied(side Side) []int {
	out := make([]int, 0, slots)
	for slot, ch := range c.teams[side] {
		if ch != nil {
			out = append(out, slot)
		}
	}
	return out
}

// Targetable returns the non-empty, non-eliminated slots of side.
func (c *Context) Targetable(side Side) []int {
	out := make([]int, 0, slots)
	for slot, ch := range c.teams[side] {
		if ch != nil && !c.eliminated[side][slot] {
			out = append(out, slot)
		}
	}
	return out
}

// FindCharacter returns the first occupied slot of side holding anilistID,
// skipping except. Returns -1 when absent.
func (c *Context) FindCharacter(side Side, anilistID, except int) int {
	for slot, ch := range c.teams[side] {
		if slot == except || ch == nil {
			continue
		}
		if ch.AnilistID == anilistID {
			return slot
		}
	}
	return -1
}

// AddLog appends a line to the slot buffer, or to the team-wide buffer
// when slot is NoSlot.
func (c *Context) AddLog(side Side, slot int, msg string) {
	if !side.valid() {
		c.violate("log for unknown side %d", side)
		return
	}
	if slot == NoSlot {
		c.misc[side] = append(c.misc[side], msg)
		return
	}
	if slot < 0 || slot >= slots {
		c.violate("log for %s slot %d out of range", side, slot)
		return
	}
	c.logs[side][slot] = append(c.logs[side][slot], msg)
}

// Logf is AddLog with formatting.
func (c *Context) Logf(side Side, slot int, format string, args ...any) {
	c.AddLog(side, slot, fmt.Sprintf(format, args...))
}

// SuppressSkill disables name for side for the rest of the battle.
func (c *Context) SuppressSkill(side Side, name string) {
	c.suppressed[side][normalizeName(name)] = struct{}{}
}

// IsSuppressed reports whether name is disabled for side.
func (c *Context) IsSuppressed(side Side, name string) bool {
	_, ok := c.suppressed[side][normalizeName(name)]
	return ok
}

// Multiply composes factor into the slot multiplier.
func (c *Context) Multiply(side Side, slot int, factor float64) {
	if !c.checkWrite(side, slot) {
		return
	}
	c.multipliers[side][slot] *= factor
}

// AddFlat adds amount to the slot's flat bonus.
func (c *Context) AddFlat(side Side, slot int, amount float64) {
	if !c.checkWrite(side, slot) {
		return
	}
	c.flat[side][slot] += amount
}

// Eliminate zeroes the slot multiplier and removes the unit from targeting.
func (c *Context) Eliminate(side Side, slot int) {
	if !c.checkWrite(side, slot) {
		return
	}
	c.multipliers[side][slot] = 0
	c.eliminated[side][slot] = true
}

// Multiplier returns the composed multiplier of a slot.
func (c *Context) Multiplier(side Side, slot int) float64 { return c.multipliers[side][slot] }

// Flat returns the flat bonus of a slot.
func (c *Context) Flat(side Side, slot int) float64 { return c.flat[side][slot] }

// Eliminated reports whether the slot was knocked out.
func (c *Context) Eliminated(side Side, slot int) bool {
	if !side.valid() || slot < 0 || slot >= slots {
		return false
	}
	return c.eliminated[side][slot]
}

// Flag returns the value stored under key.
func (c *Context) Flag(key string) (any, bool) {
	v, ok := c.flags[key]
	return v, ok
}

// SetFlag stores v under key.
func (c *Context) SetFlag(key string, v any) { c.flags[key] = v }

// SnakeTrap reports whether side's zodiac set the snake trap.
func (c *Context) SnakeTrap(side Side) bool {
	v, _ := c.flags[SnakeTrapKey(side)].(bool)
	return v
}

// SetVarianceOverride pins the phase-2 variance of one slot.
func (c *Context) SetVarianceOverride(side Side, slot int, v float64) {
	if !c.checkWrite(side, slot) {
		return
	}
	c.flags[VarianceOverrideKey(side, slot)] = v
}

// VarianceOverride returns the pinned variance of a slot, if any.
func (c *Context) VarianceOverride(side Side, slot int) (float64, bool) {
	v, ok := c.flags[VarianceOverrideKey(side, slot)].(float64)
	return v, ok
}

func (c *Context) queuePostEffect(side Side, slot int, effect string) {
	queued, _ := c.flags[FlagZodiacPostEffects].([]string)
	entry := fmt.Sprintf("%s_%d:%s", side, slot, effect)
	c.flags[FlagZodiacPostEffects] = append(queued, entry)
}

// ActiveSkills returns the distinct skill names instantiated on side that
// are not suppressed and have at least one holder still standing, in
// evaluation order.
func (c *Context) ActiveSkills(side Side) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range c.behaviors[side] {
		if c.eliminated[side][b.Slot()] {
			continue
		}
		key := normalizeName(b.Name())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if c.IsSuppressed(side, b.Name()) {
			continue
		}
		out = append(out, b.Name())
	}
	return out
}

// SkillHolders returns the slots of side carrying an instance of name.
func (c *Context) SkillHolders(side Side, name string) []int {
	var out []int
	last := -1
	for _, b := range c.behaviors[side] {
		if !strings.EqualFold(b.Name(), name) || b.Slot() == last {
			continue
		}
		last = b.Slot()
		out = append(out, b.Slot())
	}
	return out
}

// Err returns the first invariant violation recorded during the battle.
func (c *Context) Err() error { return c.err }

func (c *Context) checkWrite(side Side, slot int) bool {
	if !side.valid() {
		c.violate("write to unknown side %d", side)
		return false
	}
	if slot < 0 || slot >= slots {
		c.violate("write to %s slot %d out of range", side, slot)
		return false
	}
	if c.teams[side][slot] == nil {
		c.violate("write to empty %s slot %d", side, slot)
		return false
	}
	return true
}

func (c *Context) violate(format string, args ...any) {
	if c.err != nil {
		return
	}
	c.err = fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
