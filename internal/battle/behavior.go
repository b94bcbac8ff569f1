package battle

import (
	"errors"
	"fmt"

	"github.com/udisondev/squadbattle/internal/model"
	"github.com/udisondev/squadbattle/internal/skill"
)

// Behavior is the runtime instance of one battle skill on one slot.
// The engine calls each hook once, in its phase, and skips every hook
// while the skill is suppressed for the behavior's side.
type Behavior interface {
	Name() string
	Side() Side
	Slot() int

	// OnBattleStart runs in phase 1.
	OnBattleStart(ctx *Context)
	// PowerModifier runs in phase 2 and returns the factor applied to the
	// slot's running power.
	PowerModifier(ctx *Context, current float64) float64
	// OnPostPower runs in phase 3 over the computed powers.
	OnPostPower(ctx *Context, powers *Powers)
	// OnBattleEnd runs in phase 4 for the losing side. outcome is seen from
	// the behavior's own side. ok=false leaves the outcome unchanged.
	OnBattleEnd(ctx *Context, outcome Outcome) (next Outcome, ok bool)
}

// Binding is what a factory needs to build a behavior.
type Binding struct {
	Meta  *skill.Metadata
	Owner *model.Character
	Side  Side
	Slot  int
}

// Factory builds a behavior bound to one slot.
type Factory func(b Binding) Behavior

// behaviorFactories maps behavior kind → factory.
// Populated by init() in the behavior_*.go files.
var behaviorFactories = map[string]Factory{}

// RegisterBehavior registers a factory for a behavior kind.
func RegisterBehavior(kind string, f Factory) {
	behaviorFactories[kind] = f
}

func newBehavior(b Binding) (Behavior, error) {
	f, ok := behaviorFactories[b.Meta.Behavior]
	if !ok {
		return nil, fmt.Errorf("%w: skill %q (behavior %q)", ErrNoBehavior, b.Meta.Name, b.Meta.Behavior)
	}
	return f(b), nil
}

// ValidateRegistry reports every battle skill of reg without a factory.
func ValidateRegistry(reg *skill.Registry) error {
	var errs []error
	for _, m := range reg.ByContext(skill.ContextBattle) {
		if _, ok := behaviorFactories[m.Behavior]; !ok {
			errs = append(errs, fmt.Errorf("%w: skill %q (behavior %q)", ErrNoBehavior, m.Name, m.Behavior))
		}
	}
	return errors.Join(errs...)
}

// base carries the binding and no-op hooks. Behaviors embed it and
// override the hooks they use.
type base struct {
	meta  *skill.Metadata
	owner *model.Character
	side  Side
	slot  int
}

func newBase(b Binding) base {
	return base{meta: b.Meta, owner: b.Owner, side: b.Side, slot: b.Slot}
}

func (b *base) Name() string { return b.meta.Name }
func (b *base) Side() Side   { return b.side }
func (b *base) Slot() int    { return b.slot }

func (b *base) OnBattleStart(*Context)                        {}
func (b *base) PowerModifier(*Context, float64) float64       { return 1.0 }
func (b *base) OnPostPower(*Context, *Powers)                 {}
func (b *base) OnBattleEnd(*Context, Outcome) (Outcome, bool) { return "", false }

// logf writes to the owner's slot log, prefixed with unit and skill.
func (b *base) logf(ctx *Context, format string, args ...any) {
	ctx.AddLog(b.side, b.slot, b.prefix()+fmt.Sprintf(format, args...))
}

func (b *base) prefix() string {
	return fmt.Sprintf("%s [%s]: ", b.owner.Name, b.meta.Name)
}

func (b *base) enemy() Side { return b.side.Enemy() }
