package battle

// Side identifies one of the two teams. Fixed at battle start.
type Side int8

const (
	Attacker Side = iota
	Defender
)

// Sides lists both sides in evaluation order.
var Sides = [2]Side{Attacker, Defender}

// Enemy returns the opposing side.
func (s Side) Enemy() Side {
	if s == Attacker {
		return Defender
	}
	return Attacker
}

func (s Side) String() string {
	switch s {
	case Attacker:
		return "attacker"
	case Defender:
		return "defender"
	default:
		return "unknown"
	}
}

func (s Side) valid() bool { return s == Attacker || s == Defender }

// Outcome is the battle result from the attacker's point of view
// unless stated otherwise.
type Outcome string

const (
	Win  Outcome = "WIN"
	Loss Outcome = "LOSS"
	Draw Outcome = "DRAW"
)

// Invert flips the point of view: WIN <-> LOSS, DRAW stays.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	default:
		return o
	}
}

func compareTotals(attacker, defender int) Outcome {
	switch {
	case attacker > defender:
		return Win
	case attacker < defender:
		return Loss
	default:
		return Draw
	}
}
