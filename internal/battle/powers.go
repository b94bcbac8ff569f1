package battle

// maxPower caps a single slot so that ten slots still sum inside int64.
const maxPower = 1 << 53

// Powers holds the concrete per-slot powers computed in phase 2.
// Phase-3 hooks may rewrite them; writes are clamped to [0, maxPower].
type Powers struct {
	v   [2][slots]int
	ctx *Context
}

// Get returns the power of a slot.
func (p *Powers) Get(side Side, slot int) int {
	if !side.valid() || slot < 0 || slot >= slots {
		p.ctx.violate("read of %s slot %d out of range", side, slot)
		return 0
	}
	return p.v[side][slot]
}

// Set overwrites the power of an occupied slot.
func (p *Powers) Set(side Side, slot, power int) {
	if !p.ctx.checkWrite(side, slot) {
		return
	}
	p.v[side][slot] = min(max(power, 0), maxPower)
}

// Swap exchanges two slot powers, possibly across sides.
func (p *Powers) Swap(a Side, aSlot int, b Side, bSlot int) {
	if !p.ctx.checkWrite(a, aSlot) || !p.ctx.checkWrite(b, bSlot) {
		return
	}
	p.v[a][aSlot], p.v[b][bSlot] = p.v[b][bSlot], p.v[a][aSlot]
}

// Max returns the highest power on side.
func (p *Powers) Max(side Side) int {
	best := 0
	for _, v := range p.v[side] {
		best = max(best, v)
	}
	return best
}

// Total sums the powers of side.
func (p *Powers) Total(side Side) int {
	sum := 0
	for _, v := range p.v[side] {
		sum += v
	}
	return sum
}

// Side returns a copy of the five slot powers of side.
func (p *Powers) Side(side Side) [slots]int { return p.v[side] }
