package battle

// Result is the outcome of one battle.
type Result struct {
	Outcome        Outcome    `json:"outcome"`
	AttackerTotal  int        `json:"attacker_total"`
	DefenderTotal  int        `json:"defender_total"`
	AttackerPowers [slots]int `json:"attacker_powers"`
	DefenderPowers [slots]int `json:"defender_powers"`
	AttackerLogs   []string   `json:"attacker_logs"`
	DefenderLogs   []string   `json:"defender_logs"`
}

// Powers returns the five final slot powers of side.
func (r *Result) Powers(side Side) [slots]int {
	if side == Defender {
		return r.DefenderPowers
	}
	return r.AttackerPowers
}

// Logs returns the narrative of side.
func (r *Result) Logs(side Side) []string {
	if side == Defender {
		return r.DefenderLogs
	}
	return r.AttackerLogs
}

func report(ctx *Context, powers *Powers, outcome Outcome) *Result {
	return &Result{
		Outcome:        outcome,
		AttackerTotal:  powers.Total(Attacker),
		DefenderTotal:  powers.Total(Defender),
		AttackerPowers: powers.Side(Attacker),
		DefenderPowers: powers.Side(Defender),
		AttackerLogs:   collectLogs(ctx, Attacker),
		DefenderLogs:   collectLogs(ctx, Defender),
	}
}

// collectLogs concatenates slot logs 0..4, then the team-wide log.
func collectLogs(ctx *Context, side Side) []string {
	out := make([]string, 0, 16)
	for slot := range slots {
		out = append(out, ctx.logs[side][slot]...)
	}
	return append(out, ctx.misc[side]...)
}
