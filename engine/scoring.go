package engine

// ScoreDelta converts one seat's round outcome into a score change: an exact
// bid earns 1 + bid, any miss costs the absolute difference.
func ScoreDelta(bid int8, tricks uint8) int16 {
	if int8(tricks) == bid {
		return 1 + int16(bid)
	}
	d := int16(bid) - int16(tricks)
	if d < 0 {
		d = -d
	}
	return -d
}

// applyRoundScores applies round-end scoring to every seat and returns the
// per-seat deltas. The same rule applies to every seat, the agent's included.
func (g *GameState) applyRoundScores() [MaxPlayers]int16 {
	var deltas [MaxPlayers]int16
	n := g.Rules.numPlayers()
	for p := uint8(0); p < n; p++ {
		d := ScoreDelta(g.Players[p].Bid, g.Players[p].Tricks)
		g.Players[p].Score += d
		deltas[p] = d
	}
	return deltas
}
