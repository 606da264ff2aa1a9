package engine

import (
	"fmt"
	"strings"
)

// Render returns a human-readable dump of the current state from the agent's
// perspective. Diagnostic only; not part of the observation contract.
func (e *Env) Render() string {
	g := &e.Game
	n := g.NumActivePlayers()

	var b strings.Builder
	fmt.Fprintf(&b, "Round: %d\n", g.RoundNumber)
	fmt.Fprintf(&b, "Phase: %v\n", g.Phase)
	fmt.Fprintf(&b, "Trump Card: %v\n", g.TrumpCard)

	h := &g.Players[e.AgentSeat]
	cards := make([]string, 0, h.HandLen)
	for i := uint8(0); i < h.HandLen; i++ {
		cards = append(cards, h.Hand[i].String())
	}
	fmt.Fprintf(&b, "Hand: [%s]\n", strings.Join(cards, ", "))

	trick := make([]string, 0, g.TrickLen)
	for i := uint8(0); i < g.TrickLen; i++ {
		trick = append(trick, fmt.Sprintf("%v (seat %d)", g.TrickCards[i], g.TrickSeats[i]))
	}
	fmt.Fprintf(&b, "Current Trick: [%s]\n", strings.Join(trick, ", "))

	bids := make([]string, 0, n)
	tricks := make([]string, 0, n)
	scores := make([]string, 0, n)
	for p := uint8(0); p < n; p++ {
		if g.Players[p].Bid == BidUnset {
			bids = append(bids, "-")
		} else {
			bids = append(bids, fmt.Sprintf("%d", g.Players[p].Bid))
		}
		tricks = append(tricks, fmt.Sprintf("%d", g.Players[p].Tricks))
		scores = append(scores, fmt.Sprintf("%d", g.Players[p].Score))
	}
	fmt.Fprintf(&b, "Bids: [%s]\n", strings.Join(bids, " "))
	fmt.Fprintf(&b, "Tricks: [%s]\n", strings.Join(tricks, " "))
	fmt.Fprintf(&b, "Scores: [%s]\n", strings.Join(scores, " "))
	return b.String()
}
