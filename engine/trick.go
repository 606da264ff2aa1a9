package engine

// EvaluateTrick determines the winner of the current (complete) trick.
//
// Resolution order:
//  1. If any Wizard was played, the LAST Wizard played wins. This differs
//     from the common "first Wizard wins" variant and must stay as-is.
//  2. If every card is a Jester, the trick leader wins.
//  3. Otherwise the first non-Jester card starts as the winner; each later
//     non-Jester card takes over if it is trump while the current winner is
//     not, or if it matches the winner's suit with a strictly higher rank.
//     Jesters never win and never affect comparisons.
func (g *GameState) EvaluateTrick() uint8 {
	// Last Wizard wins.
	for i := int(g.TrickLen) - 1; i >= 0; i-- {
		if g.TrickCards[i].IsWizard() {
			return g.TrickSeats[i]
		}
	}

	// All Jesters: leader wins.
	first := -1
	for i := uint8(0); i < g.TrickLen; i++ {
		if !g.TrickCards[i].IsJester() {
			first = int(i)
			break
		}
	}
	if first < 0 {
		return g.TrickLeader
	}

	winCard := g.TrickCards[first]
	winner := g.TrickSeats[first]
	for i := uint8(first) + 1; i < g.TrickLen; i++ {
		c := g.TrickCards[i]
		if c.IsJester() {
			continue
		}
		if g.TrumpDrawn && c.Suit() == g.TrumpCard.Suit() && winCard.Suit() != g.TrumpCard.Suit() {
			winCard = c
			winner = g.TrickSeats[i]
			continue
		}
		if c.Suit() == winCard.Suit() && c.Rank() > winCard.Rank() {
			winCard = c
			winner = g.TrickSeats[i]
		}
	}
	return winner
}
