package engine

// Legal-action masks. The 60-wide action space fits a single uint64: bit i of
// the mask is set when action i is legal for the seat in question. Zero heap
// allocation on the mask path.

// LegalBids returns the bitmask of legal bid amounts for the seat. Legal bids
// are 0..RoundNumber, except that the round's last bidder may not bring the
// bid total to exactly the round's trick count (hook rule). The last bidder
// is whichever seat finds every other seat already holding an assigned bid,
// so the rule applies uniformly regardless of bidding order.
func (g *GameState) LegalBids(seat uint8) uint64 {
	var mask uint64
	for b := uint8(0); b <= g.RoundNumber; b++ {
		mask |= 1 << b
	}

	n := g.Rules.numPlayers()
	assigned := uint8(0)
	sum := int16(0)
	for p := uint8(0); p < n; p++ {
		if p == seat {
			continue
		}
		if g.Players[p].Bid != BidUnset {
			assigned++
			sum += int16(g.Players[p].Bid)
		}
	}
	if assigned == n-1 {
		forbidden := int16(g.RoundNumber) - sum
		if forbidden >= 0 && forbidden <= int16(g.RoundNumber) {
			mask &^= 1 << uint8(forbidden)
		}
	}
	return mask
}

// LegalPlays returns the bitmask of card indices the seat may play to the
// current trick:
//
//  1. An empty trick admits the whole hand.
//  2. Wizard and Jester are always legal.
//  3. Until a non-special card has been played, the whole hand is legal.
//  4. Once a lead suit exists, a seat holding that suit must follow it
//     (specials aside); a void seat may play anything.
func (g *GameState) LegalPlays(seat uint8) uint64 {
	h := &g.Players[seat]
	var all uint64
	for i := uint8(0); i < h.HandLen; i++ {
		all |= 1 << uint8(h.Hand[i])
	}

	if g.TrickLen == 0 || !g.LeadSet {
		return all
	}

	var follow uint64
	hasLead := false
	for i := uint8(0); i < h.HandLen; i++ {
		c := h.Hand[i]
		if c.IsSpecial() {
			follow |= 1 << uint8(c)
			continue
		}
		if c.Suit() == g.LeadSuit {
			follow |= 1 << uint8(c)
			hasLead = true
		}
	}
	if hasLead {
		return follow
	}
	return all
}

// LegalActions returns the legal-action bitmask for the seat under the
// current phase. Terminal games have no legal actions.
func (g *GameState) LegalActions(seat uint8) uint64 {
	if g.IsTerminal() {
		return 0
	}
	if g.Phase == PhaseBidding {
		return g.LegalBids(seat)
	}
	return g.LegalPlays(seat)
}

// LegalActionsList returns the seat's legal actions as a slice (for testing
// and random policies; allocates).
func (g *GameState) LegalActionsList(seat uint8) []uint8 {
	mask := g.LegalActions(seat)
	var actions []uint8
	for i := uint8(0); i < NumActions; i++ {
		if mask>>i&1 == 1 {
			actions = append(actions, i)
		}
	}
	return actions
}
