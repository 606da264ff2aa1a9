package engine

import "testing"

func popcount(mask uint64) int {
	n := 0
	for mask != 0 {
		mask &= mask - 1
		n++
	}
	return n
}

// TestLegalBidsFullSet verifies that a non-last bidder sees round+1 values.
func TestLegalBidsFullSet(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = 5
	g.DealRound()

	mask := g.LegalBids(0)
	if got := popcount(mask); got != 6 {
		t.Fatalf("legal bid count = %d, want 6", got)
	}
	for b := uint8(0); b <= 5; b++ {
		if mask>>b&1 == 0 {
			t.Errorf("bid %d missing from legal set", b)
		}
	}
}

// TestLegalBidsHookRule verifies the last bidder loses exactly the value that
// would make total bids equal the round's trick count.
func TestLegalBidsHookRule(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = 5
	g.DealRound()

	g.Players[0].Bid = 2
	g.Players[1].Bid = 1
	g.Players[2].Bid = 0

	mask := g.LegalBids(3)
	if got := popcount(mask); got != 5 {
		t.Fatalf("last-bidder legal count = %d, want 5", got)
	}
	// 5 - (2+1+0) = 2 is forbidden.
	if mask>>2&1 != 0 {
		t.Error("hook-forbidden bid 2 still legal")
	}
}

// TestLegalBidsHookRuleZeroBids verifies that zero bids count as assigned
// when detecting the last bidder. A bid of zero is a real commitment, not an
// empty slot.
func TestLegalBidsHookRuleZeroBids(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = 3
	g.DealRound()

	g.Players[0].Bid = 0
	g.Players[1].Bid = 0
	g.Players[2].Bid = 0

	// Seat 3 is last; 3 - 0 = 3 must be excluded.
	mask := g.LegalBids(3)
	if mask>>3&1 != 0 {
		t.Error("hook rule missed a last bidder behind all-zero bids")
	}
	if got := popcount(mask); got != 3 {
		t.Errorf("legal count = %d, want 3", got)
	}
}

// TestLegalBidsHookOutOfRange verifies no exclusion when the forbidden value
// falls outside [0, round].
func TestLegalBidsHookOutOfRange(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = 3
	g.DealRound()

	g.Players[0].Bid = 3
	g.Players[1].Bid = 2
	g.Players[2].Bid = 1
	// 3 - 6 = -3: nothing to exclude.
	if got := popcount(g.LegalBids(3)); got != 4 {
		t.Errorf("legal count = %d, want 4", got)
	}
}

// TestLegalBidsHookAppliesToAnySeat verifies the hook rule binds whichever
// seat happens to bid last in seat order, not a fixed position.
func TestLegalBidsHookAppliesToAnySeat(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = 4
	g.DealRound()

	g.Players[0].Bid = 1
	g.Players[2].Bid = 1
	g.Players[3].Bid = 1

	// Seat 1 is the remaining bidder; 4 - 3 = 1 is forbidden.
	mask := g.LegalBids(1)
	if mask>>1&1 != 0 {
		t.Error("hook-forbidden bid 1 still legal for mid-table last bidder")
	}
}

// setHand replaces a seat's hand for scenario tests.
func setHand(g *GameState, seat uint8, cards ...Card) {
	g.Players[seat].HandLen = uint8(len(cards))
	for i, c := range cards {
		g.Players[seat].Hand[i] = c
	}
}

// playTrickCard appends a card to the trick without legality checks, fixing
// the lead suit the way ApplyPlay would.
func playTrickCard(g *GameState, seat uint8, c Card) {
	g.TrickCards[g.TrickLen] = c
	g.TrickSeats[g.TrickLen] = seat
	g.TrickLen++
	if !g.LeadSet && !c.IsSpecial() {
		g.LeadSuit = c.Suit()
		g.LeadSet = true
	}
}

// TestLegalPlaysEmptyTrick verifies the whole hand is legal when leading.
func TestLegalPlaysEmptyTrick(t *testing.T) {
	g := NewGame(1, DefaultRules())
	g.Phase = PhasePlaying
	setHand(&g, 0, NewCard(SuitHearts, 5), NewCard(SuitClubs, 9), NewCard(SuitSpades, RankWizard))

	mask := g.LegalPlays(0)
	if got := popcount(mask); got != 3 {
		t.Errorf("legal play count = %d, want 3", got)
	}
}

// TestLegalPlaysMustFollowSuit verifies that holding the lead suit restricts
// plays to that suit plus specials.
func TestLegalPlaysMustFollowSuit(t *testing.T) {
	g := NewGame(1, DefaultRules())
	g.Phase = PhasePlaying
	playTrickCard(&g, 1, NewCard(SuitClubs, 4))

	lead := NewCard(SuitClubs, 9)
	off := NewCard(SuitHearts, 5)
	wiz := NewCard(SuitSpades, RankWizard)
	jes := NewCard(SuitDiamonds, RankJester)
	setHand(&g, 0, lead, off, wiz, jes)

	mask := g.LegalPlays(0)
	if mask>>uint8(lead)&1 == 0 {
		t.Error("lead-suit card not legal")
	}
	if mask>>uint8(off)&1 != 0 {
		t.Error("off-suit card legal despite holding lead suit")
	}
	if mask>>uint8(wiz)&1 == 0 {
		t.Error("Wizard not legal")
	}
	if mask>>uint8(jes)&1 == 0 {
		t.Error("Jester not legal")
	}
}

// TestLegalPlaysVoidInLeadSuit verifies a void seat may play anything.
func TestLegalPlaysVoidInLeadSuit(t *testing.T) {
	g := NewGame(1, DefaultRules())
	g.Phase = PhasePlaying
	playTrickCard(&g, 1, NewCard(SuitClubs, 4))

	setHand(&g, 0, NewCard(SuitHearts, 5), NewCard(SuitDiamonds, 11))
	if got := popcount(g.LegalPlays(0)); got != 2 {
		t.Errorf("legal play count = %d, want 2", got)
	}
}

// TestLegalPlaysSpecialsOnlyTrick verifies that a trick opened by specials
// leaves the whole hand legal until a suit card lands.
func TestLegalPlaysSpecialsOnlyTrick(t *testing.T) {
	g := NewGame(1, DefaultRules())
	g.Phase = PhasePlaying
	playTrickCard(&g, 1, NewCard(SuitHearts, RankWizard))
	playTrickCard(&g, 2, NewCard(SuitClubs, RankJester))

	setHand(&g, 0, NewCard(SuitHearts, 5), NewCard(SuitDiamonds, 11), NewCard(SuitSpades, 2))
	if got := popcount(g.LegalPlays(0)); got != 3 {
		t.Errorf("legal play count = %d, want 3", got)
	}
}

// TestLegalPlaysLeadAfterSpecials verifies the first non-special card sets
// the lead even when specials preceded it.
func TestLegalPlaysLeadAfterSpecials(t *testing.T) {
	g := NewGame(1, DefaultRules())
	g.Phase = PhasePlaying
	playTrickCard(&g, 1, NewCard(SuitHearts, RankJester))
	playTrickCard(&g, 2, NewCard(SuitSpades, 8))

	if !g.LeadSet || g.LeadSuit != SuitSpades {
		t.Fatalf("lead suit not set by first non-special card")
	}
	lead := NewCard(SuitSpades, 3)
	off := NewCard(SuitHearts, 9)
	setHand(&g, 0, lead, off)

	mask := g.LegalPlays(0)
	if mask>>uint8(lead)&1 == 0 || mask>>uint8(off)&1 != 0 {
		t.Error("follow-suit not enforced after specials-then-suit lead")
	}
}

// TestLegalActionsByPhase verifies phase dispatch and the terminal case.
func TestLegalActionsByPhase(t *testing.T) {
	g := NewGame(8, DefaultRules())
	if got := popcount(g.LegalActions(0)); got != 2 {
		t.Errorf("round 1 bidding actions = %d, want 2", got)
	}

	g.Phase = PhasePlaying
	if got := popcount(g.LegalActions(0)); got != 1 {
		t.Errorf("round 1 playing actions = %d, want 1", got)
	}

	g.Flags |= FlagGameOver
	if got := g.LegalActions(0); got != 0 {
		t.Errorf("terminal legal actions = %#x, want 0", got)
	}
}

// TestLegalActionsList verifies the slice form matches the bitmask.
func TestLegalActionsList(t *testing.T) {
	g := NewGame(8, DefaultRules())
	g.RoundNumber = 4
	g.DealRound()

	list := g.LegalActionsList(0)
	if len(list) != 5 {
		t.Fatalf("list length = %d, want 5", len(list))
	}
	for i, a := range list {
		if a != uint8(i) {
			t.Errorf("list[%d] = %d, want %d", i, a, i)
		}
	}
}
