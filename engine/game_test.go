package engine

import "testing"

// TestNewGameDeal verifies that round 1 deals one card per seat and draws a
// trump, with the card-conservation invariant holding.
func TestNewGameDeal(t *testing.T) {
	g := NewGame(42, DefaultRules())

	if g.RoundNumber != 1 {
		t.Fatalf("RoundNumber = %d, want 1", g.RoundNumber)
	}
	if g.Phase != PhaseBidding {
		t.Fatalf("Phase = %v, want Bidding", g.Phase)
	}
	n := g.NumActivePlayers()
	for p := uint8(0); p < n; p++ {
		if g.Players[p].HandLen != 1 {
			t.Errorf("seat %d HandLen = %d, want 1", p, g.Players[p].HandLen)
		}
		if g.Players[p].Bid != BidUnset {
			t.Errorf("seat %d Bid = %d, want unset", p, g.Players[p].Bid)
		}
	}
	if !g.TrumpDrawn {
		t.Error("trump not drawn in round 1")
	}
	if g.DeckLen != DeckSize-4-1 {
		t.Errorf("DeckLen = %d, want %d", g.DeckLen, DeckSize-4-1)
	}
	if err := g.CheckCardConservation(); err != nil {
		t.Errorf("conservation after deal: %v", err)
	}
}

// TestDealNoTrumpOnFullDeal verifies that no trump is drawn when the round
// consumes the whole deck.
func TestDealNoTrumpOnFullDeal(t *testing.T) {
	g := NewGame(42, DefaultRules())
	g.RoundNumber = g.Rules.MaxRound() // 15 for 4 seats
	g.DealRound()

	n := g.NumActivePlayers()
	for p := uint8(0); p < n; p++ {
		if g.Players[p].HandLen != g.RoundNumber {
			t.Errorf("seat %d HandLen = %d, want %d", p, g.Players[p].HandLen, g.RoundNumber)
		}
	}
	if g.DeckLen != 0 {
		t.Errorf("DeckLen = %d, want 0", g.DeckLen)
	}
	if g.TrumpDrawn {
		t.Error("trump drawn on a full deal")
	}
	if err := g.CheckCardConservation(); err != nil {
		t.Errorf("conservation after full deal: %v", err)
	}
}

// TestDealDeterministic verifies that the same seed produces identical hands.
func TestDealDeterministic(t *testing.T) {
	g1 := NewGame(99, DefaultRules())
	g2 := NewGame(99, DefaultRules())

	if g1.TrumpCard != g2.TrumpCard {
		t.Errorf("TrumpCard: %v vs %v", g1.TrumpCard, g2.TrumpCard)
	}
	n := g1.NumActivePlayers()
	for p := uint8(0); p < n; p++ {
		for c := uint8(0); c < g1.Players[p].HandLen; c++ {
			if g1.Players[p].Hand[c] != g2.Players[p].Hand[c] {
				t.Errorf("seat %d card %d: %v vs %v", p, c, g1.Players[p].Hand[c], g2.Players[p].Hand[c])
			}
		}
	}
}

// TestDealDifferentSeeds verifies that different seeds shuffle differently.
func TestDealDifferentSeeds(t *testing.T) {
	r := DefaultRules()
	g1 := NewGame(1, r)
	g2 := NewGame(2, r)
	g1.RoundNumber, g2.RoundNumber = 10, 10
	g1.DealRound()
	g2.DealRound()

	allSame := true
	n := g1.NumActivePlayers()
	for p := uint8(0); p < n; p++ {
		for c := uint8(0); c < g1.Players[p].HandLen; c++ {
			if g1.Players[p].Hand[c] != g2.Players[p].Hand[c] {
				allSame = false
			}
		}
	}
	if allSame {
		t.Error("seeds 1 and 2 produced identical hands (extremely unlikely if RNG is working)")
	}
}

// TestNewGameSeedZero verifies that seed 0 is corrected so xorshift can run.
func TestNewGameSeedZero(t *testing.T) {
	g := NewGame(0, DefaultRules())
	if g.RNG == 0 {
		t.Error("RNG is 0 after seed=0; expected correction")
	}
}

// TestMaxRoundPerSeatCount verifies MaxRound = DeckSize / seats.
func TestMaxRoundPerSeatCount(t *testing.T) {
	cases := []struct {
		players uint8
		want    uint8
	}{
		{3, 20}, {4, 15}, {5, 12}, {6, 10}, {0, 15},
	}
	for _, tc := range cases {
		r := Rules{NumPlayers: tc.players}
		if got := r.MaxRound(); got != tc.want {
			t.Errorf("MaxRound(%d players) = %d, want %d", tc.players, got, tc.want)
		}
	}
}

// TestTrickTurn verifies the turn rotation from the trick leader.
func TestTrickTurn(t *testing.T) {
	g := NewGame(3, DefaultRules())
	g.TrickLeader = 2
	g.TrickLen = 0
	if got := g.TrickTurn(); got != 2 {
		t.Errorf("TrickTurn = %d, want 2", got)
	}
	g.TrickLen = 3
	if got := g.TrickTurn(); got != 1 {
		t.Errorf("TrickTurn = %d, want 1", got)
	}
}

// TestSnapshotSaveRestore verifies that Save/Restore round-trips the state.
func TestSnapshotSaveRestore(t *testing.T) {
	g := NewGame(42, DefaultRules())

	snap := g.Save()
	orig := g

	g.RoundNumber = 9
	g.Flags |= FlagGameOver
	g.Players[0].Score = -50
	g.DeckLen = 0

	g.Restore(snap)
	if g != orig {
		t.Error("restored state differs from saved state")
	}
}

// TestSnapshotIndependence verifies that a Snapshot is a value copy.
func TestSnapshotIndependence(t *testing.T) {
	g := NewGame(7, DefaultRules())
	snap := g.Save()
	before := GameState(snap).RoundNumber

	g.RoundNumber = 12
	if GameState(snap).RoundNumber != before {
		t.Error("snapshot was mutated when game state changed")
	}
}

// TestCheckCardConservationDetectsLoss verifies the invariant checker fires
// when a card vanishes.
func TestCheckCardConservationDetectsLoss(t *testing.T) {
	g := NewGame(5, DefaultRules())
	if err := g.CheckCardConservation(); err != nil {
		t.Fatalf("fresh deal violates conservation: %v", err)
	}
	g.Players[0].HandLen = 0 // drop seat 0's card
	if err := g.CheckCardConservation(); err == nil {
		t.Error("conservation check missed a lost card")
	}
}
