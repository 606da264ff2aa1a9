// Package engine implements the Wizard trick-taking card game rules.
//
// This package provides a cache-friendly, zero-allocation game core suitable
// for both real-time gameplay (via the service layer) and high-throughput
// reinforcement-learning rollouts. GameState is a flat value type; a single
// seeded game is fully deterministic.
package engine

import "fmt"

const (
	// MaxPlayers bounds the fixed-size per-seat arrays.
	MaxPlayers = 6
	// MinPlayers is the smallest supported table.
	MinPlayers = 3
	// DeckSize is 13 numeric ranks × 4 suits + 4 Wizards + 4 Jesters.
	DeckSize = 60
	// NumSuits is the number of ordinary suits.
	NumSuits = 4
	// MaxHandSize is the largest possible round (DeckSize / MinPlayers).
	MaxHandSize = DeckSize / MinPlayers
)

// Rules holds configurable table settings.
type Rules struct {
	NumPlayers   uint8 // number of seats (3–6); 0 treated as 4
	TrickShaping bool  // ±0.2 per-trick reward shaping for the agent seat
}

// DefaultRules returns the standard 4-seat configuration with shaping on.
func DefaultRules() Rules {
	return Rules{NumPlayers: 4, TrickShaping: true}
}

// numPlayers returns the effective seat count, treating 0 as 4.
func (r *Rules) numPlayers() uint8 {
	if r.NumPlayers == 0 {
		return 4
	}
	return r.NumPlayers
}

// MaxRound returns the number of rounds in a full game: DeckSize / seats.
func (r *Rules) MaxRound() uint8 {
	return DeckSize / r.numPlayers()
}

// BidUnset marks a seat that has not yet committed a bid this round. Zero is
// a real bid, so unset must be distinguishable from it for the hook rule.
const BidUnset int8 = -1

// PlayerState holds one seat's per-round and cumulative standing.
type PlayerState struct {
	Hand    [MaxHandSize]Card
	HandLen uint8
	Bid     int8 // BidUnset until committed
	Tricks  uint8
	Score   int16 // cumulative, never reset
}

// GameState holds the complete, self-contained state of a Wizard game.
// It is a flat value type (no pointers, no slices) so rollout code can copy
// and restore it without allocation.
type GameState struct {
	Players [MaxPlayers]PlayerState

	Deck    [DeckSize]Card // undealt remainder lives in Deck[:DeckLen]
	DeckLen uint8

	TrickCards [MaxPlayers]Card // current trick in play order
	TrickSeats [MaxPlayers]uint8
	TrickLen   uint8

	PlayedRound [DeckSize]bool // every card played this round, trick included

	TrumpCard  Card
	TrumpDrawn bool

	LeadSuit    uint8 // valid only when LeadSet
	LeadSet     bool
	RoundNumber uint8
	RoundStart  uint8 // seat that bids/leads first this round
	TrickLeader uint8 // seat that led the current trick
	Phase       Phase
	Flags       uint16

	RNG   uint64
	Rules Rules
}

const (
	FlagGameOver uint16 = 1 << 0
)

// IsTerminal returns true once the final round has been scored.
func (g *GameState) IsTerminal() bool { return g.Flags&FlagGameOver != 0 }

// ---------------------------------------------------------------------------
// xorshift64 RNG (inline, no interface)
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and dealing
// ---------------------------------------------------------------------------

// NewGame initializes round 1 of a fresh game with the given seed and rules.
// The first round is dealt and the state left in the Bidding phase.
func NewGame(seed uint64, rules Rules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.RoundNumber = 1
	g.DealRound()
	return g
}

// DealRound rebuilds and shuffles the deck, deals RoundNumber cards to each
// seat round-robin starting from seat 0, and draws the trump card from the
// remainder if any card is left. Bids, tricks-won, the trick, and the
// played-this-round set are reset; the round starter leads the first trick.
func (g *GameState) DealRound() {
	// Rebuild the full 60-card deck in index order.
	for i := 0; i < DeckSize; i++ {
		g.Deck[i] = Card(i)
	}
	g.DeckLen = DeckSize

	// Fisher-Yates shuffle.
	for i := DeckSize - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}

	n := g.Rules.numPlayers()

	// Seat identity is independent of the round starter; only observation
	// framing rotates. Deal round-robin from seat 0.
	for p := uint8(0); p < MaxPlayers; p++ {
		g.Players[p].HandLen = 0
		g.Players[p].Bid = BidUnset
		g.Players[p].Tricks = 0
	}
	for c := uint8(0); c < g.RoundNumber; c++ {
		for p := uint8(0); p < n; p++ {
			g.DeckLen--
			g.Players[p].Hand[c] = g.Deck[g.DeckLen]
			g.Players[p].HandLen++
		}
	}

	// Trump is the next card off the deck, absent on the final full deal.
	if g.DeckLen > 0 {
		g.DeckLen--
		g.TrumpCard = g.Deck[g.DeckLen]
		g.TrumpDrawn = true
	} else {
		g.TrumpCard = NoCard
		g.TrumpDrawn = false
	}

	g.TrickLen = 0
	g.LeadSet = false
	g.PlayedRound = [DeckSize]bool{}
	g.TrickLeader = g.RoundStart
	g.Phase = PhaseBidding
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// NumActivePlayers returns the number of seats at the table.
func (g *GameState) NumActivePlayers() uint8 { return g.Rules.numPlayers() }

// NextSeat returns the seat after the given one in play order.
func (g *GameState) NextSeat(seat uint8) uint8 {
	return (seat + 1) % g.Rules.numPlayers()
}

// TrickTurn returns the seat due to play the next card of the current trick.
func (g *GameState) TrickTurn() uint8 {
	return (g.TrickLeader + g.TrickLen) % g.Rules.numPlayers()
}

// TrickComplete reports whether every seat has played to the current trick.
func (g *GameState) TrickComplete() bool {
	return g.TrickLen == g.Rules.numPlayers()
}

// BiddingComplete reports whether every seat holds an assigned bid.
func (g *GameState) BiddingComplete() bool {
	n := g.Rules.numPlayers()
	for p := uint8(0); p < n; p++ {
		if g.Players[p].Bid == BidUnset {
			return false
		}
	}
	return true
}

// HandsEmpty reports whether every seat has played out its hand this round.
func (g *GameState) HandsEmpty() bool {
	n := g.Rules.numPlayers()
	for p := uint8(0); p < n; p++ {
		if g.Players[p].HandLen > 0 {
			return false
		}
	}
	return true
}

// HasCard reports whether the seat currently holds the given card.
func (g *GameState) HasCard(seat uint8, card Card) bool {
	h := &g.Players[seat]
	for i := uint8(0); i < h.HandLen; i++ {
		if h.Hand[i] == card {
			return true
		}
	}
	return false
}

// CheckCardConservation verifies the deck partition invariant: the undealt
// deck, all hands, the trump card, and the cards played this round must form
// exactly the 60 unique cards.
func (g *GameState) CheckCardConservation() error {
	var seen [DeckSize]uint8
	for i := uint8(0); i < g.DeckLen; i++ {
		seen[g.Deck[i]]++
	}
	n := g.Rules.numPlayers()
	for p := uint8(0); p < n; p++ {
		for i := uint8(0); i < g.Players[p].HandLen; i++ {
			seen[g.Players[p].Hand[i]]++
		}
	}
	if g.TrumpDrawn {
		seen[g.TrumpCard]++
	}
	for c := 0; c < DeckSize; c++ {
		if g.PlayedRound[c] {
			seen[c]++
		}
	}
	for c := 0; c < DeckSize; c++ {
		if seen[c] != 1 {
			return fmt.Errorf("card %v appears %d times across deck/hands/trump/played", Card(c), seen[c])
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState for undo support.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
