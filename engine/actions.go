package engine

import (
	"errors"
	"fmt"
)

// Failure taxonomy. All are local, synchronous failures signaled to the
// caller; the engine never substitutes a nearest-legal action.
var (
	// ErrInvalidBid marks a bid outside the legal set, including the
	// hook-forbidden value.
	ErrInvalidBid = errors.New("invalid bid")
	// ErrInvalidPlay marks a card not held or a follow-suit violation.
	ErrInvalidPlay = errors.New("invalid play")
	// ErrInvalidPhase marks an action submitted in the wrong phase,
	// including stepping a finished game.
	ErrInvalidPhase = errors.New("invalid phase for action")
)

// ApplyBid commits a bid for the seat. The seat must not already hold a bid
// and the value must be inside LegalBids.
func (g *GameState) ApplyBid(seat uint8, bid uint8) error {
	if g.IsTerminal() {
		return fmt.Errorf("%w: game is over", ErrInvalidPhase)
	}
	if g.Phase != PhaseBidding {
		return fmt.Errorf("%w: bid submitted during %v", ErrInvalidPhase, g.Phase)
	}
	if g.Players[seat].Bid != BidUnset {
		return fmt.Errorf("%w: seat %d already bid %d", ErrInvalidBid, seat, g.Players[seat].Bid)
	}
	if bid >= NumActions || g.LegalBids(seat)>>bid&1 == 0 {
		return fmt.Errorf("%w: %d for seat %d in round %d", ErrInvalidBid, bid, seat, g.RoundNumber)
	}
	g.Players[seat].Bid = int8(bid)
	return nil
}

// ApplyPlay plays a card from the seat's hand onto the current trick. The
// seat must be due to play, hold the card, and satisfy the follow-suit rule.
// The first non-special card played to a trick fixes its lead suit.
func (g *GameState) ApplyPlay(seat uint8, card Card) error {
	if g.IsTerminal() {
		return fmt.Errorf("%w: game is over", ErrInvalidPhase)
	}
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: play submitted during %v", ErrInvalidPhase, g.Phase)
	}
	if turn := g.TrickTurn(); seat != turn {
		return fmt.Errorf("%w: seat %d played out of turn (seat %d is due)", ErrInvalidPlay, seat, turn)
	}
	if card >= DeckSize || !g.HasCard(seat, card) {
		return fmt.Errorf("%w: seat %d does not hold %v", ErrInvalidPlay, seat, card)
	}
	if g.LegalPlays(seat)>>uint8(card)&1 == 0 {
		return fmt.Errorf("%w: %v does not follow %s", ErrInvalidPlay, card, SuitName(g.LeadSuit))
	}

	// Remove from hand; order within a hand carries no meaning.
	h := &g.Players[seat]
	for i := uint8(0); i < h.HandLen; i++ {
		if h.Hand[i] == card {
			h.HandLen--
			h.Hand[i] = h.Hand[h.HandLen]
			break
		}
	}

	g.TrickCards[g.TrickLen] = card
	g.TrickSeats[g.TrickLen] = seat
	g.TrickLen++
	g.PlayedRound[card] = true

	if !g.LeadSet && !card.IsSpecial() {
		g.LeadSuit = card.Suit()
		g.LeadSet = true
	}
	return nil
}

// ResolveTrick scores a complete trick: the winner takes the trick, leads the
// next one, and the trick state is cleared. Returns the winning seat.
func (g *GameState) ResolveTrick() uint8 {
	winner := g.EvaluateTrick()
	g.Players[winner].Tricks++
	g.TrickLeader = winner
	g.TrickLen = 0
	g.LeadSet = false
	return winner
}

// FinishRound applies round scoring to every seat, rotates the round starter,
// and either deals the next round or marks the game over once RoundNumber
// passes the table's MaxRound. Returns the per-seat score deltas.
func (g *GameState) FinishRound() [MaxPlayers]int16 {
	deltas := g.applyRoundScores()

	g.RoundNumber++
	g.RoundStart = g.NextSeat(g.RoundStart)
	g.TrickLeader = g.RoundStart

	if g.RoundNumber > g.Rules.MaxRound() {
		g.Flags |= FlagGameOver
		return deltas
	}
	g.DealRound()
	return deltas
}
