// Package agent flattens engine observations into fixed-size feature vectors
// for a neural decision-maker, and exposes the legal-action mask in the form
// policy code consumes.
package agent

import engine "github.com/jeriks31/wizard-online/engine"

const (
	// InputDim is the flattened feature vector size.
	InputDim = 272
	// NumActions matches the engine's shared bid/card action space.
	NumActions = engine.NumActions
	// SeatDim is the per-seat slot count; unused seats stay zero.
	SeatDim = engine.MaxPlayers
	// ScoreNorm scales cumulative scores; 135 is the perfect-bid total of a
	// 4-seat game (sum of 1+round over rounds 1..15).
	ScoreNorm = 135
)

// Encode writes the flattened observation into out, zeroing it first.
// Layout (272 total):
//
//	[0-59]    agent hand (60-slot card vector)
//	[60-119]  trump card
//	[120-179] cards played in current trick
//	[180-239] cards played in current round
//	[240-245] per-seat bids, normalized by MaxHandSize
//	[246-251] per-seat tricks won, normalized by MaxHandSize
//	[252-257] per-seat cumulative scores, normalized by ScoreNorm
//	[258]     round number, normalized by MaxHandSize
//	[259-260] phase one-hot (bidding, playing)
//	[261-265] lead suit one-hot (4 suits + unset)
//	[266-271] position in trick one-hot
func Encode(obs *engine.Observation, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	offset := 0

	writeCards := func(v *[engine.DeckSize]bool) {
		for i := 0; i < engine.DeckSize; i++ {
			if v[i] {
				out[offset+i] = 1.0
			}
		}
		offset += engine.DeckSize
	}
	writeCards(&obs.Hand)
	writeCards(&obs.TrumpCard)
	writeCards(&obs.CardsPlayedInTrick)
	writeCards(&obs.CardsPlayedInRound)
	// offset = 240

	for p := 0; p < SeatDim; p++ {
		out[offset+p] = float32(obs.PlayerBids[p]) / engine.MaxHandSize
	}
	offset += SeatDim
	// offset = 246

	for p := 0; p < SeatDim; p++ {
		out[offset+p] = float32(obs.PlayerTricks[p]) / engine.MaxHandSize
	}
	offset += SeatDim
	// offset = 252

	for p := 0; p < SeatDim; p++ {
		out[offset+p] = float32(obs.PlayerScores[p]) / ScoreNorm
	}
	offset += SeatDim
	// offset = 258

	out[offset] = float32(obs.RoundNumber) / engine.MaxHandSize
	offset++
	// offset = 259

	out[offset+int(obs.Phase)] = 1.0
	offset += 2
	// offset = 261

	out[offset+int(obs.LeadSuit)] = 1.0
	offset += engine.NumSuits + 1
	// offset = 266

	out[offset+int(obs.PositionInTrick)] = 1.0
	// offset = 272
}

// ActionMask writes the observation's valid-action vector as the bool mask a
// masked-policy head expects.
func ActionMask(obs *engine.Observation, out *[NumActions]bool) {
	*out = obs.ValidActions
}

// MaskFromBits expands a legal-action bitmask from the engine into the bool
// form. Useful when working with raw GameState rather than observations.
func MaskFromBits(legal uint64, out *[NumActions]bool) {
	*out = [NumActions]bool{}
	for i := uint8(0); i < NumActions; i++ {
		if legal>>i&1 == 1 {
			out[i] = true
		}
	}
}
