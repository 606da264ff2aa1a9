package engine

import "fmt"

// Observation is the agent-perspective view emitted after Reset and Step.
// Card piles use the 60-slot encoding; per-seat vectors are indexed by seat
// with only the first NumPlayers entries populated. Unset bids appear as 0
// and an unset lead suit as NumSuits; sentinels live only at this boundary.
type Observation struct {
	Hand               [DeckSize]bool
	TrumpCard          [DeckSize]bool
	CardsPlayedInTrick [DeckSize]bool
	CardsPlayedInRound [DeckSize]bool

	PlayerBids   [MaxPlayers]int16
	PlayerTricks [MaxPlayers]int16
	PlayerScores [MaxPlayers]int16

	RoundNumber     uint8
	Phase           Phase
	LeadSuit        uint8 // NumSuits when unset
	PositionInTrick uint8 // agent offset from the trick leader; 0 = leading
	NumPlayers      uint8

	ValidActions [NumActions]bool
}

// ShapingReward is the per-trick shaping magnitude: won tricks below the bid
// pay it out, won tricks at or past the bid cost it.
const ShapingReward float32 = 0.2

// Env orchestrates a single game for one external decision-maker at
// AgentSeat while the remaining seats advance through the opponent policy.
// Reset and Step are synchronous run-to-completion calls; an Env owns its
// GameState outright and shares nothing with other instances.
type Env struct {
	Game      GameState
	Opponents Policy
	AgentSeat uint8

	seed  uint64
	rules Rules
}

// NewEnv builds an environment that replays deterministically from seed.
// A nil opponents policy falls back to RandomPolicy.
func NewEnv(seed uint64, rules Rules, opponents Policy) *Env {
	if opponents == nil {
		opponents = RandomPolicy{}
	}
	return &Env{Opponents: opponents, seed: seed, rules: rules}
}

// Seed returns the seed the environment replays from.
func (e *Env) Seed() uint64 { return e.seed }

// Reset discards any game in progress, deals round 1 of a fresh game from
// the environment seed, advances the seats bidding ahead of the agent, and
// returns the initial observation.
func (e *Env) Reset() Observation {
	e.Game = NewGame(e.seed, e.rules)
	e.stepOpponentBids()
	return e.observation()
}

// Step applies the agent's action, advances every other seat to the agent's
// next decision point, and returns the resulting observation, the reward,
// and whether the game has ended. The action is a bid amount in the Bidding
// phase and a card encoding index in the Playing phase.
func (e *Env) Step(action uint8) (Observation, float32, bool, error) {
	g := &e.Game
	if g.IsTerminal() {
		return Observation{}, 0, true, fmt.Errorf("%w: step after game over", ErrInvalidPhase)
	}

	if g.Phase == PhaseBidding {
		if err := g.ApplyBid(e.AgentSeat, action); err != nil {
			return e.observation(), 0, false, err
		}
		e.stepOpponentBids()
		g.Phase = PhasePlaying
		g.TrickLeader = g.RoundStart
		e.stepOpponentPlays()
		return e.observation(), 0, false, nil
	}

	if err := g.ApplyPlay(e.AgentSeat, Card(action)); err != nil {
		return e.observation(), 0, false, err
	}
	e.stepOpponentPlays()

	var reward float32
	if g.TrickComplete() {
		winner := g.ResolveTrick()
		if winner == e.AgentSeat && g.Rules.TrickShaping {
			// Post-increment comparison: winning while still at or below
			// the bid is progress, overshooting is penalized.
			if int8(g.Players[winner].Tricks) <= g.Players[winner].Bid {
				reward = ShapingReward
			} else {
				reward = -ShapingReward
			}
		}
	}

	if g.HandsEmpty() {
		deltas := g.FinishRound()
		// The round-end delta supersedes any shaping from the final trick.
		reward = float32(deltas[e.AgentSeat])
		if g.IsTerminal() {
			return e.observation(), reward, true, nil
		}
		e.stepOpponentBids()
		return e.observation(), reward, false, nil
	}

	e.stepOpponentPlays()
	return e.observation(), reward, false, nil
}

// stepOpponentBids advances bidding in seat order from the round starter,
// stopping at the agent's seat. Every non-agent seat bids through the
// opponent policy over its hook-aware legal set.
func (e *Env) stepOpponentBids() {
	g := &e.Game
	if g.Phase != PhaseBidding {
		return
	}
	n := g.NumActivePlayers()
	seat := g.RoundStart
	for i := uint8(0); i < n; i++ {
		if seat == e.AgentSeat {
			// Stop when the agent is due; once it has bid, keep filling
			// the seats after it in bidding order.
			if g.Players[seat].Bid == BidUnset {
				return
			}
			seat = g.NextSeat(seat)
			continue
		}
		if g.Players[seat].Bid == BidUnset {
			bid := e.Opponents.ChooseAction(g, seat, g.LegalBids(seat))
			if err := g.ApplyBid(seat, bid); err != nil {
				// The mask handed to the policy was authoritative; an
				// illegal choice is a policy bug, not a repairable state.
				panic(fmt.Sprintf("opponent policy chose illegal bid %d for seat %d: %v", bid, seat, err))
			}
		}
		seat = g.NextSeat(seat)
	}
}

// stepOpponentPlays lets seats play to the current trick until the agent is
// due or the trick is complete.
func (e *Env) stepOpponentPlays() {
	g := &e.Game
	for !g.TrickComplete() {
		seat := g.TrickTurn()
		if seat == e.AgentSeat {
			return
		}
		card := e.Opponents.ChooseAction(g, seat, g.LegalPlays(seat))
		if err := g.ApplyPlay(seat, Card(card)); err != nil {
			panic(fmt.Sprintf("opponent policy chose illegal play %v for seat %d: %v", Card(card), seat, err))
		}
	}
}

// observation assembles the agent-perspective observation from the current
// state.
func (e *Env) observation() Observation {
	g := &e.Game
	n := g.NumActivePlayers()

	var obs Observation
	obs.NumPlayers = n
	obs.RoundNumber = g.RoundNumber
	obs.Phase = g.Phase

	h := &g.Players[e.AgentSeat]
	for i := uint8(0); i < h.HandLen; i++ {
		obs.Hand[h.Hand[i]] = true
	}
	if g.TrumpDrawn {
		obs.TrumpCard[g.TrumpCard] = true
	}
	for i := uint8(0); i < g.TrickLen; i++ {
		obs.CardsPlayedInTrick[g.TrickCards[i]] = true
	}
	obs.CardsPlayedInRound = g.PlayedRound

	for p := uint8(0); p < n; p++ {
		if g.Players[p].Bid != BidUnset {
			obs.PlayerBids[p] = int16(g.Players[p].Bid)
		}
		obs.PlayerTricks[p] = int16(g.Players[p].Tricks)
		obs.PlayerScores[p] = g.Players[p].Score
	}

	obs.LeadSuit = NumSuits
	if g.LeadSet {
		obs.LeadSuit = g.LeadSuit
	}
	obs.PositionInTrick = (e.AgentSeat + n - g.TrickLeader) % n

	if !g.IsTerminal() {
		mask := g.LegalActions(e.AgentSeat)
		for i := uint8(0); i < NumActions; i++ {
			obs.ValidActions[i] = mask>>i&1 == 1
		}
	}
	return obs
}
