package engine

// Policy chooses an action for a non-agent seat at its decision point. The
// legal mask is the seat's LegalActions bitmask and is never empty when the
// policy is consulted. Implementations may read the full game state; any
// randomness they need should come from the state's RNG so a seed fully
// determines the game.
type Policy interface {
	ChooseAction(g *GameState, seat uint8, legal uint64) uint8
}

// RandomPolicy picks uniformly among legal actions using the game RNG. It
// honors the hook rule and the follow-suit rule implicitly via the mask.
type RandomPolicy struct{}

// ChooseAction returns a uniformly random set bit of legal.
func (RandomPolicy) ChooseAction(g *GameState, seat uint8, legal uint64) uint8 {
	count := uint64(0)
	for i := uint8(0); i < NumActions; i++ {
		if legal>>i&1 == 1 {
			count++
		}
	}
	pick := g.randN(count)
	for i := uint8(0); i < NumActions; i++ {
		if legal>>i&1 == 1 {
			if pick == 0 {
				return i
			}
			pick--
		}
	}
	// Unreachable while the mask is non-empty.
	return 0
}

// FirstLegalPolicy always picks the lowest legal action index. Deterministic
// regardless of seed; useful for tests and baselines.
type FirstLegalPolicy struct{}

// ChooseAction returns the lowest set bit of legal.
func (FirstLegalPolicy) ChooseAction(g *GameState, seat uint8, legal uint64) uint8 {
	for i := uint8(0); i < NumActions; i++ {
		if legal>>i&1 == 1 {
			return i
		}
	}
	return 0
}
