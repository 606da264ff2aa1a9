// Package sim runs self-play Wizard games for smoke-testing the engine and
// measuring baseline returns. The agent seat plays uniformly at random over
// its valid-action mask, like the opponent seats.
package sim

import (
	"fmt"
	"math/rand"

	engine "github.com/jeriks31/wizard-online/engine"
)

// GameResult captures the outcome of a single self-play game.
type GameResult struct {
	Seed        uint64
	Steps       int
	Rounds      uint8
	AgentReturn float32
	FinalScores []int16
	AgentWon    bool // strictly highest cumulative score
	Err         error
}

// AggregatedStats summarizes a batch of games.
type AggregatedStats struct {
	Games       int
	Failures    int
	AvgSteps    float64
	AvgReturn   float64
	AgentWinPct float64
}

// maxGameSteps bounds a single rollout; a 3-seat game needs 20 rounds of at
// most 21 agent decisions each.
const maxGameSteps = 1000

// RunSingleGame plays one full game from the given seed, checking the card
// conservation invariant after every step. The agent's per-step action is an
// independent uniform draw over the valid-action mask, seeded separately
// from the engine RNG so engine and agent randomness never entangle.
func RunSingleGame(seed uint64, rules engine.Rules) GameResult {
	res := GameResult{Seed: seed}
	env := engine.NewEnv(seed, rules, engine.RandomPolicy{})
	rng := rand.New(rand.NewSource(int64(seed)))

	obs := env.Reset()
	for {
		if res.Steps >= maxGameSteps {
			res.Err = fmt.Errorf("game exceeded %d steps", maxGameSteps)
			break
		}
		action, ok := sampleValid(rng, &obs)
		if !ok {
			res.Err = fmt.Errorf("step %d: no valid action available", res.Steps)
			break
		}
		next, reward, done, err := env.Step(action)
		if err != nil {
			res.Err = fmt.Errorf("step %d: %w", res.Steps, err)
			break
		}
		res.Steps++
		res.AgentReturn += reward
		obs = next

		if !done {
			if err := env.Game.CheckCardConservation(); err != nil {
				res.Err = fmt.Errorf("step %d: %w", res.Steps, err)
				break
			}
		}
		if done {
			break
		}
	}

	n := env.Game.NumActivePlayers()
	res.Rounds = env.Game.RoundNumber - 1
	res.FinalScores = make([]int16, n)
	best := int16(-32768)
	bestSeat := uint8(0)
	unique := true
	for p := uint8(0); p < n; p++ {
		s := env.Game.Players[p].Score
		res.FinalScores[p] = s
		if s > best {
			best, bestSeat, unique = s, p, true
		} else if s == best {
			unique = false
		}
	}
	res.AgentWon = res.Err == nil && unique && bestSeat == env.AgentSeat
	return res
}

// sampleValid picks a uniformly random valid action from the observation.
func sampleValid(rng *rand.Rand, obs *engine.Observation) (uint8, bool) {
	count := 0
	for i := 0; i < engine.NumActions; i++ {
		if obs.ValidActions[i] {
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	pick := rng.Intn(count)
	for i := 0; i < engine.NumActions; i++ {
		if obs.ValidActions[i] {
			if pick == 0 {
				return uint8(i), true
			}
			pick--
		}
	}
	return 0, false
}

// RunBatch plays numGames serially with deterministic per-game seeds derived
// from the batch seed.
func RunBatch(numGames int, seed uint64, rules engine.Rules) AggregatedStats {
	rng := rand.New(rand.NewSource(int64(seed)))
	results := make([]GameResult, 0, numGames)
	for i := 0; i < numGames; i++ {
		results = append(results, RunSingleGame(rng.Uint64(), rules))
	}
	return aggregateResults(results)
}

// aggregateResults computes batch statistics over completed games.
func aggregateResults(results []GameResult) AggregatedStats {
	stats := AggregatedStats{Games: len(results)}
	if stats.Games == 0 {
		return stats
	}
	wins := 0
	for _, r := range results {
		if r.Err != nil {
			stats.Failures++
			continue
		}
		stats.AvgSteps += float64(r.Steps)
		stats.AvgReturn += float64(r.AgentReturn)
		if r.AgentWon {
			wins++
		}
	}
	completed := stats.Games - stats.Failures
	if completed > 0 {
		stats.AvgSteps /= float64(completed)
		stats.AvgReturn /= float64(completed)
		stats.AgentWinPct = float64(wins) / float64(completed)
	}
	return stats
}
