// Command wizard-selfplay runs batches of random self-play games and reports
// aggregate statistics. It doubles as a stress test: every game checks card
// conservation after each step and any engine error fails the batch.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeriks31/wizard-online/engine"
	"github.com/jeriks31/wizard-online/internal/sim"
)

var (
	numGames   int
	seed       uint64
	workers    int
	numPlayers int
	shaping    bool
)

func init() {
	flag.IntVar(&numGames, "games", 1000, "Number of games to play")
	flag.Uint64Var(&seed, "seed", 0, "Batch seed (0 = use current time)")
	flag.IntVar(&workers, "workers", 0, "Worker goroutines (0 = one per CPU)")
	flag.IntVar(&numPlayers, "players", 4, "Players per table (3-6)")
	flag.BoolVar(&shaping, "shaping", true, "Include per-trick shaping in returns")
}

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if numPlayers < int(engine.MinPlayers) || numPlayers > int(engine.MaxPlayers) {
		log.Fatalf("players must be between %d and %d", engine.MinPlayers, engine.MaxPlayers)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rules := engine.Rules{NumPlayers: uint8(numPlayers), TrickShaping: shaping}

	log.WithFields(logrus.Fields{
		"games":   numGames,
		"seed":    seed,
		"players": numPlayers,
		"workers": workers,
	}).Info("starting batch")

	start := time.Now()
	stats := sim.RunBatchParallelN(numGames, seed, rules, workers)
	elapsed := time.Since(start)

	log.WithFields(logrus.Fields{
		"games":      stats.Games,
		"failures":   stats.Failures,
		"avg_steps":  stats.AvgSteps,
		"avg_return": stats.AvgReturn,
		"win_pct":    stats.AgentWinPct,
		"elapsed":    elapsed.Round(time.Millisecond).String(),
	}).Info("batch complete")

	if stats.Failures > 0 {
		os.Exit(1)
	}
}
