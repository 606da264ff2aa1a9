package sim

import (
	"math/rand"
	"runtime"
	"sync"

	engine "github.com/jeriks31/wizard-online/engine"
)

// GameJob represents a single simulation job.
type GameJob struct {
	SimID int
	Seed  uint64
}

// RunBatchParallelN executes a batch using a fixed number of workers. Seeds
// are drawn up front from the batch seed, so the set of games played matches
// the serial RunBatch for the same arguments.
func RunBatchParallelN(numGames int, seed uint64, rules engine.Rules, numWorkers int) AggregatedStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results, rules)
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < numGames; i++ {
		jobs <- GameJob{SimID: i, Seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]GameResult, 0, numGames)
	for r := range results {
		collected = append(collected, r)
	}
	return aggregateResults(collected)
}

// RunBatchParallel executes a batch with one worker per CPU.
func RunBatchParallel(numGames int, seed uint64, rules engine.Rules) AggregatedStats {
	return RunBatchParallelN(numGames, seed, rules, runtime.NumCPU())
}

// worker processes simulation jobs from the jobs channel.
func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, rules engine.Rules) {
	defer wg.Done()
	for job := range jobs {
		results <- RunSingleGame(job.Seed, rules)
	}
}
