package sim

import (
	"testing"

	engine "github.com/jeriks31/wizard-online/engine"
)

// TestRunBatchParallelMatchesSerial verifies the worker pool plays the same
// set of games as the serial batch.
func TestRunBatchParallelMatchesSerial(t *testing.T) {
	rules := engine.DefaultRules()
	serial := RunBatch(8, 123, rules)
	parallel := RunBatchParallelN(8, 123, rules, 4)

	if serial.Games != parallel.Games || serial.Failures != parallel.Failures {
		t.Fatalf("game counts differ: %+v vs %+v", serial, parallel)
	}
	if serial.AvgSteps != parallel.AvgSteps {
		t.Errorf("avg steps differ: %v vs %v", serial.AvgSteps, parallel.AvgSteps)
	}
	// Result arrival order differs, so compare the return sum with a
	// float tolerance.
	if d := serial.AvgReturn - parallel.AvgReturn; d > 1e-6 || d < -1e-6 {
		t.Errorf("avg return differ: %v vs %v", serial.AvgReturn, parallel.AvgReturn)
	}
}

// TestRunBatchParallelDefaultWorkers verifies the zero-worker fallback.
func TestRunBatchParallelDefaultWorkers(t *testing.T) {
	stats := RunBatchParallelN(3, 1, engine.DefaultRules(), 0)
	if stats.Games != 3 {
		t.Errorf("games = %d, want 3", stats.Games)
	}
	if stats.Failures != 0 {
		t.Errorf("failures = %d, want 0", stats.Failures)
	}
}
