package rank

import (
	"errors"
	"testing"
)

func TestStatsTracker_OverwritesNotMerges(t *testing.T) {
	var tracker StatsTracker

	if _, ok := tracker.Last(); ok {
		t.Error("Last() should report nothing before a run is recorded")
	}

	tracker.Record(RunStats{Iterations: 5, Converged: false, EntryPointCount: 1, ResultCount: 10})
	tracker.Record(RunStats{Iterations: 12, Converged: true, EntryPointCount: 2, ResultCount: 10})

	last, ok := tracker.Last()
	if !ok {
		t.Fatal("Last() should report recorded stats")
	}
	if last.Iterations != 12 || !last.Converged || last.EntryPointCount != 2 {
		t.Errorf("Last() = %+v, want the most recent run only", last)
	}
}

func TestEngine_RecordsLastRun(t *testing.T) {
	g := pathGraph(t)
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, ok := engine.LastStats(); ok {
		t.Error("LastStats() should report nothing before the first run")
	}

	result, err := engine.Run(g, []string{"uri:c"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last, ok := engine.LastStats()
	if !ok {
		t.Fatal("LastStats() should report the completed run")
	}
	if last != result.Stats {
		t.Errorf("LastStats() = %+v, want %+v", last, result.Stats)
	}
	if last.ResultCount != g.NodeCount() {
		t.Errorf("ResultCount = %d, want %d", last.ResultCount, g.NodeCount())
	}
}

func TestEngine_FailedRunLeavesStatsUntouched(t *testing.T) {
	g := pathGraph(t)
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, err := engine.Run(g, []string{"uri:c"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	before, _ := engine.LastStats()

	if _, err := engine.Run(g, []string{"uri:nope"}); !errors.Is(err, ErrUnknownEntryPoint) {
		t.Fatalf("Run() error = %v, want ErrUnknownEntryPoint", err)
	}
	after, _ := engine.LastStats()
	if before != after {
		t.Error("failed runs must not overwrite recorded statistics")
	}
}

func TestNewEngine_InvalidConfiguration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alpha = 2
	if _, err := NewEngine(cfg); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewEngine() error = %v, want ErrInvalidConfiguration", err)
	}
}
