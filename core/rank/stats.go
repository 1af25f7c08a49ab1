package rank

import (
	"sync"

	"github.com/adalundhe/ragno/core/graph"
)

// StatsTracker mirrors the statistics of the most recent recorded run. Each
// new run overwrites the previous entry; nothing is merged. RunResult.Stats
// remains the authoritative per-run value.
type StatsTracker struct {
	mu       sync.RWMutex
	last     RunStats
	recorded bool
}

// Record overwrites the tracked statistics with those of a completed run.
func (t *StatsTracker) Record(stats RunStats) {
	t.mu.Lock()
	t.last = stats
	t.recorded = true
	t.mu.Unlock()
}

// Last returns the most recently recorded run statistics. The second return
// value is false until a run has been recorded.
func (t *StatsTracker) Last() (RunStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last, t.recorded
}

// Engine binds a validated configuration to a StatsTracker so callers that
// issue many runs with one configuration can read the most recent run's
// metadata. The underlying computation is the pure Run function; Engine adds
// no other state and is safe for concurrent use.
type Engine struct {
	cfg   Config
	stats StatsTracker
}

// NewEngine validates the configuration and returns an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Run executes a ranking run and records its statistics.
func (e *Engine) Run(g *graph.Graph, entryPoints []string) (*RunResult, error) {
	return e.RunWithWeights(g, entryPoints, nil)
}

// RunWithWeights is Run with per-entry-point teleport weights.
func (e *Engine) RunWithWeights(g *graph.Graph, entryPoints []string, weights []float64) (*RunResult, error) {
	result, err := RunWithWeights(g, entryPoints, weights, e.cfg)
	if err != nil {
		return nil, err
	}
	e.stats.Record(result.Stats)
	return result, nil
}

// LastStats returns the statistics of the engine's most recent run.
func (e *Engine) LastStats() (RunStats, bool) {
	return e.stats.Last()
}
