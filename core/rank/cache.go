package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adalundhe/ragno/core/graph"
	lru "github.com/hashicorp/golang-lru/v2"
)

// RunCache is a bounded LRU of run results keyed by graph fingerprint,
// entry points, and configuration. Runs are deterministic for identical
// inputs, so cached results are interchangeable with fresh ones. Safe for
// concurrent use.
type RunCache struct {
	cache *lru.Cache[string, *RunResult]
}

// NewRunCache creates a cache holding at most size results.
func NewRunCache(size int) (*RunCache, error) {
	cache, err := lru.New[string, *RunResult](size)
	if err != nil {
		return nil, fmt.Errorf("%w: cache size %d", ErrInvalidConfiguration, size)
	}
	return &RunCache{cache: cache}, nil
}

// Run returns the cached result for the given inputs, computing and storing
// it on a miss.
func (c *RunCache) Run(g *graph.Graph, entryPoints []string, cfg Config) (*RunResult, error) {
	key := runKey(g, entryPoints, cfg)
	if result, ok := c.cache.Get(key); ok {
		return result, nil
	}
	result, err := Run(g, entryPoints, cfg)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, result)
	return result, nil
}

// Len returns the number of cached results.
func (c *RunCache) Len() int { return c.cache.Len() }

// Purge drops all cached results.
func (c *RunCache) Purge() { c.cache.Purge() }

// runKey folds every input that can change the computed scores. Workers is
// deliberately excluded: fan-out changes scheduling, not results.
func runKey(g *graph.Graph, entryPoints []string, cfg Config) string {
	sorted := make([]string, len(entryPoints))
	copy(sorted, entryPoints)
	sort.Strings(sorted)
	return fmt.Sprintf("%016x|%s|%g|%d|%g|%d",
		g.Fingerprint(), strings.Join(sorted, "\x1f"),
		cfg.Alpha, cfg.MaxIterations, cfg.ConvergenceThreshold, cfg.TopK)
}
