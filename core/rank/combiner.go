package rank

import (
	"fmt"
	"sort"

	"github.com/adalundhe/ragno/core/graph"
	"gonum.org/v1/gonum/floats"
)

// CombineEqual merges independently computed runs with uniform 1/N weights.
func CombineEqual(g *graph.Graph, runs []*RunResult) (*RunResult, error) {
	return Combine(g, runs, nil)
}

// Combine merges multiple ranking runs over the same graph into one result
// whose score vector is the weighted arithmetic mean of the inputs. Weights
// must match the run count and are normalized if they do not sum to 1; nil
// weights mean uniform 1/N. The merged ranked list, per-type top-K, and
// bridge nodes are re-derived from the merged vector through the same
// ranking procedure as a single run.
//
// Combine fails with ErrMismatchedRuns when the input runs were not all
// computed over g's node set.
func Combine(g *graph.Graph, runs []*RunResult, weights []float64) (*RunResult, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no runs to combine", ErrInvalidConfiguration)
	}
	normalized, err := normalizeRunWeights(runs, weights)
	if err != nil {
		return nil, err
	}
	for i, run := range runs {
		if run.fingerprint != g.Fingerprint() || len(run.scores) != g.NodeCount() {
			return nil, fmt.Errorf("%w: run %d node set differs", ErrMismatchedRuns, i)
		}
	}

	uris := g.URIs()
	merged := make([]float64, len(uris))
	scratch := make([]float64, len(uris))
	for i, run := range runs {
		for j, uri := range uris {
			scratch[j] = run.scores[uri]
		}
		floats.AddScaled(merged, normalized[i], scratch)
	}

	vector := make(ScoreVector, len(uris))
	for j, uri := range uris {
		vector[uri] = merged[j]
	}

	ranking := NewRanking(g, vector, runs[0].topK)
	stats := mergedStats(runs, len(vector))
	entryPoints := mergedEntryPoints(runs)
	stats.EntryPointCount = len(entryPoints)

	return &RunResult{
		Ranked:      ranking.Ranked,
		TopKByType:  ranking.TopKByType,
		Bridges:     ranking.Bridges,
		Algorithm:   fmt.Sprintf("%s/combined", algorithmName),
		EntryPoints: entryPoints,
		Stats:       stats,
		scores:      vector,
		fingerprint: g.Fingerprint(),
		topK:        runs[0].topK,
	}, nil
}

func normalizeRunWeights(runs []*RunResult, weights []float64) ([]float64, error) {
	normalized := make([]float64, len(runs))
	if weights == nil {
		uniform := 1.0 / float64(len(runs))
		for i := range normalized {
			normalized[i] = uniform
		}
		return normalized, nil
	}

	if len(weights) != len(runs) {
		return nil, fmt.Errorf("%w: %d weights for %d runs",
			ErrInvalidConfiguration, len(weights), len(runs))
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative run weight %v", ErrInvalidConfiguration, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: run weights sum to zero", ErrInvalidConfiguration)
	}
	for i, w := range weights {
		normalized[i] = w / total
	}
	return normalized, nil
}

// mergedStats reports the largest iteration count among the inputs and
// convergence only when every input converged.
func mergedStats(runs []*RunResult, resultCount int) RunStats {
	stats := RunStats{Converged: true, ResultCount: resultCount}
	for _, run := range runs {
		if run.Stats.Iterations > stats.Iterations {
			stats.Iterations = run.Stats.Iterations
		}
		if !run.Stats.Converged {
			stats.Converged = false
		}
	}
	return stats
}

func mergedEntryPoints(runs []*RunResult) []string {
	seen := make(map[string]bool)
	for _, run := range runs {
		for _, uri := range run.EntryPoints {
			seen[uri] = true
		}
	}
	union := make([]string, 0, len(seen))
	for uri := range seen {
		union = append(union, uri)
	}
	sort.Strings(union)
	return union
}
