package rank

import (
	"fmt"

	"github.com/adalundhe/ragno/core/graph"
)

// ScoreVector maps node URIs to non-negative probability mass. After every
// completed iteration the mass sums to 1 within floating tolerance.
type ScoreVector map[string]float64

// BuildPersonalization turns entry points into a sparse teleportation
// distribution. Weights are optional; when nil, entry points receive uniform
// 1/N mass. Entry points that do not resolve against the graph are dropped
// and the remaining weights are renormalized to sum to 1; only when none
// resolve does the builder fail with ErrUnknownEntryPoint.
//
// The second return value lists the resolved entry points in first-seen
// order. A URI supplied twice accumulates both weight shares.
func BuildPersonalization(g *graph.Graph, entryPoints []string, weights []float64) (ScoreVector, []string, error) {
	if len(entryPoints) == 0 {
		return nil, nil, fmt.Errorf("%w: no entry points supplied", ErrUnknownEntryPoint)
	}
	if weights != nil && len(weights) != len(entryPoints) {
		return nil, nil, fmt.Errorf("%w: %d weights for %d entry points",
			ErrInvalidConfiguration, len(weights), len(entryPoints))
	}

	vector := make(ScoreVector, len(entryPoints))
	resolved := make([]string, 0, len(entryPoints))
	total := 0.0

	for i, uri := range entryPoints {
		weight := 1.0
		if weights != nil {
			weight = weights[i]
			if weight < 0 {
				return nil, nil, fmt.Errorf("%w: negative entry-point weight %v for %q",
					ErrInvalidConfiguration, weight, uri)
			}
		}
		if !g.HasNode(uri) {
			continue
		}
		if _, seen := vector[uri]; !seen {
			resolved = append(resolved, uri)
		}
		vector[uri] += weight
		total += weight
	}

	if len(resolved) == 0 {
		return nil, nil, fmt.Errorf("%w: none of %d entry points resolved",
			ErrUnknownEntryPoint, len(entryPoints))
	}
	if total <= 0 {
		return nil, nil, fmt.Errorf("%w: entry-point weights sum to zero", ErrInvalidConfiguration)
	}

	for uri := range vector {
		vector[uri] /= total
	}
	return vector, resolved, nil
}
