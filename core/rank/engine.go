package rank

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/adalundhe/ragno/core/graph"
	"gonum.org/v1/gonum/floats"
)

// algorithmName is the algorithm identifier recorded in run results and
// provenance exports, suffixed with the traversal mode.
const algorithmName = "personalized-pagerank"

// Run executes a personalized power-iteration ranking run and derives the
// structured result. Entry points receive uniform teleport mass; use
// RunWithWeights for caller-supplied weights.
//
// The recurrence, applied once per iteration over the full node set, is
//
//	score'(v) = alpha*p(v) + (1-alpha)*(sum_u score(u)*w(u,v)/outW(u) + dangling*p(v))
//
// where outW(u) is u's weighted degree and dangling is the total mass held
// by zero-degree nodes, redistributed through the personalization vector so
// it does not vanish. Iteration stops when the L1 distance between
// consecutive score vectors drops below cfg.ConvergenceThreshold or after
// cfg.MaxIterations, whichever comes first.
//
// Run never mutates the graph and is safe for concurrent use on a shared
// Graph. Configuration and entry-point errors surface before any iteration;
// no partial score vector is ever returned.
func Run(g *graph.Graph, entryPoints []string, cfg Config) (*RunResult, error) {
	return RunWithWeights(g, entryPoints, nil, cfg)
}

// RunWithWeights is Run with optional per-entry-point teleport weights.
func RunWithWeights(g *graph.Graph, entryPoints []string, weights []float64, cfg Config) (*RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	personalization, resolved, err := BuildPersonalization(g, entryPoints, weights)
	if err != nil {
		return nil, err
	}

	idx := newNodeIndex(g)
	scores, iterations, converged := iterate(idx, idx.dense(personalization), cfg)

	vector := make(ScoreVector, len(idx.uris))
	for i, uri := range idx.uris {
		vector[uri] = scores[i]
	}

	ranking := NewRanking(g, vector, cfg.TopK)
	return &RunResult{
		Ranked:      ranking.Ranked,
		TopKByType:  ranking.TopKByType,
		Bridges:     ranking.Bridges,
		Algorithm:   fmt.Sprintf("%s/%s", algorithmName, cfg.Mode),
		EntryPoints: resolved,
		Stats: RunStats{
			Iterations:      iterations,
			Converged:       converged,
			EntryPointCount: len(resolved),
			ResultCount:     len(vector),
		},
		scores:      vector,
		fingerprint: g.Fingerprint(),
		topK:        cfg.TopK,
	}, nil
}

// nodeIndex is a dense view of a graph built once per run: nodes mapped onto
// [0,n) in lexical URI order, adjacency in compressed sparse rows with the
// transition coefficient w(u,v)/outW(u) precomputed per entry.
type nodeIndex struct {
	uris     []string
	position map[string]int

	offsets []int
	sources []int
	coefs   []float64

	// dangling lists positions with zero weighted degree.
	dangling []int
}

func newNodeIndex(g *graph.Graph) *nodeIndex {
	uris := g.URIs()
	idx := &nodeIndex{
		uris:     uris,
		position: make(map[string]int, len(uris)),
		offsets:  make([]int, len(uris)+1),
	}
	for i, uri := range uris {
		idx.position[uri] = i
	}

	total := 0
	for _, uri := range uris {
		total += g.Degree(uri)
	}
	idx.sources = make([]int, 0, total)
	idx.coefs = make([]float64, 0, total)

	for i, uri := range uris {
		neighbors := g.Neighbors(uri)

		// Neighbor order is fixed so that floating-point summation is
		// bit-for-bit reproducible across runs.
		sorted := make([]string, 0, len(neighbors))
		for neighbor := range neighbors {
			sorted = append(sorted, neighbor)
		}
		sort.Strings(sorted)

		for _, neighbor := range sorted {
			idx.sources = append(idx.sources, idx.position[neighbor])
			idx.coefs = append(idx.coefs, neighbors[neighbor]/g.WeightedDegree(neighbor))
		}
		idx.offsets[i+1] = len(idx.sources)

		if g.WeightedDegree(uri) == 0 {
			idx.dangling = append(idx.dangling, i)
		}
	}
	return idx
}

// dense projects a sparse score vector onto the index ordering.
func (idx *nodeIndex) dense(sparse ScoreVector) []float64 {
	out := make([]float64, len(idx.uris))
	for uri, mass := range sparse {
		out[idx.position[uri]] = mass
	}
	return out
}

// iterate runs the power iteration until convergence or the iteration
// budget is exhausted. The returned slice sums to 1 within floating
// tolerance.
func iterate(idx *nodeIndex, personalization []float64, cfg Config) (scores []float64, iterations int, converged bool) {
	n := len(idx.uris)
	prev := make([]float64, n)
	copy(prev, personalization)
	next := make([]float64, n)

	for it := 1; it <= cfg.MaxIterations; it++ {
		danglingMass := 0.0
		for _, i := range idx.dangling {
			danglingMass += prev[i]
		}

		fanOut(n, cfg.Workers, func(lo, hi int) {
			updateRange(idx, prev, next, personalization, cfg.Alpha, danglingMass, lo, hi)
		})
		checkInvariants(next)

		delta := floats.Distance(next, prev, 1)
		prev, next = next, prev
		iterations = it
		if delta < cfg.ConvergenceThreshold {
			converged = true
			break
		}
	}
	return prev, iterations, converged
}

// updateRange applies the recurrence to positions [lo,hi). It reads only the
// previous snapshot, so disjoint ranges are independent.
func updateRange(idx *nodeIndex, prev, next, personalization []float64, alpha, danglingMass float64, lo, hi int) {
	for v := lo; v < hi; v++ {
		sum := 0.0
		for k := idx.offsets[v]; k < idx.offsets[v+1]; k++ {
			sum += prev[idx.sources[k]] * idx.coefs[k]
		}
		next[v] = alpha*personalization[v] + (1-alpha)*(sum+danglingMass*personalization[v])
	}
}

// fanOutThreshold is the node count below which per-iteration worker fan-out
// is not worth the goroutine overhead.
const fanOutThreshold = 4096

func fanOut(n, workers int, update func(lo, hi int)) {
	if workers <= 1 || n < fanOutThreshold {
		update(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			update(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// checkInvariants panics on NaN or negative mass. Either indicates an
// implementation defect (the dangling-node policy guarantees no division by
// zero degree), never a recoverable user error.
func checkInvariants(scores []float64) {
	for i, s := range scores {
		if math.IsNaN(s) || s < 0 {
			panic(fmt.Sprintf("rank: invariant violation: score %v at position %d", s, i))
		}
	}
}
