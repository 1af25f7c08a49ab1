package rank

import "github.com/adalundhe/ragno/core/graph"

// RankedNode is a single entry in a descending ranked list. Ties are broken
// by lexical URI order so repeated runs produce identical output.
type RankedNode struct {
	URI   string
	Score float64
}

// BridgeNode is a node whose immediate neighbors span two or more distinct
// subtypes, together with the set of subtypes it connects.
type BridgeNode struct {
	URI            string
	Score          float64
	ConnectedTypes []graph.Subtype
}

// RunStats carries the metadata of a completed run. It is a value embedded
// in each RunResult, so concurrent runs cannot contaminate each other.
type RunStats struct {
	Iterations      int
	Converged       bool
	EntryPointCount int
	ResultCount     int
}

// RunResult is the immutable output of a ranking run.
type RunResult struct {
	// Ranked is the full node ranking, descending by score.
	Ranked []RankedNode

	// TopKByType holds, per subtype present in the graph, the K
	// highest-scoring nodes of that subtype.
	TopKByType map[graph.Subtype][]RankedNode

	// Bridges lists cross-type bridge nodes, descending by score.
	Bridges []BridgeNode

	// Algorithm identifies the computation that produced the result.
	Algorithm string

	// EntryPoints lists the resolved entry points of the run.
	EntryPoints []string

	// Stats carries iteration count, convergence, and result counts.
	Stats RunStats

	scores      ScoreVector
	fingerprint uint64
	topK        int
}

// Score returns a node's final score.
func (r *RunResult) Score(uri string) (float64, bool) {
	score, ok := r.scores[uri]
	return score, ok
}
