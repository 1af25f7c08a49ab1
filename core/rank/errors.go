package rank

import "errors"

// Sentinel errors surfaced before any iteration begins. Computation is
// deterministic, so none of these are transient.
var (
	// ErrUnknownEntryPoint indicates that no supplied entry point resolved
	// against the graph.
	ErrUnknownEntryPoint = errors.New("no entry point resolves against the graph")

	// ErrInvalidConfiguration indicates an out-of-range configuration value
	// or a weight list that does not match its companion slice.
	ErrInvalidConfiguration = errors.New("invalid ranking configuration")

	// ErrMismatchedRuns indicates that the runs given to the combiner were
	// not all computed over the same graph.
	ErrMismatchedRuns = errors.New("runs were computed over different graphs")
)
