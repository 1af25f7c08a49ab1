// Package rank computes entry-point-biased importance scores over a
// knowledge graph using personalized PageRank power iteration, and derives
// structured rankings, combined runs, and run statistics from the scores.
package rank

import "fmt"

// TraversalMode identifies the iteration-budget preset a run was configured
// with. Presets share the same recurrence and differ only in budget.
type TraversalMode int

const (
	// TraversalCustom is a run with a caller-chosen iteration budget.
	TraversalCustom TraversalMode = iota

	// TraversalShallow is a small fixed budget for fast local-neighborhood
	// exploration.
	TraversalShallow

	// TraversalDeep is a larger budget for comprehensive global exploration.
	TraversalDeep
)

// String returns the traversal mode name.
func (m TraversalMode) String() string {
	switch m {
	case TraversalCustom:
		return "custom"
	case TraversalShallow:
		return "shallow"
	case TraversalDeep:
		return "deep"
	default:
		return "unknown"
	}
}

// ParseTraversalMode parses a traversal mode name. The empty string parses
// as TraversalCustom.
func ParseTraversalMode(s string) (TraversalMode, error) {
	switch s {
	case "", "custom":
		return TraversalCustom, nil
	case "shallow":
		return TraversalShallow, nil
	case "deep":
		return TraversalDeep, nil
	default:
		return TraversalCustom, fmt.Errorf("%w: unknown traversal mode %q", ErrInvalidConfiguration, s)
	}
}

// Default configuration values.
const (
	DefaultAlpha                = 0.15
	DefaultMaxIterations        = 30
	DefaultConvergenceThreshold = 1e-6
	DefaultTopK                 = 3

	// ShallowIterations is the iteration budget of the shallow preset.
	ShallowIterations = 3

	// DeepIterations is the iteration budget of the deep preset.
	DeepIterations = 25
)

// Config holds the parameters of a ranking run.
type Config struct {
	// Alpha is the teleportation probability: the per-iteration probability
	// of resetting the walk to the personalization vector. Must lie in (0,1).
	Alpha float64

	// MaxIterations bounds the power iteration. Must be positive.
	MaxIterations int

	// ConvergenceThreshold is the L1 distance between consecutive score
	// vectors below which iteration halts. Must be positive.
	ConvergenceThreshold float64

	// TopK bounds the per-subtype ranked lists. Zero disables per-type
	// extraction; negative values are invalid.
	TopK int

	// Workers fans per-node score updates out across goroutines within each
	// iteration. Zero or one keeps the update sequential. Has no effect on
	// the computed scores.
	Workers int

	// Mode records which preset produced this configuration.
	Mode TraversalMode
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		Alpha:                DefaultAlpha,
		MaxIterations:        DefaultMaxIterations,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		TopK:                 DefaultTopK,
		Mode:                 TraversalCustom,
	}
}

// ShallowConfig returns the shallow traversal preset.
func ShallowConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxIterations = ShallowIterations
	cfg.Mode = TraversalShallow
	return cfg
}

// DeepConfig returns the deep traversal preset.
func DeepConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxIterations = DeepIterations
	cfg.Mode = TraversalDeep
	return cfg
}

// Validate checks that the configuration is usable. It is called by Run
// before any iteration begins.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("%w: alpha %v outside (0,1)", ErrInvalidConfiguration, c.Alpha)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidConfiguration, c.MaxIterations)
	}
	if c.ConvergenceThreshold <= 0 {
		return fmt.Errorf("%w: convergence threshold %v must be positive", ErrInvalidConfiguration, c.ConvergenceThreshold)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top-k %d must not be negative", ErrInvalidConfiguration, c.TopK)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}
