// Package provenance serializes ranking runs as RDF-style statements into a
// caller-owned sink, so an external storage or export layer can persist how
// a ranking was produced.
package provenance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/adalundhe/ragno/core/rank"
	"github.com/google/uuid"
)

// Statement is a single subject/predicate/object triple.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
}

// Sink receives appended statements. The exporter treats the sink as
// write-only: it never reads back from it, so the same result can be
// exported repeatedly against different sinks.
type Sink interface {
	Append(Statement) error
}

// Predicates used by the exporter.
const (
	PredicateScore      = "ragno:score"
	PredicateRank       = "ragno:rank"
	PredicateAlgorithm  = "ragno:algorithm"
	PredicateEntryPoint = "ragno:entryPoint"
	PredicateConverged  = "ragno:converged"
	PredicateIterations = "ragno:iterations"
	PredicateTimestamp  = "ragno:timestamp"
)

// runURIPrefix namespaces generated run identifiers.
const runURIPrefix = "urn:ragno:run:"

// Export writes a run's provenance into the sink: per ranked node one score
// statement and one ordinal rank statement, then one run-level record
// carrying the algorithm identifier, entry points, convergence flag,
// iteration count, and an RFC3339 timestamp, all under a freshly generated
// run URI. It returns the run URI.
func Export(sink Sink, result *rank.RunResult) (string, error) {
	runURI := runURIPrefix + uuid.New().String()

	for i, node := range result.Ranked {
		score := Statement{
			Subject:   node.URI,
			Predicate: PredicateScore,
			Object:    strconv.FormatFloat(node.Score, 'g', -1, 64),
		}
		if err := sink.Append(score); err != nil {
			return "", fmt.Errorf("append score statement: %w", err)
		}
		ordinal := Statement{
			Subject:   node.URI,
			Predicate: PredicateRank,
			Object:    strconv.Itoa(i + 1),
		}
		if err := sink.Append(ordinal); err != nil {
			return "", fmt.Errorf("append rank statement: %w", err)
		}
	}

	record := []Statement{
		{Subject: runURI, Predicate: PredicateAlgorithm, Object: result.Algorithm},
		{Subject: runURI, Predicate: PredicateConverged, Object: strconv.FormatBool(result.Stats.Converged)},
		{Subject: runURI, Predicate: PredicateIterations, Object: strconv.Itoa(result.Stats.Iterations)},
		{Subject: runURI, Predicate: PredicateTimestamp, Object: time.Now().UTC().Format(time.RFC3339)},
	}
	for _, entryPoint := range result.EntryPoints {
		record = append(record, Statement{
			Subject:   runURI,
			Predicate: PredicateEntryPoint,
			Object:    entryPoint,
		})
	}
	for _, st := range record {
		if err := sink.Append(st); err != nil {
			return "", fmt.Errorf("append run record: %w", err)
		}
	}

	return runURI, nil
}

// MemorySink is an in-memory Sink for callers that collect statements before
// handing them to an external store.
type MemorySink struct {
	statements []Statement
}

// Append stores a statement.
func (s *MemorySink) Append(st Statement) error {
	s.statements = append(s.statements, st)
	return nil
}

// Statements returns the appended statements in order.
func (s *MemorySink) Statements() []Statement {
	return s.statements
}

// Len returns the number of appended statements.
func (s *MemorySink) Len() int { return len(s.statements) }
