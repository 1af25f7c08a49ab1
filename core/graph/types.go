// Package graph provides the read-only knowledge-graph view consumed by the
// ranking engine: typed nodes, weighted relationships, and symmetric
// adjacency with constant-time neighbor and degree lookup.
package graph

// NodeKind is the primary classification of a graph node.
type NodeKind int

const (
	// KindEntity is a named entity extracted from the corpus.
	KindEntity NodeKind = iota

	// KindUnit is a semantic unit (an independent passage of source text).
	KindUnit
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// Subtype is the domain tag of a node. The set is open: callers may introduce
// their own tags alongside the well-known ones below.
type Subtype string

// Well-known subtypes.
const (
	SubtypePerson      Subtype = "Person"
	SubtypeConcept     Subtype = "Concept"
	SubtypeInstitution Subtype = "Institution"
	SubtypePaper       Subtype = "Paper"
)

// Node is a single graph node. Immutable once the graph is constructed.
type Node struct {
	URI     string
	Kind    NodeKind
	Subtype Subtype
	Label   string
}

// Edge is a weighted relationship between two nodes. Weight must lie in
// (0,1]. The ranking engine treats connectivity as symmetric regardless of
// the original direction.
type Edge struct {
	From     string
	To       string
	Weight   float64
	Relation string
}
