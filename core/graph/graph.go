package graph

import (
	"fmt"
	"hash/maphash"
	"sort"
)

type edgeKey struct {
	from string
	to   string
}

// Graph is an immutable adjacency view over a set of typed nodes and
// weighted edges. Adjacency is populated in both directions: for every edge,
// each endpoint can reach the other during propagation regardless of the
// edge's original orientation.
//
// A Graph is safe for concurrent reads; it is never mutated after NewGraph
// returns.
type Graph struct {
	nodes map[string]Node

	// adjacency maps a node URI to its neighbors and the weight of the
	// connecting edge.
	adjacency map[string]map[string]float64

	// edges holds edge metadata keyed by both orientations.
	edges map[edgeKey]Edge

	// weightedDegree is the sum of each node's edge weights to its neighbors.
	weightedDegree map[string]float64

	edgeCount   int
	fingerprint uint64
}

var fingerprintSeed = maphash.MakeSeed()

// NewGraph validates the edge set against the node set and builds the
// symmetric adjacency structure. It fails with ErrMalformedGraph when an
// edge references a URI absent from the node set or carries a weight outside
// (0,1]. Duplicate node URIs are rejected; a repeated edge between the same
// pair replaces the earlier one.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:          make(map[string]Node, len(nodes)),
		adjacency:      make(map[string]map[string]float64, len(nodes)),
		edges:          make(map[edgeKey]Edge, len(edges)*2),
		weightedDegree: make(map[string]float64, len(nodes)),
	}

	for _, n := range nodes {
		if _, exists := g.nodes[n.URI]; exists {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrMalformedGraph, n.URI)
		}
		g.nodes[n.URI] = n
		g.fingerprint ^= hashURI(n.URI)
	}

	for _, e := range edges {
		if err := g.addEdge(e); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (g *Graph) addEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: edge %q -> %q references unknown node %q",
			ErrMalformedGraph, e.From, e.To, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: edge %q -> %q references unknown node %q",
			ErrMalformedGraph, e.From, e.To, e.To)
	}
	if e.Weight <= 0 || e.Weight > 1 {
		return fmt.Errorf("%w: edge %q -> %q weight %v outside (0,1]",
			ErrMalformedGraph, e.From, e.To, e.Weight)
	}

	if prev, ok := g.adjacency[e.From][e.To]; ok {
		// Replacing an existing edge: back out its weight contribution.
		g.weightedDegree[e.From] -= prev
		if e.From != e.To {
			g.weightedDegree[e.To] -= prev
		}
		g.edgeCount--
	}

	g.link(e.From, e.To, e.Weight)
	if e.From != e.To {
		g.link(e.To, e.From, e.Weight)
	}
	g.edges[edgeKey{e.From, e.To}] = e
	g.edges[edgeKey{e.To, e.From}] = e
	g.weightedDegree[e.From] += e.Weight
	if e.From != e.To {
		g.weightedDegree[e.To] += e.Weight
	}
	g.edgeCount++
	return nil
}

func (g *Graph) link(from, to string, weight float64) {
	neighbors, ok := g.adjacency[from]
	if !ok {
		neighbors = make(map[string]float64)
		g.adjacency[from] = neighbors
	}
	neighbors[to] = weight
}

func hashURI(uri string) uint64 {
	var h maphash.Hash
	h.SetSeed(fingerprintSeed)
	h.WriteString(uri)
	return h.Sum64()
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// HasNode reports whether a node with the given URI exists.
func (g *Graph) HasNode(uri string) bool {
	_, ok := g.nodes[uri]
	return ok
}

// Node returns the node with the given URI.
func (g *Graph) Node(uri string) (Node, bool) {
	n, ok := g.nodes[uri]
	return n, ok
}

// Edge returns the metadata for the edge between two URIs, in either
// orientation.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// Neighbors returns the adjacency row for a node: neighbor URI to connecting
// edge weight. The returned map is shared with the graph and must not be
// modified.
func (g *Graph) Neighbors(uri string) map[string]float64 {
	return g.adjacency[uri]
}

// Degree returns the number of neighbors of a node.
func (g *Graph) Degree(uri string) int {
	return len(g.adjacency[uri])
}

// WeightedDegree returns the sum of a node's edge weights to its neighbors.
// Nodes with no edges have weighted degree zero.
func (g *Graph) WeightedDegree(uri string) float64 {
	return g.weightedDegree[uri]
}

// URIs returns all node URIs in lexical order.
func (g *Graph) URIs() []string {
	uris := make([]string, 0, len(g.nodes))
	for uri := range g.nodes {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Subtypes returns the distinct subtypes present in the graph, sorted.
func (g *Graph) Subtypes() []Subtype {
	seen := make(map[Subtype]bool)
	for _, n := range g.nodes {
		seen[n.Subtype] = true
	}
	subtypes := make([]Subtype, 0, len(seen))
	for st := range seen {
		subtypes = append(subtypes, st)
	}
	sort.Slice(subtypes, func(i, j int) bool { return subtypes[i] < subtypes[j] })
	return subtypes
}

// Fingerprint returns an order-independent hash of the node URI set. Two
// graphs built in the same process over the same URIs share a fingerprint;
// it is used to detect node-set mismatches when combining runs and as a
// cache key component. It is not stable across processes.
func (g *Graph) Fingerprint() uint64 { return g.fingerprint }
