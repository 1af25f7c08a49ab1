package rank

import (
	"reflect"
	"testing"

	"github.com/adalundhe/ragno/core/graph"
)

// typedGraph builds a small mixed-subtype graph:
//
//	person1 - bridge - org1
//	person1 - person2
//	org1 - org2
func typedGraph(t *testing.T) *graph.Graph {
	t.Helper()
	nodes := []graph.Node{
		{URI: "uri:person1", Kind: graph.KindEntity, Subtype: graph.SubtypePerson},
		{URI: "uri:person2", Kind: graph.KindEntity, Subtype: graph.SubtypePerson},
		{URI: "uri:org1", Kind: graph.KindEntity, Subtype: graph.SubtypeInstitution},
		{URI: "uri:org2", Kind: graph.KindEntity, Subtype: graph.SubtypeInstitution},
		{URI: "uri:bridge", Kind: graph.KindUnit, Subtype: graph.SubtypeConcept},
	}
	edges := []graph.Edge{
		{From: "uri:person1", To: "uri:bridge", Weight: 1},
		{From: "uri:bridge", To: "uri:org1", Weight: 1},
		{From: "uri:person1", To: "uri:person2", Weight: 1},
		{From: "uri:org1", To: "uri:org2", Weight: 1},
	}
	g, err := graph.NewGraph(nodes, edges)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}
	return g
}

func TestNewRanking_DescendingWithURITiebreak(t *testing.T) {
	g := pathGraph(t)
	scores := ScoreVector{
		"uri:a": 0.3,
		"uri:b": 0.1,
		"uri:c": 0.3,
		"uri:d": 0.2,
		"uri:e": 0.1,
	}

	ranking := NewRanking(g, scores, 3)

	want := []RankedNode{
		{URI: "uri:a", Score: 0.3},
		{URI: "uri:c", Score: 0.3},
		{URI: "uri:d", Score: 0.2},
		{URI: "uri:b", Score: 0.1},
		{URI: "uri:e", Score: 0.1},
	}
	if !reflect.DeepEqual(ranking.Ranked, want) {
		t.Errorf("Ranked = %v, want %v", ranking.Ranked, want)
	}
}

func TestTopKByType_Bounded(t *testing.T) {
	nodes := make([]graph.Node, 0, 5)
	scores := ScoreVector{}
	uris := []string{"uri:p1", "uri:p2", "uri:p3", "uri:p4", "uri:p5"}
	values := []float64{0.1, 0.3, 0.2, 0.25, 0.15}
	for i, uri := range uris {
		nodes = append(nodes, graph.Node{URI: uri, Subtype: graph.SubtypePerson})
		scores[uri] = values[i]
	}
	g, err := graph.NewGraph(nodes, nil)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}

	ranking := NewRanking(g, scores, 3)

	top := ranking.TopKByType[graph.SubtypePerson]
	want := []RankedNode{
		{URI: "uri:p2", Score: 0.3},
		{URI: "uri:p4", Score: 0.25},
		{URI: "uri:p3", Score: 0.2},
	}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("TopKByType[Person] = %v, want %v", top, want)
	}
}

func TestTopKByType_FewerNodesThanK(t *testing.T) {
	g := typedGraph(t)
	scores := ScoreVector{
		"uri:person1": 0.3, "uri:person2": 0.2,
		"uri:org1": 0.2, "uri:org2": 0.1,
		"uri:bridge": 0.2,
	}

	ranking := NewRanking(g, scores, 10)

	if got := len(ranking.TopKByType[graph.SubtypePerson]); got != 2 {
		t.Errorf("TopKByType[Person] has %d entries, want 2", got)
	}
	if got := len(ranking.TopKByType[graph.SubtypeConcept]); got != 1 {
		t.Errorf("TopKByType[Concept] has %d entries, want 1", got)
	}
}

func TestTopKByType_ZeroDisables(t *testing.T) {
	g := typedGraph(t)
	ranking := NewRanking(g, ScoreVector{"uri:person1": 1}, 0)
	if len(ranking.TopKByType) != 0 {
		t.Errorf("TopKByType = %v, want empty for k = 0", ranking.TopKByType)
	}
}

func TestBridgeNodes_UniqueCrossTypeNode(t *testing.T) {
	g := typedGraph(t)
	scores := ScoreVector{
		"uri:person1": 0.25, "uri:person2": 0.15,
		"uri:org1": 0.2, "uri:org2": 0.1,
		"uri:bridge": 0.3,
	}

	ranking := NewRanking(g, scores, 3)

	// person1 touches Person and Concept, org1 touches Institution and
	// Concept; only uri:bridge spans Person and Institution.
	var spanning []BridgeNode
	for _, b := range ranking.Bridges {
		if len(b.ConnectedTypes) == 2 &&
			b.ConnectedTypes[0] == graph.SubtypeInstitution &&
			b.ConnectedTypes[1] == graph.SubtypePerson {
			spanning = append(spanning, b)
		}
	}
	if len(spanning) != 1 || spanning[0].URI != "uri:bridge" {
		t.Errorf("Person+Institution bridges = %v, want exactly uri:bridge", spanning)
	}
}

func TestBridgeNodes_SortedByScore(t *testing.T) {
	g := typedGraph(t)
	scores := ScoreVector{
		"uri:person1": 0.25, "uri:person2": 0.15,
		"uri:org1": 0.2, "uri:org2": 0.1,
		"uri:bridge": 0.3,
	}

	ranking := NewRanking(g, scores, 3)

	for i := 1; i < len(ranking.Bridges); i++ {
		prev, cur := ranking.Bridges[i-1], ranking.Bridges[i]
		if prev.Score < cur.Score {
			t.Errorf("bridges out of order: %v before %v", prev, cur)
		}
	}
}

func TestBridgeNodes_SingleTypeNeighborhoodExcluded(t *testing.T) {
	g := typedGraph(t)
	ranking := NewRanking(g, ScoreVector{
		"uri:person1": 0.2, "uri:person2": 0.2,
		"uri:org1": 0.2, "uri:org2": 0.2,
		"uri:bridge": 0.2,
	}, 3)

	for _, b := range ranking.Bridges {
		if b.URI == "uri:person2" || b.URI == "uri:org2" {
			t.Errorf("%s has single-subtype neighborhood, must not be a bridge", b.URI)
		}
	}
}

func TestBoundedHeap_TieBrokenByURI(t *testing.T) {
	bh := newBoundedHeap(2)
	bh.offer(RankedNode{URI: "uri:z", Score: 0.5})
	bh.offer(RankedNode{URI: "uri:m", Score: 0.5})
	bh.offer(RankedNode{URI: "uri:a", Score: 0.5})

	got := bh.sortedDescending()
	want := []RankedNode{
		{URI: "uri:a", Score: 0.5},
		{URI: "uri:m", Score: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bounded heap kept %v, want lexically first URIs %v", got, want)
	}
}
