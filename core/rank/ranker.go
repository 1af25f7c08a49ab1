package rank

import (
	"container/heap"
	"sort"

	"github.com/adalundhe/ragno/core/graph"
)

// Ranking is the structured view derived from a final score vector: the full
// descending ranked list, bounded per-subtype top-K lists, and cross-type
// bridge nodes.
type Ranking struct {
	Ranked     []RankedNode
	TopKByType map[graph.Subtype][]RankedNode
	Bridges    []BridgeNode
}

// NewRanking derives a Ranking from a score vector. Ordering is descending
// by score with lexical URI tiebreaks throughout. k bounds the per-subtype
// lists; k == 0 disables per-type extraction.
func NewRanking(g *graph.Graph, scores ScoreVector, k int) Ranking {
	ranked := rankAll(scores)
	return Ranking{
		Ranked:     ranked,
		TopKByType: topKByType(g, ranked, k),
		Bridges:    bridgeNodes(g, ranked),
	}
}

func rankAll(scores ScoreVector) []RankedNode {
	ranked := make([]RankedNode, 0, len(scores))
	for uri, score := range scores {
		ranked = append(ranked, RankedNode{URI: uri, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].URI < ranked[j].URI
	})
	return ranked
}

// topKByType selects, for each subtype present in the graph, the k
// highest-scoring nodes of that subtype. Accumulation is bounded by a
// fixed-size heap per subtype, so no full per-type list is built first.
func topKByType(g *graph.Graph, ranked []RankedNode, k int) map[graph.Subtype][]RankedNode {
	if k <= 0 {
		return map[graph.Subtype][]RankedNode{}
	}

	heaps := make(map[graph.Subtype]*boundedHeap)
	for _, rn := range ranked {
		node, ok := g.Node(rn.URI)
		if !ok {
			continue
		}
		bh, ok := heaps[node.Subtype]
		if !ok {
			bh = newBoundedHeap(k)
			heaps[node.Subtype] = bh
		}
		bh.offer(rn)
	}

	out := make(map[graph.Subtype][]RankedNode, len(heaps))
	for subtype, bh := range heaps {
		out[subtype] = bh.sortedDescending()
	}
	return out
}

// bridgeNodes records every node whose adjacent subtypes span two or more
// distinct types. Iterating the already-sorted ranked list keeps the bridge
// list sorted by score.
func bridgeNodes(g *graph.Graph, ranked []RankedNode) []BridgeNode {
	bridges := make([]BridgeNode, 0)
	for _, rn := range ranked {
		seen := make(map[graph.Subtype]bool)
		for neighbor := range g.Neighbors(rn.URI) {
			if node, ok := g.Node(neighbor); ok {
				seen[node.Subtype] = true
			}
		}
		if len(seen) < 2 {
			continue
		}
		types := make([]graph.Subtype, 0, len(seen))
		for st := range seen {
			types = append(types, st)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		bridges = append(bridges, BridgeNode{URI: rn.URI, Score: rn.Score, ConnectedTypes: types})
	}
	return bridges
}

// boundedHeap keeps the k best ranked nodes seen so far. The root is the
// worst retained entry (lowest score, lexically last URI among equals), so a
// better candidate replaces it in O(log k).
type boundedHeap struct {
	k     int
	items []RankedNode
}

func newBoundedHeap(k int) *boundedHeap {
	return &boundedHeap{k: k, items: make([]RankedNode, 0, k)}
}

func (h *boundedHeap) Len() int { return len(h.items) }

func (h *boundedHeap) Less(i, j int) bool {
	if h.items[i].Score != h.items[j].Score {
		return h.items[i].Score < h.items[j].Score
	}
	return h.items[i].URI > h.items[j].URI
}

func (h *boundedHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *boundedHeap) Push(x any) { h.items = append(h.items, x.(RankedNode)) }

func (h *boundedHeap) Pop() any {
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last
}

func (h *boundedHeap) offer(rn RankedNode) {
	if len(h.items) < h.k {
		heap.Push(h, rn)
		return
	}
	worst := h.items[0]
	better := rn.Score > worst.Score ||
		(rn.Score == worst.Score && rn.URI < worst.URI)
	if better {
		h.items[0] = rn
		heap.Fix(h, 0)
	}
}

func (h *boundedHeap) sortedDescending() []RankedNode {
	out := make([]RankedNode, len(h.items))
	copy(out, h.items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].URI < out[j].URI
	})
	return out
}
