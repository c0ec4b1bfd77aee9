// Package graph maintains the world navigation graph: a node per
// (chunk, slab, area) triple, with edges wherever two areas in
// horizontally- or vertically-adjacent slabs share a walkable boundary.
// It is the top level of the two-level pathfinder's search space.
package graph

import "voxelworld/internal/coords"

// NodeID is a generation-free handle to a world graph node: the index of its
// slot in the graph's node arena. A live node's ID never changes, but when a
// node is removed (OnSlabUnloaded, OnSlabReplaced) its slot goes on a free
// list and the same ID is handed to the next node added, so a NodeID kept
// across a removal may name a different node. Nothing in the ID detects this.
type NodeID uint64

type nodeKey struct {
	loc coords.SlabLocation
	id  coords.AreaID
}

type node struct {
	key  nodeKey
	free bool
}

// Edge is a directed connection between two nodes, crossing exactly one
// slab boundary. MaxStep is the vertical block delta the move crosses (0
// for a level walk, 1 for a jump up or down), used to filter edges against
// a requirement's step_height. From/To block are the boundary blocks on
// each side of the crossing (From in the source node's slab, To in the
// destination node's slab), the entry/exit points the inner per-area
// search stitches onto.
type Edge struct {
	To        NodeID
	Cost      float64
	Clearance int
	MaxStep   int
	FromBlock coords.SlabBlock
	ToBlock   coords.SlabBlock
}

// Graph is the mutable world navigation graph. It is not safe for
// concurrent use; callers serialize access (the world store's finalizer
// thread is the sole writer).
type Graph struct {
	nodes    []node
	freeList []NodeID
	byKey    map[nodeKey]NodeID
	edges    map[NodeID][]Edge

	// bySlab indexes every live node belonging to a slab, so
	// OnSlabUnloaded can remove them all without a linear scan.
	bySlab map[coords.SlabLocation][]NodeID
}

// New returns an empty world navigation graph.
func New() *Graph {
	return &Graph{
		byKey:  make(map[nodeKey]NodeID),
		edges:  make(map[NodeID][]Edge),
		bySlab: make(map[coords.SlabLocation][]NodeID),
	}
}

// NodeAt returns the node ID for an (slab, area) pair, if it exists.
func (g *Graph) NodeAt(loc coords.SlabLocation, area coords.AreaID) (NodeID, bool) {
	id, ok := g.byKey[nodeKey{loc, area}]
	return id, ok
}

// Location returns the (slab, area) a node represents.
func (g *Graph) Location(id NodeID) (coords.SlabLocation, coords.AreaID, bool) {
	if int(id) >= len(g.nodes) || g.nodes[id].free {
		return coords.SlabLocation{}, 0, false
	}
	return g.nodes[id].key.loc, g.nodes[id].key.id, true
}

// Edges returns the outgoing edges for a node. The returned slice must not
// be mutated.
func (g *Graph) Edges(id NodeID) []Edge {
	return g.edges[id]
}

func (g *Graph) addNode(loc coords.SlabLocation, area coords.AreaID) NodeID {
	key := nodeKey{loc, area}
	if id, ok := g.byKey[key]; ok {
		return id
	}

	var id NodeID
	if n := len(g.freeList); n > 0 {
		id = g.freeList[n-1]
		g.freeList = g.freeList[:n-1]
		g.nodes[id] = node{key: key}
	} else {
		id = NodeID(len(g.nodes))
		g.nodes = append(g.nodes, node{key: key})
	}

	g.byKey[key] = id
	g.bySlab[loc] = append(g.bySlab[loc], id)
	return id
}

func (g *Graph) removeNode(id NodeID) {
	if int(id) >= len(g.nodes) || g.nodes[id].free {
		return
	}
	key := g.nodes[id].key
	g.nodes[id] = node{free: true}
	g.freeList = append(g.freeList, id)
	delete(g.byKey, key)
	delete(g.edges, id)
	for other, edges := range g.edges {
		g.edges[other] = removeEdgesTo(edges, id)
	}
}

func removeEdgesTo(edges []Edge, id NodeID) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.To != id {
			out = append(out, e)
		}
	}
	return out
}

// BlockLess orders slab blocks lexicographically by X, then Y, then Z, the
// tie-break spec.md mandates so that path searches stay deterministic for a
// fixed world state regardless of discovery, wiring, or search order.
func BlockLess(a, b coords.SlabBlock) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func (g *Graph) addEdge(from, to NodeID, cost float64, clearance, maxStep int, fromBlock, toBlock coords.SlabBlock) {
	e := Edge{To: to, Cost: cost, Clearance: clearance, MaxStep: maxStep, FromBlock: fromBlock, ToBlock: toBlock}
	for i, existing := range g.edges[from] {
		if existing.To == to {
			if cost < existing.Cost || (cost == existing.Cost && BlockLess(fromBlock, existing.FromBlock)) {
				g.edges[from][i] = e
			}
			return
		}
	}
	g.edges[from] = append(g.edges[from], e)
}
