// Package area discovers the connected, walkable regions inside a single
// slab and the step/jump graph that connects the blocks within each region.
// It is the Go-native equivalent of the "area" pass of the world's
// navigation pipeline: given a slab's blocks (plus read-only access to the
// slice directly below, and optionally directly above), it partitions the
// walkable surface into SlabAreas and builds a BlockGraph per area.
package area

import "voxelworld/internal/coords"

// EdgeKind distinguishes the three move types the block graph can contain.
type EdgeKind uint8

const (
	Walk EdgeKind = iota
	JumpUp
	JumpDown
)

// Move costs, matching the original game's navigation constants: a step
// sideways costs 1, a diagonal-equivalent jump up costs sqrt(2), and
// dropping back down is cheaper than climbing since gravity does the work.
const (
	CostWalk     = 1.0
	CostJumpUp   = 1.41421356237
	CostJumpDown = 0.9
)

// Edge is one directed connection in a BlockGraph.
type Edge struct {
	To   coords.SlabBlock
	Kind EdgeKind
	Cost float64
}

// BlockGraph is the step/jump adjacency for every walkable block in one
// SlabArea. It only ever contains edges between blocks of the same area.
type BlockGraph struct {
	adjacency map[coords.SlabBlock][]Edge
}

func newBlockGraph() *BlockGraph {
	return &BlockGraph{adjacency: make(map[coords.SlabBlock][]Edge)}
}

// Neighbors returns the outgoing edges from a block. The returned slice must
// not be mutated by the caller.
func (g *BlockGraph) Neighbors(b coords.SlabBlock) []Edge {
	return g.adjacency[b]
}

// NodeCount returns the number of distinct blocks with at least one edge, or
// that were registered as isolated single-block areas.
func (g *BlockGraph) NodeCount() int {
	return len(g.adjacency)
}

func (g *BlockGraph) addNode(b coords.SlabBlock) {
	if _, ok := g.adjacency[b]; !ok {
		g.adjacency[b] = nil
	}
}

func (g *BlockGraph) addEdge(from, to coords.SlabBlock, kind EdgeKind, cost float64) {
	for _, e := range g.adjacency[from] {
		if e.To == to && e.Kind == kind {
			return
		}
	}
	g.adjacency[from] = append(g.adjacency[from], Edge{To: to, Kind: kind, Cost: cost})
}

// SlabArea is one maximal connected walkable region within a single slab.
type SlabArea struct {
	ID     coords.AreaID
	Blocks []coords.SlabBlock
	Graph  *BlockGraph
}

// SlabDiscovery is the result of running Discover over one slab: every
// walkable block is assigned to exactly one SlabArea.
type SlabDiscovery struct {
	Areas map[coords.AreaID]*SlabArea
	index map[coords.SlabBlock]coords.AreaID
}

// AreaAt returns the area a block belongs to, or false if the block is not
// walkable.
func (d *SlabDiscovery) AreaAt(b coords.SlabBlock) (*SlabArea, bool) {
	id, ok := d.index[b]
	if !ok {
		return nil, false
	}
	return d.Areas[id], true
}

// IsWalkable reports whether a block was assigned to any area.
func (d *SlabDiscovery) IsWalkable(b coords.SlabBlock) bool {
	_, ok := d.index[b]
	return ok
}
