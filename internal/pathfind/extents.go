package pathfind

import (
	"voxelworld/internal/nav/access"
	"voxelworld/internal/nav/graph"
)

// nodeExtents adapts the chunk store into access.ExtentProvider: a node's
// extent is the bounding rectangle (in continuous world XY) of its area's
// walkable blocks. This is an approximation of the area's true walkable
// footprint (which may not be a filled rectangle), traded for a single
// cheap Subtract per visited node instead of one per member block; see the
// accompanying design notes for why the approximation is acceptable here.
type nodeExtents struct {
	chunks ChunkProvider
	graph  *graph.Graph
}

func (n *nodeExtents) Extent(id graph.NodeID) (access.Rect, bool) {
	loc, areaID, ok := n.graph.Location(id)
	if !ok {
		return access.Rect{}, false
	}
	sa, ok := blockGraphFor(n.chunks, loc, areaID)
	if !ok || len(sa.Blocks) == 0 {
		return access.Rect{}, false
	}

	first := sa.Blocks[0].ToWorldPosition(loc)
	r := access.Rect{MinX: float32(first.X), MinY: float32(first.Y), MaxX: float32(first.X) + 1, MaxY: float32(first.Y) + 1}
	for _, b := range sa.Blocks[1:] {
		wp := b.ToWorldPosition(loc)
		x, y := float32(wp.X), float32(wp.Y)
		if x < r.MinX {
			r.MinX = x
		}
		if x+1 > r.MaxX {
			r.MaxX = x + 1
		}
		if y < r.MinY {
			r.MinY = y
		}
		if y+1 > r.MaxY {
			r.MaxY = y + 1
		}
	}
	return r, true
}
