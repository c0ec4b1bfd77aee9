package pathfind

import (
	"voxelworld/internal/chunk"
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/nav/graph"
)

// ChunkProvider is the narrow read-only view of the chunk store the path
// finder needs: look up a loaded chunk by location. Implemented by the
// world package's store; kept as an interface here so this package never
// imports world.
type ChunkProvider interface {
	Chunk(loc coords.ChunkLocation) (*chunk.Chunk, bool)
}

// blockGraphFor returns the per-area block graph and its member blocks for
// a world-graph node's (slab, area) pair.
func blockGraphFor(chunks ChunkProvider, loc coords.SlabLocation, id coords.AreaID) (*area.SlabArea, bool) {
	c, ok := chunks.Chunk(loc.Chunk)
	if !ok {
		return nil, false
	}
	nav := c.Navigation(loc.Slab)
	if nav == nil || nav.Discovery == nil {
		return nil, false
	}
	sa, ok := nav.Discovery.Areas[id]
	return sa, ok
}

// centroid returns the mean world position of an area's blocks, used as the
// outer search's heuristic anchor.
func centroid(chunks ChunkProvider, g *graph.Graph, id graph.NodeID) (coords.WorldPosition, bool) {
	loc, areaID, ok := g.Location(id)
	if !ok {
		return coords.WorldPosition{}, false
	}
	sa, ok := blockGraphFor(chunks, loc, areaID)
	if !ok || len(sa.Blocks) == 0 {
		return coords.WorldPosition{}, false
	}
	var sx, sy, sz int64
	for _, b := range sa.Blocks {
		wp := b.ToWorldPosition(loc)
		sx += int64(wp.X)
		sy += int64(wp.Y)
		sz += int64(wp.Z)
	}
	n := int64(len(sa.Blocks))
	return coords.WorldPosition{X: int32(sx / n), Y: int32(sy / n), Z: coords.SliceIndex(sz / n)}, true
}

// nodeAt returns the world-graph node containing a world position, or
// false if that slab isn't loaded or the block isn't walkable.
func nodeAt(chunks ChunkProvider, g *graph.Graph, wp coords.WorldPosition) (graph.NodeID, bool) {
	slabLoc := wp.SlabLocation()
	c, ok := chunks.Chunk(slabLoc.Chunk)
	if !ok {
		return 0, false
	}
	nav := c.Navigation(slabLoc.Slab)
	if nav == nil || nav.Discovery == nil {
		return 0, false
	}
	_, _, local := wp.Split()
	_, x, y, z := coords.LocalBlockPosition(local)
	sb := coords.SlabBlock{X: x, Y: y, Z: z}
	sa, ok := nav.Discovery.AreaAt(sb)
	if !ok {
		return 0, false
	}
	return g.NodeAt(slabLoc, sa.ID)
}
