package graph

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
)

// Provider gives the graph maintainer read access to a neighboring slab's
// blocks and its last area discovery, if that slab is currently loaded.
type Provider interface {
	Get(loc coords.SlabLocation) (slab area.Slab, disc *area.SlabDiscovery, ok bool)
}

type direction struct {
	dChunkX, dChunkY coords.ChunkCoord
	dSlab            coords.SlabIndex
}

var horizontalNeighbors = [4]direction{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0},
}

var upNeighbor = direction{0, 0, 1}

func (d direction) apply(loc coords.SlabLocation) coords.SlabLocation {
	return coords.SlabLocation{
		Chunk: coords.ChunkLocation{X: loc.Chunk.X + d.dChunkX, Y: loc.Chunk.Y + d.dChunkY},
		Slab:  loc.Slab + d.dSlab,
	}
}

// OnSlabLoaded adds nodes for every area discovered in this slab and wires
// boundary edges to each of its six neighbors that are currently loaded.
// Call it again (after removing the slab's prior nodes, if any) whenever the
// slab is re-discovered. The edges from the slab below are wired through
// provider.Get(loc), so provider must already return this slab and disc.
func (g *Graph) OnSlabLoaded(loc coords.SlabLocation, slab area.Slab, disc *area.SlabDiscovery, provider Provider) {
	for id := range disc.Areas {
		g.addNode(loc, id)
	}

	for _, d := range horizontalNeighbors {
		g.wireHorizontal(loc, slab, disc, d, provider)
	}
	g.wireVertical(loc, slab, disc, provider)

	belowLoc := coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab - 1}
	if belowSlab, belowDisc, ok := provider.Get(belowLoc); ok {
		g.wireVertical(belowLoc, belowSlab, belowDisc, provider)
	}
}

// OnSlabUnloaded removes every node belonging to this slab, and with it every
// edge referencing those nodes.
func (g *Graph) OnSlabUnloaded(loc coords.SlabLocation) {
	ids := append([]NodeID(nil), g.bySlab[loc]...)
	for _, id := range ids {
		g.removeNode(id)
	}
	delete(g.bySlab, loc)
}

// OnSlabReplaced re-derives a slab's nodes and edges after it has been
// mutated and re-discovered: old nodes are dropped first so stale areas
// don't linger, then the new discovery is wired in exactly as on first load.
func (g *Graph) OnSlabReplaced(loc coords.SlabLocation, slab area.Slab, disc *area.SlabDiscovery, provider Provider) {
	g.OnSlabUnloaded(loc)
	g.OnSlabLoaded(loc, slab, disc, provider)
}

func (g *Graph) wireHorizontal(loc coords.SlabLocation, slab area.Slab, disc *area.SlabDiscovery, d direction, provider Provider) {
	neighborLoc := d.apply(loc)
	neighborSlab, neighborDisc, ok := provider.Get(neighborLoc)
	if !ok {
		return
	}

	// Boundary planes: this slab's face on the side nearest the neighbor,
	// and the neighbor's opposing face. Walking +X means this slab's x=15
	// column meets the neighbor's x=0 column (same y, z).
	var thisX, neighborX coords.BlockCoord
	switch {
	case d.dChunkX == 1:
		thisX, neighborX = coords.ChunkSize-1, 0
	case d.dChunkX == -1:
		thisX, neighborX = 0, coords.ChunkSize-1
	case d.dChunkY == 1:
		thisX, neighborX = coords.ChunkSize-1, 0
	default:
		thisX, neighborX = 0, coords.ChunkSize-1
	}

	for c := coords.BlockCoord(0); c < coords.ChunkSize; c++ {
		for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
			var a, b coords.SlabBlock
			switch {
			case d.dChunkX != 0:
				a = coords.SlabBlock{X: thisX, Y: c, Z: z}
				b = coords.SlabBlock{X: neighborX, Y: c, Z: z}
			default:
				a = coords.SlabBlock{X: c, Y: thisX, Z: z}
				b = coords.SlabBlock{X: c, Y: neighborX, Z: z}
			}
			g.wireCrossing(loc, disc, slab, a, neighborLoc, neighborDisc, neighborSlab, b)
		}
	}
}

// wireVertical connects the top surface of this slab to the bottom surface
// of the slab above. A straight-up move is never valid (the space directly
// above a standing position is, by definition, open headroom rather than a
// second surface) so every vertical-neighbor edge is a diagonal jump into
// one of the four horizontally-adjacent columns of the slab above, exactly
// like a same-slab step-up, just straddling the slab seam instead of a
// single block boundary.
func (g *Graph) wireVertical(loc coords.SlabLocation, slab area.Slab, disc *area.SlabDiscovery, provider Provider) {
	aboveLoc := upNeighbor.apply(loc)
	aboveSlab, aboveDisc, ok := provider.Get(aboveLoc)
	if !ok {
		return
	}
	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			src := coords.SlabBlock{X: x, Y: y, Z: coords.SlabSize - 1}
			if !disc.IsWalkable(src) {
				continue
			}
			if aboveSlab.IsSolidAt(x, y, 0) {
				continue // no headroom directly above the standing position
			}
			for _, d := range horizontalDirsXY {
				nx, ny := x+coords.BlockCoord(d[0]), y+coords.BlockCoord(d[1])
				if nx < 0 || nx >= coords.ChunkSize || ny < 0 || ny >= coords.ChunkSize {
					continue
				}
				dst := coords.SlabBlock{X: nx, Y: ny, Z: 0}
				if !aboveDisc.IsWalkable(dst) {
					continue
				}
				clearance := verticalClearance(slab, x, y, coords.SlabSize-1, -1) + verticalClearance(aboveSlab, nx, ny, 0, 1)
				g.connectAreas(loc, disc, src, aboveLoc, aboveDisc, dst, area.CostJumpUp, area.CostJumpDown, clearance, 1)
			}
		}
	}
}

var horizontalDirsXY = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// wireCrossing evaluates the two blocks directly facing each other across a
// horizontal slab boundary, plus the diagonal jump in each direction.
func (g *Graph) wireCrossing(
	loc coords.SlabLocation, disc *area.SlabDiscovery, slab area.Slab, a coords.SlabBlock,
	neighborLoc coords.SlabLocation, neighborDisc *area.SlabDiscovery, neighborSlab area.Slab, b coords.SlabBlock,
) {
	aWalk, bWalk := disc.IsWalkable(a), neighborDisc.IsWalkable(b)
	clearance := verticalClearance(slab, a.X, a.Y, a.Z, 1) + verticalClearance(neighborSlab, b.X, b.Y, b.Z, 1)
	if aWalk && bWalk {
		g.connectAreas(loc, disc, a, neighborLoc, neighborDisc, b, area.CostWalk, area.CostWalk, clearance, 0)
	}

	if a.Z+1 < coords.SlabSize && b.Z+1 < coords.SlabSize {
		aAboveOpen := !slab.IsSolidAt(a.X, a.Y, a.Z+1)
		bAboveOpen := !neighborSlab.IsSolidAt(b.X, b.Y, b.Z+1)

		bUp := coords.SlabBlock{X: b.X, Y: b.Y, Z: b.Z + 1}
		if aWalk && aAboveOpen && neighborDisc.IsWalkable(bUp) {
			g.connectAreas(loc, disc, a, neighborLoc, neighborDisc, bUp, area.CostJumpUp, area.CostJumpDown, clearance, 1)
		}

		aUp := coords.SlabBlock{X: a.X, Y: a.Y, Z: a.Z + 1}
		if bWalk && bAboveOpen && disc.IsWalkable(aUp) {
			g.connectAreas(neighborLoc, neighborDisc, b, loc, disc, aUp, area.CostJumpUp, area.CostJumpDown, clearance, 1)
		}
	}
}

func (g *Graph) connectAreas(
	fromLoc coords.SlabLocation, fromDisc *area.SlabDiscovery, fromBlock coords.SlabBlock,
	toLoc coords.SlabLocation, toDisc *area.SlabDiscovery, toBlock coords.SlabBlock,
	costForward, costBackward float64, clearance, maxStep int,
) {
	fromArea, _ := fromDisc.AreaAt(fromBlock)
	toArea, _ := toDisc.AreaAt(toBlock)
	fromID := g.addNode(fromLoc, fromArea.ID)
	toID := g.addNode(toLoc, toArea.ID)
	g.addEdge(fromID, toID, costForward, clearance, maxStep, fromBlock, toBlock)
	g.addEdge(toID, fromID, costBackward, clearance, maxStep, toBlock, fromBlock)
}

// verticalClearance counts consecutive non-solid cells starting at z and
// moving in dir (+1 or -1), up to 4, without crossing a slab boundary.
func verticalClearance(slab area.Slab, x, y coords.BlockCoord, z coords.LocalSlice, dir int) int {
	count := 0
	for i := 0; i < 4; i++ {
		zz := z + coords.LocalSlice(dir*i)
		if zz < 0 || zz >= coords.SlabSize {
			break
		}
		if slab.IsSolidAt(x, y, zz) {
			break
		}
		count++
	}
	return count
}
