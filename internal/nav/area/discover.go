package area

import "voxelworld/internal/coords"

// Slab is the minimal read surface Discover needs from a voxel slab. It is
// satisfied by *voxel.Slab; defining it here avoids a dependency from this
// package back onto voxel's concrete type while keeping Discover testable
// against a bare fake. A nil Slab represents an unloaded neighbor.
type Slab interface {
	IsSolidAt(x, y coords.BlockCoord, z coords.LocalSlice) bool
	IsSolidTop(x, y coords.BlockCoord) bool
	IsSolidBottom(x, y coords.BlockCoord) bool
}

// Discover flood-fills a slab's walkable surface into connected areas and
// builds a step/jump graph for each. below and above are the neighboring
// slabs in the same chunk column, or nil if that slab is not currently
// loaded.
//
// A block is walkable if it is itself non-solid and the block directly
// beneath it is solid. When the slab below is unavailable, the bottom
// layer's support is unknown and those blocks are treated as unwalkable;
// the caller is expected to re-run Discover once that slab loads.
func Discover(slab Slab, below Slab, above Slab) *SlabDiscovery {
	disc := &SlabDiscovery{
		Areas: make(map[coords.AreaID]*SlabArea),
		index: make(map[coords.SlabBlock]coords.AreaID),
	}

	var nextID coords.AreaID
	visited := make(map[coords.SlabBlock]bool)

	for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
		for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
			for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
				start := coords.SlabBlock{X: x, Y: y, Z: z}
				if visited[start] || !walkable(slab, below, start) {
					continue
				}
				nextID++
				floodFill(slab, below, above, start, nextID, visited, disc)
			}
		}
	}

	return disc
}

func walkable(slab, below Slab, b coords.SlabBlock) bool {
	if slab.IsSolidAt(b.X, b.Y, b.Z) {
		return false
	}
	belowSolid, ok := supportBelow(slab, below, b)
	return ok && belowSolid
}

func supportBelow(slab, below Slab, b coords.SlabBlock) (solid bool, known bool) {
	if b.Z > 0 {
		return slab.IsSolidAt(b.X, b.Y, b.Z-1), true
	}
	if below == nil {
		return false, false
	}
	return below.IsSolidTop(b.X, b.Y), true
}

// aboveOpen reports whether the cell directly above b is known to be
// non-solid. If the slab above is not loaded, it is assumed open so a
// speculative jump edge can be formed; the caller re-discovers this slab
// once that neighbor loads.
func aboveOpen(slab, above Slab, b coords.SlabBlock) bool {
	if b.Z < coords.SlabSize-1 {
		return !slab.IsSolidAt(b.X, b.Y, b.Z+1)
	}
	if above == nil {
		return true
	}
	return !above.IsSolidBottom(b.X, b.Y)
}

var horizontalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func floodFill(slab, below, above Slab, start coords.SlabBlock, id coords.AreaID, visited map[coords.SlabBlock]bool, disc *SlabDiscovery) {
	sa := &SlabArea{ID: id, Graph: newBlockGraph()}
	disc.Areas[id] = sa

	queue := []coords.SlabBlock{start}
	visited[start] = true
	disc.index[start] = id
	sa.Blocks = append(sa.Blocks, start)
	sa.Graph.addNode(start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		curAboveOpen := aboveOpen(slab, above, cur)

		for _, d := range horizontalDirs {
			nx, ny := cur.X+coords.BlockCoord(d[0]), cur.Y+coords.BlockCoord(d[1])
			if nx < 0 || nx >= coords.ChunkSize || ny < 0 || ny >= coords.ChunkSize {
				continue
			}

			// Same-z step.
			same := coords.SlabBlock{X: nx, Y: ny, Z: cur.Z}
			if walkable(slab, below, same) {
				sa.Graph.addNode(same)
				sa.Graph.addEdge(cur, same, Walk, CostWalk)
				sa.Graph.addEdge(same, cur, Walk, CostWalk)
				enqueue(same, id, visited, disc, sa, &queue)
			}

			// Jump up: only possible if the space above the current block
			// is clear.
			if curAboveOpen && cur.Z < coords.SlabSize-1 {
				up := coords.SlabBlock{X: nx, Y: ny, Z: cur.Z + 1}
				if walkable(slab, below, up) {
					sa.Graph.addNode(up)
					sa.Graph.addEdge(cur, up, JumpUp, CostJumpUp)
					sa.Graph.addEdge(up, cur, JumpDown, CostJumpDown)
					enqueue(up, id, visited, disc, sa, &queue)
				}
			}
		}
	}
}

func enqueue(b coords.SlabBlock, id coords.AreaID, visited map[coords.SlabBlock]bool, disc *SlabDiscovery, sa *SlabArea, queue *[]coords.SlabBlock) {
	if visited[b] {
		return
	}
	visited[b] = true
	disc.index[b] = id
	sa.Blocks = append(sa.Blocks, b)
	*queue = append(*queue, b)
}
