package world

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/loader"
	"voxelworld/internal/nav/access"
	"voxelworld/internal/pathfind"
	"voxelworld/internal/viewer"
	"voxelworld/internal/voxel"
)

// Block looks up a single block. The second return value is false when the
// owning chunk, or its owning slab, isn't currently loaded; §7 treats that
// the same as the world reporting "no such block" rather than an error.
func (w *World) Block(wp coords.WorldPosition) (voxel.Block, bool) {
	chunkLoc, slabIdx, local := wp.Split()
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.chunks[chunkLoc]
	if !ok || c.Slab(slabIdx) == nil {
		return voxel.Block{}, false
	}
	return c.Block(local), true
}

// IterateBlocks invokes fn for every position in rng, in z-major order,
// passing the air sentinel for any position whose chunk or slab isn't
// loaded. Stops early if fn returns false.
func (w *World) IterateBlocks(rng coords.WorldPositionRange, fn func(coords.WorldPosition, voxel.Block) bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for z := rng.Min.Z; z <= rng.Max.Z; z++ {
		for y := rng.Min.Y; y <= rng.Max.Y; y++ {
			for x := rng.Min.X; x <= rng.Max.X; x++ {
				wp := coords.WorldPosition{X: x, Y: y, Z: z}
				chunkLoc, slabIdx, local := wp.Split()

				var b voxel.Block
				if c, ok := w.chunks[chunkLoc]; ok && c.Slab(slabIdx) != nil {
					b = c.Block(local)
				}
				if !fn(wp, b) {
					return
				}
			}
		}
	}
}

// SetTerrain queues a block-type overwrite for every position in rng. The
// mutation, its occlusion fixup, and its navigation graph rewiring all
// happen on the next Tick, never synchronously with the call.
func (w *World) SetTerrain(rng coords.WorldPositionRange, t voxel.BlockType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, terrainUpdate{Range: rng, Type: t})
}

// FindPath runs a path query with an explicit requirement and cost policy.
func (w *World) FindPath(from coords.WorldPosition, goal pathfind.SearchGoal, req pathfind.NavRequirement, policy pathfind.CostPolicy) (*pathfind.Path, error) {
	return w.pathfinder.FindPath(from, goal, req, policy)
}

// FindPathDefault runs a path query using the world's configured default
// agent shape and cost policy.
func (w *World) FindPathDefault(from coords.WorldPosition, goal pathfind.SearchGoal) (*pathfind.Path, error) {
	return w.pathfinder.FindPath(from, goal, w.navDefaults, w.costDefaults)
}

// IsAccessible reports whether an agent with the given requirement can
// stand anywhere within rng, using the topmost walkable block under the
// range's centre as the search anchor.
func (w *World) IsAccessible(rng coords.WorldPointRange, req pathfind.NavRequirement) bool {
	cx := int32((rng.MinX + rng.MaxX) / 2)
	cy := int32((rng.MinY + rng.MaxY) / 2)

	center, ok := w.FindAccessibleBlockInColumn(cx, cy)
	if !ok {
		return false
	}

	footprint := access.Rect{MinX: rng.MinX, MinY: rng.MinY, MaxX: rng.MaxX, MaxY: rng.MaxY}
	return w.pathfinder.IsAccessible(center, footprint, req)
}

// FindAccessibleBlockInColumn scans downward from the highest loaded slab
// at (x, y) for the topmost walkable block, for use as a search anchor
// when a caller only has a 2D point.
func (w *World) FindAccessibleBlockInColumn(x, y int32) (coords.WorldPosition, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	chunkLoc := coords.ToChunkLocation(x, y)
	c, ok := w.chunks[chunkLoc]
	if !ok {
		return coords.WorldPosition{}, false
	}

	bx, by := coords.ToBlockCoord(x), coords.ToBlockCoord(y)
	indices := c.LoadedSlabIndices()
	for i := len(indices) - 1; i >= 0; i-- {
		idx := indices[i]
		nav := c.Navigation(idx)
		if nav == nil || nav.Discovery == nil {
			continue
		}
		for z := coords.LocalSlice(coords.SlabSize - 1); z >= 0; z-- {
			sb := coords.SlabBlock{X: bx, Y: by, Z: z}
			if nav.Discovery.IsWalkable(sb) {
				return sb.ToWorldPosition(coords.SlabLocation{Chunk: chunkLoc, Slab: idx}), true
			}
		}
	}
	return coords.WorldPosition{}, false
}

// RequestLoad enqueues every slab in the given chunk range and vertical
// slab-index span as one batch at the given priority.
func (w *World) RequestLoad(rng coords.ChunkLocationRange, slabMin, slabMax coords.SlabIndex, priority int) (loader.BatchID, error) {
	var locs []coords.SlabLocation
	rng.ForEach(func(cl coords.ChunkLocation) bool {
		for z := slabMin; z <= slabMax; z++ {
			locs = append(locs, coords.SlabLocation{Chunk: cl, Slab: z})
		}
		return true
	})
	return w.loader.RequestLoad(locs, priority)
}

// AssociatedBlockData returns arbitrary caller data attached to a world
// position (container contents, sign text, and similar), if any was set.
func (w *World) AssociatedBlockData(wp coords.WorldPosition) (interface{}, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.associated[wp]
	return v, ok
}

// SetAssociatedBlockData attaches (or, with a nil data, clears) arbitrary
// caller data to a world position.
func (w *World) SetAssociatedBlockData(wp coords.WorldPosition, data interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if data == nil {
		delete(w.associated, wp)
		return
	}
	w.associated[wp] = data
}

// Viewer returns a new WorldViewer over this store's chunks, with the
// given vertical slice window. The caller still must call SetCameraRange
// before the first Tick.
func (w *World) Viewer(sliceMin, sliceMax coords.SliceIndex) *viewer.WorldViewer {
	return viewer.New(viewerChunks{w: w}, sliceMin, sliceMax)
}
