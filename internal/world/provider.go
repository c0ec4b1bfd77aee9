package world

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/viewer"

	"voxelworld/internal/chunk"
)

// Chunk satisfies pathfind.ChunkProvider: a read-only lookup of a loaded
// chunk by location, taken under a brief read lock per call so the
// pathfinder never has to reason about World's locking.
func (w *World) Chunk(loc coords.ChunkLocation) (*chunk.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[loc]
	return c, ok
}

// Get satisfies graph.Provider: hands the graph maintainer a neighboring
// slab's blocks and last discovery, if loaded. Called only from within
// finalize/rediscoverSlab, which already hold w.mu, so this must not lock.
func (w *World) Get(loc coords.SlabLocation) (area.Slab, *area.SlabDiscovery, bool) {
	c, ok := w.chunks[loc.Chunk]
	if !ok {
		return nil, nil, false
	}
	slab := c.Slab(loc.Slab)
	if slab == nil {
		return nil, nil, false
	}
	nav := c.Navigation(loc.Slab)
	if nav == nil || nav.Discovery == nil {
		return nil, nil, false
	}
	return slab, nav.Discovery, true
}

// Neighbors satisfies loader.NeighborLookup: called from worker goroutines
// concurrently with everything else, so it takes its own read lock. The
// returned slabs are clones taken under that lock, not the live objects —
// World.finalize and friends mutate slabs in place under the write lock,
// and a worker must never read through a pointer that can change under it.
func (w *World) Neighbors(loc coords.SlabLocation) (below, above area.Slab) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[loc.Chunk]
	if !ok {
		return nil, nil
	}
	if s := c.Slab(loc.Slab - 1); s != nil {
		below = s.Clone()
	}
	if s := c.Slab(loc.Slab + 1); s != nil {
		above = s.Clone()
	}
	return below, above
}

// viewerChunks adapts World's chunk map to viewer.ChunkProvider, whose
// Chunk method returns the viewer's own narrow interface rather than the
// concrete *chunk.Chunk that pathfind.ChunkProvider expects.
type viewerChunks struct {
	w *World
}

func (v viewerChunks) Chunk(loc coords.ChunkLocation) (viewer.Chunk, bool) {
	v.w.mu.RLock()
	defer v.w.mu.RUnlock()
	c, ok := v.w.chunks[loc]
	if !ok {
		return nil, false
	}
	return c, true
}
