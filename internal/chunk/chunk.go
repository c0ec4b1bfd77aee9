// Package chunk groups the slabs of a single (cx, cy) column and tracks
// each loaded slab's navigation data (its areas and block graph) for the
// world graph maintainer.
package chunk

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/voxel"
)

// Navigation holds the last area-discovery result for one loaded slab.
type Navigation struct {
	Discovery *area.SlabDiscovery
}

// Chunk is a sparse vertical tower of slabs at a fixed (cx, cy): a column
// may have slabs only where terrain exists.
type Chunk struct {
	Location coords.ChunkLocation

	slabs map[coords.SlabIndex]*voxel.Slab
	nav   map[coords.SlabIndex]*Navigation

	// dirty tracks slabs that changed since the viewer's last tick.
	dirty bool
}

// New returns an empty chunk at the given location.
func New(loc coords.ChunkLocation) *Chunk {
	return &Chunk{
		Location: loc,
		slabs:    make(map[coords.SlabIndex]*voxel.Slab),
		nav:      make(map[coords.SlabIndex]*Navigation),
	}
}

// Slab returns the slab at the given index, or nil if that slab isn't
// currently loaded.
func (c *Chunk) Slab(idx coords.SlabIndex) *voxel.Slab {
	return c.slabs[idx]
}

// Navigation returns the last discovery result for a loaded slab, or nil.
func (c *Chunk) Navigation(idx coords.SlabIndex) *Navigation {
	return c.nav[idx]
}

// InstallSlab inserts or replaces a slab and its discovery output
// atomically, as required by the loader's finalize stage: a reader never
// observes a slab without its matching navigation data.
func (c *Chunk) InstallSlab(idx coords.SlabIndex, slab *voxel.Slab, disc *area.SlabDiscovery) {
	c.slabs[idx] = slab
	c.nav[idx] = &Navigation{Discovery: disc}
	c.dirty = true
}

// RemoveSlab drops a slab and its navigation data, e.g. on unload.
func (c *Chunk) RemoveSlab(idx coords.SlabIndex) {
	delete(c.slabs, idx)
	delete(c.nav, idx)
	c.dirty = true
}

// IsEmpty reports whether every slab has been unloaded; an empty chunk is
// eligible for removal from the world store.
func (c *Chunk) IsEmpty() bool {
	return len(c.slabs) == 0
}

// LoadedSlabIndices returns the indices of every currently-loaded slab, in
// ascending order.
func (c *Chunk) LoadedSlabIndices() []coords.SlabIndex {
	out := make([]coords.SlabIndex, 0, len(c.slabs))
	for idx := range c.slabs {
		out = append(out, idx)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Block looks up a block at a chunk-local position; absent slabs report
// air, matching the range-iteration contract in §4.1.
func (c *Chunk) Block(local coords.BlockPosition) voxel.Block {
	idx, x, y, z := coords.LocalBlockPosition(local)
	slab := c.slabs[idx]
	if slab == nil {
		return voxel.Block{}
	}
	return slab.Block(x, y, z)
}

// Dirty reports whether any slab has changed since the last ClearDirty.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// ClearDirty is called by the viewer once it has observed the dirty state.
func (c *Chunk) ClearDirty() {
	c.dirty = false
}
