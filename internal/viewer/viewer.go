// Package viewer implements the renderer-facing window into the world: a
// vertical slice range plus a horizontal chunk range (the camera's
// footprint), ticked once per frame to report which chunks in view have
// changed since the last tick so the renderer knows which meshes to
// regenerate. Mesh generation itself is the renderer's job, not this
// package's.
package viewer

import "voxelworld/internal/coords"

// Chunk is the narrow view a WorldViewer needs of a loaded chunk.
type Chunk interface {
	Dirty() bool
	ClearDirty()
}

// ChunkProvider looks up a loaded chunk by location, reporting false for
// chunks that aren't currently loaded (never an error: an unloaded chunk
// just isn't dirty).
type ChunkProvider interface {
	Chunk(loc coords.ChunkLocation) (Chunk, bool)
}

// WorldViewer holds a camera's view into the world: a vertical slice
// window and a horizontal chunk window.
type WorldViewer struct {
	chunks     ChunkProvider
	SliceMin   coords.SliceIndex
	SliceMax   coords.SliceIndex
	ChunkRange coords.ChunkLocationRange
}

// New returns a viewer over the given slice window; the chunk range starts
// empty until SetCameraRange is called.
func New(chunks ChunkProvider, sliceMin, sliceMax coords.SliceIndex) *WorldViewer {
	return &WorldViewer{
		chunks: chunks, SliceMin: sliceMin, SliceMax: sliceMax,
		// Max below Min: ForEach visits no chunk.
		ChunkRange: coords.ChunkLocationRange{Max: coords.ChunkLocation{X: -1, Y: -1}},
	}
}

// SetCameraRange updates the horizontal chunk window, typically recomputed
// once per frame from the camera's position and view distance.
func (v *WorldViewer) SetCameraRange(r coords.ChunkLocationRange) {
	v.ChunkRange = r
}

// Tick enumerates every loaded chunk overlapping the current window and
// returns the ones marked dirty since the last Tick call, clearing their
// dirty flag as it goes.
func (v *WorldViewer) Tick() []coords.ChunkLocation {
	var dirty []coords.ChunkLocation
	v.ChunkRange.ForEach(func(loc coords.ChunkLocation) bool {
		c, ok := v.chunks.Chunk(loc)
		if ok && c.Dirty() {
			dirty = append(dirty, loc)
			c.ClearDirty()
		}
		return true
	})
	return dirty
}
