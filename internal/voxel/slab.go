package voxel

import "voxelworld/internal/coords"

const blockCount = coords.SlabSize * coords.SlabSize * coords.SlabSize

// Slab is a dense SlabSize^3 grid of blocks, the unit of streaming. It is
// owned by exactly one chunk at steady state, but may exist outside any
// chunk while held by a background worker during loading.
type Slab struct {
	blocks [blockCount]Block
	dirty  bool
}

// NewSlab returns an all-air slab.
func NewSlab() *Slab {
	return &Slab{}
}

// Dirty reports whether this slab has been mutated since its last
// area-discovery pass.
func (s *Slab) Dirty() bool {
	return s.dirty
}

// MarkDirty flags the slab as needing re-discovery.
func (s *Slab) MarkDirty() {
	s.dirty = true
}

// ClearDirty is called once discovery has consumed the current block state.
func (s *Slab) ClearDirty() {
	s.dirty = false
}

func inBounds(x, y coords.BlockCoord, z coords.LocalSlice) bool {
	return x >= 0 && x < coords.ChunkSize &&
		y >= 0 && y < coords.ChunkSize &&
		z >= 0 && z < coords.SlabSize
}

// Block returns the block at the given local position. Out-of-range
// coordinates return the air sentinel.
func (s *Slab) Block(x, y coords.BlockCoord, z coords.LocalSlice) Block {
	if !inBounds(x, y, z) {
		return Block{}
	}
	return s.blocks[coords.LinearIndex(x, y, z)]
}

// SetBlock overwrites a single block's type, returning the previous type.
// Occlusion of same-slab neighbours is refreshed immediately; neighbours
// across a slab boundary are left untouched for the loader's finalize step.
func (s *Slab) SetBlock(x, y coords.BlockCoord, z coords.LocalSlice, t BlockType) BlockType {
	if !inBounds(x, y, z) {
		return Air
	}
	idx := coords.LinearIndex(x, y, z)
	prior := s.blocks[idx].Type
	if prior == t {
		return prior
	}
	s.blocks[idx] = Block{Type: t}
	s.dirty = true
	s.refreshOcclusionAround(x, y, z)
	return prior
}

// SetBlockRaw installs a fully-formed block as given, bypassing occlusion
// refresh and leaving the dirty flag untouched.
func (s *Slab) SetBlockRaw(x, y coords.BlockCoord, z coords.LocalSlice, b Block) {
	if !inBounds(x, y, z) {
		return
	}
	s.blocks[coords.LinearIndex(x, y, z)] = b
}

type neighborOffset struct {
	dx, dy, dz int
	face       Face
	opposite   Face
}

var neighborOffsets = [6]neighborOffset{
	{1, 0, 0, FacePosX, FaceNegX},
	{-1, 0, 0, FaceNegX, FacePosX},
	{0, 1, 0, FacePosY, FaceNegY},
	{0, -1, 0, FaceNegY, FacePosY},
	{0, 0, 1, FacePosZ, FaceNegZ},
	{0, 0, -1, FaceNegZ, FacePosZ},
}

// refreshOcclusionAround recomputes the occlusion bits of the changed block
// and of each same-slab neighbour that now faces it.
func (s *Slab) refreshOcclusionAround(x, y coords.BlockCoord, z coords.LocalSlice) {
	selfIdx := coords.LinearIndex(x, y, z)
	self := s.blocks[selfIdx]

	for _, off := range neighborOffsets {
		nx, ny, nz := x+coords.BlockCoord(off.dx), y+coords.BlockCoord(off.dy), z+coords.LocalSlice(off.dz)
		if !inBounds(nx, ny, nz) {
			continue
		}
		nIdx := coords.LinearIndex(nx, ny, nz)
		neighbor := s.blocks[nIdx]

		if BlocksFace(neighbor.Type) {
			self.Occlusion = self.Occlusion.Set(off.face)
		} else {
			self.Occlusion = self.Occlusion.Clear(off.face)
		}

		if BlocksFace(self.Type) {
			neighbor.Occlusion = neighbor.Occlusion.Set(off.opposite)
		} else {
			neighbor.Occlusion = neighbor.Occlusion.Clear(off.opposite)
		}
		s.blocks[nIdx] = neighbor
	}

	s.blocks[selfIdx] = self
}

// BlocksFace reports whether a block of this type fully occludes a face it
// shares with a neighbour (solid and not transparent).
func BlocksFace(t BlockType) bool {
	props := PropertiesOf(t)
	return props.Solid && !props.Transparent
}

// ForEachBlock invokes fn for every block in the slab in linear (z-major)
// order, passing its local position and current state.
func (s *Slab) ForEachBlock(fn func(x, y coords.BlockCoord, z coords.LocalSlice, b Block) bool) {
	for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
		for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
			for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
				if !fn(x, y, z, s.blocks[coords.LinearIndex(x, y, z)]) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of the slab suitable for handing to a worker
// while the live slab continues to be mutated by the simulation thread.
func (s *Slab) Clone() *Slab {
	clone := &Slab{dirty: s.dirty}
	clone.blocks = s.blocks
	return clone
}

// IsSolidAt reports whether the block at a local position occupies its full
// cell. Satisfies the area package's Slab interface.
func (s *Slab) IsSolidAt(x, y coords.BlockCoord, z coords.LocalSlice) bool {
	return s.Block(x, y, z).IsSolid()
}

// IsSolidTop reports whether the block at the top of this slab (z=SlabSize-1)
// is solid, used by the slab above when checking support for its floor.
func (s *Slab) IsSolidTop(x, y coords.BlockCoord) bool {
	return s.Block(x, y, coords.SlabSize-1).IsSolid()
}

// IsSolidBottom reports whether the block at the bottom of this slab (z=0)
// is solid, used by the slab below when checking jump clearance at its roof.
func (s *Slab) IsSolidBottom(x, y coords.BlockCoord) bool {
	return s.Block(x, y, 0).IsSolid()
}

// BottomSlice returns a copy of the blocks in the slab's lowest (z=0) layer.
func (s *Slab) BottomSlice() [coords.ChunkSize][coords.ChunkSize]Block {
	var out [coords.ChunkSize][coords.ChunkSize]Block
	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			out[y][x] = s.Block(x, y, 0)
		}
	}
	return out
}

// TopSlice returns a copy of the blocks in the slab's highest
// (z=SlabSize-1) layer.
func (s *Slab) TopSlice() [coords.ChunkSize][coords.ChunkSize]Block {
	var out [coords.ChunkSize][coords.ChunkSize]Block
	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			out[y][x] = s.Block(x, y, coords.SlabSize-1)
		}
	}
	return out
}
