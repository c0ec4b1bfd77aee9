package terrainsource

import (
	"context"
	"sync"

	"voxelworld/internal/coords"
	"voxelworld/internal/voxel"
)

// MemorySource serves slabs from a fixed in-memory map, installed up
// front by the caller. Used for tests and small hand-authored worlds; it
// never generates anything new, it only ever bails or returns what it was
// given. Grounded on original_source's MemoryTerrainSource, which is
// likewise a fixed lookup table with an optional world boundary.
type MemorySource struct {
	mu      sync.Mutex
	slabs   map[coords.SlabLocation]*voxel.Slab
	ground  map[[2]int32]coords.SliceIndex
	bounds  *coords.WorldPositionRange
	pending []BlockUpdate
}

// NewMemorySource returns an empty memory source. If bounds is non-nil,
// requests outside it are reported as out-of-bounds rather than bailed.
func NewMemorySource(bounds *coords.WorldPositionRange) *MemorySource {
	return &MemorySource{
		slabs:  make(map[coords.SlabLocation]*voxel.Slab),
		ground: make(map[[2]int32]coords.SliceIndex),
		bounds: bounds,
	}
}

// Put installs a slab to be returned by a future LoadSlab call.
func (m *MemorySource) Put(loc coords.SlabLocation, slab *voxel.Slab) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slabs[loc] = slab
}

// SetGroundLevel records the ground level reported at a world column.
func (m *MemorySource) SetGroundLevel(x, y int32, z coords.SliceIndex) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ground[[2]int32{x, y}] = z
}

// QueueBlockUpdate stages a patch for the next StealQueuedBlockUpdates.
func (m *MemorySource) QueueBlockUpdate(u BlockUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, u)
}

func (m *MemorySource) inBounds(loc coords.SlabLocation) bool {
	if m.bounds == nil {
		return true
	}
	wp := coords.ToWorldPosition(loc.Chunk, coords.BlockPosition{Z: coords.SliceIndex(int32(loc.Slab) * coords.SlabSize)})
	return m.bounds.Contains(wp)
}

func (m *MemorySource) LoadSlab(ctx context.Context, loc coords.SlabLocation) (*voxel.Slab, error) {
	if !m.inBounds(loc) {
		return nil, &SourceError{Loc: loc, Cause: ErrOutOfBounds}
	}

	m.mu.Lock()
	slab, ok := m.slabs[loc]
	m.mu.Unlock()
	if !ok {
		return nil, &SourceError{Loc: loc, Cause: ErrBailed}
	}
	return slab.Clone(), nil
}

func (m *MemorySource) FindGroundLevel(ctx context.Context, x, y int32) (coords.SliceIndex, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.ground[[2]int32{x, y}]
	return z, ok, nil
}

func (m *MemorySource) StealQueuedBlockUpdates(sink func(BlockUpdate)) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, u := range pending {
		sink(u)
	}
}
