// Package terrainsource defines the TerrainSource capability the world
// consumes to populate slabs on demand, plus two concrete
// implementations: a fixed in-memory source for tests and small worlds,
// and a Perlin-noise generator for open-ended terrain.
package terrainsource

import (
	"context"
	"errors"
	"fmt"

	"voxelworld/internal/coords"
	"voxelworld/internal/voxel"
)

// ErrBailed means the source declined to produce a slab (e.g. it was
// asked for a location outside data it has any opinion about).
var ErrBailed = errors.New("terrain source bailed")

// ErrOutOfBounds means the location falls outside the source's declared
// world boundary.
var ErrOutOfBounds = errors.New("terrain source: location out of bounds")

// SourceError wraps a generation failure with the slab location it
// concerns, matching §7's SourceError{bailed|out_of_bounds|generation_failed}.
type SourceError struct {
	Loc   coords.SlabLocation
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("terrain source: %s: %v", e.Loc, e.Cause)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// BlockUpdate is a single queued patch the source wants applied, surfaced
// through StealQueuedBlockUpdates (e.g. structure placement feeding back
// into the world independent of a player-issued terrain update).
type BlockUpdate struct {
	Position coords.WorldPosition
	Type     voxel.BlockType
}

// Source is the capability the world's loader calls into. Implementations
// must be safe for concurrent use: the loader's worker pool calls LoadSlab
// from multiple goroutines.
type Source interface {
	// LoadSlab produces the contents of one slab. ctx may be cancelled if
	// the request is abandoned; implementations should check it for
	// long-running generation.
	LoadSlab(ctx context.Context, loc coords.SlabLocation) (*voxel.Slab, error)

	// FindGroundLevel returns the topmost solid slice at a world x/y
	// column, if the source has an opinion (false otherwise).
	FindGroundLevel(ctx context.Context, x, y int32) (coords.SliceIndex, bool, error)

	// StealQueuedBlockUpdates drains any pending source-generated patches
	// into sink and clears them.
	StealQueuedBlockUpdates(sink func(BlockUpdate))
}
