package loader

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/voxel"
)

// EventKind distinguishes the three load-event shapes a caller can observe.
type EventKind uint8

const (
	EventSlabLoaded EventKind = iota
	EventBatchComplete
	EventSlabFailed
)

// Event is one entry from PollLoadEvents: a slab finished loading, a batch
// finished entirely, or a slab failed to load.
type Event struct {
	Kind  EventKind
	Loc   coords.SlabLocation
	Batch BatchID
	Err   error
}

// Result is what a worker produces for one slab job: the loaded slab and
// its area discovery, or an error. The world package's finalizer consumes
// these to install slabs, fix up cross-slab occlusion, and update the
// world graph; it then reports the outcome back via ReportSuccess /
// ReportFailure so the loader can track batch completion and surface a
// public Event.
type Result struct {
	Loc       coords.SlabLocation
	BatchID   BatchID
	Slab      *voxel.Slab
	Discovery *area.SlabDiscovery
	Err       error
}
