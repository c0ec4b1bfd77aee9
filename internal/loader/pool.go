package loader

import (
	"context"
	"fmt"

	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/terrainsource"
)

// NeighborLookup hands a worker the already-loaded below/above slabs for a
// slab it is about to discover areas for, taking whatever short read lock
// the owning world store needs internally. Either return value is nil when
// that neighbor isn't loaded yet; discovery treats a nil neighbor as
// "unknown", matching §4.3's deferred-occlusion rule.
type NeighborLookup interface {
	Neighbors(loc coords.SlabLocation) (below, above area.Slab)
}

// worker pulls requests off jobs until ctx is cancelled, loads terrain
// through source, runs area discovery against a neighbor snapshot, and
// publishes a Result. Panics inside a single job are recovered and
// reported as a failed Result rather than taking the whole pool down, the
// same discipline the teacher's noise-generation worker pool applies to a
// single bad column.
func worker(ctx context.Context, source terrainsource.Source, neighbors NeighborLookup, jobs <-chan request, results chan<- Result) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-jobs:
			res := runJob(ctx, source, neighbors, req)
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func runJob(ctx context.Context, source terrainsource.Source, neighbors NeighborLookup, req request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Loc: req.loc, BatchID: req.batch, Err: fmt.Errorf("loader: worker panic loading %v: %v", req.loc, r)}
		}
	}()

	slab, err := source.LoadSlab(ctx, req.loc)
	if err != nil {
		return Result{Loc: req.loc, BatchID: req.batch, Err: err}
	}

	var below, above area.Slab
	if neighbors != nil {
		below, above = neighbors.Neighbors(req.loc)
	}
	disc := area.Discover(slab, below, above)

	return Result{Loc: req.loc, BatchID: req.batch, Slab: slab, Discovery: disc}
}
