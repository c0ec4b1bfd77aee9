package loader

import "voxelworld/internal/coords"

// BatchID identifies a user-submitted load request. IDs wrap modulo
// math.MaxUint16 so long-running worlds never overflow into a type
// change, matching the batch id semantics ported from the original
// implementation's loader.
type BatchID uint16

// Batch tracks the slabs belonging to one RequestLoad call until every one
// of them has reported a result.
type Batch struct {
	ID      BatchID
	pending map[coords.SlabLocation]bool
	total   int
}

func newBatch(id BatchID, locs []coords.SlabLocation) *Batch {
	b := &Batch{ID: id, pending: make(map[coords.SlabLocation]bool, len(locs)), total: len(locs)}
	for _, l := range locs {
		b.pending[l] = true
	}
	return b
}

// Remaining returns how many slabs in this batch haven't reported yet.
func (b *Batch) Remaining() int {
	return len(b.pending)
}

// Total returns how many slabs this batch was created with.
func (b *Batch) Total() int {
	return b.total
}

// BatchTracker allocates batch ids and tracks completion across concurrent
// batches, including ones that overlap in the slabs they cover (the same
// slab can belong to more than one in-flight batch).
type BatchTracker struct {
	next    BatchID
	batches map[BatchID]*Batch
}

// NewBatchTracker returns an empty tracker.
func NewBatchTracker() *BatchTracker {
	return &BatchTracker{batches: make(map[BatchID]*Batch)}
}

// Begin allocates a new batch id for the given set of slab locations.
func (t *BatchTracker) Begin(locs []coords.SlabLocation) BatchID {
	id := t.next
	t.next++ // wraps naturally: BatchID is uint16
	t.batches[id] = newBatch(id, locs)
	return id
}

// Report records that a slab belonging to id has produced a result.
// Returns true if this was the batch's last outstanding slab.
func (t *BatchTracker) Report(id BatchID, loc coords.SlabLocation) (completed bool) {
	b, ok := t.batches[id]
	if !ok {
		return false
	}
	delete(b.pending, loc)
	if len(b.pending) == 0 {
		delete(t.batches, id)
		return true
	}
	return false
}

// Cancel marks a batch cancelled by discarding it outright; any results
// that later arrive for its slabs are reported to Report as unknown
// batches and ignored, matching §5's batch-granularity cancellation.
func (t *BatchTracker) Cancel(id BatchID) {
	delete(t.batches, id)
}

// Pending reports how many batches are still outstanding.
func (t *BatchTracker) Pending() int {
	return len(t.batches)
}
