package loader

import (
	"context"
	"testing"
	"time"

	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/terrainsource"
	"voxelworld/internal/voxel"
)

type noNeighbors struct{}

func (noNeighbors) Neighbors(coords.SlabLocation) (area.Slab, area.Slab) { return nil, nil }

func drainOne(t *testing.T, l *Loader) Result {
	t.Helper()
	select {
	case r := <-l.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a result")
		return Result{}
	}
}

func TestRequestLoadProducesAResultPerSlab(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	src.Put(loc, emptySlab())

	l := NewLoader(context.Background(), src, noNeighbors{}, DefaultConfig(2))
	defer l.Close()

	id, err := l.RequestLoad([]coords.SlabLocation{loc}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := drainOne(t, l)
	if res.Err != nil {
		t.Fatalf("unexpected job error: %v", res.Err)
	}
	if res.Loc != loc || res.BatchID != id {
		t.Fatalf("unexpected result %+v for batch %d", res, id)
	}

	events := l.ReportSuccess(res)
	if len(events) != 2 || events[0].Kind != EventSlabLoaded || events[1].Kind != EventBatchComplete {
		t.Fatalf("expected loaded+complete events, got %+v", events)
	}
}

func TestDuplicateRequestsAreDeduped(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 1, Y: 1}, Slab: 0}
	src.Put(loc, emptySlab())

	l := NewLoader(context.Background(), src, noNeighbors{}, DefaultConfig(1))
	defer l.Close()

	if _, err := l.RequestLoad([]coords.SlabLocation{loc}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second request for the same slab, before the first has resolved,
	// should be folded in rather than double counted.
	id2, err := l.RequestLoad([]coords.SlabLocation{loc}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := drainOne(t, l)
	events := l.ReportSuccess(res)
	for _, e := range events {
		if e.Kind == EventBatchComplete && e.Batch == id2 {
			t.Fatal("second batch should not have any slabs left to complete, the slab belonged to the first batch")
		}
	}
}

func TestRequestLoadFailsWhenQueueIsFull(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	l := NewLoader(context.Background(), src, noNeighbors{}, Config{Workers: 0, MaxQueueDepth: 1, ResultCapacity: 4})
	defer l.Close()

	locA := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	locB := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 1}

	if _, err := l.RequestLoad([]coords.SlabLocation{locA}, 0); err != nil {
		t.Fatalf("unexpected error on first request: %v", err)
	}
	if _, err := l.RequestLoad([]coords.SlabLocation{locB}, 0); err == nil {
		t.Fatal("expected the queue to report busy once at capacity")
	}
}

func TestFailedLoadReportsSlabFailedEvent(t *testing.T) {
	bounds := coords.NewWorldPositionRange(
		coords.WorldPosition{X: 0, Y: 0, Z: 0},
		coords.WorldPosition{X: 15, Y: 15, Z: 15},
	)
	src := terrainsource.NewMemorySource(&bounds)
	l := NewLoader(context.Background(), src, noNeighbors{}, DefaultConfig(1))
	defer l.Close()

	outOfBounds := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 50, Y: 50}, Slab: 0}
	if _, err := l.RequestLoad([]coords.SlabLocation{outOfBounds}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := drainOne(t, l)
	if res.Err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
	events := l.ReportFailure(res)
	if len(events) != 2 || events[0].Kind != EventSlabFailed {
		t.Fatalf("expected failed+complete events, got %+v", events)
	}
}

func emptySlab() *voxel.Slab { return voxel.NewSlab() }
