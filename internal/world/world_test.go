package world

import (
	"context"
	"testing"
	"time"

	"voxelworld/internal/config"
	"voxelworld/internal/coords"
	"voxelworld/internal/loader"
	"voxelworld/internal/pathfind"
	"voxelworld/internal/terrainsource"
	"voxelworld/internal/voxel"
)

func newTestWorld(t *testing.T, src *terrainsource.MemorySource) *World {
	t.Helper()
	w := New(context.Background(), src, config.Default(), nil)
	t.Cleanup(w.Close)
	return w
}

func flatFloorSlab() *voxel.Slab {
	s := voxel.NewSlab()
	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			s.SetBlock(x, y, 0, voxel.Stone)
		}
	}
	return s
}

// bridgeSlab is a single-block-wide walkable strip at y=7, the rest of the
// slab left floorless.
func bridgeSlab() *voxel.Slab {
	s := voxel.NewSlab()
	for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
		s.SetBlock(x, 7, 0, voxel.Stone)
	}
	return s
}

// waitForLoaded ticks the world until at least n EventSlabLoaded have been
// observed, returning every event seen along the way.
func waitForLoaded(t *testing.T, w *World, n int) []loader.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var all []loader.Event
	loaded := 0
	for loaded < n {
		for _, e := range w.Tick() {
			all = append(all, e)
			if e.Kind == loader.EventSlabLoaded {
				loaded++
			}
		}
		if loaded >= n {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d loaded slabs, saw %d", n, loaded)
		}
		time.Sleep(time.Millisecond)
	}
	return all
}

func TestWorldFindPathFlatSingleChunkTrivial(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	src.Put(loc, flatFloorSlab())

	w := newTestWorld(t, src)
	rng := coords.ChunkLocationRange{Min: loc.Chunk, Max: loc.Chunk}
	if _, err := w.RequestLoad(rng, 0, 0, 0); err != nil {
		t.Fatalf("request load: %v", err)
	}
	waitForLoaded(t, w, 1)

	from := coords.WorldPosition{X: 0, Y: 0, Z: 1}
	goal := pathfind.SearchGoal{Kind: pathfind.Arrive, Target: coords.WorldPosition{X: 15, Y: 15, Z: 1}}
	path, err := w.FindPathDefault(from, goal)
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if len(path.Steps) != 30 {
		t.Fatalf("expected 30 steps, got %d", len(path.Steps))
	}
	if path.Cost != 30.0 {
		t.Fatalf("expected cost 30.0, got %v", path.Cost)
	}
}

func TestWorldTerrainUpdateInvalidatesPath(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	src.Put(loc, flatFloorSlab())

	w := newTestWorld(t, src)
	rng := coords.ChunkLocationRange{Min: loc.Chunk, Max: loc.Chunk}
	if _, err := w.RequestLoad(rng, 0, 0, 0); err != nil {
		t.Fatalf("request load: %v", err)
	}
	waitForLoaded(t, w, 1)

	from := coords.WorldPosition{X: 0, Y: 0, Z: 1}
	goal := pathfind.SearchGoal{Kind: pathfind.Arrive, Target: coords.WorldPosition{X: 15, Y: 0, Z: 1}}
	if _, err := w.FindPathDefault(from, goal); err != nil {
		t.Fatalf("expected a path before the terrain update: %v", err)
	}

	// Carve a full-width trench at x=7, removing the floor's support so the
	// strip either side can no longer be crossed by a plain step.
	trench := coords.NewWorldPositionRange(
		coords.WorldPosition{X: 7, Y: 0, Z: 0},
		coords.WorldPosition{X: 7, Y: 15, Z: 0},
	)
	w.SetTerrain(trench, voxel.Air)
	w.Tick()

	if _, err := w.FindPathDefault(from, goal); err == nil {
		t.Fatal("expected the path to be invalidated by the terrain update")
	}
}

func TestWorldLoadRequestsDedupOverlappingBatches(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	locA := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	locB := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 1, Y: 0}, Slab: 0}
	src.Put(locA, flatFloorSlab())
	src.Put(locB, flatFloorSlab())

	w := newTestWorld(t, src)

	rangeA := coords.ChunkLocationRange{Min: locA.Chunk, Max: locA.Chunk}
	rangeUnion := coords.ChunkLocationRange{Min: locA.Chunk, Max: locB.Chunk}

	if _, err := w.RequestLoad(rangeA, 0, 0, 0); err != nil {
		t.Fatalf("request load A: %v", err)
	}
	if _, err := w.RequestLoad(rangeUnion, 0, 0, 5); err != nil {
		t.Fatalf("request load union: %v", err)
	}

	events := waitForLoaded(t, w, 2)

	seen := make(map[coords.SlabLocation]int)
	for _, e := range events {
		if e.Kind == loader.EventSlabLoaded {
			seen[e.Loc]++
		}
	}
	if len(seen) != 2 {
		t.Fatalf("expected exactly 2 distinct slabs loaded, got %v", seen)
	}
	for loc, count := range seen {
		if count != 1 {
			t.Fatalf("slab %s reported loaded %d times, want exactly once", loc, count)
		}
	}
}

func TestWorldIsAccessibleRespectsFootprintWidth(t *testing.T) {
	src := terrainsource.NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	src.Put(loc, bridgeSlab())

	w := newTestWorld(t, src)
	rng := coords.ChunkLocationRange{Min: loc.Chunk, Max: loc.Chunk}
	if _, err := w.RequestLoad(rng, 0, 0, 0); err != nil {
		t.Fatalf("request load: %v", err)
	}
	waitForLoaded(t, w, 1)

	req := pathfind.NavRequirement{Width: 1, Height: 2, StepHeight: 1}

	wide := coords.WorldPointRange{MinX: 7.6, MaxX: 8.4, MinY: 6.7, MaxY: 8.3}
	if w.IsAccessible(wide, req) {
		t.Fatal("a 1.6-wide footprint should not fit on a 1-block-wide bridge")
	}

	narrow := coords.WorldPointRange{MinX: 7.6, MaxX: 8.4, MinY: 7.1, MaxY: 7.9}
	if !w.IsAccessible(narrow, req) {
		t.Fatal("a 0.8-wide footprint should fit on a 1-block-wide bridge")
	}
}
