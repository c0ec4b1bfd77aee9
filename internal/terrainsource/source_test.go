package terrainsource

import (
	"context"
	"errors"
	"testing"

	"voxelworld/internal/coords"
	"voxelworld/internal/voxel"
)

func TestMemorySourceBailsWhenSlabNotInstalled(t *testing.T) {
	src := NewMemorySource(nil)
	_, err := src.LoadSlab(context.Background(), coords.SlabLocation{})
	var serr *SourceError
	if !errors.As(err, &serr) || !errors.Is(err, ErrBailed) {
		t.Fatalf("expected bailed error, got %v", err)
	}
}

func TestMemorySourceOutOfBounds(t *testing.T) {
	bounds := coords.NewWorldPositionRange(
		coords.WorldPosition{X: 0, Y: 0, Z: 0},
		coords.WorldPosition{X: 15, Y: 15, Z: 15},
	)
	src := NewMemorySource(&bounds)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 5, Y: 5}, Slab: 0}
	_, err := src.LoadSlab(context.Background(), loc)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}

func TestMemorySourceReturnsIndependentClone(t *testing.T) {
	src := NewMemorySource(nil)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}
	base := voxel.NewSlab()
	base.SetBlock(0, 0, 0, voxel.Stone)
	src.Put(loc, base)

	got, err := src.LoadSlab(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got.SetBlock(0, 0, 0, voxel.Dirt)
	if base.Block(0, 0, 0).Type != voxel.Stone {
		t.Fatal("mutating the loaded clone affected the stored slab")
	}
}

func TestMemorySourceStealsQueuedUpdates(t *testing.T) {
	src := NewMemorySource(nil)
	src.QueueBlockUpdate(BlockUpdate{Position: coords.WorldPosition{X: 1, Y: 2, Z: 3}, Type: voxel.Sand})

	var got []BlockUpdate
	src.StealQueuedBlockUpdates(func(u BlockUpdate) { got = append(got, u) })

	if len(got) != 1 || got[0].Type != voxel.Sand {
		t.Fatalf("got %v", got)
	}

	var second []BlockUpdate
	src.StealQueuedBlockUpdates(func(u BlockUpdate) { second = append(second, u) })
	if len(second) != 0 {
		t.Fatal("updates should be drained, not repeated")
	}
}

func TestNoiseSourceProducesDeterministicHeightPerColumn(t *testing.T) {
	src := NewNoiseSource(DefaultNoiseConfig())
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}

	a, err := src.LoadSlab(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	z1, _, _ := src.FindGroundLevel(context.Background(), 0, 0)
	z2, _, _ := src.FindGroundLevel(context.Background(), 0, 0)
	if z1 != z2 {
		t.Fatalf("ground level not deterministic: %d vs %d", z1, z2)
	}
	_ = a
}

func TestNoiseSourceFillsBelowGroundAsSolid(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Amplitude = 0 // flatten for a deterministic test
	src := NewNoiseSource(cfg)
	loc := coords.SlabLocation{Chunk: coords.ChunkLocation{X: 0, Y: 0}, Slab: 0}

	slab, err := src.LoadSlab(context.Background(), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slab.Block(0, 0, 0).IsSolid() {
		t.Fatal("expected solid stone at the bottom of a flattened column")
	}
}
