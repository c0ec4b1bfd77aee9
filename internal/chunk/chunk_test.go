package chunk

import (
	"testing"

	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/voxel"
)

func TestInstallSlabMakesBlockAndNavigationVisibleTogether(t *testing.T) {
	c := New(coords.ChunkLocation{X: 0, Y: 0})
	slab := voxel.NewSlab()
	slab.SetBlock(1, 1, 1, voxel.Stone)
	disc := area.Discover(slab, nil, nil)

	c.InstallSlab(0, slab, disc)

	if c.Slab(0) == nil {
		t.Fatal("expected slab to be installed")
	}
	if c.Navigation(0) == nil {
		t.Fatal("expected navigation data to be installed alongside the slab")
	}

	got := c.Block(coords.BlockPosition{X: 1, Y: 1, Z: 1})
	if got.Type != voxel.Stone {
		t.Fatalf("block type = %v, want Stone", got.Type)
	}
}

func TestBlockInUnloadedSlabReturnsAir(t *testing.T) {
	c := New(coords.ChunkLocation{X: 0, Y: 0})
	got := c.Block(coords.BlockPosition{X: 0, Y: 0, Z: 0})
	if got.Type != voxel.Air {
		t.Fatalf("expected air in unloaded slab, got %v", got.Type)
	}
}

func TestRemoveSlabMakesChunkEmpty(t *testing.T) {
	c := New(coords.ChunkLocation{X: 0, Y: 0})
	c.InstallSlab(0, voxel.NewSlab(), area.Discover(voxel.NewSlab(), nil, nil))
	if c.IsEmpty() {
		t.Fatal("chunk with one slab should not be empty")
	}
	c.RemoveSlab(0)
	if !c.IsEmpty() {
		t.Fatal("chunk should be empty after removing its only slab")
	}
}

func TestLoadedSlabIndicesAreSorted(t *testing.T) {
	c := New(coords.ChunkLocation{X: 0, Y: 0})
	for _, idx := range []coords.SlabIndex{3, -1, 0, 2} {
		c.InstallSlab(idx, voxel.NewSlab(), nil)
	}
	got := c.LoadedSlabIndices()
	want := []coords.SlabIndex{-1, 0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
