package voxel

import (
	"testing"

	"voxelworld/internal/coords"
)

func TestSetBlockReturnsPriorType(t *testing.T) {
	s := NewSlab()
	prior := s.SetBlock(1, 1, 1, Stone)
	if prior != Air {
		t.Fatalf("prior = %v, want Air", prior)
	}
	prior = s.SetBlock(1, 1, 1, Dirt)
	if prior != Stone {
		t.Fatalf("prior = %v, want Stone", prior)
	}
}

func TestOcclusionUpdatesImmediatelyWithinSlab(t *testing.T) {
	s := NewSlab()
	s.SetBlock(5, 5, 5, Stone)
	s.SetBlock(6, 5, 5, Stone)

	a := s.Block(5, 5, 5)
	b := s.Block(6, 5, 5)

	if !a.Occlusion.IsOccluded(FacePosX) {
		t.Error("block a should have its +x face occluded by block b")
	}
	if !b.Occlusion.IsOccluded(FaceNegX) {
		t.Error("block b should have its -x face occluded by block a")
	}
}

func TestRemovingNeighborClearsOcclusion(t *testing.T) {
	s := NewSlab()
	s.SetBlock(5, 5, 5, Stone)
	s.SetBlock(6, 5, 5, Stone)
	s.SetBlock(6, 5, 5, Air)

	a := s.Block(5, 5, 5)
	if a.Occlusion.IsOccluded(FacePosX) {
		t.Error("occlusion should clear once the neighbor is removed")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSlab()
	s.SetBlock(0, 0, 0, Stone)

	clone := s.Clone()
	clone.SetBlock(0, 0, 0, Dirt)

	if s.Block(0, 0, 0).Type != Stone {
		t.Fatalf("mutating clone affected original: %v", s.Block(0, 0, 0).Type)
	}
	if clone.Block(0, 0, 0).Type != Dirt {
		t.Fatalf("clone did not retain its own mutation")
	}
}

func TestSetBlockMarksDirtyOnlyOnChange(t *testing.T) {
	s := NewSlab()
	s.ClearDirty()
	s.SetBlock(0, 0, 0, Air) // no-op, already air
	if s.Dirty() {
		t.Fatal("no-op set should not mark slab dirty")
	}
	s.SetBlock(0, 0, 0, Stone)
	if !s.Dirty() {
		t.Fatal("changing a block should mark the slab dirty")
	}
}

func TestForEachBlockCoversEveryCell(t *testing.T) {
	s := NewSlab()
	count := 0
	s.ForEachBlock(func(x, y coords.BlockCoord, z coords.LocalSlice, b Block) bool {
		count++
		return true
	})
	want := coords.ChunkSize * coords.ChunkSize * coords.SlabSize
	if count != want {
		t.Fatalf("visited %d blocks, want %d", count, want)
	}
}
