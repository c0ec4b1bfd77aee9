package coords

import "testing"

func TestSplitRoundTrip(t *testing.T) {
	cases := []WorldPosition{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: -1, Z: -1},
		{X: -17, Y: 5, Z: -33},
		{X: 31, Y: -31, Z: 1},
	}

	for _, wp := range cases {
		chunkLoc, _, local := wp.Split()
		got := ToWorldPosition(chunkLoc, local)
		if got != wp {
			t.Fatalf("round trip %+v -> %+v", wp, got)
		}
	}
}

func TestNegativeBlockCoordMapsToChunkMinusOne(t *testing.T) {
	wp := WorldPosition{X: -1, Y: 0, Z: 0}
	chunkLoc, _, local := wp.Split()
	if chunkLoc.X != -1 {
		t.Fatalf("expected chunk x -1, got %d", chunkLoc.X)
	}
	if local.X != ChunkSize-1 {
		t.Fatalf("expected block coord %d, got %d", ChunkSize-1, local.X)
	}
}

func TestSliceWrapsAcrossSlabBoundary(t *testing.T) {
	tests := []struct {
		z           SliceIndex
		wantSlab    SlabIndex
		wantLocal   LocalSlice
		description string
	}{
		{0, 0, 0, "slab 0 start"},
		{SlabSize - 1, 0, SlabSize - 1, "slab 0 end"},
		{SlabSize, 1, 0, "slab 1 start"},
		{-1, -1, SlabSize - 1, "one below zero"},
		{-SlabSize, -1, 0, "slab -1 start"},
		{-SlabSize - 1, -2, SlabSize - 1, "slab -2 end"},
	}

	for _, tt := range tests {
		gotSlab := ToSlabIndex(tt.z)
		gotLocal := ToLocalSlice(tt.z)
		if gotSlab != tt.wantSlab || gotLocal != tt.wantLocal {
			t.Errorf("%s: ToSlabIndex(%d)=%d ToLocalSlice(%d)=%d, want slab=%d local=%d",
				tt.description, tt.z, gotSlab, tt.z, gotLocal, tt.wantSlab, tt.wantLocal)
		}
	}
}

func TestWorldPositionRangeVolumeMatchesIteration(t *testing.T) {
	r := NewWorldPositionRange(
		WorldPosition{X: 0, Y: 0, Z: 0},
		WorldPosition{X: 15, Y: 15, Z: 1},
	)
	if got, want := r.Volume(), int64(16*16*2); got != want {
		t.Fatalf("volume = %d, want %d", got, want)
	}
}

func TestChunksOverlappingCoversBoundary(t *testing.T) {
	r := NewWorldPositionRange(
		WorldPosition{X: 15, Y: 0, Z: 0},
		WorldPosition{X: 16, Y: 0, Z: 0},
	)
	chunks := r.ChunksOverlapping()
	if chunks.Min.X != 0 || chunks.Max.X != 1 {
		t.Fatalf("expected chunk range [0,1], got [%d,%d]", chunks.Min.X, chunks.Max.X)
	}
}

func TestLinearIndexIsDenseAndUnique(t *testing.T) {
	seen := make(map[int]bool)
	for z := LocalSlice(0); z < SlabSize; z++ {
		for y := BlockCoord(0); y < ChunkSize; y++ {
			for x := BlockCoord(0); x < ChunkSize; x++ {
				idx := LinearIndex(x, y, z)
				if idx < 0 || idx >= SlabSize*SlabSize*SlabSize {
					t.Fatalf("index %d out of range for (%d,%d,%d)", idx, x, y, z)
				}
				if seen[idx] {
					t.Fatalf("duplicate index %d", idx)
				}
				seen[idx] = true
			}
		}
	}
}
