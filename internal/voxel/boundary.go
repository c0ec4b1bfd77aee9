package voxel

import "voxelworld/internal/coords"

// FixVerticalBoundary resolves occlusion across the seam between a slab and
// the slab directly above it: lower's top layer (z=SlabSize-1) faces
// upper's bottom layer (z=0). Same-slab mutation refreshes occlusion
// immediately (see SetBlock); a cross-slab neighbour only becomes known
// once both slabs are loaded, so the loader's finalize step calls this once
// per newly-loaded slab against whichever vertical neighbour is present.
func FixVerticalBoundary(lower, upper *Slab) {
	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			lowIdx := coords.LinearIndex(x, y, coords.SlabSize-1)
			highIdx := coords.LinearIndex(x, y, 0)
			low := lower.blocks[lowIdx]
			high := upper.blocks[highIdx]

			if BlocksFace(high.Type) {
				low.Occlusion = low.Occlusion.Set(FacePosZ)
			} else {
				low.Occlusion = low.Occlusion.Clear(FacePosZ)
			}
			if BlocksFace(low.Type) {
				high.Occlusion = high.Occlusion.Set(FaceNegZ)
			} else {
				high.Occlusion = high.Occlusion.Clear(FaceNegZ)
			}

			lower.blocks[lowIdx] = low
			upper.blocks[highIdx] = high
		}
	}
}

// FixHorizontalBoundaryX resolves occlusion across the seam between a slab
// and its +X neighbour: neg's x=ChunkSize-1 column faces pos's x=0 column.
func FixHorizontalBoundaryX(neg, pos *Slab) {
	for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
		for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
			negIdx := coords.LinearIndex(coords.ChunkSize-1, y, z)
			posIdx := coords.LinearIndex(0, y, z)
			fixPair(neg, pos, negIdx, posIdx, FacePosX, FaceNegX)
		}
	}
}

// FixHorizontalBoundaryY resolves occlusion across the seam between a slab
// and its +Y neighbour: neg's y=ChunkSize-1 row faces pos's y=0 row.
func FixHorizontalBoundaryY(neg, pos *Slab) {
	for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			negIdx := coords.LinearIndex(x, coords.ChunkSize-1, z)
			posIdx := coords.LinearIndex(x, 0, z)
			fixPair(neg, pos, negIdx, posIdx, FacePosY, FaceNegY)
		}
	}
}

func fixPair(neg, pos *Slab, negIdx, posIdx int, negFace, posFace Face) {
	n := neg.blocks[negIdx]
	p := pos.blocks[posIdx]

	if BlocksFace(p.Type) {
		n.Occlusion = n.Occlusion.Set(negFace)
	} else {
		n.Occlusion = n.Occlusion.Clear(negFace)
	}
	if BlocksFace(n.Type) {
		p.Occlusion = p.Occlusion.Set(posFace)
	} else {
		p.Occlusion = p.Occlusion.Clear(posFace)
	}

	neg.blocks[negIdx] = n
	pos.blocks[posIdx] = p
}
