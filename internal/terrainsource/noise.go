package terrainsource

import (
	"context"
	"sync"

	"github.com/aquilax/go-perlin"

	"voxelworld/internal/coords"
	"voxelworld/internal/voxel"
)

// NoiseConfig parameterizes the Perlin heightmap, mirroring the knobs the
// teacher's own worker-pool noise generator exposed (persistence,
// lacunarity, octave count, seed), just fed through go-perlin instead of a
// hand-rolled hashed value-noise function.
type NoiseConfig struct {
	Persistence float64
	Lacunarity  float64
	Octaves     int32
	Seed        int64
	Amplitude   float64
	BaseHeight  coords.SliceIndex
}

// DefaultNoiseConfig matches the values the teacher's noise generator used
// for its default terrain profile.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Persistence: 0.5,
		Lacunarity:  2.0,
		Octaves:     3,
		Seed:        1,
		Amplitude:   24,
		BaseHeight:  32,
	}
}

// NoiseSource generates slabs from a Perlin heightmap: solid stone below
// the computed ground height, a dirt/grass cap at the surface, air above.
// Column heights are memoized so that loading multiple slabs in the same
// (x,y) column — which happens constantly, since a column is many slabs
// tall — doesn't recompute the noise function per slab.
type NoiseSource struct {
	cfg    NoiseConfig
	perlin *perlin.Perlin

	mu      sync.Mutex
	heights map[[2]int32]coords.SliceIndex
}

// NewNoiseSource builds a source from the given configuration.
func NewNoiseSource(cfg NoiseConfig) *NoiseSource {
	return &NoiseSource{
		cfg:     cfg,
		perlin:  perlin.NewPerlin(cfg.Persistence, cfg.Lacunarity, cfg.Octaves, cfg.Seed),
		heights: make(map[[2]int32]coords.SliceIndex),
	}
}

func (n *NoiseSource) heightAt(x, y int32) coords.SliceIndex {
	key := [2]int32{x, y}

	n.mu.Lock()
	if z, ok := n.heights[key]; ok {
		n.mu.Unlock()
		return z
	}
	n.mu.Unlock()

	noise := n.perlin.Noise2D(float64(x)/64.0, float64(y)/64.0)
	z := n.cfg.BaseHeight + coords.SliceIndex(noise*n.cfg.Amplitude)

	n.mu.Lock()
	n.heights[key] = z
	n.mu.Unlock()

	return z
}

func (n *NoiseSource) LoadSlab(ctx context.Context, loc coords.SlabLocation) (*voxel.Slab, error) {
	slab := voxel.NewSlab()
	slabBase := coords.SliceIndex(int32(loc.Slab) * coords.SlabSize)

	for y := coords.BlockCoord(0); y < coords.ChunkSize; y++ {
		if ctx.Err() != nil {
			return nil, &SourceError{Loc: loc, Cause: ctx.Err()}
		}
		for x := coords.BlockCoord(0); x < coords.ChunkSize; x++ {
			worldX := int32(loc.Chunk.X)*coords.ChunkSize + int32(x)
			worldY := int32(loc.Chunk.Y)*coords.ChunkSize + int32(y)
			ground := n.heightAt(worldX, worldY)

			for z := coords.LocalSlice(0); z < coords.SlabSize; z++ {
				worldZ := slabBase + coords.SliceIndex(z)
				var t voxel.BlockType
				switch {
				case worldZ > ground:
					t = voxel.Air
				case worldZ == ground:
					t = voxel.Grass
				case worldZ >= ground-3:
					t = voxel.Dirt
				default:
					t = voxel.Stone
				}
				if t != voxel.Air {
					slab.SetBlock(x, y, z, t)
				}
			}
		}
	}

	slab.ClearDirty()
	return slab, nil
}

func (n *NoiseSource) FindGroundLevel(ctx context.Context, x, y int32) (coords.SliceIndex, bool, error) {
	return n.heightAt(x, y), true, nil
}

func (n *NoiseSource) StealQueuedBlockUpdates(sink func(BlockUpdate)) {
	// The noise source never generates structures that patch themselves
	// back in; nothing to steal.
}
