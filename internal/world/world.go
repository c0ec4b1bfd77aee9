// Package world is the central store facade: it owns every loaded chunk,
// the world navigation graph, the background loader, and the associated
// pathfinder, and is the single place that knows how to finalize a
// freshly loaded or mutated slab into all three. Collaborators (entity
// AI, rendering) talk to a *World through the methods in api.go; nothing
// outside this package reaches into chunk storage directly.
package world

import (
	"context"
	"log"
	"sync"

	"voxelworld/internal/chunk"
	"voxelworld/internal/config"
	"voxelworld/internal/coords"
	"voxelworld/internal/loader"
	"voxelworld/internal/logging"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/nav/graph"
	"voxelworld/internal/pathfind"
	"voxelworld/internal/terrainsource"
	"voxelworld/internal/voxel"
)

// World is the authoritative in-memory state of the block world: a
// sparse grid of chunks, the navigation graph wired across their
// boundaries, and the background loader that populates them. All public
// methods are safe for concurrent use.
type World struct {
	log *log.Logger

	mu         sync.RWMutex
	chunks     map[coords.ChunkLocation]*chunk.Chunk
	graph      *graph.Graph
	associated map[coords.WorldPosition]interface{}
	pending    []terrainUpdate

	pathfinder *pathfind.Pathfinder
	loader     *loader.Loader

	navDefaults  pathfind.NavRequirement
	costDefaults pathfind.CostPolicy
}

type terrainUpdate struct {
	Range coords.WorldPositionRange
	Type  voxel.BlockType
}

// New builds a World wired to the given terrain source, starting the
// background loader's worker pool immediately. Call Close to stop it.
func New(ctx context.Context, source terrainsource.Source, cfg *config.Config, logger *log.Logger) *World {
	w := &World{
		log:        logging.OrDefault(logger),
		chunks:     make(map[coords.ChunkLocation]*chunk.Chunk),
		graph:      graph.New(),
		associated: make(map[coords.WorldPosition]interface{}),
		navDefaults: pathfind.NavRequirement{
			Width:      cfg.Nav.Width,
			Height:     cfg.Nav.Height,
			StepHeight: cfg.Nav.StepHeight,
		},
		costDefaults: pathfind.CostPolicy{
			WalkMultiplier: cfg.Nav.WalkMultiplier,
			JumpMultiplier: cfg.Nav.JumpMultiplier,
		},
	}

	w.pathfinder = pathfind.New(w, w.graph)
	w.pathfinder.ExpansionLimit = cfg.Nav.ExpansionLimit

	w.loader = loader.NewLoader(ctx, source, w, loader.Config{
		Workers:        cfg.Loader.Workers,
		MaxQueueDepth:  cfg.Loader.MaxQueueDepth,
		ResultCapacity: cfg.Loader.ResultCapacity,
	})

	return w
}

// Close stops the background loader and waits for its workers to exit.
func (w *World) Close() {
	w.loader.Close()
}

// Tick drains any completed or failed loads, finalizing each into the
// chunk store and navigation graph, then applies any terrain updates
// queued since the last tick. Returns the load events produced this
// tick; terrain updates don't themselves produce events.
func (w *World) Tick() []loader.Event {
	events := w.drainLoaderResults()
	w.applyPendingTerrain()
	return events
}

func (w *World) drainLoaderResults() []loader.Event {
	var events []loader.Event
	for {
		select {
		case res := <-w.loader.Results():
			events = append(events, w.finalize(res)...)
		default:
			return events
		}
	}
}

// finalize installs a successfully loaded slab (or reports a failure),
// fixes up cross-slab occlusion against whatever neighbors are already
// loaded, rewires the navigation graph, and re-discovers any vertical
// neighbor whose below/above walkability assumption just became known.
func (w *World) finalize(res loader.Result) []loader.Event {
	if res.Err != nil {
		w.log.Printf("slab %s failed to load: %v", res.Loc, res.Err)
		return w.loader.ReportFailure(res)
	}

	w.mu.Lock()
	c, ok := w.chunks[res.Loc.Chunk]
	if !ok {
		c = chunk.New(res.Loc.Chunk)
		w.chunks[res.Loc.Chunk] = c
	}
	c.InstallSlab(res.Loc.Slab, res.Slab, res.Discovery)
	w.fixBoundaries(res.Loc, res.Slab)
	w.graph.OnSlabReplaced(res.Loc, res.Slab, res.Discovery, w)
	w.rediscoverVerticalNeighbors(res.Loc)
	w.mu.Unlock()

	return w.loader.ReportSuccess(res)
}

// applyPendingTerrain drains the queue set(terrain) built up since the
// last tick, mutates the affected slabs, then re-discovers and rewires
// every touched slab exactly once regardless of how many updates touched it.
func (w *World) applyPendingTerrain() {
	w.mu.Lock()
	updates := w.pending
	w.pending = nil

	touched := make(map[coords.SlabLocation]bool)
	for _, u := range updates {
		w.applyTerrainUpdate(u, touched)
	}
	for loc := range touched {
		w.rediscoverSlab(loc)
	}
	w.mu.Unlock()
}

func (w *World) applyTerrainUpdate(u terrainUpdate, touched map[coords.SlabLocation]bool) {
	for z := u.Range.Min.Z; z <= u.Range.Max.Z; z++ {
		for y := u.Range.Min.Y; y <= u.Range.Max.Y; y++ {
			for x := u.Range.Min.X; x <= u.Range.Max.X; x++ {
				wp := coords.WorldPosition{X: x, Y: y, Z: z}
				chunkLoc, slabIdx, local := wp.Split()
				c, ok := w.chunks[chunkLoc]
				if !ok {
					continue
				}
				slab := c.Slab(slabIdx)
				if slab == nil {
					continue
				}
				_, bx, by, bz := coords.LocalBlockPosition(local)
				slab.SetBlock(bx, by, bz, u.Type)
				touched[coords.SlabLocation{Chunk: chunkLoc, Slab: slabIdx}] = true
			}
		}
	}
}

// fixBoundaries resolves cross-slab occlusion between slab (just
// installed at loc) and each of its six already-loaded neighbors.
func (w *World) fixBoundaries(loc coords.SlabLocation, slab *voxel.Slab) {
	if below := w.slabAt(coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab - 1}); below != nil {
		voxel.FixVerticalBoundary(below, slab)
	}
	if above := w.slabAt(coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab + 1}); above != nil {
		voxel.FixVerticalBoundary(slab, above)
	}

	negX := coords.ChunkLocation{X: loc.Chunk.X - 1, Y: loc.Chunk.Y}
	posX := coords.ChunkLocation{X: loc.Chunk.X + 1, Y: loc.Chunk.Y}
	if s := w.slabAt(coords.SlabLocation{Chunk: negX, Slab: loc.Slab}); s != nil {
		voxel.FixHorizontalBoundaryX(s, slab)
	}
	if s := w.slabAt(coords.SlabLocation{Chunk: posX, Slab: loc.Slab}); s != nil {
		voxel.FixHorizontalBoundaryX(slab, s)
	}

	negY := coords.ChunkLocation{X: loc.Chunk.X, Y: loc.Chunk.Y - 1}
	posY := coords.ChunkLocation{X: loc.Chunk.X, Y: loc.Chunk.Y + 1}
	if s := w.slabAt(coords.SlabLocation{Chunk: negY, Slab: loc.Slab}); s != nil {
		voxel.FixHorizontalBoundaryY(s, slab)
	}
	if s := w.slabAt(coords.SlabLocation{Chunk: posY, Slab: loc.Slab}); s != nil {
		voxel.FixHorizontalBoundaryY(slab, s)
	}
}

// rediscoverSlab re-runs area discovery for an already-loaded slab (its
// blocks changed, or a neighbor it depends on for support/headroom just
// became known) and rewires its navigation graph nodes accordingly.
// Callers must hold w.mu.
func (w *World) rediscoverSlab(loc coords.SlabLocation) {
	c, ok := w.chunks[loc.Chunk]
	if !ok {
		return
	}
	slab := c.Slab(loc.Slab)
	if slab == nil {
		return
	}

	var below, above area.Slab
	if b := w.slabAt(coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab - 1}); b != nil {
		below = b
	}
	if a := w.slabAt(coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab + 1}); a != nil {
		above = a
	}

	disc := area.Discover(slab, below, above)
	c.InstallSlab(loc.Slab, slab, disc)
	w.fixBoundaries(loc, slab)
	w.graph.OnSlabReplaced(loc, slab, disc, w)
	slab.ClearDirty()
}

func (w *World) rediscoverVerticalNeighbors(loc coords.SlabLocation) {
	for _, d := range [2]coords.SlabIndex{-1, 1} {
		nloc := coords.SlabLocation{Chunk: loc.Chunk, Slab: loc.Slab + d}
		if c, ok := w.chunks[nloc.Chunk]; ok && c.Slab(nloc.Slab) != nil {
			w.rediscoverSlab(nloc)
		}
	}
}

// slabAt looks up a slab without taking a lock; callers must already
// hold w.mu.
func (w *World) slabAt(loc coords.SlabLocation) *voxel.Slab {
	c, ok := w.chunks[loc.Chunk]
	if !ok {
		return nil
	}
	return c.Slab(loc.Slab)
}
