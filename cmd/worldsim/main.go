// Command worldsim is a headless demo harness: it boots a World over a
// Perlin terrain source, requests an initial region around the origin,
// and ticks the loader and viewer on a fixed interval until interrupted,
// logging load and dirty-chunk events as they occur.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelworld/internal/config"
	"voxelworld/internal/coords"
	"voxelworld/internal/logging"
	"voxelworld/internal/terrainsource"
	"voxelworld/internal/viewer"
	"voxelworld/internal/world"
)

func main() {
	var cfgPath string
	var radius int
	var tickInterval time.Duration
	flag.StringVar(&cfgPath, "config", "", "path to worldsim configuration file")
	flag.IntVar(&radius, "radius", 2, "chunk radius to load around the origin")
	flag.DurationVar(&tickInterval, "tick", 100*time.Millisecond, "interval between world ticks")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New("worldsim")

	source := terrainsource.NewNoiseSource(terrainsource.NoiseConfig{
		Persistence: cfg.Terrain.Persistence,
		Lacunarity:  cfg.Terrain.Lacunarity,
		Octaves:     cfg.Terrain.Octaves,
		Seed:        cfg.Terrain.Seed,
		Amplitude:   cfg.Terrain.Amplitude,
		BaseHeight:  coords.SliceIndex(cfg.Terrain.BaseHeight),
	})

	ctx, cancel := signalContext()
	defer cancel()

	w := world.New(ctx, source, cfg, logger)
	defer w.Close()

	rng := coords.ChunkLocationRange{
		Min: coords.ChunkLocation{X: -coords.ChunkCoord(radius), Y: -coords.ChunkCoord(radius)},
		Max: coords.ChunkLocation{X: coords.ChunkCoord(radius), Y: coords.ChunkCoord(radius)},
	}
	groundSlab := coords.ToSlabIndex(coords.SliceIndex(cfg.Terrain.BaseHeight))
	if _, err := w.RequestLoad(rng, groundSlab-1, groundSlab+1, 0); err != nil {
		logger.Printf("initial load request failed: %v", err)
	}

	cameraZ := coords.SliceIndex(cfg.Terrain.BaseHeight)
	camera := w.Viewer(cameraZ-coords.SliceIndex(cfg.Viewer.SlicesBelow), cameraZ+coords.SliceIndex(cfg.Viewer.SlicesAbove))
	camera.SetCameraRange(rng)

	run(ctx, w, camera, logger, tickInterval)
}

func run(ctx context.Context, w *world.World, v *viewer.WorldViewer, logger *log.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Printf("shutting down")
			return
		case <-ticker.C:
			for _, e := range w.Tick() {
				logger.Printf("load event: %+v", e)
			}
			if dirty := v.Tick(); len(dirty) > 0 {
				logger.Printf("dirty chunks: %v", dirty)
			}
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
