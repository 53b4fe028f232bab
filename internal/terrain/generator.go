// Package terrain turns biome descriptors into finished voxel chunks.
package terrain

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"voxelterrain/internal/biome"
	"voxelterrain/internal/cellular"
	"voxelterrain/internal/config"
	"voxelterrain/internal/height"
	"voxelterrain/internal/material"
	"voxelterrain/internal/noise"
	"voxelterrain/internal/surface"
	"voxelterrain/internal/world"
)

// Generator creates repeatable terrain. It is safe for concurrent use; all
// shared state is read-only after New apart from the cellular subset cache.
type Generator struct {
	cfg      *config.Config
	registry *biome.Registry
	sources  *height.Sources
	selector *Selector
	dim      world.Dimensions
	log      *zap.Logger
}

func New(cfg *config.Config, registry *biome.Registry, log *zap.Logger) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("terrain: nil config")
	}
	src, err := noise.New(cfg.Noise, cfg.World.Seed)
	if err != nil {
		return nil, err
	}
	return newGenerator(cfg, registry, src, log)
}

func newGenerator(cfg *config.Config, registry *biome.Registry, src noise.Source, log *zap.Logger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	if registry == nil {
		return nil, fmt.Errorf("terrain: nil biome registry")
	}
	if len(cfg.Terrain.BiomeWeights) > 0 {
		weighted, err := registry.WithWeights(cfg.Terrain.BiomeWeights)
		if err != nil {
			return nil, fmt.Errorf("terrain: %w", err)
		}
		registry = weighted
	}

	pool, err := cellular.GeneratePool(cfg.World.Seed, cellularConfig(cfg.Cellular))
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	field := cellular.NewField(pool, cellularConfig(cfg.Cellular))
	if pool.Threshold() < cfg.Cellular.MinDistanceSquared {
		log.Warn("cellular pool relaxed its separation threshold",
			zap.Float64("configured", cfg.Cellular.MinDistanceSquared),
			zap.Float64("used", pool.Threshold()))
	}

	selector, err := NewSelector(src, registry, cfg.Terrain.BiomeScale)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		registry: registry,
		sources:  &height.Sources{Noise: src, Field: field},
		selector: selector,
		dim: world.Dimensions{
			Width:  cfg.World.ChunkSize,
			Depth:  cfg.World.ChunkSize,
			Height: cfg.World.Height,
		},
		log: log,
	}, nil
}

func cellularConfig(c config.CellularConfig) cellular.Config {
	return cellular.Config{
		PoolSize:           c.PoolSize,
		SubsetSize:         c.SubsetSize,
		MinDistanceSquared: c.MinDistanceSquared,
		MaxAttempts:        c.MaxAttempts,
	}
}

// Registry is the biome registry in use, with configured weights applied.
func (g *Generator) Registry() *biome.Registry { return g.registry }

func (g *Generator) Dimensions() world.Dimensions { return g.dim }

// BiomeAt returns the biome selected for block column (x, z).
func (g *Generator) BiomeAt(x, z int) *biome.Descriptor {
	return g.selector.At(x, z)
}

// Generate builds one chunk. Columns are shaped and raw filled in a first
// parallel pass, then painted in a second once every height in the chunk
// is known.
func (g *Generator) Generate(ctx context.Context, coord world.ChunkCoord) (*world.Chunk, error) {
	dim := g.dim
	bounds := world.ChunkBounds(coord, dim)
	seaLevel := g.cfg.World.SeaLevel
	primer := world.NewPrimer(dim, seaLevel)

	size := dim.Width
	heights := make([]float64, dim.Width*dim.Depth)
	traits := make([]surface.Traits, len(heights))
	shapes := make([]columnShape, len(heights))

	err := g.runColumns(ctx, coord, "shape", func(x, z int) error {
		shape := g.shape(bounds.Min.X+x, bounds.Min.Z+z)
		i := x*size + z
		shapes[i] = shape
		heights[i] = math.Floor(shape.elevation)
		traits[i] = shape.biome.Traits()
		primer.FillRaw(x, z, int(heights[i]), shape.waterTop)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = g.runColumns(ctx, coord, "paint", func(x, z int) error {
		i := x*size + z
		blockX, blockZ := bounds.Min.X+x, bounds.Min.Z+z
		col := &surface.Column{
			Chunk:   primer,
			X:       x,
			Z:       z,
			BlockX:  blockX,
			BlockZ:  blockZ,
			Size:    size,
			Heights: heights,
			Biomes:  traits,
			River:   shapes[i].river,
			Rand:    surface.ColumnRand(g.cfg.World.Seed, blockX, blockZ),
			Noise:   g.sources.Noise,
		}
		shapes[i].biome.Surface.Paint(col)
		primer.SetMaterial(x, 0, z, material.Bedrock)
		return nil
	})
	if err != nil {
		return nil, err
	}

	chunk := world.NewChunk(coord, dim, seaLevel, g.log)
	if err := primer.Flush(chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

// GenerateRegion generates every chunk of region in row order.
func (g *Generator) GenerateRegion(ctx context.Context, region world.Region) ([]*world.Chunk, error) {
	if region.ChunkDimension != g.dim {
		return nil, fmt.Errorf("region chunk dimensions %+v do not match generator %+v", region.ChunkDimension, g.dim)
	}
	coords := region.Chunks()
	chunks := make([]*world.Chunk, 0, len(coords))
	for _, coord := range coords {
		chunk, err := g.Generate(ctx, coord)
		if err != nil {
			return nil, fmt.Errorf("generate chunk %v: %w", coord, err)
		}
		chunks = append(chunks, chunk)
		g.log.Info("chunk generated",
			zap.Stringer("chunk", coord),
			zap.Int("done", len(chunks)),
			zap.Int("total", len(coords)))
	}
	return chunks, nil
}

// runColumns calls fn once for every column of a chunk on a worker pool.
// fn must only write state owned by its own column.
func (g *Generator) runColumns(ctx context.Context, coord world.ChunkCoord, phase string, fn func(x, z int) error) error {
	dim := g.dim
	totalColumns := dim.Width * dim.Depth
	if totalColumns <= 0 {
		g.progress(coord, phase, 100)
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type columnTask struct {
		x int
		z int
	}

	workers := g.workerCount(totalColumns)
	tasks := make(chan columnTask, workers)
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				err := ctx.Err()
				if err == nil {
					err = fn(task.x, task.z)
				}
				select {
				case results <- err:
				case <-ctx.Done():
					return
				}
				if err != nil {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for x := range dim.Width {
			for z := range dim.Depth {
				select {
				case <-ctx.Done():
					return
				case tasks <- columnTask{x: x, z: z}:
				}
			}
		}
	}()

	done := 0
	nextLogPercent := 10
	for err := range results {
		if err != nil {
			cancel()
			return err
		}
		done++
		progress := done * 100 / totalColumns
		if progress >= nextLogPercent {
			g.progress(coord, phase, progress)
			nextLogPercent = (progress/10 + 1) * 10
		}
	}

	// Workers exit without reporting once ctx is cancelled.
	if done < totalColumns {
		if err := ctx.Err(); err != nil {
			return err
		}
		return context.Canceled
	}
	return nil
}

func (g *Generator) progress(coord world.ChunkCoord, phase string, percent int) {
	g.log.Debug("chunk generation progress",
		zap.Stringer("chunk", coord),
		zap.String("phase", phase),
		zap.Int("percent", min(percent, 100)))
}

func (g *Generator) workerCount(totalColumns int) int {
	if totalColumns <= 0 {
		return 0
	}
	workers := g.cfg.Terrain.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) * 2
	}
	return max(1, min(workers, totalColumns))
}
