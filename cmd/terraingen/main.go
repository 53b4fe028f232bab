package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voxelterrain/internal/biome"
	"voxelterrain/internal/config"
	"voxelterrain/internal/logger"
	"voxelterrain/internal/terrain"
	"voxelterrain/internal/world"
)

type options struct {
	from    world.ChunkCoord
	size    int
	preview string
	dump    string
	verify  string
}

func main() {
	var (
		cfgPath string
		from    string
		opts    options
	)
	flag.StringVar(&cfgPath, "config", "", "path to YAML or JSON generator configuration")
	flag.StringVar(&from, "from", "0,0", "origin chunk as x,z")
	flag.IntVar(&opts.size, "size", 4, "chunks per region axis")
	flag.StringVar(&opts.preview, "preview", "", "directory for the top-down PNG preview (defaults to preview.output_dir)")
	flag.StringVar(&opts.dump, "dump", "", "write a compressed dump of the region to this file")
	flag.StringVar(&opts.verify, "verify", "", "regenerate the region recorded in this dump and compare")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	opts.from, err = parseCoord(from)
	if err != nil {
		log.Fatalf("parse -from: %v", err)
	}
	if opts.preview == "" {
		opts.preview = cfg.Preview.OutputDir
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("initialise logger: %v", err)
	}
	defer logger.Sync(zl)

	ctx, cancel := signalContext(zl)
	defer cancel()

	if err := run(ctx, cfg, opts, zl); err != nil {
		zl.Error("terrain generation failed", zap.Error(err))
		logger.Sync(zl)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, zl *zap.Logger) error {
	if opts.verify != "" {
		header, err := world.ReadDumpHeader(opts.verify)
		if err != nil {
			return fmt.Errorf("read dump header: %w", err)
		}
		cfg.World.Seed = header.Seed
		cfg.Noise.Backend = header.Backend
		cfg.World.SeaLevel = header.SeaLevel
		cfg.World.Height = header.Dimensions.Height
		cfg.World.ChunkSize = header.Dimensions.Width
		opts.from = header.Origin
		opts.size = header.ChunksPerAxis
	}
	if opts.size <= 0 {
		return errors.New("region size must be positive")
	}

	registry, err := biome.DefaultRegistry(cfg.World.SeaLevel)
	if err != nil {
		return err
	}
	gen, err := terrain.New(cfg, registry, zl)
	if err != nil {
		return err
	}

	region := world.NewRegion(cfg, opts.from, opts.size)
	start := time.Now()
	chunks, err := gen.GenerateRegion(ctx, region)
	if err != nil {
		return err
	}
	zl.Info("region generated",
		zap.Stringer("origin", region.Origin),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)))
	logBiomeHistogram(zl, gen, region)

	if opts.verify != "" {
		dump, err := world.ReadDump(opts.verify)
		if err != nil {
			return err
		}
		if err := dump.Compare(chunks); err != nil {
			return err
		}
		zl.Info("region matches dump", zap.String("path", opts.verify))
		return nil
	}

	if opts.preview != "" {
		path, err := world.SaveTopDownPreview(chunks, opts.preview, cfg.Preview.Scale)
		if err != nil {
			return fmt.Errorf("save preview: %w", err)
		}
		zl.Info("preview written", zap.String("path", path))
	}

	if opts.dump != "" {
		header := world.DumpHeader{
			Seed:          cfg.World.Seed,
			Backend:       cfg.Noise.Backend,
			SeaLevel:      cfg.World.SeaLevel,
			Dimensions:    region.ChunkDimension,
			Origin:        region.Origin,
			ChunksPerAxis: region.ChunksPerAxis,
		}
		if err := world.WriteDump(opts.dump, header, chunks); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
		zl.Info("dump written", zap.String("path", opts.dump))
	}
	return nil
}

// logBiomeHistogram logs how many columns of the region each biome covers.
func logBiomeHistogram(zl *zap.Logger, gen *terrain.Generator, region world.Region) {
	if !zl.Core().Enabled(zap.InfoLevel) {
		return
	}
	counts := map[string]int{}
	for _, coord := range region.Chunks() {
		bounds := region.ChunkBounds(coord)
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			for z := bounds.Min.Z; z <= bounds.Max.Z; z++ {
				counts[gen.BiomeAt(x, z).Name]++
			}
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)
	fields := make([]zap.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, zap.Int(name, counts[name]))
	}
	zl.Info("biome columns", fields...)
}

func parseCoord(value string) (world.ChunkCoord, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return world.ChunkCoord{}, fmt.Errorf("expected x,z, got %q", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return world.ChunkCoord{}, fmt.Errorf("parse x: %w", err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return world.ChunkCoord{}, fmt.Errorf("parse z: %w", err)
	}
	return world.ChunkCoord{X: x, Z: z}, nil
}

func signalContext(zl *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			zl.Warn("interrupted, cancelling generation")
			cancel()
		case <-ctx.Done():
			return
		}

		// Ensure the process terminates if cancellation stalls.
		time.AfterFunc(10*time.Second, func() {
			zl.Error("forced shutdown after timeout")
			logger.Sync(zl)
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
