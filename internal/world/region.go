package world

import (
	"fmt"

	"voxelterrain/internal/config"
)

// ChunkCoord identifies a chunk in global chunk space on the horizontal
// X/Z plane.
type ChunkCoord struct {
	X int
	Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// BlockCoord describes a block position in global block space. Y is up.
type BlockCoord struct {
	X int
	Y int
	Z int
}

// Dimensions defines the size of a chunk in blocks.
type Dimensions struct {
	Width  int
	Depth  int
	Height int
}

// Bounds is an axis-aligned bounding box represented by inclusive min/max corners in block space.
type Bounds struct {
	Min BlockCoord
	Max BlockCoord
}

// Region is a square grid of chunks generated together.
type Region struct {
	Origin         ChunkCoord
	ChunksPerAxis  int
	ChunkDimension Dimensions
}

func NewRegion(cfg *config.Config, origin ChunkCoord, chunksPerAxis int) Region {
	return Region{
		Origin:        origin,
		ChunksPerAxis: chunksPerAxis,
		ChunkDimension: Dimensions{
			Width:  cfg.World.ChunkSize,
			Depth:  cfg.World.ChunkSize,
			Height: cfg.World.Height,
		},
	}
}

func (r Region) Contains(coord ChunkCoord) bool {
	return coord.X >= r.Origin.X &&
		coord.Z >= r.Origin.Z &&
		coord.X < r.Origin.X+r.ChunksPerAxis &&
		coord.Z < r.Origin.Z+r.ChunksPerAxis
}

// Chunks lists every chunk of the region, row by row along X.
func (r Region) Chunks() []ChunkCoord {
	if r.ChunksPerAxis <= 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, r.ChunksPerAxis*r.ChunksPerAxis)
	for dz := range r.ChunksPerAxis {
		for dx := range r.ChunksPerAxis {
			out = append(out, ChunkCoord{X: r.Origin.X + dx, Z: r.Origin.Z + dz})
		}
	}
	return out
}

// ChunkBounds returns the block bounds of any chunk, inside the region or not.
func (r Region) ChunkBounds(coord ChunkCoord) Bounds {
	return ChunkBounds(coord, r.ChunkDimension)
}

func ChunkBounds(coord ChunkCoord, dim Dimensions) Bounds {
	min := BlockCoord{
		X: coord.X * dim.Width,
		Y: 0,
		Z: coord.Z * dim.Depth,
	}
	max := BlockCoord{
		X: min.X + dim.Width - 1,
		Y: dim.Height - 1,
		Z: min.Z + dim.Depth - 1,
	}
	return Bounds{Min: min, Max: max}
}

// LocateBlock returns the chunk holding block and whether it belongs to the region.
func (r Region) LocateBlock(block BlockCoord) (ChunkCoord, bool) {
	if block.Y < 0 || block.Y >= r.ChunkDimension.Height {
		return ChunkCoord{}, false
	}
	chunk := ChunkCoord{
		X: FloorDiv(block.X, r.ChunkDimension.Width),
		Z: FloorDiv(block.Z, r.ChunkDimension.Depth),
	}
	return chunk, r.Contains(chunk)
}

// FloorDiv divides rounding toward negative infinity. A non-positive size yields 0.
func FloorDiv(value, size int) int {
	if size <= 0 {
		return 0
	}
	if value >= 0 {
		return value / size
	}
	return -((-value - 1) / size) - 1
}
