// Package world stores generated chunks and renders or dumps them for
// inspection.
package world

import (
	"sync"

	"go.uber.org/zap"

	"voxelterrain/internal/material"
)

// Chunk stores finished material columns. Columns are kept trimmed of
// trailing air, so an all-air column takes no space.
type Chunk struct {
	Key      ChunkCoord
	Bounds   Bounds
	SeaLevel int

	mu        sync.RWMutex
	store     ColumnStorage
	dimension Dimensions
	log       *zap.Logger
}

func NewChunk(key ChunkCoord, dim Dimensions, seaLevel int, log *zap.Logger) *Chunk {
	if log == nil {
		log = zap.NewNop()
	}
	bounds := ChunkBounds(key, dim)
	store, err := getStorageProvider().NewStorage(key, bounds, dim)
	if err != nil {
		log.Warn("chunk storage unavailable, falling back to memory", zap.Stringer("chunk", key), zap.Error(err))
		store, _ = NewMemoryStorageProvider().NewStorage(key, bounds, dim)
	}
	return &Chunk{
		Key:       key,
		Bounds:    bounds,
		SeaLevel:  seaLevel,
		store:     store,
		dimension: dim,
		log:       log,
	}
}

func (c *Chunk) columnIndex(x, z int) int {
	return z*c.dimension.Width + x
}

func (c *Chunk) inColumns(x, z int) bool {
	return x >= 0 && z >= 0 && x < c.dimension.Width && z < c.dimension.Depth
}

func trimColumn(column []material.ID) []material.ID {
	end := len(column)
	for end > 0 && column[end-1] == material.Air {
		end--
	}
	return column[:end]
}

func (c *Chunk) Dimensions() Dimensions {
	return c.dimension
}

// GlobalToLocal converts a world block coordinate into chunk-local coordinates.
func (c *Chunk) GlobalToLocal(coord BlockCoord) (int, int, int, bool) {
	if coord.X < c.Bounds.Min.X || coord.X > c.Bounds.Max.X ||
		coord.Y < c.Bounds.Min.Y || coord.Y > c.Bounds.Max.Y ||
		coord.Z < c.Bounds.Min.Z || coord.Z > c.Bounds.Max.Z {
		return 0, 0, 0, false
	}
	return coord.X - c.Bounds.Min.X,
		coord.Y - c.Bounds.Min.Y,
		coord.Z - c.Bounds.Min.Z, true
}

// Column returns a copy of the column at local (x, z), padded with air to
// the full chunk height.
func (c *Chunk) Column(x, z int) []material.ID {
	out := make([]material.ID, c.dimension.Height)
	if !c.inColumns(x, z) {
		return out
	}
	column, ok := c.load(x, z)
	if ok {
		copy(out, column)
	}
	return out
}

func (c *Chunk) load(x, z int) ([]material.ID, bool) {
	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()
	if store == nil {
		return nil, false
	}
	idx := c.columnIndex(x, z)
	column, ok, err := store.LoadColumn(idx)
	if err != nil {
		c.log.Error("load column failed", zap.Stringer("chunk", c.Key), zap.Int("column", idx), zap.Error(err))
		return nil, false
	}
	return column, ok
}

// SetColumn replaces the column at local (x, z).
func (c *Chunk) SetColumn(x, z int, column []material.ID) bool {
	if !c.inColumns(x, z) {
		return false
	}
	if len(column) > c.dimension.Height {
		column = column[:c.dimension.Height]
	}
	column = trimColumn(column)

	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	if store == nil {
		return false
	}
	idx := c.columnIndex(x, z)
	var err error
	if len(column) == 0 {
		err = store.Delete(idx)
	} else {
		err = store.SaveColumn(idx, column)
	}
	if err != nil {
		c.log.Error("persist column failed", zap.Stringer("chunk", c.Key), zap.Int("column", idx), zap.Error(err))
		return false
	}
	return true
}

// MaterialAt returns the material at local (x, y, z); anything outside the
// chunk reads as air.
func (c *Chunk) MaterialAt(x, y, z int) material.ID {
	if !c.inColumns(x, z) || y < 0 || y >= c.dimension.Height {
		return material.Air
	}
	column, ok := c.load(x, z)
	if !ok || y >= len(column) {
		return material.Air
	}
	return column[y]
}

// SetMaterial writes a single voxel.
func (c *Chunk) SetMaterial(x, y, z int, id material.ID) bool {
	if !c.inColumns(x, z) || y < 0 || y >= c.dimension.Height {
		return false
	}
	column := c.Column(x, z)
	column[y] = id
	return c.SetColumn(x, z, column)
}

// SurfaceHeight returns the highest solid voxel of column (x, z).
func (c *Chunk) SurfaceHeight(x, z int) (int, bool) {
	column, ok := c.load(x, z)
	if !ok {
		return 0, false
	}
	for y := len(column) - 1; y >= 0; y-- {
		if column[y].Solid() {
			return y, true
		}
	}
	return 0, false
}

// ForEachColumn visits every stored column in index order with its local
// coordinates.
func (c *Chunk) ForEachColumn(fn func(x, z int, column []material.ID) bool) {
	c.mu.RLock()
	store := c.store
	dim := c.dimension
	c.mu.RUnlock()
	if store == nil {
		return
	}
	if err := store.ForEach(func(idx int, column []material.ID) bool {
		return fn(idx%dim.Width, idx/dim.Width, column)
	}); err != nil {
		c.log.Error("iterate columns failed", zap.Stringer("chunk", c.Key), zap.Error(err))
	}
}

// HasStoredColumns reports whether any column holds a non-air voxel.
func (c *Chunk) HasStoredColumns() bool {
	found := false
	c.ForEachColumn(func(_, _ int, column []material.ID) bool {
		found = len(column) > 0
		return !found
	})
	return found
}

// Close releases any resources held by the chunk's underlying storage.
func (c *Chunk) Close() error {
	c.mu.Lock()
	store := c.store
	c.mu.Unlock()
	if store == nil {
		return nil
	}
	return store.Close()
}
