package world

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"voxelterrain/internal/config"
	"voxelterrain/internal/material"
)

var testDim = Dimensions{Width: 4, Depth: 4, Height: 16}

func useMemoryStorage(t *testing.T) {
	t.Helper()
	original := getStorageProvider()
	SetStorageProvider(NewMemoryStorageProvider())
	t.Cleanup(func() {
		SetStorageProvider(original)
	})
}

func filledChunk(t *testing.T, key ChunkCoord, top int) *Chunk {
	t.Helper()
	primer := NewPrimer(testDim, 6)
	for x := range testDim.Width {
		for z := range testDim.Depth {
			primer.FillRaw(x, z, top+x-z, 6)
		}
	}
	primer.SetMaterial(0, top, 0, material.Grass)
	chunk := NewChunk(key, testDim, 6, nil)
	if err := primer.Flush(chunk); err != nil {
		t.Fatalf("flush primer: %v", err)
	}
	return chunk
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ value, size, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.value, tt.size); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.value, tt.size, got, tt.want)
		}
	}
}

func TestRegionLayout(t *testing.T) {
	cfg := config.Default()
	region := NewRegion(cfg, ChunkCoord{X: -1, Z: 2}, 2)

	want := []ChunkCoord{{-1, 2}, {0, 2}, {-1, 3}, {0, 3}}
	if got := region.Chunks(); !slices.Equal(got, want) {
		t.Fatalf("Chunks() = %v, want %v", got, want)
	}

	bounds := region.ChunkBounds(ChunkCoord{X: -1, Z: 2})
	if bounds.Min != (BlockCoord{X: -16, Y: 0, Z: 32}) || bounds.Max != (BlockCoord{X: -1, Y: 255, Z: 47}) {
		t.Fatalf("unexpected bounds %+v", bounds)
	}

	if chunk, ok := region.LocateBlock(BlockCoord{X: -3, Y: 10, Z: 40}); !ok || chunk != (ChunkCoord{X: -1, Z: 2}) {
		t.Fatalf("LocateBlock = %v, %v", chunk, ok)
	}
	if _, ok := region.LocateBlock(BlockCoord{X: 100, Y: 10, Z: 40}); ok {
		t.Fatal("block outside the region should not be owned")
	}
	if _, ok := region.LocateBlock(BlockCoord{X: 0, Y: -1, Z: 40}); ok {
		t.Fatal("block below the world should not be located")
	}
}

func TestChunkColumns(t *testing.T) {
	useMemoryStorage(t)
	chunk := NewChunk(ChunkCoord{X: 0, Z: 0}, testDim, 6, nil)
	if chunk.HasStoredColumns() {
		t.Fatal("fresh chunk should be empty")
	}

	if !chunk.SetColumn(1, 2, []material.ID{material.Stone, material.Dirt, material.Air, material.Air}) {
		t.Fatal("SetColumn failed")
	}
	if !chunk.HasStoredColumns() {
		t.Fatal("chunk should report stored columns")
	}
	if got := chunk.MaterialAt(1, 1, 2); got != material.Dirt {
		t.Fatalf("MaterialAt = %s, want dirt", got)
	}
	if got := chunk.MaterialAt(1, 9, 2); got != material.Air {
		t.Fatalf("above column should be air, got %s", got)
	}
	if got := chunk.MaterialAt(-1, 0, 0); got != material.Air {
		t.Fatalf("outside chunk should read as air, got %s", got)
	}
	if h, ok := chunk.SurfaceHeight(1, 2); !ok || h != 1 {
		t.Fatalf("SurfaceHeight = %d, %v", h, ok)
	}

	if !chunk.SetMaterial(1, 5, 2, material.Snow) {
		t.Fatal("SetMaterial failed")
	}
	column := chunk.Column(1, 2)
	if len(column) != testDim.Height || column[5] != material.Snow || column[3] != material.Air {
		t.Fatalf("unexpected column %v", column)
	}

	if !chunk.SetColumn(1, 2, []material.ID{material.Air}) {
		t.Fatal("clearing column failed")
	}
	if chunk.HasStoredColumns() {
		t.Fatal("all-air column should be deleted")
	}
	if chunk.SetColumn(testDim.Width, 0, []material.ID{material.Stone}) {
		t.Fatal("out of range column should be rejected")
	}
}

func TestForEachColumnOrdered(t *testing.T) {
	useMemoryStorage(t)
	chunk := NewChunk(ChunkCoord{}, testDim, 6, nil)
	chunk.SetColumn(3, 1, []material.ID{material.Stone})
	chunk.SetColumn(0, 0, []material.ID{material.Stone})
	chunk.SetColumn(2, 0, []material.ID{material.Stone})

	var visited [][2]int
	chunk.ForEachColumn(func(x, z int, _ []material.ID) bool {
		visited = append(visited, [2]int{x, z})
		return true
	})
	want := [][2]int{{0, 0}, {2, 0}, {3, 1}}
	if !slices.Equal(visited, want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
}

func TestPrimerFillAndFlush(t *testing.T) {
	useMemoryStorage(t)
	primer := NewPrimer(testDim, 6)
	primer.FillRaw(2, 3, 4, 6)

	if primer.MaterialAt(2, 4, 3) != material.Stone || primer.MaterialAt(2, 5, 3) != material.Water ||
		primer.MaterialAt(2, 6, 3) != material.Water || primer.MaterialAt(2, 7, 3) != material.Air {
		t.Fatalf("unexpected raw column %v", primer.Column(2, 3))
	}
	primer.SetMaterial(99, 0, 0, material.Stone)
	if primer.MaterialAt(99, 0, 0) != material.Air {
		t.Fatal("out of range reads should be air")
	}
	if primer.SeaLevel() != 6 || primer.Height() != testDim.Height {
		t.Fatal("primer should expose sea level and height")
	}

	chunk := NewChunk(ChunkCoord{X: 1, Z: 1}, testDim, 6, nil)
	if err := primer.Flush(chunk); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := chunk.MaterialAt(2, 6, 3); got != material.Water {
		t.Fatalf("flushed chunk should carry water, got %s", got)
	}

	other := NewChunk(ChunkCoord{}, Dimensions{Width: 2, Depth: 2, Height: 4}, 6, nil)
	if err := primer.Flush(other); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestSaveTopDownPreview(t *testing.T) {
	useMemoryStorage(t)
	chunks := []*Chunk{
		filledChunk(t, ChunkCoord{X: 0, Z: 0}, 8),
		filledChunk(t, ChunkCoord{X: 1, Z: 0}, 4),
	}
	dir := filepath.Join(t.TempDir(), "preview")

	path, err := SaveTopDownPreview(chunks, dir, 3)
	if err != nil {
		t.Fatalf("save preview: %v", err)
	}
	if filepath.Base(path) != "region_0_0.png" {
		t.Fatalf("unexpected preview name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open preview: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if img.Bounds().Dx() != 2*testDim.Width*3 || img.Bounds().Dy() != testDim.Depth*3 {
		t.Fatalf("unexpected preview size %v", img.Bounds())
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Fatal("preview pixels should be opaque")
	}

	if _, err := SaveTopDownPreview(nil, dir, 1); err == nil {
		t.Fatal("expected error for empty chunk list")
	}
}

func TestDumpRoundTripAndCompare(t *testing.T) {
	useMemoryStorage(t)
	chunks := []*Chunk{
		filledChunk(t, ChunkCoord{X: 1, Z: 0}, 8),
		filledChunk(t, ChunkCoord{X: 0, Z: 0}, 9),
	}
	path := filepath.Join(t.TempDir(), "dumps", "region.dump")
	header := DumpHeader{Seed: 42, Backend: "simplex", SeaLevel: 6, Dimensions: testDim, ChunksPerAxis: 2}

	if err := WriteDump(path, header, chunks); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	gotHeader, err := ReadDumpHeader(path)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if gotHeader.Seed != 42 || gotHeader.Version != DumpVersion || gotHeader.Dimensions != testDim {
		t.Fatalf("unexpected header %+v", gotHeader)
	}

	dump, err := ReadDump(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if len(dump.Chunks) != 2 || dump.Chunks[0].Key != (ChunkCoord{X: 0, Z: 0}) {
		t.Fatalf("chunks should be sorted by key, got %+v", dump.Chunks)
	}
	if err := dump.Compare(chunks); err != nil {
		t.Fatalf("identical chunks should compare equal: %v", err)
	}

	chunks[0].SetMaterial(2, 3, 1, material.Gravel)
	err = dump.Compare(chunks)
	if !errors.Is(err, ErrDumpMismatch) {
		t.Fatalf("expected mismatch after editing a voxel, got %v", err)
	}

	if err := dump.Compare(chunks[:1]); !errors.Is(err, ErrDumpMismatch) {
		t.Fatalf("expected mismatch for missing chunk, got %v", err)
	}
}

func TestReadDumpRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dump")
	if err := os.WriteFile(path, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDump(path); err == nil {
		t.Fatal("expected error for corrupt dump")
	}
}
