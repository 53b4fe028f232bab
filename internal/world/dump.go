package world

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/zstd"

	"voxelterrain/internal/material"
)

// DumpVersion is bumped whenever the dump layout changes.
const DumpVersion = 1

// ErrDumpMismatch is returned by Dump.Compare when regenerated chunks differ
// from the recorded ones.
var ErrDumpMismatch = errors.New("world: dump mismatch")

// DumpHeader records what is needed to regenerate the dumped region.
type DumpHeader struct {
	Version       int        `json:"version"`
	Seed          int64      `json:"seed"`
	Backend       string     `json:"backend"`
	SeaLevel      int        `json:"sea_level"`
	Dimensions    Dimensions `json:"dimensions"`
	Origin        ChunkCoord `json:"origin"`
	ChunksPerAxis int        `json:"chunks_per_axis"`
}

type ColumnDump struct {
	Index     int
	Materials []material.ID
}

type ChunkDump struct {
	Key     ChunkCoord
	Columns []ColumnDump
}

// Dump is a zstd compressed regression snapshot of generated chunks. It is
// an inspection artifact and never loaded back into a world.
type Dump struct {
	Header DumpHeader
	Chunks []ChunkDump
}

// SnapshotChunks copies the stored columns of chunks, ordered by chunk key.
func SnapshotChunks(chunks []*Chunk) []ChunkDump {
	out := make([]ChunkDump, 0, len(chunks))
	for _, chunk := range chunks {
		cd := ChunkDump{Key: chunk.Key}
		chunk.ForEachColumn(func(x, z int, column []material.ID) bool {
			cd.Columns = append(cd.Columns, ColumnDump{Index: chunk.columnIndex(x, z), Materials: column})
			return true
		})
		out = append(out, cd)
	}
	slices.SortFunc(out, func(a, b ChunkDump) int {
		if a.Key.Z != b.Key.Z {
			return a.Key.Z - b.Key.Z
		}
		return a.Key.X - b.Key.X
	})
	return out
}

// WriteDump writes a JSON header line followed by the gob encoded dump,
// all inside one zstd stream.
func WriteDump(path string, header DumpHeader, chunks []*Chunk) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dump directory: %w", err)
		}
	}
	header.Version = DumpVersion
	dump := Dump{Header: header, Chunks: SnapshotChunks(chunks)}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, err := json.Marshal(dump.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := gob.NewEncoder(bw).Encode(&dump); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flush dump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd stream: %w", err)
	}
	return f.Close()
}

// ReadDumpHeader decodes only the JSON header line.
func ReadDumpHeader(path string) (DumpHeader, error) {
	var header DumpHeader
	f, err := os.Open(path)
	if err != nil {
		return header, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return header, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return header, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &header); err != nil {
		return header, fmt.Errorf("decode header: %w", err)
	}
	if header.Version != DumpVersion {
		return header, fmt.Errorf("unsupported dump version %d", header.Version)
	}
	return header, nil
}

func ReadDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	// The gob payload repeats the header.
	if _, err := br.ReadBytes('\n'); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var dump Dump
	if err := gob.NewDecoder(br).Decode(&dump); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	if dump.Header.Version != DumpVersion {
		return nil, fmt.Errorf("unsupported dump version %d", dump.Header.Version)
	}
	return &dump, nil
}

// Compare checks chunks voxel by voxel against the dump and reports the
// first difference.
func (d *Dump) Compare(chunks []*Chunk) error {
	got := SnapshotChunks(chunks)
	if len(got) != len(d.Chunks) {
		return fmt.Errorf("%w: %d chunks, dump has %d", ErrDumpMismatch, len(got), len(d.Chunks))
	}
	dim := d.Header.Dimensions
	for i, want := range d.Chunks {
		have := got[i]
		if have.Key != want.Key {
			return fmt.Errorf("%w: chunk %v where dump has %v", ErrDumpMismatch, have.Key, want.Key)
		}
		wantCols := columnsByIndex(want.Columns)
		haveCols := columnsByIndex(have.Columns)
		for idx := range max(len(wantCols), len(haveCols)) {
			a, b := lookupColumn(wantCols, idx), lookupColumn(haveCols, idx)
			if y, differs := firstDifference(a, b); differs {
				bounds := ChunkBounds(want.Key, dim)
				at := BlockCoord{X: bounds.Min.X + idx%max(1, dim.Width), Y: y, Z: bounds.Min.Z + idx/max(1, dim.Width)}
				return fmt.Errorf("%w: voxel %+v is %s, dump has %s", ErrDumpMismatch, at, voxel(b, y), voxel(a, y))
			}
		}
	}
	return nil
}

func columnsByIndex(cols []ColumnDump) [][]material.ID {
	n := 0
	for _, c := range cols {
		n = max(n, c.Index+1)
	}
	out := make([][]material.ID, n)
	for _, c := range cols {
		out[c.Index] = c.Materials
	}
	return out
}

func lookupColumn(cols [][]material.ID, idx int) []material.ID {
	if idx < len(cols) {
		return cols[idx]
	}
	return nil
}

func firstDifference(a, b []material.ID) (int, bool) {
	for y := range max(len(a), len(b)) {
		if voxel(a, y) != voxel(b, y) {
			return y, true
		}
	}
	return 0, false
}

func voxel(column []material.ID, y int) material.ID {
	if y < len(column) {
		return column[y]
	}
	return material.Air
}
