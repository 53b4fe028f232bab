package world

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"voxelterrain/internal/material"
)

const (
	previewMinLight = 0.45
	previewMaxLight = 1.0
)

var previewBackground = color.NRGBA{R: 10, G: 10, B: 18, A: 255}

// RenderTopDown draws one pixel per column: the colour of the highest
// non-air voxel, darkened the lower it sits.
func RenderTopDown(chunks []*Chunk) (*image.NRGBA, ChunkCoord, error) {
	if len(chunks) == 0 {
		return nil, ChunkCoord{}, errors.New("no chunks to render")
	}
	dim := chunks[0].Dimensions()
	if dim.Width <= 0 || dim.Depth <= 0 || dim.Height <= 0 {
		return nil, ChunkCoord{}, fmt.Errorf("invalid chunk dimensions: %+v", dim)
	}

	minC, maxC := chunks[0].Key, chunks[0].Key
	for _, chunk := range chunks[1:] {
		if chunk.Dimensions() != dim {
			return nil, ChunkCoord{}, fmt.Errorf("chunk %v has dimensions %+v, want %+v", chunk.Key, chunk.Dimensions(), dim)
		}
		minC.X = min(minC.X, chunk.Key.X)
		minC.Z = min(minC.Z, chunk.Key.Z)
		maxC.X = max(maxC.X, chunk.Key.X)
		maxC.Z = max(maxC.Z, chunk.Key.Z)
	}

	width := (maxC.X - minC.X + 1) * dim.Width
	height := (maxC.Z - minC.Z + 1) * dim.Depth
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: previewBackground}, image.Point{}, draw.Src)

	for _, chunk := range chunks {
		originX := (chunk.Key.X - minC.X) * dim.Width
		originZ := (chunk.Key.Z - minC.Z) * dim.Depth
		chunk.ForEachColumn(func(x, z int, column []material.ID) bool {
			y := len(column) - 1
			for y >= 0 && column[y] == material.Air {
				y--
			}
			if y < 0 {
				return true
			}
			light := previewMinLight + (previewMaxLight-previewMinLight)*float64(y)/float64(max(1, dim.Height-1))
			img.SetNRGBA(originX+x, originZ+z, applyLighting(materialColor(column[y]), light))
			return true
		})
	}
	return img, minC, nil
}

// SaveTopDownPreview renders chunks and writes the PNG into dir, upscaled
// by scale with nearest-neighbour sampling. It returns the written path.
func SaveTopDownPreview(chunks []*Chunk, dir string, scale int) (string, error) {
	img, origin, err := RenderTopDown(chunks)
	if err != nil {
		return "", err
	}
	if scale > 1 {
		bounds := img.Bounds()
		scaled := image.NewNRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	if err := ensurePreviewDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("region_%d_%d.png", origin.X, origin.Z))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return path, nil
}

func materialColor(id material.ID) color.NRGBA {
	if col, ok := parseHexColor(id.Color()); ok {
		return col
	}
	return color.NRGBA{R: 255, G: 0, B: 255, A: 255}
}

func parseHexColor(value string) (color.NRGBA, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func applyLighting(base color.NRGBA, factor float64) color.NRGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.NRGBA{
		R: uint8(math.Round(float64(base.R) * factor)),
		G: uint8(math.Round(float64(base.G) * factor)),
		B: uint8(math.Round(float64(base.B) * factor)),
		A: 255,
	}
}

func ensurePreviewDir(dir string) error {
	if dir == "" {
		return errors.New("output directory is empty")
	}
	return os.MkdirAll(dir, 0o755)
}
