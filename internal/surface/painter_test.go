package surface

import (
	"errors"
	"testing"

	"voxelterrain/internal/material"
)

const testSize = 16

// testChunk is a dense local chunk used to drive painters.
type testChunk struct {
	height   int
	seaLevel int
	voxels   []material.ID
}

func newTestChunk(height, seaLevel int) *testChunk {
	return &testChunk{height: height, seaLevel: seaLevel, voxels: make([]material.ID, testSize*testSize*height)}
}

func (c *testChunk) idx(x, y, z int) int { return (x*testSize+z)*c.height + y }

func (c *testChunk) MaterialAt(x, y, z int) material.ID { return c.voxels[c.idx(x, y, z)] }

func (c *testChunk) SetMaterial(x, y, z int, id material.ID) { c.voxels[c.idx(x, y, z)] = id }

func (c *testChunk) SeaLevel() int { return c.seaLevel }

func (c *testChunk) Height() int { return c.height }

// fill sets column (x, z) to stone up to top, water up to the sea level and
// air above.
func (c *testChunk) fill(x, z, top int) {
	for y := range c.height {
		switch {
		case y <= top:
			c.SetMaterial(x, y, z, material.Stone)
		case y <= c.seaLevel:
			c.SetMaterial(x, y, z, material.Water)
		default:
			c.SetMaterial(x, y, z, material.Air)
		}
	}
}

// constNoise returns the same sample everywhere.
type constNoise float64

func (n constNoise) Sample(int, float64, float64) float64            { return float64(n) }
func (n constNoise) Sample3(int, float64, float64, float64) float64  { return float64(n) }
func (n constNoise) Displacement(float64, float64) (float64, float64) { return 0, 0 }
func (n constNoise) Ground(float64, float64) float64                  { return float64(n) }

func flatHeights(h float64) []float64 {
	out := make([]float64, testSize*testSize)
	for i := range out {
		out[i] = h
	}
	return out
}

func newColumn(chunk *testChunk, x, z int, heights []float64) *Column {
	return &Column{
		Chunk:   chunk,
		X:       x,
		Z:       z,
		BlockX:  x,
		BlockZ:  z,
		Size:    testSize,
		Heights: heights,
		Rand:    ColumnRand(1, x, z),
	}
}

func column(chunk *testChunk, x, z int) []material.ID {
	out := make([]material.ID, chunk.height)
	for y := range chunk.height {
		out[y] = chunk.MaterialAt(x, y, z)
	}
	return out
}

func TestFlatColumnLayers(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(5, 5, 63)
	painter := Generic(material.Grass, material.Dirt)

	painter.Paint(newColumn(chunk, 5, 5, flatHeights(63)))

	got := column(chunk, 5, 5)
	for y, id := range got {
		var want material.ID
		switch {
		case y > 63:
			want = material.Air
		case y == 63:
			want = material.Grass
		case y >= 59:
			want = material.Dirt
		default:
			want = material.Stone
		}
		if id != want {
			t.Fatalf("y=%d: got %s, want %s", y, id, want)
		}
	}
}

func TestSteepCliffUsesShadowStone(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(5, 5, 63)
	heights := flatHeights(63)
	heights[6*testSize+5] = 63 + defaultCliffSteep + 5
	painter := Generic(material.Grass, material.Dirt)

	painter.Paint(newColumn(chunk, 5, 5, heights))

	got := column(chunk, 5, 5)
	for y := 59; y <= 63; y++ {
		if got[y] != material.ShadowStone {
			t.Fatalf("y=%d: got %s, want shadow stone", y, got[y])
		}
	}
	if got[58] != material.Stone {
		t.Fatalf("y=58 should stay stone, got %s", got[58])
	}
}

func TestLowCliffMixesCobble(t *testing.T) {
	heights := flatHeights(63)
	heights[5*testSize+4] = 63 - (defaultCliffLow + 1)
	painter := Generic(material.Grass, material.Dirt)

	sawCobble, sawCliff := false, false
	for seed := range int64(40) {
		chunk := newTestChunk(80, 62)
		chunk.fill(5, 5, 63)
		col := newColumn(chunk, 5, 5, heights)
		col.Rand = ColumnRand(seed, 5, 5)
		painter.Paint(col)

		got := column(chunk, 5, 5)
		for _, y := range []int{63, 62} {
			switch got[y] {
			case material.Cobblestone:
				sawCobble = true
			case material.CliffStone:
				sawCliff = true
			default:
				t.Fatalf("seed %d y=%d: unexpected %s in low cliff cap", seed, y, got[y])
			}
		}
		for y := 59; y <= 61; y++ {
			if got[y] != material.CliffStone {
				t.Fatalf("seed %d y=%d: got %s, want cliff stone", seed, y, got[y])
			}
		}
	}
	if !sawCobble || !sawCliff {
		t.Fatalf("expected both cobble and cliff stone across seeds (cobble=%v cliff=%v)", sawCobble, sawCliff)
	}
}

func TestRiverAttenuatesCliff(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(5, 5, 63)
	heights := flatHeights(63)
	heights[6*testSize+5] = 63 + defaultCliffSteep + 5
	col := newColumn(chunk, 5, 5, heights)
	col.River = 1

	Generic(material.Grass, material.Dirt).Paint(col)

	if got := chunk.MaterialAt(5, 63, 5); got != material.Grass {
		t.Fatalf("river bed should not be a cliff, got %s", got)
	}
}

func TestSingleTopsoilPerColumn(t *testing.T) {
	chunk := newTestChunk(96, 62)
	heights := make([]float64, testSize*testSize)
	for x := range testSize {
		for z := range testSize {
			h := 40 + (x*7+z*3)%40
			chunk.fill(x, z, h)
			heights[x*testSize+z] = float64(h)
		}
	}
	painter := Generic(material.Grass, material.Dirt)
	painter.CliffLow = 1000
	painter.CliffSteep = 1000

	for x := range testSize {
		for z := range testSize {
			painter.Paint(newColumn(chunk, x, z, heights))
			top := 0
			for _, id := range column(chunk, x, z) {
				if id == material.Grass {
					top++
				}
			}
			if top > 1 {
				t.Fatalf("column (%d,%d) has %d topsoil voxels", x, z, top)
			}
		}
	}
}

func TestUnderwaterFloorUsesFiller(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(2, 3, 50)
	Generic(material.Grass, material.Gravel).Paint(newColumn(chunk, 2, 3, flatHeights(50)))

	if got := chunk.MaterialAt(2, 50, 3); got != material.Gravel {
		t.Fatalf("sea floor should be filler, got %s", got)
	}
	if got := chunk.MaterialAt(2, 51, 3); got != material.Water {
		t.Fatalf("water above the floor should remain, got %s", got)
	}
}

func TestSnowyBiomeFreezesSurfaceWater(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(1, 1, 55)
	col := newColumn(chunk, 1, 1, flatHeights(55))
	col.Biomes = make([]Traits, testSize*testSize)
	col.Biomes[1*testSize+1] = Traits{Snowy: true}

	Generic(material.Grass, material.Dirt).Paint(col)

	if got := chunk.MaterialAt(1, 62, 1); got != material.Ice {
		t.Fatalf("sea level water should freeze, got %s", got)
	}
	if got := chunk.MaterialAt(1, 61, 1); got != material.Water {
		t.Fatalf("water below sea level should stay liquid, got %s", got)
	}
}

func TestWarmBiomeKeepsWater(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(1, 1, 55)
	Generic(material.Grass, material.Dirt).Paint(newColumn(chunk, 1, 1, flatHeights(55)))
	if got := chunk.MaterialAt(1, 62, 1); got != material.Water {
		t.Fatalf("expected water, got %s", got)
	}
}

func TestIcePlainsFreezesWithoutSnowyTraits(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(0, 0, 55)
	IcePlains().Paint(newColumn(chunk, 0, 0, flatHeights(55)))
	if got := chunk.MaterialAt(0, 62, 0); got != material.Ice {
		t.Fatalf("expected ice, got %s", got)
	}
}

func TestMesaBandsFollowHeight(t *testing.T) {
	chunk := newTestChunk(128, 62)
	chunk.fill(4, 4, 100)
	painter := Mesa(70)
	painter.Paint(newColumn(chunk, 4, 4, flatHeights(100)))

	bands := MesaBands()
	for y := 100 - painter.Depth; y <= 100; y++ {
		want := bands[y%len(bands)]
		if got := chunk.MaterialAt(4, y, 4); got != want {
			t.Fatalf("y=%d: got %s, want band %s", y, got, want)
		}
	}
}

func TestMesaRedSandBelowBandStart(t *testing.T) {
	chunk := newTestChunk(128, 62)
	chunk.fill(4, 4, 65)
	Mesa(70).Paint(newColumn(chunk, 4, 4, flatHeights(65)))
	if got := chunk.MaterialAt(4, 65, 4); got != material.RedSand {
		t.Fatalf("expected red sand top, got %s", got)
	}
}

func TestDesertSandstoneBand(t *testing.T) {
	chunk := newTestChunk(80, 62)
	chunk.fill(3, 3, 70)
	painter := Desert()
	painter.Paint(newColumn(chunk, 3, 3, flatHeights(70)))

	got := column(chunk, 3, 3)
	for y := 70 - painter.Depth; y <= 70; y++ {
		if got[y] != material.Sand {
			t.Fatalf("y=%d: got %s, want sand", y, got[y])
		}
	}
	bandTop := 70 - painter.Depth - 1
	for y := bandTop - painter.ExtraDepth + 1; y <= bandTop; y++ {
		if got[y] != material.Sandstone {
			t.Fatalf("y=%d: got %s, want sandstone", y, got[y])
		}
	}
	if got[bandTop-painter.ExtraDepth] != material.Stone {
		t.Fatalf("below the sandstone band should be stone, got %s", got[bandTop-painter.ExtraDepth])
	}
}

func TestTaigaSnowLine(t *testing.T) {
	chunk := newTestChunk(128, 62)
	chunk.fill(0, 1, 100)
	chunk.fill(0, 2, 70)
	painter := Taiga(90)
	painter.Mix = material.Air

	painter.Paint(newColumn(chunk, 0, 1, flatHeights(100)))
	painter.Paint(newColumn(chunk, 0, 2, flatHeights(70)))

	if got := chunk.MaterialAt(0, 100, 1); got != material.Snow {
		t.Fatalf("expected snow above the snow line, got %s", got)
	}
	if got := chunk.MaterialAt(0, 70, 2); got != material.Grass {
		t.Fatalf("expected grass below the snow line, got %s", got)
	}
}

func TestJungleMixPatches(t *testing.T) {
	tests := []struct {
		name  string
		noise constNoise
		want  material.ID
	}{
		{"above mix height", 0.9, material.Podzol},
		{"below mix height", -0.9, material.Grass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := newTestChunk(80, 62)
			chunk.fill(7, 7, 66)
			col := newColumn(chunk, 7, 7, flatHeights(66))
			col.Noise = tt.noise
			Jungle().Paint(col)
			if got := chunk.MaterialAt(7, 66, 7); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestColumnShapeIndependentOfRandom(t *testing.T) {
	heights := make([]float64, testSize*testSize)
	for i := range heights {
		heights[i] = float64(60 + (i*5)%9)
	}
	classify := func(id material.ID) string {
		switch id {
		case material.Cobblestone, material.MossyCobblestone, material.CliffStone:
			return "cliff"
		case material.Grass, material.Podzol:
			return "top"
		default:
			return id.String()
		}
	}

	paint := func(seed int64) *testChunk {
		chunk := newTestChunk(80, 62)
		for x := range testSize {
			for z := range testSize {
				chunk.fill(x, z, int(heights[x*testSize+z]))
				col := newColumn(chunk, x, z, heights)
				col.Rand = ColumnRand(seed, x, z)
				col.Noise = constNoise(0.1)
				Taiga(0).Paint(col)
			}
		}
		return chunk
	}

	a, b := paint(1), paint(2)
	for i := range a.voxels {
		if classify(a.voxels[i]) != classify(b.voxels[i]) {
			t.Fatalf("voxel %d changed class between streams: %s vs %s", i, a.voxels[i], b.voxels[i])
		}
	}
}

func TestCalcCliff(t *testing.T) {
	heights := flatHeights(10)
	heights[0*testSize+1] = 14
	heights[2*testSize+1] = 3

	if got := CalcCliff(1, 1, heights, testSize); got != 7 {
		t.Fatalf("CalcCliff = %v, want 7", got)
	}
	if got := CalcCliff(0, 0, heights, testSize); got != 4 {
		t.Fatalf("corner CalcCliff = %v, want 4", got)
	}
	if got := CalcCliff(testSize, 0, heights, testSize); got != 0 {
		t.Fatalf("out of chunk column should report 0, got %v", got)
	}
	if got := CalcCliff(1, 1, nil, testSize); got != 0 {
		t.Fatalf("missing samples should report 0, got %v", got)
	}
}

func TestVariantsValidate(t *testing.T) {
	painters := map[string]*Painter{
		"generic":    Generic(material.Grass, material.Dirt),
		"desert":     Desert(),
		"jungle":     Jungle(),
		"mesa":       Mesa(70),
		"savanna":    Savanna(),
		"taiga":      Taiga(110),
		"mushroom":   Mushroom(),
		"ice plains": IcePlains(),
	}
	for name, p := range painters {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestValidateRejectsBrokenPainters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Painter)
	}{
		{"air top", func(p *Painter) { p.Top = material.Air }},
		{"water filler", func(p *Painter) { p.Filler = material.Water }},
		{"negative depth", func(p *Painter) { p.Depth = -1 }},
		{"inverted cliffs", func(p *Painter) { p.CliffSteep = p.CliffLow - 1 }},
		{"mix without width", func(p *Painter) { p.Mix = material.Podzol; p.MixWidth = 0 }},
		{"extra without material", func(p *Painter) { p.ExtraDepth = 2; p.Extra = material.Air }},
		{"air band", func(p *Painter) { p.Bands = []material.ID{material.Air} }},
		{"unknown kind", func(p *Painter) { p.Kind = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generic(material.Grass, material.Dirt)
			tt.mutate(p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidPainter) {
				t.Fatalf("expected ErrInvalidPainter, got %v", err)
			}
		})
	}
	var missing *Painter
	if err := missing.Validate(); !errors.Is(err, ErrInvalidPainter) {
		t.Fatalf("nil painter should be rejected, got %v", err)
	}
}
