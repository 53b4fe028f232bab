package terrain

import (
	"testing"

	"voxelterrain/internal/biome"
)

func TestSelectorPicksBiome(t *testing.T) {
	registry, err := biome.DefaultRegistry(62)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  octaveNoise
		want int
	}{
		{name: "deep water", src: octaveNoise{octaveContinent: -0.6}, want: biome.IDOcean},
		{name: "coast", src: octaveNoise{octaveContinent: oceanLevel + beachWidth/2}, want: biome.IDBeach},
		{name: "hot and dry", src: octaveNoise{octaveContinent: 0.5, octaveTemperature: 1, octaveRainfall: -1}, want: biome.IDDesert},
		{name: "cold", src: octaveNoise{octaveContinent: 0.5, octaveTemperature: -1.0 / 1.5, octaveRainfall: -0.2}, want: biome.IDTaiga},
		{name: "temperate", src: octaveNoise{octaveContinent: 0.5, octaveTemperature: 0.2, octaveRainfall: -0.2}, want: biome.IDPlains},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSelector(tt.src, registry, 320)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.At(5, 7); got.ID != tt.want {
				t.Fatalf("At = %s, want id %d", got.Name, tt.want)
			}
		})
	}
}

func TestSelectorRespectsWeights(t *testing.T) {
	registry, err := biome.DefaultRegistry(62)
	if err != nil {
		t.Fatal(err)
	}
	src := octaveNoise{octaveContinent: 0.5, octaveTemperature: 1, octaveRainfall: -1}

	noDesert, err := registry.WithWeights(map[string]float64{"desert": 0})
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSelector(src, noDesert, 320)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.At(0, 0); got.ID != biome.IDMesa {
		t.Fatalf("with desert disabled the closest climate is mesa, got %s", got.Name)
	}
}

func TestSelectorClimateRange(t *testing.T) {
	registry, err := biome.DefaultRegistry(62)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSelector(octaveNoise{octaveTemperature: -1, octaveRainfall: 1}, registry, 320)
	if err != nil {
		t.Fatal(err)
	}
	if temp, rain := s.Climate(0, 0); temp != -1 || rain != 1 {
		t.Fatalf("Climate = %v, %v", temp, rain)
	}
}

func TestSelectorWithoutOceanNeverPicksEdge(t *testing.T) {
	plains, ok := mustRegistry(t).Biome(biome.IDPlains)
	if !ok {
		t.Fatal("plains missing")
	}
	beach, _ := mustRegistry(t).Biome(biome.IDBeach)
	registry, err := biome.NewRegistry(*plains, *beach)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSelector(octaveNoise{octaveContinent: -0.9}, registry, 320)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.At(0, 0); got.ID != biome.IDPlains {
		t.Fatalf("without an ocean biome every column is inland, got %s", got.Name)
	}

	edgeOnly, err := biome.NewRegistry(*beach)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSelector(octaveNoise{}, edgeOnly, 320); err == nil {
		t.Fatal("expected error for registry without selectable biomes")
	}
}

func mustRegistry(t *testing.T) *biome.Registry {
	t.Helper()
	registry, err := biome.DefaultRegistry(62)
	if err != nil {
		t.Fatal(err)
	}
	return registry
}
