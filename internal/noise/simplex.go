package noise

import "github.com/ojrac/opensimplex-go"

// Simplex is an OpenSimplex backed Source with one generator per octave.
type Simplex struct {
	layers  []opensimplex.Noise
	jitterX opensimplex.Noise
	jitterY opensimplex.Noise
}

func NewSimplex(seed int64, octaves int) *Simplex {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	s := &Simplex{
		layers:  make([]opensimplex.Noise, octaves),
		jitterX: opensimplex.New(seed ^ 0x5DEECE66D),
		jitterY: opensimplex.New(seed ^ 0x2545F491),
	}
	for i := range s.layers {
		s.layers[i] = opensimplex.New(seed + int64(i)*7919)
	}
	return s
}

func (s *Simplex) Sample(octave int, x, y float64) float64 {
	return bounded(s.layers[layer(octave, len(s.layers))].Eval2(x, y))
}

func (s *Simplex) Sample3(octave int, x, y, z float64) float64 {
	return bounded(s.layers[layer(octave, len(s.layers))].Eval3(x, y, z))
}

func (s *Simplex) Displacement(x, y float64) (float64, float64) {
	return bounded(s.jitterX.Eval2(x, y)), bounded(s.jitterY.Eval2(x, y))
}

func (s *Simplex) Ground(x, y float64) float64 {
	return ground(s, x, y)
}
