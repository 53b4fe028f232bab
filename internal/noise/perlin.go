package noise

import "github.com/aquilax/go-perlin"

const (
	perlinAlpha      = 2.0
	perlinBeta       = 2.0
	perlinIterations = 3
)

// Perlin is a classic gradient noise Source. It is slightly rougher than
// Simplex and mostly useful for comparing terrain between backends.
type Perlin struct {
	layers  []*perlin.Perlin
	jitterX *perlin.Perlin
	jitterY *perlin.Perlin
}

func NewPerlin(seed int64, octaves int) *Perlin {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	p := &Perlin{
		layers:  make([]*perlin.Perlin, octaves),
		jitterX: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinIterations, seed^0x5DEECE66D),
		jitterY: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinIterations, seed^0x2545F491),
	}
	for i := range p.layers {
		p.layers[i] = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinIterations, seed+int64(i)*7919)
	}
	return p
}

func (p *Perlin) Sample(octave int, x, y float64) float64 {
	return bounded(p.layers[layer(octave, len(p.layers))].Noise2D(x, y))
}

func (p *Perlin) Sample3(octave int, x, y, z float64) float64 {
	return bounded(p.layers[layer(octave, len(p.layers))].Noise3D(x, y, z))
}

func (p *Perlin) Displacement(x, y float64) (float64, float64) {
	return bounded(p.jitterX.Noise2D(x, y)), bounded(p.jitterY.Noise2D(x, y))
}

func (p *Perlin) Ground(x, y float64) float64 {
	return ground(p, x, y)
}
