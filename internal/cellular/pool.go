// Package cellular implements a toroidal cellular (Voronoi) point field: a
// well separated pool of points on the unit torus, deterministic per-cell
// subsets of that pool, and nearest/second-nearest distance queries.
package cellular

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig wraps every configuration rejected by Config.Validate.
var ErrInvalidConfig = errors.New("cellular: invalid configuration")

// MaxToroidalDistanceSquared is the largest squared distance two points can
// have on the unit torus.
const MaxToroidalDistanceSquared = 0.5

type Config struct {
	PoolSize           int
	SubsetSize         int
	MinDistanceSquared float64
	// MaxAttempts bounds the draws spent on a single point before the
	// separation threshold is halved.
	MaxAttempts int
}

func DefaultConfig() Config {
	return Config{
		PoolSize:           100,
		SubsetSize:         25,
		MinDistanceSquared: 0.005,
		MaxAttempts:        20000,
	}
}

func (c Config) Validate() error {
	switch {
	case c.PoolSize < 2:
		return fmt.Errorf("%w: pool size %d is below 2", ErrInvalidConfig, c.PoolSize)
	case c.SubsetSize < 2:
		return fmt.Errorf("%w: subset size %d is below 2", ErrInvalidConfig, c.SubsetSize)
	case c.SubsetSize > c.PoolSize:
		return fmt.Errorf("%w: subset size %d exceeds pool size %d", ErrInvalidConfig, c.SubsetSize, c.PoolSize)
	case math.IsNaN(c.MinDistanceSquared) || c.MinDistanceSquared <= 0:
		return fmt.Errorf("%w: minimum distance squared %v must be positive", ErrInvalidConfig, c.MinDistanceSquared)
	case c.MinDistanceSquared > MaxToroidalDistanceSquared:
		return fmt.Errorf("%w: minimum distance squared %v exceeds the torus maximum %v", ErrInvalidConfig, c.MinDistanceSquared, MaxToroidalDistanceSquared)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: max attempts %d must be positive", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

// Pool is an immutable set of points on the unit torus.
type Pool struct {
	points    []mgl64.Vec2
	threshold float64
}

// GeneratePool draws cfg.PoolSize points by rejection sampling from two
// independent streams seeded from seed. A candidate is accepted when its
// toroidal distance squared to every accepted point reaches the threshold.
// When a point exhausts its attempt budget the threshold is halved, so
// infeasible densities still terminate; Threshold reports the value in force
// at the end.
func GeneratePool(seed int64, cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	xs := rand.New(rand.NewPCG(uint64(seed), 0x9E3779B97F4A7C15))
	ys := rand.New(rand.NewPCG(uint64(seed), 0xD1B54A32D192ED03))

	points := make([]mgl64.Vec2, 0, cfg.PoolSize)
	threshold := cfg.MinDistanceSquared
	attempts := 0
	for len(points) < cfg.PoolSize {
		candidate := mgl64.Vec2{xs.Float64(), ys.Float64()}
		if separated(points, candidate, threshold) {
			points = append(points, candidate)
			attempts = 0
			continue
		}
		attempts++
		if attempts >= cfg.MaxAttempts {
			threshold /= 2
			attempts = 0
		}
	}

	return &Pool{points: points, threshold: threshold}, nil
}

func separated(points []mgl64.Vec2, candidate mgl64.Vec2, threshold float64) bool {
	for _, p := range points {
		if ToroidalDistanceSquared(p, candidate) < threshold {
			return false
		}
	}
	return true
}

// ToroidalDistanceSquared measures the squared distance between a and b on
// the unit torus. Both points must lie in [0, 1).
func ToroidalDistanceSquared(a, b mgl64.Vec2) float64 {
	dx := math.Abs(a.X() - b.X())
	dy := math.Abs(a.Y() - b.Y())
	if dx > 0.5 {
		dx = 1 - dx
	}
	if dy > 0.5 {
		dy = 1 - dy
	}
	return dx*dx + dy*dy
}

func (p *Pool) Len() int { return len(p.points) }

// Threshold is the separation every pair of pool points satisfies.
func (p *Pool) Threshold() float64 { return p.threshold }

// Point returns the i-th pool point.
func (p *Pool) Point(i int) mgl64.Vec2 { return p.points[i] }

// Points returns a copy of the pool.
func (p *Pool) Points() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.points))
	copy(out, p.points)
	return out
}
