package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the tunable parameters of the terrain generator.
type Config struct {
	World    WorldConfig    `yaml:"world" json:"world"`
	Noise    NoiseConfig    `yaml:"noise" json:"noise"`
	Cellular CellularConfig `yaml:"cellular" json:"cellular"`
	Terrain  TerrainConfig  `yaml:"terrain" json:"terrain"`
	Preview  PreviewConfig  `yaml:"preview" json:"preview"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

type WorldConfig struct {
	Seed      int64 `yaml:"seed" json:"seed"`
	Height    int   `yaml:"height" json:"height"`       // voxels per column
	SeaLevel  int   `yaml:"sea_level" json:"seaLevel"`  // highest water voxel
	ChunkSize int   `yaml:"chunk_size" json:"chunkSize"` // columns per chunk axis
}

type NoiseConfig struct {
	Backend string `yaml:"backend" json:"backend"` // "simplex" or "perlin"
	Octaves int    `yaml:"octaves" json:"octaves"`
}

type CellularConfig struct {
	PoolSize           int     `yaml:"pool_size" json:"poolSize"`
	SubsetSize         int     `yaml:"subset_size" json:"subsetSize"`
	MinDistanceSquared float64 `yaml:"min_distance_squared" json:"minDistanceSquared"`
	MaxAttempts        int     `yaml:"max_attempts" json:"maxAttempts"` // per point before relaxing
}

type TerrainConfig struct {
	Workers         int                `yaml:"workers" json:"workers"`
	BiomeScale      float64            `yaml:"biome_scale" json:"biomeScale"`
	RiverWavelength float64            `yaml:"river_wavelength" json:"riverWavelength"`
	RiverWidth      float64            `yaml:"river_width" json:"riverWidth"`
	LakeWavelength  float64            `yaml:"lake_wavelength" json:"lakeWavelength"`
	BlendRadius     int                `yaml:"blend_radius" json:"blendRadius"`
	BiomeWeights    map[string]float64 `yaml:"biome_weights" json:"biomeWeights"`
}

type PreviewConfig struct {
	OutputDir string `yaml:"output_dir" json:"outputDir"`
	Scale     int    `yaml:"scale" json:"scale"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"maxSizeMb"`
	MaxBackups int    `yaml:"max_backups" json:"maxBackups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"maxAgeDays"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Load reads configuration from a YAML or JSON file. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := checkSchema(data); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		err = json.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:      1337,
			Height:    256,
			SeaLevel:  62,
			ChunkSize: 16,
		},
		Noise: NoiseConfig{
			Backend: "simplex",
			Octaves: 6,
		},
		Cellular: CellularConfig{
			PoolSize:           100,
			SubsetSize:         25,
			MinDistanceSquared: 0.005,
			MaxAttempts:        20000,
		},
		Terrain: TerrainConfig{
			Workers:         0,
			BiomeScale:      320,
			RiverWavelength: 480,
			RiverWidth:      0.06,
			LakeWavelength:  96,
			BlendRadius:     2,
			BiomeWeights:    map[string]float64{},
		},
		Preview: PreviewConfig{
			OutputDir: "preview",
			Scale:     2,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

func (c *Config) Validate() error {
	if c.World.Height <= 0 {
		return errors.New("world.height must be positive")
	}
	if c.World.SeaLevel < 0 || c.World.SeaLevel >= c.World.Height {
		return errors.New("world.sea_level must be within [0, world.height)")
	}
	if c.World.ChunkSize <= 0 {
		return errors.New("world.chunk_size must be positive")
	}
	if c.Noise.Octaves < 3 {
		return errors.New("noise.octaves must be at least 3")
	}
	if c.Cellular.PoolSize < 2 {
		return errors.New("cellular.pool_size must be at least 2")
	}
	if c.Cellular.SubsetSize < 2 || c.Cellular.SubsetSize > c.Cellular.PoolSize {
		return errors.New("cellular.subset_size must be within [2, cellular.pool_size]")
	}
	if !(c.Cellular.MinDistanceSquared > 0 && c.Cellular.MinDistanceSquared <= 0.5) {
		return errors.New("cellular.min_distance_squared must be within (0, 0.5]")
	}
	if c.Cellular.MaxAttempts <= 0 {
		return errors.New("cellular.max_attempts must be positive")
	}
	if c.Terrain.Workers < 0 {
		return errors.New("terrain.workers cannot be negative")
	}
	if !positive(c.Terrain.BiomeScale) {
		return errors.New("terrain.biome_scale must be positive")
	}
	if !positive(c.Terrain.RiverWavelength) {
		return errors.New("terrain.river_wavelength must be positive")
	}
	if c.Terrain.RiverWidth < 0 || c.Terrain.RiverWidth >= 1 || math.IsNaN(c.Terrain.RiverWidth) {
		return errors.New("terrain.river_width must be within [0, 1)")
	}
	if !positive(c.Terrain.LakeWavelength) {
		return errors.New("terrain.lake_wavelength must be positive")
	}
	if c.Terrain.BlendRadius < 0 || c.Terrain.BlendRadius > 4 {
		return errors.New("terrain.blend_radius must be within [0, 4]")
	}
	for name, weight := range c.Terrain.BiomeWeights {
		if weight < 0 || math.IsNaN(weight) {
			return fmt.Errorf("terrain.biome_weights[%s] cannot be negative", name)
		}
	}
	if c.Preview.Scale <= 0 {
		return errors.New("preview.scale must be positive")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
