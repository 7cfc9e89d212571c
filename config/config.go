// Package config loads the YAML scene configuration for a headless run of
// the fluid solver: grid sizing, timestep, geometry path, and run length.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds everything a headless run needs to construct and drive a
// solver.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Solver SolverConfig `yaml:"solver"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
}

// GridConfig mirrors the solver's constructor arguments, per spec.md §6.1.
type GridConfig struct {
	NX int     `yaml:"nx"`
	NY int     `yaml:"ny"`
	NZ int     `yaml:"nz"`
	Dx float64 `yaml:"dx"`
	Dt float64 `yaml:"dt"`
}

// SolverConfig overrides the Solver's numerical defaults, per spec.md §4.6/
// §4.7 and §9's REDESIGN FLAGS decision to make the extrapolation depth
// mode configurable. Fields a scene file leaves unset keep the embedded
// defaults; an explicit zero density, tolerance, or iteration cap is
// rejected by validation.
type SolverConfig struct {
	Density                float64 `yaml:"density"`
	PicWeight              float64 `yaml:"pic_weight"`
	CGTolerance            float64 `yaml:"cg_tolerance"`
	CGMaxIter              int     `yaml:"cg_max_iter"`
	ExtrapolationUseMaxDim bool    `yaml:"extrapolation_use_max_dim"`
}

// RunConfig controls how many steps a headless run takes and where its
// initial geometry comes from.
type RunConfig struct {
	GeometryPath string  `yaml:"geometry_path"`
	Steps        int     `yaml:"steps"`
	OrientationX float64 `yaml:"orientation_x"`
	OrientationY float64 `yaml:"orientation_y"`
	OrientationZ float64 `yaml:"orientation_z"`
	Seed         int64   `yaml:"seed"`
}

// OutputConfig names the two CSV output streams spec.md §6.4 describes as
// thin, out-of-core collaborators.
type OutputConfig struct {
	ParticleCSVPath string `yaml:"particle_csv_path"`
	TimingCSVPath   string `yaml:"timing_csv_path"`
}

// Load reads configuration from path, falling back to the embedded
// defaults for any field the file doesn't set. An empty path uses the
// embedded defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %q: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Grid.NX < 2 || c.Grid.NY < 2 || c.Grid.NZ < 2 {
		return fmt.Errorf("config: grid dimensions (%d,%d,%d) must each be >= 2", c.Grid.NX, c.Grid.NY, c.Grid.NZ)
	}
	if c.Grid.Dx <= 0 {
		return fmt.Errorf("config: grid.dx=%v must be positive", c.Grid.Dx)
	}
	if c.Grid.Dt <= 0 {
		return fmt.Errorf("config: grid.dt=%v must be positive", c.Grid.Dt)
	}
	if c.Run.GeometryPath == "" {
		return fmt.Errorf("config: run.geometry_path must be set")
	}
	if c.Run.Steps < 0 {
		return fmt.Errorf("config: run.steps=%d must be >= 0", c.Run.Steps)
	}
	if c.Solver.Density <= 0 {
		return fmt.Errorf("config: solver.density=%v must be positive", c.Solver.Density)
	}
	if c.Solver.PicWeight < 0 || c.Solver.PicWeight > 1 {
		return fmt.Errorf("config: solver.pic_weight=%v must be in [0,1]", c.Solver.PicWeight)
	}
	if c.Solver.CGTolerance <= 0 {
		return fmt.Errorf("config: solver.cg_tolerance=%v must be positive", c.Solver.CGTolerance)
	}
	if c.Solver.CGMaxIter <= 0 {
		return fmt.Errorf("config: solver.cg_max_iter=%d must be positive", c.Solver.CGMaxIter)
	}
	return nil
}
