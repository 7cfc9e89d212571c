package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEmbeddedDefaultsAloneFailsValidation(t *testing.T) {
	// The embedded defaults deliberately leave geometry_path unset; a real
	// run always supplies an override file naming one.
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := []byte(`
grid:
  nx: 8
  ny: 8
  nz: 8
  dx: 0.2
  dt: 0.01
run:
  geometry_path: geom.txt
  steps: 5
output:
  particle_csv_path: p.csv
  timing_csv_path: t.csv
`)
	assert.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 8, cfg.Grid.NX)
	assert.Equal(t, 0.2, cfg.Grid.Dx)
	assert.Equal(t, "geom.txt", cfg.Run.GeometryPath)
	assert.Equal(t, 5, cfg.Run.Steps)
	// Not overridden in contents, so the embedded solver defaults stick.
	assert.Equal(t, 1000.0, cfg.Solver.Density)
	assert.Equal(t, 0.02, cfg.Solver.PicWeight)
}

func TestLoadOverridesSolverParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := []byte(`
grid:
  nx: 8
  ny: 8
  nz: 8
  dx: 0.2
  dt: 0.01
solver:
  density: 1.2
  pic_weight: 0.5
  cg_tolerance: 0.001
  cg_max_iter: 50
  extrapolation_use_max_dim: true
run:
  geometry_path: geom.txt
  steps: 5
`)
	assert.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 1.2, cfg.Solver.Density)
	assert.Equal(t, 0.5, cfg.Solver.PicWeight)
	assert.Equal(t, 0.001, cfg.Solver.CGTolerance)
	assert.Equal(t, 50, cfg.Solver.CGMaxIter)
	assert.True(t, cfg.Solver.ExtrapolationUseMaxDim)
}

func TestLoadRejectsInvalidSolverDensity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := []byte("grid:\n  nx: 8\n  ny: 8\n  nz: 8\n  dx: 0.1\n  dt: 0.01\nsolver:\n  density: -1\n  pic_weight: 0.02\n  cg_tolerance: 0.00001\n  cg_max_iter: 200\nrun:\n  geometry_path: g.txt\n")
	assert.NoError(t, os.WriteFile(path, contents, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPicWeight(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := []byte("grid:\n  nx: 8\n  ny: 8\n  nz: 8\n  dx: 0.1\n  dt: 0.01\nsolver:\n  density: 1000\n  pic_weight: 1.5\n  cg_tolerance: 0.00001\n  cg_max_iter: 200\nrun:\n  geometry_path: g.txt\n")
	assert.NoError(t, os.WriteFile(path, contents, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/scene.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidGridDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	contents := []byte("grid:\n  nx: 1\n  ny: 8\n  nz: 8\n  dx: 0.1\n  dt: 0.01\nrun:\n  geometry_path: g.txt\n")
	assert.NoError(t, os.WriteFile(path, contents, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
