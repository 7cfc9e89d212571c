package fluid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func writeGeometryFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geom.txt")
	assert.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	_, err := New(1, 4, 4, 0.1, 0.01)
	assert.Error(t, err)

	_, err = New(4, 4, 4, 0, 0.01)
	assert.Error(t, err)

	_, err = New(4, 4, 4, 0.1, 0)
	assert.Error(t, err)

	s, err := New(4, 4, 4, 0.1, 0.01)
	assert.NoError(t, err)
	assert.NotNil(t, s)
}

func TestUpdateOrientationNormalizes(t *testing.T) {
	s, err := New(4, 4, 4, 1, 0.01)
	assert.NoError(t, err)
	s.UpdateOrientation(r3.Vec{X: 0, Y: 0, Z: 5})
	assert.InDelta(t, 1.0, r3.Norm(s.orientation), 1e-9)
	assert.InDelta(t, 1.0, s.orientation.Z, 1e-9)
}

func TestUpdateOrientationIgnoresZeroVector(t *testing.T) {
	s, err := New(4, 4, 4, 1, 0.01)
	assert.NoError(t, err)
	before := s.orientation
	s.UpdateOrientation(r3.Vec{})
	assert.Equal(t, before, s.orientation)
}

func TestInitSeedsParticlesFromGeometry(t *testing.T) {
	text := strings.Join([]string{
		"sss",
		"sss",
		"sss",
		"",
		"sss",
		"sfs",
		"sss",
		"",
		"sss",
		"sss",
		"sss",
	}, "\n")
	path := writeGeometryFile(t, text)

	s, err := New(3, 3, 3, 1, 0.01)
	assert.NoError(t, err)
	assert.NoError(t, s.Init(path))
	assert.Len(t, s.ParticleData(), ParticlesPerCell)
	assert.Equal(t, Fluid, s.GetGeometry().At(1, 1, 1))
}

func TestStepRunsEndToEndWithoutPanicking(t *testing.T) {
	text := strings.Join([]string{
		"sssss",
		"sssss",
		"sssss",
		"sssss",
		"sssss",
		"",
		"sssss",
		"sffss",
		"sffss",
		"sssss",
		"sssss",
		"",
		"sssss",
		"sssss",
		"sssss",
		"sssss",
		"sssss",
	}, "\n")
	path := writeGeometryFile(t, text)

	s, err := New(5, 5, 3, 0.1, 0.005)
	assert.NoError(t, err)
	assert.NoError(t, s.Init(path))

	assert.NotPanics(t, func() { s.Step() })

	diag := s.Diagnostics()
	assert.GreaterOrEqual(t, diag.PressureIterations, 0)
	assert.GreaterOrEqual(t, diag.TrappedParticles, 0)
	assert.GreaterOrEqual(t, diag.RepairedParticles, 0)
}

func TestMeshDataReturnsTriangulatedSurface(t *testing.T) {
	text := strings.Join([]string{
		"sss",
		"sss",
		"sss",
		"",
		"sss",
		"sfs",
		"sss",
		"",
		"sss",
		"sss",
		"sss",
	}, "\n")
	path := writeGeometryFile(t, text)

	s, err := New(3, 3, 3, 1, 0.01)
	assert.NoError(t, err)
	assert.NoError(t, s.Init(path))

	mesh := s.MeshData()
	assert.NotEmpty(t, mesh.Vertices)
	assert.Equal(t, 0, len(mesh.Indices)%3)
}

type recordingClock struct {
	phases []string
}

func (c *recordingClock) ObservePhase(name string, _ time.Duration) {
	c.phases = append(c.phases, name)
}

func TestStepNotifiesInstalledClock(t *testing.T) {
	text := strings.Join([]string{
		"sss",
		"sss",
		"sss",
		"",
		"sss",
		"sfs",
		"sss",
		"",
		"sss",
		"sss",
		"sss",
	}, "\n")
	path := writeGeometryFile(t, text)

	s, err := New(3, 3, 3, 1, 0.01)
	assert.NoError(t, err)
	assert.NoError(t, s.Init(path))

	clock := &recordingClock{}
	s.SetClock(clock)
	s.Step()

	assert.Contains(t, clock.phases, "applyPressure")
	assert.Contains(t, clock.phases, "advectParticles")
}
