package fluid

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Clock is an optional observer notified of how long each step phase
// takes, per spec.md §9's Design Notes: the core's contract does not
// include timing, it only calls into an injectable clock if one is set.
type Clock interface {
	ObservePhase(name string, d time.Duration)
}

// Diagnostics summarizes the last step's non-fatal conditions, per
// spec.md §7.
type Diagnostics struct {
	PressureIterations int
	PressureConverged  bool
	TrappedParticles   int
	RepairedParticles  int
}

// Solver is a FLIP/PIC fluid solver over an nx*ny*nz staggered MAC grid.
// It owns all grid and particle state; callers only ever borrow read-only
// views between calls to Step, per spec.md §5.
type Solver struct {
	grid *MACGrid
	dt   float64

	particles   []Particle
	orientation r3.Vec

	rng   *rand.Rand
	clock Clock

	fluidDensity float64
	picWeight    float64
	cgTolerance  float64
	cgMaxIter    int

	extrapolationUseMaxDim bool
	extrapolationDepth     int
	diagnostics            Diagnostics
}

// New constructs a solver over an nx*ny*nz grid of cell width dx with
// default timestep dt, per spec.md §6.1. dx and dt must be positive and
// nx,ny,nz >= 2.
func New(nx, ny, nz int, dx, dt float64) (*Solver, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("fluid: grid dimensions (%d,%d,%d) must each be >= 2", nx, ny, nz)
	}
	if dx <= 0 {
		return nil, fmt.Errorf("fluid: cell width dx=%v must be positive", dx)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("fluid: timestep dt=%v must be positive", dt)
	}

	return &Solver{
		grid:               NewMACGrid(nx, ny, nz, dx),
		dt:                 dt,
		orientation:        r3.Vec{X: 0, Y: -1, Z: 0},
		rng:                rand.New(rand.NewSource(1)),
		fluidDensity:       DefaultFluidDensity,
		picWeight:          DefaultPicWeight,
		cgTolerance:        DefaultCGTolerance,
		cgMaxIter:          DefaultCGMaxIter,
		extrapolationDepth: extrapolationDepth(nx, ny, nz, false),
	}, nil
}

// SetClock installs an optional per-phase timing observer.
func (s *Solver) SetClock(c Clock) { s.clock = c }

// SetSeed reseeds the deterministic jitter source used to scatter
// particles within their cell at Init, for reproducible tests.
func (s *Solver) SetSeed(seed int64) { s.rng = rand.New(rand.NewSource(seed)) }

// SetFluidDensity overrides the default water density used to scale the
// pressure projection, per spec.md §4.6. Takes effect on the next Step.
func (s *Solver) SetFluidDensity(density float64) { s.fluidDensity = density }

// SetPicWeight overrides the default PIC/FLIP blend weight, per spec.md
// §4.7. Takes effect on the next Step.
func (s *Solver) SetPicWeight(weight float64) { s.picWeight = weight }

// SetPressureSolverParams overrides the conjugate-gradient convergence
// tolerance and iteration cap applyPressure runs with, per spec.md §4.6.
func (s *Solver) SetPressureSolverParams(tolerance float64, maxIter int) {
	s.cgTolerance = tolerance
	s.cgMaxIter = maxIter
}

// SetExtrapolationUseMaxDim switches the velocity extrapolation depth
// between the default CFL-driven bound and the looser
// ceil(max(nx,ny,nz)) behavior, per spec.md §9's REDESIGN FLAGS.
func (s *Solver) SetExtrapolationUseMaxDim(useMaxDim bool) {
	s.extrapolationUseMaxDim = useMaxDim
	s.extrapolationDepth = extrapolationDepth(s.grid.NX, s.grid.NY, s.grid.NZ, useMaxDim)
}

// Init loads an initial geometry file, labels the grid, and seeds marker
// particles into every Fluid cell, per spec.md §6.2/§6.3.
func (s *Solver) Init(path string) error {
	nx, ny, nz := s.grid.NX, s.grid.NY, s.grid.NZ
	label, err := LoadGeometry(path, nx, ny, nz)
	if err != nil {
		return err
	}
	s.grid.Label = label
	s.particles = seedParticles(s.grid.Label, s.grid.Dx, s.rng)
	return nil
}

// UpdateOrientation sets the direction gravity pulls in; it takes effect
// on the next Step, per spec.md §6.3.
func (s *Solver) UpdateOrientation(v r3.Vec) {
	if n := r3.Norm(v); n > 1e-12 {
		s.orientation = r3.Scale(1/n, v)
	}
}

// Step advances the simulation by the configured dt, per spec.md §4.10.
func (s *Solver) Step() {
	s.timed("label", func() { labelGrid(s.grid, s.particles) })
	s.timed("particlesToGrid", func() { particlesToGrid(s.grid, s.particles) })
	s.timed("saveVelocityGrids", s.grid.saveVelocityGrids)
	s.timed("extrapolate1", s.extrapolateAll)
	s.timed("applyBodyForces", func() { applyBodyForces(s.grid, s.orientation, s.dt) })
	s.timed("applyPressure", func() {
		s.diagnostics.PressureIterations, s.diagnostics.PressureConverged =
			applyPressure(s.grid, s.dt, s.fluidDensity, s.cgTolerance, s.cgMaxIter)
	})
	s.timed("extrapolate2", s.extrapolateAll)
	s.timed("gridToParticles", func() { gridToParticles(s.grid, s.particles, s.picWeight) })
	s.timed("advectParticles", func() { advectParticles(s.grid, s.particles, s.dt) })
	s.timed("cleanupParticles", func() {
		s.diagnostics.RepairedParticles, s.diagnostics.TrappedParticles = 0, 0
		res := cleanupParticles(s.grid, s.particles, 3)
		s.diagnostics.RepairedParticles = res.Repaired
		s.diagnostics.TrappedParticles = res.Trapped
	})
}

func (s *Solver) extrapolateAll() {
	extrapolateGridFluidData(s.grid.U, s.grid.UKnown, s.extrapolationDepth)
	extrapolateGridFluidData(s.grid.V, s.grid.VKnown, s.extrapolationDepth)
	extrapolateGridFluidData(s.grid.W, s.grid.WKnown, s.extrapolationDepth)
}

func (s *Solver) timed(phase string, fn func()) {
	if s.clock == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	s.clock.ObservePhase(phase, time.Since(start))
}

// ParticleData returns a read-only copy of the current particle
// positions, per spec.md §6.3.
func (s *Solver) ParticleData() []r3.Vec {
	out := make([]r3.Vec, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.Pos
	}
	return out
}

// MeshData extracts and returns the current fluid surface, per spec.md
// §4.11/§6.3.
func (s *Solver) MeshData() Mesh3D {
	phi := NewGrid3(s.grid.NX, s.grid.NY, s.grid.NZ)
	nx, ny, nz := s.grid.Label.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				v := 1.0
				if s.grid.Label.At(i, j, k) == Fluid {
					v = -1.0
				}
				phi.Set(i, j, k, v)
			}
		}
	}
	return marchingCubes(phi, s.grid.Dx, SurfaceThreshold)
}

// GetGeometry borrows the current cell label field, per spec.md §6.3. The
// returned grid is invalidated by the next call to Step.
func (s *Solver) GetGeometry() *LabelGrid {
	return s.grid.Label
}

// Diagnostics reports the previous step's non-fatal conditions, per
// spec.md §7.
func (s *Solver) Diagnostics() Diagnostics {
	return s.diagnostics
}
