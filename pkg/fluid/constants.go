package fluid

// Physical and numerical constants named in spec.md §9 (Design Notes) and
// carried over from the original solver's defaults. The ones a scene
// configuration can override (DefaultPicWeight, DefaultFluidDensity,
// DefaultCGTolerance, DefaultCGMaxIter) are the Solver's starting values,
// not fixed limits — see config.SolverConfig and Solver's setters.
const (
	// DefaultPicWeight blends FLIP (1-w) and PIC (w) velocity updates,
	// spec.md §4.7.
	DefaultPicWeight = 0.02

	// AdvectMaxCellsPerSubstep bounds how far a particle may travel, in
	// grid cells, within a single RK3 substep, spec.md §4.8.
	AdvectMaxCellsPerSubstep = 1.0

	// GravityMagnitude is the default body-force magnitude, m/s^2,
	// spec.md §4.5.
	GravityMagnitude = 9.81

	// DefaultFluidDensity scales the pressure system's right-hand side and
	// the velocity correction in applyPressure, spec.md §4.6.
	DefaultFluidDensity = 1000.0

	// SurfaceThreshold is the level-set isovalue marching cubes extracts,
	// spec.md §4.11.
	SurfaceThreshold = 0.0

	// DefaultCGTolerance and DefaultCGMaxIter bound the Jacobi-preconditioned
	// conjugate gradient solve applyPressure runs every step, spec.md §4.6
	// and §9's REDESIGN FLAGS decision to use a Jacobi rather than MIC
	// preconditioner.
	DefaultCGTolerance = 1e-5
	DefaultCGMaxIter   = 200
)
