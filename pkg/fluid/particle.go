package fluid

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// ParticlesPerCell is the number of marker particles seeded per Fluid cell
// at init, per spec.md §3's Lifecycle.
const ParticlesPerCell = 8

// Particle is a massless marker carried by the flow: a position and a
// velocity, per spec.md §3's Particle type. There is no identity beyond
// position in this slice; particles are never created or destroyed after
// init in the base design (spec.md §8 property 1).
type Particle struct {
	Pos r3.Vec
	Vel r3.Vec
}

// seedParticles emits ParticlesPerCell particles at jittered positions
// within each Fluid cell of the label grid, per spec.md §3 and §6.3's
// init() contract. rng supplies the jitter so seeding is reproducible
// when the caller seeds it deterministically.
func seedParticles(label *LabelGrid, dx float64, rng *rand.Rand) []Particle {
	nx, ny, nz := label.Dims()
	particles := make([]Particle, 0, nx*ny*nz*ParticlesPerCell)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if label.At(i, j, k) != Fluid {
					continue
				}
				base := r3.Vec{X: float64(i) * dx, Y: float64(j) * dx, Z: float64(k) * dx}
				for n := 0; n < ParticlesPerCell; n++ {
					jitter := r3.Vec{
						X: rng.Float64() * dx,
						Y: rng.Float64() * dx,
						Z: rng.Float64() * dx,
					}
					particles = append(particles, Particle{
						Pos: r3.Add(base, jitter),
						Vel: r3.Vec{},
					})
				}
			}
		}
	}
	return particles
}
