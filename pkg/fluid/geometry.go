package fluid

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// LoadGeometry parses an initial geometry text file per spec.md §6.2: nz
// frames (one per z-layer) of ny lines of nx characters, frames separated
// by one or more blank lines. 's' is Solid, 'f' is Fluid, 'a' is Air.
// Returns a config error if the file is unreadable, its dimensions don't
// match nx/ny/nz, or its outermost layer on any axis isn't entirely Solid.
func LoadGeometry(path string, nx, ny, nz int) (*LabelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fluid: opening geometry file %q: %w", path, err)
	}
	defer f.Close()

	grid, err := parseGeometry(f, nx, ny, nz)
	if err != nil {
		return nil, fmt.Errorf("fluid: geometry file %q: %w", path, err)
	}
	return grid, nil
}

func parseGeometry(r io.Reader, nx, ny, nz int) (*LabelGrid, error) {
	scanner := bufio.NewScanner(r)

	grid := NewLabelGrid(nx, ny, nz)
	k := 0
	j := 0
	sawRowThisFrame := false

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if sawRowThisFrame {
				if j != ny {
					return nil, fmt.Errorf("frame %d has %d rows, want %d", k, j, ny)
				}
				k++
				j = 0
				sawRowThisFrame = false
			}
			continue
		}
		if k >= nz {
			return nil, fmt.Errorf("too many frames, want %d", nz)
		}
		if len(line) != nx {
			return nil, fmt.Errorf("frame %d row %d has %d columns, want %d", k, j, len(line), nx)
		}
		if j >= ny {
			return nil, fmt.Errorf("frame %d has more than %d rows", k, ny)
		}
		for i, ch := range line {
			label, err := labelFromChar(byte(ch))
			if err != nil {
				return nil, fmt.Errorf("frame %d row %d col %d: %w", k, j, i, err)
			}
			grid.Set(i, j, k, label)
		}
		j++
		sawRowThisFrame = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if sawRowThisFrame {
		if j != ny {
			return nil, fmt.Errorf("frame %d has %d rows, want %d", k, j, ny)
		}
		k++
	}
	if k != nz {
		return nil, fmt.Errorf("found %d frames, want %d", k, nz)
	}

	if err := checkSolidShell(grid, nx, ny, nz); err != nil {
		return nil, err
	}
	return grid, nil
}

func labelFromChar(ch byte) (Label, error) {
	switch ch {
	case 's', 'S':
		return Solid, nil
	case 'f', 'F':
		return Fluid, nil
	case 'a', 'A':
		return Air, nil
	default:
		return 0, fmt.Errorf("unrecognized cell character %q", ch)
	}
}

// checkSolidShell verifies that every cell in the outermost layer on each
// axis is Solid, per spec.md §6.2.
func checkSolidShell(grid *LabelGrid, nx, ny, nz int) error {
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				onShell := i == 0 || i == nx-1 || j == 0 || j == ny-1 || k == 0 || k == nz-1
				if onShell && grid.At(i, j, k) != Solid {
					return fmt.Errorf("boundary cell (%d,%d,%d) is not Solid", i, j, k)
				}
			}
		}
	}
	return nil
}
