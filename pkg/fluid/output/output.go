// Package output implements the two thin CSV collaborators spec.md §6.4
// names as external to the core: per-step particle positions, and mean
// per-phase step timings. Neither is part of the solver itself.
package output

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParticleRow is one marker particle's position at one step, the unit
// gocsv marshals for the particle CSV stream.
type ParticleRow struct {
	Step int     `csv:"step"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
	Z    float64 `csv:"z"`
}

// ParticleWriter appends one block of particle positions per step to a
// CSV file, writing the header once.
type ParticleWriter struct {
	f             *os.File
	headerWritten bool
}

// NewParticleWriter creates (or truncates) the file at path for particle
// output.
func NewParticleWriter(path string) (*ParticleWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: creating %q: %w", path, err)
	}
	return &ParticleWriter{f: f}, nil
}

// WriteStep appends one step's particle positions.
func (w *ParticleWriter) WriteStep(step int, positions []r3.Vec) error {
	rows := make([]ParticleRow, len(positions))
	for i, p := range positions {
		rows[i] = ParticleRow{Step: step, X: p.X, Y: p.Y, Z: p.Z}
	}
	if !w.headerWritten {
		if err := gocsv.Marshal(rows, w.f); err != nil {
			return fmt.Errorf("output: writing particle rows: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, w.f); err != nil {
		return fmt.Errorf("output: writing particle rows: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *ParticleWriter) Close() error { return w.f.Close() }

// PhaseTiming is the mean duration of one step phase over a run, the unit
// gocsv marshals for the timing CSV stream.
type PhaseTiming struct {
	Phase        string  `csv:"phase"`
	Calls        int     `csv:"calls"`
	MeanDuration float64 `csv:"mean_duration_seconds"`
}

// TimingRecorder implements fluid.Clock by accumulating per-phase
// durations across a run, then summarizing them as a mean-duration CSV.
type TimingRecorder struct {
	totals map[string]time.Duration
	calls  map[string]int
	order  []string
}

// NewTimingRecorder returns an empty recorder.
func NewTimingRecorder() *TimingRecorder {
	return &TimingRecorder{
		totals: make(map[string]time.Duration),
		calls:  make(map[string]int),
	}
}

// ObservePhase implements fluid.Clock.
func (t *TimingRecorder) ObservePhase(name string, d time.Duration) {
	if _, seen := t.totals[name]; !seen {
		t.order = append(t.order, name)
	}
	t.totals[name] += d
	t.calls[name]++
}

// WriteCSV writes one row per observed phase to path.
func (t *TimingRecorder) WriteCSV(path string) error {
	rows := make([]PhaseTiming, 0, len(t.order))
	for _, name := range t.order {
		calls := t.calls[name]
		mean := 0.0
		if calls > 0 {
			mean = t.totals[name].Seconds() / float64(calls)
		}
		rows = append(rows, PhaseTiming{Phase: name, Calls: calls, MeanDuration: mean})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %q: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("output: writing timing rows: %w", err)
	}
	return nil
}
