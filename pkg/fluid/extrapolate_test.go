package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtrapolateGridFluidDataFillsByLayer(t *testing.T) {
	g := NewGrid3(6, 1, 1)
	known := NewBoolGrid3(6, 1, 1)
	g.Set(2, 0, 0, 10)
	known.Set(2, 0, 0, true)

	extrapolateGridFluidData(g, known, 2)

	assert.Equal(t, 10.0, g.At(1, 0, 0), "layer 1 neighbor picks up the known value")
	assert.Equal(t, 10.0, g.At(3, 0, 0), "layer 1 neighbor on the other side too")
	assert.Equal(t, 10.0, g.At(0, 0, 0), "layer 2 neighbor reached within depth")
	assert.False(t, known.At(5, 0, 0), "outside the requested depth stays unknown")
}

func TestExtrapolateGridFluidDataStopsWhenNoProgress(t *testing.T) {
	g := NewGrid3(3, 1, 1)
	known := NewBoolGrid3(3, 1, 1)
	// Nothing known at all: no face can ever touch a previous layer.
	assert.NotPanics(t, func() { extrapolateGridFluidData(g, known, 5) })
	for i := 0; i < 3; i++ {
		assert.False(t, known.At(i, 0, 0))
	}
}

func TestExtrapolationDepthDefaultsToTighterBound(t *testing.T) {
	assert.Equal(t, int(AdvectMaxCellsPerSubstep)+1, extrapolationDepth(50, 4, 4, false))
	assert.Equal(t, 50, extrapolationDepth(50, 4, 4, true))
}
