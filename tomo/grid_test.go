package tomo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/tensor"
	"github.com/vedranaa/tomo-nf/tomo"
)

func TestGrid_ShapeAndCorners(t *testing.T) {
	backend := cpu.New()

	grid, err := tomo.Grid(3, 4, backend)
	require.NoError(t, err)
	require.True(t, grid.Shape().Equal(tensor.Shape{12, 2}))

	data := grid.Raw().AsFloat32()
	// First point (-1,-1), last point (1,1).
	assert.Equal(t, float32(-1), data[0])
	assert.Equal(t, float32(-1), data[1])
	assert.Equal(t, float32(1), data[len(data)-2])
	assert.Equal(t, float32(1), data[len(data)-1])
}

func TestGrid_RowMajorOrdering(t *testing.T) {
	backend := cpu.New()

	grid, err := tomo.Grid(2, 3, backend)
	require.NoError(t, err)

	data := grid.Raw().AsFloat32()
	// Second point keeps the first component, advances the second.
	assert.Equal(t, float32(-1), data[2])
	assert.Equal(t, float32(0), data[3])
	// Point 3 starts the second row.
	assert.Equal(t, float32(1), data[6])
	assert.Equal(t, float32(-1), data[7])
}

func TestGrid_EvenSpacing(t *testing.T) {
	backend := cpu.New()

	grid, err := tomo.Grid(5, 2, backend)
	require.NoError(t, err)

	data := grid.Raw().AsFloat32()
	want := []float32{-1, -0.5, 0, 0.5, 1}
	for r := 0; r < 5; r++ {
		assert.InDelta(t, want[r], data[2*(r*2)], 1e-6)
	}
}

func TestGrid_RejectsTooFewPoints(t *testing.T) {
	backend := cpu.New()

	_, err := tomo.Grid(1, 4, backend)
	assert.Error(t, err)
	_, err = tomo.Grid(4, 0, backend)
	assert.Error(t, err)
}
