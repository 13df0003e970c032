package tomo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/tensor"
	"github.com/vedranaa/tomo-nf/tomo"
)

// offCenterBlob builds an n x n image of a smooth bump away from the
// center, so projections depend on the viewing angle.
func offCenterBlob(n int) *mat.Dense {
	img := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		x := -1 + 2*float64(r)/float64(n-1)
		for c := 0; c < n; c++ {
			y := -1 + 2*float64(c)/float64(n-1)
			dx, dy := x-0.3, y+0.2
			img.Set(r, c, math.Exp(-(dx*dx+dy*dy)/0.1))
		}
	}
	return img
}

func evalAt(t *testing.T, f *tomo.ImageField[*cpu.Backend], backend *cpu.Backend, x, y float32) float32 {
	t.Helper()
	coords, err := tensor.FromSlice([]float32{x, y}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	return f.Eval(coords).Item()
}

func TestImageField_CornersAndCenter(t *testing.T) {
	backend := cpu.New()

	img := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
	f, err := tomo.NewImageField(img, backend)
	require.NoError(t, err)

	assert.InDelta(t, 1, float64(evalAt(t, f, backend, -1, -1)), 1e-6)
	assert.InDelta(t, 2, float64(evalAt(t, f, backend, -1, 1)), 1e-6)
	assert.InDelta(t, 3, float64(evalAt(t, f, backend, 1, -1)), 1e-6)
	assert.InDelta(t, 4, float64(evalAt(t, f, backend, 1, 1)), 1e-6)
	// Center is the average of all four corners.
	assert.InDelta(t, 2.5, float64(evalAt(t, f, backend, 0, 0)), 1e-6)
}

func TestImageField_FirstAxisIsFirstComponent(t *testing.T) {
	backend := cpu.New()

	// Value varies only along the row axis.
	img := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
	})
	f, err := tomo.NewImageField(img, backend)
	require.NoError(t, err)

	// Moving the first coordinate moves across rows.
	assert.InDelta(t, 0, float64(evalAt(t, f, backend, -1, 0)), 1e-6)
	assert.InDelta(t, 1, float64(evalAt(t, f, backend, 0, 0)), 1e-6)
	assert.InDelta(t, 2, float64(evalAt(t, f, backend, 1, 0)), 1e-6)
	// Moving the second coordinate does not change the value.
	assert.InDelta(t, 1, float64(evalAt(t, f, backend, 0, -1)), 1e-6)
	assert.InDelta(t, 1, float64(evalAt(t, f, backend, 0, 1)), 1e-6)
}

func TestImageField_ZeroOutsideDomain(t *testing.T) {
	backend := cpu.New()

	img := mat.NewDense(2, 2, []float64{5, 5, 5, 5})
	f, err := tomo.NewImageField(img, backend)
	require.NoError(t, err)

	assert.Equal(t, float32(0), evalAt(t, f, backend, 1.5, 0))
	assert.Equal(t, float32(0), evalAt(t, f, backend, 0, -1.01))
}

func TestNewImageField_RejectsTinyImages(t *testing.T) {
	backend := cpu.New()
	_, err := tomo.NewImageField(mat.NewDense(1, 5, nil), backend)
	assert.Error(t, err)
}
