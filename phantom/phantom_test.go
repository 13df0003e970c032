package phantom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vedranaa/tomo-nf/phantom"
)

func TestDisk(t *testing.T) {
	img := phantom.Disk(33, 33, 0, 0, 0.5, 2.0)

	rows, cols := img.Dims()
	assert.Equal(t, 33, rows)
	assert.Equal(t, 33, cols)

	// Center pixel is inside the disk, corners are outside.
	assert.Equal(t, 2.0, img.At(16, 16))
	assert.Equal(t, 0.0, img.At(0, 0))
	assert.Equal(t, 0.0, img.At(32, 32))
}

func TestGaussian(t *testing.T) {
	img := phantom.Gaussian(33, 33, 0, 0, 0.3, 1.0)

	// Peak at the center, decaying outward.
	assert.InDelta(t, 1.0, img.At(16, 16), 1e-9)
	assert.Greater(t, img.At(16, 16), img.At(16, 24))
	assert.Greater(t, img.At(16, 24), img.At(16, 32))
}

func TestGaussian_OffCenter(t *testing.T) {
	img := phantom.Gaussian(33, 33, 0.5, 0, 0.2, 1.0)

	// Center of mass moved along the first (row) axis: x=0.5 maps to
	// row 24 on a 33-pixel lattice.
	assert.Greater(t, img.At(24, 16), img.At(8, 16))
}

func TestSquares(t *testing.T) {
	img := phantom.Squares(64, 64)

	vals := map[float64]bool{}
	rows, cols := img.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			vals[img.At(r, c)] = true
		}
	}

	assert.True(t, vals[0], "background present")
	assert.True(t, vals[1.0], "first square present")
	assert.True(t, vals[0.5], "second square present")
}
