// Package phantom generates synthetic ground-truth images for tomography
// experiments. All phantoms are returned as gonum matrices over the unit
// square, with the first axis matching the first coordinate component of
// the sampling grid.
package phantom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Disk returns a rows x cols image of a filled disk with the given center
// (in [-1,1]² coordinates), radius and intensity, zero background.
func Disk(rows, cols int, centerX, centerY, radius, intensity float64) *mat.Dense {
	img := mat.NewDense(rows, cols, nil)
	eachPixel(rows, cols, func(r, c int, x, y float64) {
		dx, dy := x-centerX, y-centerY
		if dx*dx+dy*dy <= radius*radius {
			img.Set(r, c, intensity)
		}
	})
	return img
}

// Gaussian returns a rows x cols image of an isotropic Gaussian blob with
// the given center, standard deviation sigma and peak intensity.
func Gaussian(rows, cols int, centerX, centerY, sigma, intensity float64) *mat.Dense {
	img := mat.NewDense(rows, cols, nil)
	eachPixel(rows, cols, func(r, c int, x, y float64) {
		dx, dy := x-centerX, y-centerY
		img.Set(r, c, intensity*math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma)))
	})
	return img
}

// Squares returns a rows x cols image of two axis-aligned squares with
// different intensities, a standard piecewise-constant test scene for
// reconstruction methods.
func Squares(rows, cols int) *mat.Dense {
	img := mat.NewDense(rows, cols, nil)
	eachPixel(rows, cols, func(r, c int, x, y float64) {
		if x > -0.6 && x < 0 && y > -0.6 && y < 0 {
			img.Set(r, c, 1.0)
		}
		if x > 0.1 && x < 0.7 && y > 0.1 && y < 0.7 {
			img.Set(r, c, 0.5)
		}
	})
	return img
}

// eachPixel visits every pixel with both its indices and its normalized
// [-1,1]² coordinates.
func eachPixel(rows, cols int, f func(r, c int, x, y float64)) {
	for r := 0; r < rows; r++ {
		x := -1 + 2*float64(r)/float64(rows-1)
		for c := 0; c < cols; c++ {
			y := -1 + 2*float64(c)/float64(cols-1)
			f(r, c, x, y)
		}
	}
}
