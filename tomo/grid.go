// Package tomo implements parallel-beam tomography over coordinate fields:
// sampling grids, the projection operator, and field abstractions that let
// both neural networks and raster images be projected the same way.
package tomo

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Grid returns a [rows*cols, 2] coordinate tensor covering [-1,1]² with
// evenly spaced points, row major: the first point is (-1,-1), the last is
// (1,1), and the second coordinate component varies fastest. The first
// coordinate component corresponds to the first (row) axis of an image.
//
// rows and cols must both be at least 2 so that the endpoints of the domain
// are always included.
func Grid[B tensor.Backend](rows, cols int, backend B) (*tensor.Tensor[float32, B], error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("tomo: grid needs at least 2 points per axis, got %dx%d", rows, cols)
	}

	rowCoords := floats.Span(make([]float64, rows), -1, 1)
	colCoords := floats.Span(make([]float64, cols), -1, 1)

	raw, err := tensor.NewRaw(tensor.Shape{rows * cols, 2}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, err
	}

	data := raw.AsFloat32()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			k := 2 * (r*cols + c)
			data[k] = float32(rowCoords[r])
			data[k+1] = float32(colCoords[c])
		}
	}

	return tensor.New[float32, B](raw, backend), nil
}
