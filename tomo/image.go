package tomo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// ImageField evaluates a raster image as a continuous field over [-1,1]²
// by bilinear interpolation. Coordinates outside the domain evaluate to
// zero. The first coordinate component indexes the row axis of the matrix,
// matching the ordering produced by Grid.
//
// ImageField is evaluation-only: values are computed element-wise and never
// enter a gradient tape. It is the ground-truth side of sinogram synthesis.
type ImageField[B tensor.Backend] struct {
	img     *mat.Dense
	rows    int
	cols    int
	backend B
}

// NewImageField wraps a matrix as a field. The matrix must have at least
// 2x2 elements so bilinear interpolation is defined everywhere.
func NewImageField[B tensor.Backend](img *mat.Dense, backend B) (*ImageField[B], error) {
	rows, cols := img.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("tomo: image field needs at least 2x2 pixels, got %dx%d", rows, cols)
	}
	return &ImageField[B]{img: img, rows: rows, cols: cols, backend: backend}, nil
}

// Eval interpolates the image at each coordinate in the [N, 2] batch,
// returning [N, 1] values.
func (f *ImageField[B]) Eval(coords *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := coords.Shape()
	if len(shape) != 2 || shape[1] != 2 {
		panic(fmt.Sprintf("ImageField.Eval: expected [N, 2] coordinates, got %v", shape))
	}
	n := shape[0]

	raw, err := tensor.NewRaw(tensor.Shape{n, 1}, tensor.Float32, f.backend.Device())
	if err != nil {
		panic(err)
	}

	in := coords.Raw().AsFloat32()
	out := raw.AsFloat32()
	for i := 0; i < n; i++ {
		u := float64(in[2*i])
		v := float64(in[2*i+1])
		out[i] = float32(f.at(u, v))
	}

	return tensor.New[float32, B](raw, f.backend)
}

// at returns the bilinearly interpolated value at normalized coordinates
// (u, v), zero outside [-1,1]².
func (f *ImageField[B]) at(u, v float64) float64 {
	if u < -1 || u > 1 || v < -1 || v > 1 {
		return 0
	}

	// Map [-1,1] onto the pixel lattice [0, rows-1] x [0, cols-1].
	r := (u + 1) / 2 * float64(f.rows-1)
	c := (v + 1) / 2 * float64(f.cols-1)

	r0 := int(r)
	c0 := int(c)
	if r0 >= f.rows-1 {
		r0 = f.rows - 2
	}
	if c0 >= f.cols-1 {
		c0 = f.cols - 2
	}
	dr := r - float64(r0)
	dc := c - float64(c0)

	v00 := f.img.At(r0, c0)
	v01 := f.img.At(r0, c0+1)
	v10 := f.img.At(r0+1, c0)
	v11 := f.img.At(r0+1, c0+1)

	return v00*(1-dr)*(1-dc) + v01*(1-dr)*dc + v10*dr*(1-dc) + v11*dr*dc
}

// Image returns the wrapped matrix.
func (f *ImageField[B]) Image() *mat.Dense {
	return f.img
}
