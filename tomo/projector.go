package tomo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vedranaa/tomo-nf/internal/parallel"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Projector computes parallel-beam projections of a field.
//
// The detector has `bins` positions spread evenly over [-1,1]; each ray is
// integrated at `samples` positions spread evenly over [-1,1] along the ray
// direction. For projection angle theta, detector offset b and ray position
// s, the sample point is
//
//	x = s*cos(theta) - b*sin(theta)
//	y = s*sin(theta) + b*cos(theta)
//
// Sample points outside [-1,1]² contribute zero. The projection value of a
// bin is the mean of its samples, so values stay on the scale of the field
// rather than growing with the sample count.
type Projector[B tensor.Backend] struct {
	backend  B
	bins     int
	samples  int
	detector []float64 // bin offsets over [-1,1]
	ray      []float64 // sample positions over [-1,1]
}

// NewProjector creates a projector with the given detector resolution.
// samples <= 0 defaults to bins, matching detector and integration
// resolution. bins must be positive; a single-bin detector needs bins >= 2
// to anchor the span endpoints, so bins < 2 is rejected as well.
func NewProjector[B tensor.Backend](backend B, bins, samples int) (*Projector[B], error) {
	if bins < 2 {
		return nil, fmt.Errorf("tomo: projector needs at least 2 detector bins, got %d", bins)
	}
	if samples <= 0 {
		samples = bins
	}
	if samples < 2 {
		return nil, fmt.Errorf("tomo: projector needs at least 2 ray samples, got %d", samples)
	}

	return &Projector[B]{
		backend:  backend,
		bins:     bins,
		samples:  samples,
		detector: floats.Span(make([]float64, bins), -1, 1),
		ray:      floats.Span(make([]float64, samples), -1, 1),
	}, nil
}

// Bins returns the number of detector bins.
func (p *Projector[B]) Bins() int { return p.bins }

// Samples returns the number of integration samples per ray.
func (p *Projector[B]) Samples() int { return p.samples }

// Rays returns the sample coordinates and the inside-domain mask for one
// projection angle. Coordinates have shape [bins*samples, 2], bin major
// (all samples of bin 0 first). The mask has shape [bins*samples, 1] and
// holds 1 where the sample point lies inside [-1,1]², 0 elsewhere.
//
// Both tensors are constants of the angle: multiplying the mask into field
// values zeroes out-of-domain contributions without breaking the gradient
// path through the field.
func (p *Projector[B]) Rays(theta float64) (coords, mask *tensor.Tensor[float32, B]) {
	n := p.bins * p.samples

	coordsRaw, err := tensor.NewRaw(tensor.Shape{n, 2}, tensor.Float32, p.backend.Device())
	if err != nil {
		panic(err)
	}
	maskRaw, err := tensor.NewRaw(tensor.Shape{n, 1}, tensor.Float32, p.backend.Device())
	if err != nil {
		panic(err)
	}

	sin, cos := math.Sincos(theta)
	coordsData := coordsRaw.AsFloat32()
	maskData := maskRaw.AsFloat32()

	for i := 0; i < p.bins; i++ {
		b := p.detector[i]
		for j := 0; j < p.samples; j++ {
			s := p.ray[j]
			x := s*cos - b*sin
			y := s*sin + b*cos

			k := i*p.samples + j
			coordsData[2*k] = float32(x)
			coordsData[2*k+1] = float32(y)
			if x >= -1 && x <= 1 && y >= -1 && y <= 1 {
				maskData[k] = 1
			}
		}
	}

	return tensor.New[float32, B](coordsRaw, p.backend), tensor.New[float32, B](maskRaw, p.backend)
}

// ProjectAngle computes the projection of the field at one angle,
// returning a [bins] tensor.
//
// The whole pipeline runs through backend operations (field evaluation,
// mask multiply, reshape, mean over the sample axis), so when the backend
// records a gradient tape the projection is differentiable with respect to
// the field's parameters.
func (p *Projector[B]) ProjectAngle(field Field[B], theta float64) *tensor.Tensor[float32, B] {
	coords, mask := p.Rays(theta)

	values := field.Eval(coords) // [bins*samples, 1]
	masked := values.Mul(mask)

	return masked.Reshape(p.bins, p.samples).MeanDim(1, false)
}

// Project computes the full sinogram of the field over the given angles,
// returning a [len(thetas), bins] tensor with one row per angle in input
// order.
//
// Rows are computed concurrently, so Project must only be used for
// evaluation: with a recording gradient tape the interleaved rows would
// corrupt the tape. Training over a sinogram goes through ProjectAngle one
// angle at a time instead.
func (p *Projector[B]) Project(field Field[B], thetas []float64) *tensor.Tensor[float32, B] {
	raw, err := tensor.NewRaw(tensor.Shape{len(thetas), p.bins}, tensor.Float32, p.backend.Device())
	if err != nil {
		panic(err)
	}

	data := raw.AsFloat32()
	parallel.For(len(thetas), func(i int) {
		row := p.ProjectAngle(field, thetas[i])
		copy(data[i*p.bins:(i+1)*p.bins], row.Raw().AsFloat32())
	}, parallel.CoarseConfig())

	return tensor.New[float32, B](raw, p.backend)
}

// Angles returns n projection angles spread evenly over [0, pi), the
// standard coverage for parallel-beam scanning: theta and theta+pi produce
// mirrored rows, so a half turn already observes every line orientation.
func Angles(n int) []float64 {
	thetas := make([]float64, n)
	for i := range thetas {
		thetas[i] = float64(i) * math.Pi / float64(n)
	}
	return thetas
}
