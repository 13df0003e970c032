package nn

import (
	"math"
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Uniform creates a tensor with values drawn from U(-bound, bound).
//
// All weight initializations in this package reduce to a symmetric uniform
// draw with a layer-dependent bound. The rng is passed in explicitly so
// that networks built with the same seed are bit-identical.
func Uniform[B tensor.Backend](shape tensor.Shape, bound float64, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	t, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}

	return tensor.New[float32, B](t, backend)
}

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in+fan_out)), sqrt(6/(fan_in+fan_out))).
// This initialization keeps the variance of activations roughly constant
// across layers and is the default for plain Linear layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return Uniform(shape, bound, rng, backend)
}

// SineBound returns the weight initialization bound for a sine layer.
//
// The first layer of a sinusoidal network spans the input domain directly
// and uses U(-1/fan_in, 1/fan_in). Every later layer compensates for the
// frequency factor with U(-sqrt(6/fan_in)/omega, sqrt(6/fan_in)/omega),
// which keeps pre-activations distributed so that training does not
// collapse or explode with depth.
func SineBound(fanIn int, omega float64, isFirst bool) float64 {
	if isFirst {
		return 1.0 / float64(fanIn)
	}
	return math.Sqrt(6.0/float64(fanIn)) / omega
}

// Zeros creates a tensor filled with zeros.
// Commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
