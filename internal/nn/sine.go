package nn

import (
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// SineLayer is a fully connected layer followed by a frequency-scaled sine:
//
//	y = sin(omega * (x @ W.T + b))
//
// The omega factor spans multiple periods of the sine over the [-1, 1]
// coordinate domain and controls how fine a detail the layer can represent.
//
// Weights are initialized with the frequency-aware uniform bounds returned
// by SineBound: U(-1/fan_in, 1/fan_in) for the first layer of a network,
// U(-sqrt(6/fan_in)/omega, sqrt(6/fan_in)/omega) otherwise. Biases start
// at zero.
type SineLayer[B tensor.Backend] struct {
	linear  *Linear[B]
	omega   float64
	isFirst bool
}

// NewSineLayer creates a sine layer. isFirst selects the first-layer
// initialization bound; it must be true only for the layer that consumes
// raw coordinates.
func NewSineLayer[B tensor.Backend](inFeatures, outFeatures int, omega float64, isFirst bool, rng *rand.Rand, backend B) *SineLayer[B] {
	linear := NewLinear(inFeatures, outFeatures, rng, backend)

	bound := SineBound(inFeatures, omega, isFirst)
	linear.SetWeight(Uniform(tensor.Shape{outFeatures, inFeatures}, bound, rng, backend))

	return &SineLayer[B]{
		linear:  linear,
		omega:   omega,
		isFirst: isFirst,
	}
}

// Forward computes sin(omega * linear(x)).
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (s *SineLayer[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return s.linear.Forward(input).MulScalar(float32(s.omega)).Sin()
}

// Parameters returns the parameters of the wrapped linear layer.
func (s *SineLayer[B]) Parameters() []*Parameter[B] {
	return s.linear.Parameters()
}

// Omega returns the frequency factor.
func (s *SineLayer[B]) Omega() float64 {
	return s.omega
}

// Linear returns the wrapped linear layer.
func (s *SineLayer[B]) Linear() *Linear[B] {
	return s.linear
}
