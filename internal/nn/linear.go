package nn

import (
	"fmt"
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized with Xavier/Glorot uniform values drawn from the
// supplied rng. Biases are initialized to zeros.
//
// Example:
//
//	backend := cpu.New()
//	rng := rand.New(rand.NewSource(7))
//	layer := nn.NewLinear(2, 256, rng, backend)
//
//	input := tensor.Rand[float32](tensor.Shape{32, 2}, rng, backend)
//	output := layer.Forward(input) // shape: [32, 256]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
	backend     B
}

// NewLinear creates a new Linear layer with Xavier-initialized weights and
// zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, weightShape, rng, backend))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	w := l.weight.Tensor() // [out_features, in_features]
	wT := w.Transpose()    // [in_features, out_features]

	// [batch, in] @ [in, out] = [batch, out]
	output := input.MatMul(wT)

	if l.bias != nil {
		// Reshape bias to [1, out_features] for broadcasting over the batch.
		bReshaped := l.bias.Tensor().Reshape(1, l.outFeatures)
		output = output.Add(bReshaped)
	}

	return output
}

// Parameters returns [weight, bias] if bias is present, otherwise [weight].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.bias != nil {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// SetWeight replaces the weight tensor. The new tensor must have shape
// [out_features, in_features]. Used by network builders that re-initialize
// layers with frequency-aware bounds.
func (l *Linear[B]) SetWeight(w *tensor.Tensor[float32, B]) {
	expected := tensor.Shape{l.outFeatures, l.inFeatures}
	if !w.Shape().Equal(expected) {
		panic(fmt.Sprintf("Linear.SetWeight: expected shape %v, got %v", expected, w.Shape()))
	}
	l.weight = NewParameter("weight", w)
}
