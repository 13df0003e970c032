// Package ops defines operation types for reverse-mode automatic
// differentiation.
//
// Each operation records its inputs and output during the forward pass and
// computes input gradients during the backward pass. The op set covers the
// field model's full forward path: linear layers (MatMul, Transpose, Reshape,
// Add), the sine nonlinearity with its frequency factor (MulScalar, Sin),
// the out-of-domain mask (Mul), ray integration (MeanDim) and the mean
// squared error loss (Sub, Mul, Mean).
package ops

import "github.com/vedranaa/tomo-nf/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
