// Package nn implements neural network modules for coordinate field models.
//
// This package provides the building blocks for sinusoidal representation
// networks:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable parameters with gradient tracking
//   - Linear: fully connected layer
//   - SineLayer: linear layer followed by a frequency-scaled sine
//   - Siren: full sinusoidal network over 2D coordinates
//   - MSELoss: mean squared error, computed through the autodiff graph
//   - Sequential: container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: compute output from input
//   - Parameters: return all trainable parameters
//
// Modules can be composed to build larger architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewSineLayer(2, 256, 30.0, true, rng, backend),
//	    nn.NewSineLayer(256, 256, 30.0, false, rng, backend),
//	    nn.NewLinear(256, 1, rng, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including those of nested modules. Returns an empty slice for
	// modules without trainable parameters.
	Parameters() []*Parameter[B]
}
