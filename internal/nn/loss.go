package nn

import (
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// MSELoss computes mean squared error loss.
//
//	Loss = mean((predictions - targets)²)
//
// The loss is computed entirely through backend operations (Sub, Mul,
// Mean) so that when the backend records a gradient tape, the backward
// pass reaches the model parameters through the loss itself. No part of
// the reduction happens outside the graph.
//
// Example:
//
//	mse := nn.NewMSELoss(backend)
//	predictions := model.Forward(input)
//	loss := mse.Forward(predictions, targets) // shape [1]
type MSELoss[B tensor.Backend] struct {
	backend B
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return &MSELoss[B]{
		backend: backend,
	}
}

// Forward computes the MSE loss as a [1] tensor.
// Panics if predictions and targets differ in shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}

	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// Parameters returns nil; loss functions have no trainable parameters.
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
