package tomo

import (
	"github.com/vedranaa/tomo-nf/internal/nn"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Field is a scalar function over 2D coordinates: anything that can be
// evaluated on a [N, 2] coordinate batch to produce [N, 1] values. Both
// neural networks and raster images satisfy it, so the projection operator
// works identically on ground truth and on the model being trained.
type Field[B tensor.Backend] interface {
	Eval(coords *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// NetworkField adapts an nn.Module to the Field interface.
//
// When the module's backend records a gradient tape, evaluations through
// the field stay on the tape, so a projected NetworkField remains
// differentiable end to end.
type NetworkField[B tensor.Backend] struct {
	model nn.Module[B]
}

// NewNetworkField wraps a module as a field.
func NewNetworkField[B tensor.Backend](model nn.Module[B]) *NetworkField[B] {
	return &NetworkField[B]{model: model}
}

// Eval runs the module's forward pass on the coordinate batch.
func (f *NetworkField[B]) Eval(coords *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return f.model.Forward(coords)
}

// Model returns the wrapped module.
func (f *NetworkField[B]) Model() nn.Module[B] {
	return f.model
}
