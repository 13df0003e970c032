package ops

import "github.com/vedranaa/tomo-nf/internal/tensor"

// ReshapeOp represents a shape change with unchanged element order.
//
// Reshape must be recorded on the tape: without it, gradients computed for
// the reshaped tensor would never reach the original parameter (the bias of
// a linear layer is reshaped to [1, out] before the broadcast add, and ray
// field values are reshaped to [bins, samples] before integration).
//
// Backward pass: grad_input = reshape(grad_output, input.shape).
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward reshapes the gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// Inputs returns the input tensor [x].
func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the reshaped output tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor { return op.output }
