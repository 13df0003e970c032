package ops

import "github.com/vedranaa/tomo-nf/internal/tensor"

// SinOp represents the sine operation: y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
//   - grad_input = grad_output * cos(input)
//
// This is the nonlinearity of the periodic layers, so its gradient is on the
// hot path of every training step.
type SinOp struct {
	input  *tensor.RawTensor // x
	output *tensor.RawTensor // sin(x)
}

// NewSinOp creates a new SinOp.
func NewSinOp(input, output *tensor.RawTensor) *SinOp {
	return &SinOp{input: input, output: output}
}

// Backward computes the input gradient for sin.
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.Mul(outputGrad, backend.Cos(op.input))
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor [x].
func (op *SinOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor sin(x).
func (op *SinOp) Output() *tensor.RawTensor { return op.output }
