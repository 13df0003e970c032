package ops

import "github.com/vedranaa/tomo-nf/internal/tensor"

// TransposeOp represents a dimension permutation.
//
// Transpose must be recorded on the tape: the CPU backend materializes a new
// tensor, and in a linear layer the weight is transposed before the matmul.
// Without this op, the weight parameter would never receive its gradient.
//
// Backward pass: grad_input = transpose(grad_output, inverse(axes)).
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	axes   []int
}

// NewTransposeOp creates a new TransposeOp. axes must be the resolved
// permutation used in the forward pass.
func NewTransposeOp(input, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{input: input, output: output, axes: axes}
}

// Backward applies the inverse permutation to the gradient.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}

// Inputs returns the input tensor [x].
func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the transposed output tensor.
func (op *TransposeOp) Output() *tensor.RawTensor { return op.output }
