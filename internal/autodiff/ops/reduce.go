package ops

import (
	"fmt"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// MeanOp represents a reduction to the mean of all elements: y = mean(x),
// produced as a [1] tensor. The MSE loss ends in this op.
//
// Backward pass: grad_x[i] = grad_y / numElements.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward spreads the scalar gradient uniformly over the input.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{spreadScalarGrad(outputGrad, op.input.Shape(), 1.0/float64(op.input.NumElements()))}
}

// Inputs returns the input tensor [x].
func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the [1] output tensor mean(x).
func (op *MeanOp) Output() *tensor.RawTensor { return op.output }

// SumOp represents a reduction to the total of all elements: y = sum(x).
//
// Backward pass: grad_x[i] = grad_y.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward spreads the scalar gradient over the input.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{spreadScalarGrad(outputGrad, op.input.Shape(), 1.0)}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the [1] output tensor sum(x).
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// spreadScalarGrad fills a tensor of the given shape with grad[0] * scale.
func spreadScalarGrad(outputGrad *tensor.RawTensor, shape tensor.Shape, scale float64) *tensor.RawTensor {
	grad, err := tensor.NewRaw(shape, outputGrad.DType(), outputGrad.Device())
	if err != nil {
		panic(fmt.Sprintf("reduce backward: %v", err))
	}

	switch outputGrad.DType() {
	case tensor.Float32:
		v := float32(float64(outputGrad.AsFloat32()[0]) * scale)
		data := grad.AsFloat32()
		for i := range data {
			data[i] = v
		}
	case tensor.Float64:
		v := outputGrad.AsFloat64()[0] * scale
		data := grad.AsFloat64()
		for i := range data {
			data[i] = v
		}
	default:
		panic(fmt.Sprintf("reduce backward: unsupported dtype %s", outputGrad.DType()))
	}

	return grad
}

// MeanDimOp represents a mean reduction along one dimension:
// y = mean(x, dim). Ray integration (mean over the sample axis) runs
// through this op.
//
// Backward pass: every input element along the reduced dimension receives
// the gradient of its output slot divided by the dimension size.
type MeanDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewMeanDimOp creates a new MeanDimOp. dim must already be normalized to
// [0, ndim).
func NewMeanDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *MeanDimOp {
	return &MeanDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward distributes the reduced gradient back over the input.
func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	n := op.input.Shape()[op.dim]
	return []*tensor.RawTensor{spreadDimGrad(outputGrad, op.input.Shape(), op.dim, 1.0/float64(n))}
}

// Inputs returns the input tensor [x].
func (op *MeanDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor mean(x, dim).
func (op *MeanDimOp) Output() *tensor.RawTensor { return op.output }

// SumDimOp represents a sum reduction along one dimension: y = sum(x, dim).
//
// Backward pass: every input element along the reduced dimension receives
// the gradient of its output slot.
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp. dim must already be normalized to
// [0, ndim).
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward distributes the reduced gradient back over the input.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{spreadDimGrad(outputGrad, op.input.Shape(), op.dim, 1.0)}
}

// Inputs returns the input tensor [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor sum(x, dim).
func (op *SumDimOp) Output() *tensor.RawTensor { return op.output }

// spreadDimGrad broadcasts a dim-reduced gradient back to the input shape,
// scaling by the given factor. Works for both keepDim variants because the
// flat layout of the reduced tensor is identical either way.
func spreadDimGrad(outputGrad *tensor.RawTensor, inShape tensor.Shape, dim int, scale float64) *tensor.RawTensor {
	grad, err := tensor.NewRaw(inShape, outputGrad.DType(), outputGrad.Device())
	if err != nil {
		panic(fmt.Sprintf("reduce backward: %v", err))
	}

	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= inShape[d]
	}
	for d := dim + 1; d < len(inShape); d++ {
		inner *= inShape[d]
	}
	n := inShape[dim]

	switch outputGrad.DType() {
	case tensor.Float32:
		spreadDimKernel(grad.AsFloat32(), outputGrad.AsFloat32(), outer, n, inner, float32(scale))
	case tensor.Float64:
		spreadDimKernel(grad.AsFloat64(), outputGrad.AsFloat64(), outer, n, inner, scale)
	default:
		panic(fmt.Sprintf("reduce backward: unsupported dtype %s", outputGrad.DType()))
	}

	return grad
}

func spreadDimKernel[T float32 | float64](dst, src []T, outer, n, inner int, scale T) {
	for o := 0; o < outer; o++ {
		for k := 0; k < n; k++ {
			for in := 0; in < inner; in++ {
				dst[o*n*inner+k*inner+in] = src[o*inner+in] * scale
			}
		}
	}
}
