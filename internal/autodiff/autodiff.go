// Package autodiff implements automatic differentiation using the decorator pattern.
//
// Backend wraps any tensor.Backend implementation and adds gradient tracking
// through a GradientTape.
//
// Architecture:
//   - Decorator pattern: Backend[B] wraps any tensor.Backend implementation
//   - GradientTape: records operations during the forward pass
//   - Operation interface: each op (Add, MatMul, Sin, ...) implements its
//     backward pass
//   - Reverse-mode AD: gradients computed by walking the tape backwards
//
// Usage:
//
//	cpuBackend := cpu.New()
//	ad := autodiff.New(cpuBackend)
//	ad.Tape().StartRecording()
//
//	x := tensor.FromSlice([]float32{2.0}, tensor.Shape{1}, ad)
//	y := x.Mul(x) // y = x²
//
//	gradients := autodiff.Backward(y, ad)
//	fmt.Println(gradients[x.Raw()]) // dy/dx = 2x = 4.0
package autodiff

import (
	"github.com/vedranaa/tomo-nf/internal/autodiff/ops"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Backend wraps a tensor.Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a
// GradientTape.
//
// The recorded op set covers the field model forward pass end to end:
// linear layers (MatMul, Transpose, Reshape, Add), sine activations
// (MulScalar, Sin), ray integration (Mul, Reshape, MeanDim) and the MSE
// loss (Sub, Mul, Mean). Exp, Sqrt, Cos and the remaining scalar ops are
// evaluation-only and pass through to the wrapped backend unrecorded.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates a new autodiff Backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return &Backend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control: starting and stopping
// recording, clearing between iterations, inspecting recorded operations.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *Backend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(x, y, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(x, y, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(x, y, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDivOp(x, y, result))
	}
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMatMulOp(x, y, result))
	}
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Reshape must be recorded: the bias of a linear layer is reshaped before
// the broadcast add, and without a ReshapeOp the bias parameter would never
// receive its gradient.
func (b *Backend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReshapeOp(x, result))
	}
	return result
}

// Transpose transposes a tensor and records the operation.
//
// Even though transpose is conceptually a view, the wrapped backend
// materializes a new tensor. The linear layer transposes its weight before
// the matmul, so without a TransposeOp the weight parameter would never
// receive its gradient.
func (b *Backend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(x, axes...)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTransposeOp(x, result, axes))
	}
	return result
}

// MulScalar multiplies by a scalar and records the operation.
// The omega frequency factor of the periodic layers runs through here.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.MulScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulScalarOp(x, result, scalar))
	}
	return result
}

// AddScalar adds a scalar and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := b.inner.AddScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddScalarOp(x, result))
	}
	return result
}

// SubScalar subtracts a scalar. Evaluation-only, not recorded.
func (b *Backend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.inner.SubScalar(x, scalar)
}

// DivScalar divides by a scalar. Evaluation-only, not recorded.
func (b *Backend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.inner.DivScalar(x, scalar)
}

// Sin applies element-wise sine and records the operation.
func (b *Backend[B]) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sin(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSinOp(x, result))
	}
	return result
}

// Cos applies element-wise cosine. Evaluation-only, not recorded.
func (b *Backend[B]) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Cos(x)
}

// Exp applies element-wise exponential. Evaluation-only, not recorded.
func (b *Backend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Exp(x)
}

// Sqrt applies element-wise square root. Evaluation-only, not recorded.
func (b *Backend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.Sqrt(x)
}

// Sum reduces all elements to their total and records the operation.
func (b *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumOp(x, result))
	}
	return result
}

// Mean reduces all elements to their mean and records the operation.
// The MSE loss ends here, so this is the usual root of the backward walk.
func (b *Backend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mean(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMeanOp(x, result))
	}
	return result
}

// SumDim sums along one dimension and records the operation.
func (b *Backend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.SumDim(x, dim, keepDim)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSumDimOp(x, result, normalizeDim(dim, len(x.Shape())), keepDim))
	}
	return result
}

// MeanDim averages along one dimension and records the operation.
// Ray integration (mean over the sample axis) runs through here.
func (b *Backend[B]) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.MeanDim(x, dim, keepDim)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMeanDimOp(x, result, normalizeDim(dim, len(x.Shape())), keepDim))
	}
	return result
}

func normalizeDim(dim, ndim int) int {
	if dim < 0 {
		return dim + ndim
	}
	return dim
}
