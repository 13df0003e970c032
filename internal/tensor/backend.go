package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations; every
// operation allocates a fresh result and leaves its operands untouched.
//
// Implementations:
//   - internal/backend/cpu: pure Go kernels
//   - internal/autodiff: decorator adding gradient tracking to any backend
type Backend interface {
	// Element-wise binary operations (with NumPy-style broadcasting).
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor  // exponential
	Sqrt(x *RawTensor) *RawTensor // square root
	Sin(x *RawTensor) *RawTensor  // sine
	Cos(x *RawTensor) *RawTensor  // cosine

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                            // total sum (single-element result)
	Mean(x *RawTensor) *RawTensor                           // mean over all elements (single-element result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // sum along dimension
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension

	// Metadata.
	Name() string
	Device() Device
}
