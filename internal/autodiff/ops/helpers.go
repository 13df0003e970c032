package ops

import (
	"fmt"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[1, 4] + b[3, 4] -> c[3, 4]  (a was broadcast along dim 0)
//	Backward: grad_c[3, 4] -> grad_a[1, 4] (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		return grad
	}

	// NumPy broadcasting aligns shapes from the right: first sum away extra
	// leading dimensions, then sum dimensions where the target is 1.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}
	for d := 0; d < len(targetShape); d++ {
		if targetShape[d] == 1 && result.Shape()[d] > 1 {
			result = backend.SumDim(result, d, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// negate returns -t.
func negate(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	switch t.DType() {
	case tensor.Float32:
		return backend.MulScalar(t, float32(-1))
	case tensor.Float64:
		return backend.MulScalar(t, float64(-1))
	default:
		panic(fmt.Sprintf("negate: unsupported dtype %s", t.DType()))
	}
}
