package cpu

import (
	"fmt"
	"math"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// unaryOp applies an element-wise kernel to x.
func (c *Backend) unaryOp(name string, x *tensor.RawTensor, f func(v float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

// Exp computes element-wise exponential: exp(x).
func (c *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("exp", x, math.Exp)
}

// Sqrt computes element-wise square root: sqrt(x).
// Panics on negative values.
func (c *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("sqrt", x, func(v float64) float64 {
		if v < 0 {
			panic(fmt.Sprintf("sqrt: negative value %f", v))
		}
		return math.Sqrt(v)
	})
}

// Sin computes element-wise sine: sin(x).
func (c *Backend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("sin", x, math.Sin)
}

// Cos computes element-wise cosine: cos(x).
func (c *Backend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return c.unaryOp("cos", x, math.Cos)
}
