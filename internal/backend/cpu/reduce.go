package cpu

import (
	"fmt"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Sum reduces all elements to their total, returned as a [1] tensor.
func (c *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return c.reduceAll("sum", x, false)
}

// Mean reduces all elements to their mean, returned as a [1] tensor.
func (c *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return c.reduceAll("mean", x, true)
}

func (c *Backend) reduceAll(name string, x *tensor.RawTensor, mean bool) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		// Accumulate in float64; the ray-sample batches are large enough
		// for float32 accumulation error to show up in projections.
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		if mean {
			sum /= float64(x.NumElements())
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		if mean {
			sum /= float64(x.NumElements())
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

// SumDim sums along the given dimension.
func (c *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return c.reduceDim("sumDim", x, dim, keepDim, false)
}

// MeanDim averages along the given dimension.
func (c *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return c.reduceDim("meanDim", x, dim, keepDim, true)
}

func (c *Backend) reduceDim(name string, x *tensor.RawTensor, dim int, keepDim, mean bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("%s: invalid dimension %d for shape %v", name, dim, x.Shape()))
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for d, size := range shape {
		if d == dim {
			if keepDim {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, size)
	}
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	// outer iterates dimensions before dim, inner those after.
	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	n := shape[dim]

	switch x.DType() {
	case tensor.Float32:
		reduceDimKernel(result.AsFloat32(), x.AsFloat32(), outer, n, inner, mean)
	case tensor.Float64:
		reduceDimKernel(result.AsFloat64(), x.AsFloat64(), outer, n, inner, mean)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

func reduceDimKernel[T float32 | float64](dst, src []T, outer, n, inner int, mean bool) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum float64
			base := o*n*inner + in
			for k := 0; k < n; k++ {
				sum += float64(src[base+k*inner])
			}
			if mean {
				sum /= float64(n)
			}
			dst[o*inner+in] = T(sum)
		}
	}
}
