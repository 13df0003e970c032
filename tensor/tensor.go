// Copyright 2025 Tomo-NF Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// DType is a constraint for tensor data types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only supported device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2x3 matrix.
type Shape = tensor.Shape

// Backend is the interface for device-specific compute implementations.
type Backend = tensor.Backend

// RawTensor is the untyped tensor representation: a byte buffer plus
// shape, strides and dtype.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-filled RawTensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Tensor is the high-level generic tensor, parameterized by element type
// and backend.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New wraps a RawTensor in a typed Tensor.
func New[T DType, B Backend](raw *RawTensor, backend B) *Tensor[T, B] {
	return tensor.New[T, B](raw, backend)
}

// FromSlice creates a tensor from a flat slice of values.
func FromSlice[T DType, B Backend](data []T, shape Shape, backend B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, backend)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, backend B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, backend)
}

// Full creates a tensor filled with the given value.
func Full[T DType, B Backend](shape Shape, value T, backend B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, backend)
}

// Randn creates a tensor with values drawn from N(0, 1) using rng.
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, backend B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, rng, backend)
}

// Rand creates a tensor with values drawn from U[0, 1) using rng.
func Rand[T DType, B Backend](shape Shape, rng *rand.Rand, backend B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, rng, backend)
}

// Linspace creates a 1D tensor of n evenly spaced values from start to
// end, endpoints included.
func Linspace[T DType, B Backend](start, end T, n int, backend B) *Tensor[T, B] {
	return tensor.Linspace[T, B](start, end, n, backend)
}

// BroadcastShapes computes the broadcast result shape of two shapes
// following NumPy rules.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
