// Copyright 2025 Tomo-NF Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the CPU compute backend.
package cpu

import (
	internalcpu "github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/tensor"
)

// Backend is the CPU backend implementation: pure Go kernels with
// NumPy-style broadcasting.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
