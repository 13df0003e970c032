// Copyright 2025 Tomo-NF Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for field network modules.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	cfg := nn.DefaultSirenConfig()
//	cfg.Seed = 7
//	net, err := nn.NewSiren(cfg, backend)
package nn

import (
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/nn"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// Module is the base interface for all neural network components.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a trainable parameter with gradient tracking.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer: y = x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a Linear layer with Xavier-initialized weights.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, rng, backend)
}

// SineLayer is a linear layer followed by a frequency-scaled sine.
type SineLayer[B tensor.Backend] = nn.SineLayer[B]

// NewSineLayer creates a sine layer with frequency-aware initialization.
func NewSineLayer[B tensor.Backend](inFeatures, outFeatures int, omega float64, isFirst bool, rng *rand.Rand, backend B) *SineLayer[B] {
	return nn.NewSineLayer(inFeatures, outFeatures, omega, isFirst, rng, backend)
}

// Siren is a sinusoidal network mapping coordinates to field values.
type Siren[B tensor.Backend] = nn.Siren[B]

// SirenConfig configures a sinusoidal network.
type SirenConfig = nn.SirenConfig

// DefaultSirenConfig returns the standard network configuration.
func DefaultSirenConfig() SirenConfig {
	return nn.DefaultSirenConfig()
}

// NewSiren builds a sinusoidal network from the configuration.
func NewSiren[B tensor.Backend](cfg SirenConfig, backend B) (*Siren[B], error) {
	return nn.NewSiren(cfg, backend)
}

// Sequential chains modules into a pipeline.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// MSELoss computes mean squared error through the autodiff graph.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return nn.NewMSELoss(backend)
}

// SineBound returns the weight initialization bound for a sine layer.
func SineBound(fanIn int, omega float64, isFirst bool) float64 {
	return nn.SineBound(fanIn, omega, isFirst)
}
