package nn

import (
	"fmt"
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// SirenConfig configures a sinusoidal network. The zero value is not
// usable; start from DefaultSirenConfig and override fields.
type SirenConfig struct {
	InFeatures      int     // coordinate dimension, default 2
	OutFeatures     int     // field value dimension, default 1
	HiddenLayers    int     // number of hidden sine layers, default 3
	HiddenFeatures  int     // hidden width, default 256
	FirstOmega      float64 // frequency factor of the first layer, default 30
	HiddenOmega     float64 // frequency factor of hidden layers, default 30
	OutermostLinear bool    // plain linear output layer instead of a sine layer
	Seed            int64   // seed for weight initialization
}

// DefaultSirenConfig returns the standard configuration: a 2D-to-scalar
// field with three hidden layers of width 256, omega 30 throughout, and a
// linear output layer.
func DefaultSirenConfig() SirenConfig {
	return SirenConfig{
		InFeatures:      2,
		OutFeatures:     1,
		HiddenLayers:    3,
		HiddenFeatures:  256,
		FirstOmega:      30.0,
		HiddenOmega:     30.0,
		OutermostLinear: true,
	}
}

// Validate checks the configuration for construction-time errors.
func (c SirenConfig) Validate() error {
	if c.InFeatures <= 0 {
		return fmt.Errorf("siren: in features must be positive, got %d", c.InFeatures)
	}
	if c.OutFeatures <= 0 {
		return fmt.Errorf("siren: out features must be positive, got %d", c.OutFeatures)
	}
	if c.HiddenLayers <= 0 {
		return fmt.Errorf("siren: hidden layers must be positive, got %d", c.HiddenLayers)
	}
	if c.HiddenFeatures <= 0 {
		return fmt.Errorf("siren: hidden features must be positive, got %d", c.HiddenFeatures)
	}
	if c.FirstOmega <= 0 {
		return fmt.Errorf("siren: first omega must be positive, got %v", c.FirstOmega)
	}
	if c.HiddenOmega <= 0 {
		return fmt.Errorf("siren: hidden omega must be positive, got %v", c.HiddenOmega)
	}
	return nil
}

// Siren is a sinusoidal representation network: a stack of sine layers
// mapping coordinates to field values.
//
// Structure: one first sine layer consuming raw coordinates, HiddenLayers
// hidden sine layers, then either a plain linear output layer or one more
// sine layer, depending on OutermostLinear. The linear output layer is
// re-initialized with the non-first sine bound at the hidden omega, so its
// activations stay on the same scale as the sine layers feeding it.
//
// Example:
//
//	cfg := nn.DefaultSirenConfig()
//	cfg.Seed = 7
//	net, err := nn.NewSiren(cfg, backend)
type Siren[B tensor.Backend] struct {
	layers *Sequential[B]
	config SirenConfig
}

// NewSiren builds a sinusoidal network from the configuration.
// Returns an error for non-positive dimensions, layer counts, or omegas.
func NewSiren[B tensor.Backend](cfg SirenConfig, backend B) (*Siren[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	modules := make([]Module[B], 0, cfg.HiddenLayers+2)

	modules = append(modules, NewSineLayer(cfg.InFeatures, cfg.HiddenFeatures, cfg.FirstOmega, true, rng, backend))
	for i := 0; i < cfg.HiddenLayers; i++ {
		modules = append(modules, NewSineLayer(cfg.HiddenFeatures, cfg.HiddenFeatures, cfg.HiddenOmega, false, rng, backend))
	}

	if cfg.OutermostLinear {
		final := NewLinear(cfg.HiddenFeatures, cfg.OutFeatures, rng, backend)
		bound := SineBound(cfg.HiddenFeatures, cfg.HiddenOmega, false)
		final.SetWeight(Uniform(tensor.Shape{cfg.OutFeatures, cfg.HiddenFeatures}, bound, rng, backend))
		modules = append(modules, final)
	} else {
		modules = append(modules, NewSineLayer(cfg.HiddenFeatures, cfg.OutFeatures, cfg.HiddenOmega, false, rng, backend))
	}

	return &Siren[B]{
		layers: NewSequential(modules...),
		config: cfg,
	}, nil
}

// Forward evaluates the network on a coordinate batch.
//
// Input shape: [batch_size, InFeatures]
// Output shape: [batch_size, OutFeatures]
func (s *Siren[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return s.layers.Forward(input)
}

// Parameters returns the parameters of all layers, in order.
func (s *Siren[B]) Parameters() []*Parameter[B] {
	return s.layers.Parameters()
}

// Config returns the configuration the network was built with.
func (s *Siren[B]) Config() SirenConfig {
	return s.config
}

// Layers returns the underlying layer stack.
func (s *Siren[B]) Layers() *Sequential[B] {
	return s.layers
}
