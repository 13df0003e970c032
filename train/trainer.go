// Package train fits coordinate field networks, either directly against
// pixel values or against a measured sinogram through the projection
// operator.
package train

import (
	"fmt"
	"math/rand"

	"github.com/vedranaa/tomo-nf/internal/autodiff"
	"github.com/vedranaa/tomo-nf/internal/nn"
	"github.com/vedranaa/tomo-nf/internal/optim"
	"github.com/vedranaa/tomo-nf/internal/tensor"
	"github.com/vedranaa/tomo-nf/tomo"
)

// Config controls the optimization loop. Zero-valued fields fall back to
// defaults.
type Config struct {
	LearningRate float32 // default 1e-4
	Epochs       int     // default 100
	BatchSize    int     // direct mode only; 0 trains on the full batch
	Optimizer    string  // "adam" (default) or "sgd"
	Momentum     float32 // sgd only
	Seed         int64   // seeds batch sampling and angle shuffling
}

// Trainer drives gradient descent on a field network.
//
// The backend must be an autodiff backend: the trainer controls its tape,
// recording one forward pass per step and clearing it afterwards. Steps
// are strictly sequential; two fits on the same trainer never overlap.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	net, _ := nn.NewSiren(nn.DefaultSirenConfig(), backend)
//	trainer, _ := train.NewTrainer[*autodiff.Backend[*cpu.Backend]](net, train.Config{Epochs: 500}, backend)
//	history, err := trainer.FitImage(coords, values)
type Trainer[B autodiff.BackwardCapable] struct {
	backend   B
	model     nn.Module[B]
	optimizer optim.Optimizer
	loss      *nn.MSELoss[B]
	rng       *rand.Rand
	config    Config
}

// NewTrainer creates a trainer for the model. Returns an error for
// negative epoch counts, learning rates, or an unknown optimizer name.
func NewTrainer[B autodiff.BackwardCapable](model nn.Module[B], cfg Config, backend B) (*Trainer[B], error) {
	if cfg.LearningRate < 0 {
		return nil, fmt.Errorf("train: learning rate must not be negative, got %v", cfg.LearningRate)
	}
	if cfg.Epochs < 0 {
		return nil, fmt.Errorf("train: epochs must not be negative, got %d", cfg.Epochs)
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("train: batch size must not be negative, got %d", cfg.BatchSize)
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 1e-4
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 100
	}

	var optimizer optim.Optimizer
	switch cfg.Optimizer {
	case "", "adam":
		optimizer = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LearningRate}, backend)
	case "sgd":
		optimizer = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.LearningRate, Momentum: cfg.Momentum}, backend)
	default:
		return nil, fmt.Errorf("train: unknown optimizer %q", cfg.Optimizer)
	}

	return &Trainer[B]{
		backend:   backend,
		model:     model,
		optimizer: optimizer,
		loss:      nn.NewMSELoss(backend),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		config:    cfg,
	}, nil
}

// Model returns the trained model.
func (t *Trainer[B]) Model() nn.Module[B] {
	return t.model
}

// Config returns the effective configuration, with defaults filled in.
func (t *Trainer[B]) Config() Config {
	return t.config
}

// FitImage trains the model to reproduce known field values at known
// coordinates: coords [N, 2] against values [N, 1]. One optimization step
// per epoch on the full batch, or on a fresh random subset of BatchSize
// points when BatchSize is set.
//
// Returns the loss of every step, in order.
func (t *Trainer[B]) FitImage(coords, values *tensor.Tensor[float32, B]) ([]float64, error) {
	cs, vs := coords.Shape(), values.Shape()
	if len(cs) != 2 || cs[1] != 2 {
		return nil, fmt.Errorf("train: expected [N, 2] coordinates, got %v", cs)
	}
	if len(vs) != 2 || vs[1] != 1 {
		return nil, fmt.Errorf("train: expected [N, 1] values, got %v", vs)
	}
	if cs[0] != vs[0] {
		return nil, fmt.Errorf("train: coordinate and value counts differ: %d vs %d", cs[0], vs[0])
	}
	if t.config.BatchSize > cs[0] {
		return nil, fmt.Errorf("train: batch size %d exceeds %d available points", t.config.BatchSize, cs[0])
	}

	tape := t.backend.GetTape()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	history := make([]float64, 0, t.config.Epochs)
	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		x, y := coords, values
		if t.config.BatchSize > 0 {
			x, y = t.sampleBatch(coords, values)
		}

		t.optimizer.ZeroGrad()
		tape.Clear()

		pred := t.model.Forward(x)
		loss := t.loss.Forward(pred, y)

		grads := autodiff.Backward(loss, t.backend)
		t.optimizer.Step(grads)

		history = append(history, float64(loss.Item()))
	}

	return history, nil
}

// FitSinogram trains the model against measured projections. Every epoch
// visits all angles in a fresh random order; each angle contributes one
// optimization step on the MSE between the model's projection and the
// matching sinogram row.
//
// sinogram must have shape [len(thetas), bins]. Returns the loss of every
// step, in order.
func (t *Trainer[B]) FitSinogram(projector *tomo.Projector[B], thetas []float64, sinogram *tensor.Tensor[float32, B]) ([]float64, error) {
	if len(thetas) == 0 {
		return nil, fmt.Errorf("train: no projection angles")
	}
	ss := sinogram.Shape()
	expected := tensor.Shape{len(thetas), projector.Bins()}
	if !ss.Equal(expected) {
		return nil, fmt.Errorf("train: expected sinogram shape %v, got %v", expected, ss)
	}

	field := tomo.NewNetworkField(t.model)
	rows := t.sinogramRows(sinogram, len(thetas), projector.Bins())

	tape := t.backend.GetTape()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	history := make([]float64, 0, t.config.Epochs*len(thetas))
	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		for _, idx := range t.rng.Perm(len(thetas)) {
			t.optimizer.ZeroGrad()
			tape.Clear()

			pred := projector.ProjectAngle(field, thetas[idx])
			loss := t.loss.Forward(pred, rows[idx])

			grads := autodiff.Backward(loss, t.backend)
			t.optimizer.Step(grads)

			history = append(history, float64(loss.Item()))
		}
	}

	return history, nil
}

// sampleBatch copies BatchSize random rows of the training set into fresh
// leaf tensors. The copy happens outside the tape; only the forward pass
// over the batch is recorded.
func (t *Trainer[B]) sampleBatch(coords, values *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[float32, B]) {
	n := coords.Shape()[0]
	k := t.config.BatchSize

	batchCoords, err := tensor.NewRaw(tensor.Shape{k, 2}, tensor.Float32, t.backend.Device())
	if err != nil {
		panic(err)
	}
	batchValues, err := tensor.NewRaw(tensor.Shape{k, 1}, tensor.Float32, t.backend.Device())
	if err != nil {
		panic(err)
	}

	src := coords.Raw().AsFloat32()
	dst := batchCoords.AsFloat32()
	vsrc := values.Raw().AsFloat32()
	vdst := batchValues.AsFloat32()

	for i, j := range t.rng.Perm(n)[:k] {
		dst[2*i] = src[2*j]
		dst[2*i+1] = src[2*j+1]
		vdst[i] = vsrc[j]
	}

	return tensor.New[float32, B](batchCoords, t.backend), tensor.New[float32, B](batchValues, t.backend)
}

// sinogramRows splits the sinogram into per-angle [bins] leaf tensors once,
// before training starts.
func (t *Trainer[B]) sinogramRows(sinogram *tensor.Tensor[float32, B], angles, bins int) []*tensor.Tensor[float32, B] {
	data := sinogram.Raw().AsFloat32()
	rows := make([]*tensor.Tensor[float32, B], angles)
	for i := range rows {
		raw, err := tensor.NewRaw(tensor.Shape{bins}, tensor.Float32, t.backend.Device())
		if err != nil {
			panic(err)
		}
		copy(raw.AsFloat32(), data[i*bins:(i+1)*bins])
		rows[i] = tensor.New[float32, B](raw, t.backend)
	}
	return rows
}
