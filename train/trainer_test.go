package train_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedranaa/tomo-nf/internal/autodiff"
	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/nn"
	"github.com/vedranaa/tomo-nf/internal/tensor"
	"github.com/vedranaa/tomo-nf/phantom"
	"github.com/vedranaa/tomo-nf/tomo"
	"github.com/vedranaa/tomo-nf/train"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

func smallSiren(t *testing.T, backend adBackend) *nn.Siren[adBackend] {
	t.Helper()
	cfg := nn.DefaultSirenConfig()
	cfg.HiddenLayers = 1
	cfg.HiddenFeatures = 16
	cfg.Seed = 7
	net, err := nn.NewSiren(cfg, backend)
	require.NoError(t, err)
	return net
}

func constantTarget(t *testing.T, backend adBackend, n int, value float32) (*tensor.Tensor[float32, adBackend], *tensor.Tensor[float32, adBackend]) {
	t.Helper()
	coords, err := tomo.Grid(n, n, backend)
	require.NoError(t, err)
	values := tensor.Full(tensor.Shape{n * n, 1}, value, backend)
	return coords, values
}

func TestNewTrainer_Validation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)

	_, err := train.NewTrainer[adBackend](model, train.Config{LearningRate: -1}, backend)
	assert.Error(t, err)
	_, err = train.NewTrainer[adBackend](model, train.Config{Epochs: -1}, backend)
	assert.Error(t, err)
	_, err = train.NewTrainer[adBackend](model, train.Config{Optimizer: "lbfgs"}, backend)
	assert.Error(t, err)
}

func TestFitImage_ShapeValidation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)
	trainer, err := train.NewTrainer[adBackend](model, train.Config{Epochs: 1}, backend)
	require.NoError(t, err)

	coords, values := constantTarget(t, backend, 4, 0)

	badCoords := tensor.Zeros[float32](tensor.Shape{16, 3}, backend)
	_, err = trainer.FitImage(badCoords, values)
	assert.Error(t, err)

	badValues := tensor.Zeros[float32](tensor.Shape{15, 1}, backend)
	_, err = trainer.FitImage(coords, badValues)
	assert.Error(t, err)
}

func TestFitImage_ConstantTargetConverges(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)
	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		LearningRate: 5e-3,
		Epochs:       600,
	}, backend)
	require.NoError(t, err)

	coords, values := constantTarget(t, backend, 8, 0.5)

	history, err := trainer.FitImage(coords, values)
	require.NoError(t, err)
	require.Len(t, history, 600)

	assert.Less(t, history[len(history)-1], 1e-3,
		"direct fit of a constant field must converge")
}

func TestFitImage_MiniBatch(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)
	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		Epochs:    10,
		BatchSize: 8,
		Seed:      3,
	}, backend)
	require.NoError(t, err)

	coords, values := constantTarget(t, backend, 6, 0.2)
	history, err := trainer.FitImage(coords, values)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

func TestFitImage_BatchLargerThanDataErrors(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)
	trainer, err := train.NewTrainer[adBackend](model, train.Config{Epochs: 1, BatchSize: 100}, backend)
	require.NoError(t, err)

	coords, values := constantTarget(t, backend, 4, 0)
	_, err = trainer.FitImage(coords, values)
	assert.Error(t, err)
}

func TestFitSinogram_LossDecreases(t *testing.T) {
	backend := autodiff.New(cpu.New())

	img := phantom.Gaussian(16, 16, 0, 0, 0.4, 1.0)
	field, err := tomo.NewImageField[adBackend](img, backend)
	require.NoError(t, err)

	projector, err := tomo.NewProjector[adBackend](backend, 8, 8)
	require.NoError(t, err)
	thetas := tomo.Angles(8)
	sinogram := projector.Project(field, thetas)

	model := smallSiren(t, backend)
	epochs := 5
	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		LearningRate: 1e-3,
		Epochs:       epochs,
		Seed:         1,
	}, backend)
	require.NoError(t, err)

	history, err := trainer.FitSinogram(projector, thetas, sinogram)
	require.NoError(t, err)
	require.Len(t, history, epochs*len(thetas))

	first, _ := train.Summary(history[:len(thetas)])
	last, _ := train.Summary(history[len(history)-len(thetas):])
	assert.Less(t, last, first, "loss must decrease over epochs")
}

func TestFitSinogram_ReprojectionResidual(t *testing.T) {
	backend := autodiff.New(cpu.New())

	img := phantom.Gaussian(16, 16, 0, 0, 0.4, 1.0)
	field, err := tomo.NewImageField[adBackend](img, backend)
	require.NoError(t, err)

	projector, err := tomo.NewProjector[adBackend](backend, 8, 8)
	require.NoError(t, err)
	thetas := tomo.Angles(8)
	sinogram := projector.Project(field, thetas)

	cfg := nn.DefaultSirenConfig()
	cfg.HiddenLayers = 1
	cfg.HiddenFeatures = 32
	cfg.Seed = 7
	model, err := nn.NewSiren(cfg, backend)
	require.NoError(t, err)

	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		LearningRate: 3e-3,
		Epochs:       300,
		Seed:         1,
	}, backend)
	require.NoError(t, err)

	_, err = trainer.FitSinogram(projector, thetas, sinogram)
	require.NoError(t, err)

	// Projecting the trained field must land close to the measurements it
	// was fitted against.
	reprojected := projector.Project(tomo.NewNetworkField[adBackend](model), thetas)
	want := sinogram.Raw().AsFloat32()
	got := reprojected.Raw().AsFloat32()
	require.Len(t, got, len(want))

	var mse float64
	for i := range want {
		d := float64(got[i] - want[i])
		mse += d * d
	}
	mse /= float64(len(want))
	assert.Less(t, mse, 1e-2, "reprojection must match the fitted sinogram")
}

func TestFitSinogram_ShapeValidation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := smallSiren(t, backend)
	trainer, err := train.NewTrainer[adBackend](model, train.Config{Epochs: 1}, backend)
	require.NoError(t, err)

	projector, err := tomo.NewProjector[adBackend](backend, 8, 8)
	require.NoError(t, err)

	_, err = trainer.FitSinogram(projector, nil, tensor.Zeros[float32](tensor.Shape{1, 8}, backend))
	assert.Error(t, err)

	bad := tensor.Zeros[float32](tensor.Shape{3, 7}, backend)
	_, err = trainer.FitSinogram(projector, tomo.Angles(3), bad)
	assert.Error(t, err)
}

func TestReconstruct(t *testing.T) {
	backend := autodiff.New(cpu.New())

	// A high-omega field oscillates between training points, so off-grid
	// renders of an on-grid fit can ring well outside any pixel tolerance.
	// Keep the field low-frequency and the training grid dense enough to
	// pin it down between samples.
	cfg := nn.DefaultSirenConfig()
	cfg.HiddenLayers = 1
	cfg.HiddenFeatures = 16
	cfg.FirstOmega = 3
	cfg.HiddenOmega = 3
	cfg.Seed = 7
	model, err := nn.NewSiren(cfg, backend)
	require.NoError(t, err)

	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		LearningRate: 5e-3,
		Epochs:       600,
	}, backend)
	require.NoError(t, err)

	coords, values := constantTarget(t, backend, 12, 0.5)
	history, err := trainer.FitImage(coords, values)
	require.NoError(t, err)
	require.Less(t, history[len(history)-1], 1e-3)

	// The field is continuous: render at a resolution never trained on.
	img, err := trainer.Reconstruct(15, 13)
	require.NoError(t, err)

	rows, cols := img.Dims()
	require.Equal(t, 15, rows)
	require.Equal(t, 13, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			assert.InDelta(t, 0.5, img.At(r, c), 0.1)
		}
	}
}

func TestSummary(t *testing.T) {
	mean, std := train.Summary([]float64{1, 2, 3})
	assert.InDelta(t, 2, mean, 1e-12)
	assert.InDelta(t, 1, std, 1e-12)
}
