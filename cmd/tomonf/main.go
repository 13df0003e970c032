// Command tomonf runs a tomographic reconstruction experiment: build a
// phantom, synthesize its sinogram, fit a coordinate field network in
// direct or sinogram mode, and render the results as PNG images.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/vedranaa/tomo-nf/autodiff"
	"github.com/vedranaa/tomo-nf/backend/cpu"
	"github.com/vedranaa/tomo-nf/config"
	"github.com/vedranaa/tomo-nf/nn"
	"github.com/vedranaa/tomo-nf/phantom"
	"github.com/vedranaa/tomo-nf/tensor"
	"github.com/vedranaa/tomo-nf/tomo"
	"github.com/vedranaa/tomo-nf/train"
)

type adBackend = *autodiff.Backend[*cpu.Backend]

var configPath = flag.String("config", "tomonf.yaml", "path to the experiment configuration")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	backend := autodiff.New(cpu.New())

	img, err := buildPhantom(cfg)
	if err != nil {
		return err
	}

	model, err := buildModel(cfg, backend)
	if err != nil {
		return err
	}
	trainer, err := train.NewTrainer[adBackend](model, train.Config{
		LearningRate: cfg.Training.LearningRate,
		Epochs:       cfg.Training.Epochs,
		Optimizer:    cfg.Training.Optimizer,
		Seed:         cfg.Training.Seed,
	}, backend)
	if err != nil {
		return err
	}

	// The sinogram is only synthesized when the mode fits against it;
	// direct mode regresses on pixel values and never measures rays.
	var history []float64
	var sinogram *tensor.Tensor[float32, adBackend]
	var bins int
	switch cfg.Training.Mode {
	case "sinogram":
		field, err := tomo.NewImageField[adBackend](img, backend)
		if err != nil {
			return err
		}
		projector, err := tomo.NewProjector[adBackend](backend, cfg.Scan.Bins, cfg.Scan.Samples)
		if err != nil {
			return err
		}
		thetas := tomo.Angles(cfg.Scan.Angles)
		log.Printf("synthesizing sinogram: %d angles x %d bins", len(thetas), projector.Bins())
		sinogram = projector.Project(field, thetas)
		bins = projector.Bins()

		log.Printf("fitting field to sinogram: %d epochs", cfg.Training.Epochs)
		history, err = trainer.FitSinogram(projector, thetas, sinogram)
		if err != nil {
			return err
		}
	case "direct":
		log.Printf("fitting field to pixel values: %d epochs", cfg.Training.Epochs)
		history, err = fitDirect(trainer, img, backend)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown training mode %q", cfg.Training.Mode)
	}

	mean, std := train.Summary(history)
	log.Printf("trained %d steps, final loss %.6g (mean %.6g, std %.6g)",
		len(history), history[len(history)-1], mean, std)

	recon, err := trainer.Reconstruct(cfg.Output.Size, cfg.Output.Size)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	if err := writePNG(filepath.Join(cfg.Output.Dir, "phantom.png"), img); err != nil {
		return err
	}
	if sinogram != nil {
		m := sinogramMatrix(sinogram, cfg.Scan.Angles, bins)
		if err := writePNG(filepath.Join(cfg.Output.Dir, "sinogram.png"), m); err != nil {
			return err
		}
	}
	if err := writePNG(filepath.Join(cfg.Output.Dir, "reconstruction.png"), recon); err != nil {
		return err
	}

	log.Printf("results written to %s", cfg.Output.Dir)
	return nil
}

func buildPhantom(cfg *config.Config) (*mat.Dense, error) {
	n := cfg.Output.Size
	switch cfg.Output.Phantom {
	case "disk":
		return phantom.Disk(n, n, 0, 0, 0.6, 1.0), nil
	case "gaussian":
		return phantom.Gaussian(n, n, 0, 0, 0.3, 1.0), nil
	case "squares":
		return phantom.Squares(n, n), nil
	default:
		return nil, fmt.Errorf("unknown phantom %q", cfg.Output.Phantom)
	}
}

func buildModel(cfg *config.Config, backend adBackend) (*nn.Siren[adBackend], error) {
	sc := nn.DefaultSirenConfig()
	sc.HiddenLayers = cfg.Model.HiddenLayers
	sc.HiddenFeatures = cfg.Model.HiddenFeatures
	sc.FirstOmega = cfg.Model.FirstOmega
	sc.HiddenOmega = cfg.Model.HiddenOmega
	sc.Seed = cfg.Model.Seed
	return nn.NewSiren[adBackend](sc, backend)
}

// fitDirect trains against the phantom's own pixel values on the full
// coordinate grid.
func fitDirect(trainer *train.Trainer[adBackend], img *mat.Dense, backend adBackend) ([]float64, error) {
	rows, cols := img.Dims()
	coords, err := tomo.Grid[adBackend](rows, cols, backend)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(tensor.Shape{rows * cols, 1}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data[r*cols+c] = float32(img.At(r, c))
		}
	}

	return trainer.FitImage(coords, tensor.New[float32, adBackend](raw, backend))
}

// sinogramMatrix copies a [angles, bins] tensor into a matrix for rendering.
func sinogramMatrix(sinogram *tensor.Tensor[float32, adBackend], angles, bins int) *mat.Dense {
	data := sinogram.Raw().AsFloat32()
	m := mat.NewDense(angles, bins, nil)
	for i := 0; i < angles; i++ {
		for j := 0; j < bins; j++ {
			m.Set(i, j, float64(data[i*bins+j]))
		}
	}
	return m
}

// writePNG renders a matrix as a grayscale PNG, scaling values to the full
// 8-bit range.
func writePNG(path string, m *mat.Dense) error {
	rows, cols := m.Dims()

	lo, hi := mat.Min(m), mat.Max(m)
	scale := 0.0
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			img.SetGray(c, r, color.Gray{Y: uint8((m.At(r, c) - lo) * scale)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
