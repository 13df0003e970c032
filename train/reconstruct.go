package train

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/vedranaa/tomo-nf/tomo"
)

// Reconstruct renders the trained field back to a raster image by
// evaluating the model on a rows x cols grid over [-1,1]². The field is
// continuous, so any resolution works regardless of what the model was
// trained on.
func (t *Trainer[B]) Reconstruct(rows, cols int) (*mat.Dense, error) {
	grid, err := tomo.Grid(rows, cols, t.backend)
	if err != nil {
		return nil, err
	}

	// Evaluation only: keep the rendering off the tape.
	tape := t.backend.GetTape()
	wasRecording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if wasRecording {
			tape.StartRecording()
		}
	}()

	values := t.model.Forward(grid).Raw().AsFloat32()

	img := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			img.Set(r, c, float64(values[r*cols+c]))
		}
	}

	return img, nil
}

// Summary reduces a loss history to its mean and standard deviation,
// handy for logging a fit in one line.
func Summary(history []float64) (mean, std float64) {
	return stat.MeanStdDev(history, nil)
}
