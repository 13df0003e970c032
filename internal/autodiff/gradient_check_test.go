package autodiff_test

import (
	"math"
	"testing"

	"github.com/vedranaa/tomo-nf/internal/autodiff"
	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

// The projection training path is sin layers, a mask multiply, a reshape
// and a mean over the sample axis. This test checks the recorded gradients
// of exactly that pipeline against central finite differences.
func TestGradientCheck_ProjectionPipeline(t *testing.T) {
	const omega = float32(2.0)

	backend := autodiff.New(cpu.New())

	coordsData := []float32{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}
	weightData := []float32{0.3, -0.7}
	maskData := []float32{1, 1, 0} // one sample out of domain

	// loss(w) = mean over bins of mask * sin(omega * (x @ w^T)), one bin
	// of three samples.
	forward := func(w []float32) float32 {
		var total float32
		for i := 0; i < 3; i++ {
			pre := coordsData[2*i]*w[0] + coordsData[2*i+1]*w[1]
			total += maskData[i] * float32(math.Sin(float64(omega*pre)))
		}
		return total / 3
	}

	x, _ := tensor.FromSlice(coordsData, tensor.Shape{3, 2}, backend)
	w, _ := tensor.FromSlice(weightData, tensor.Shape{1, 2}, backend)
	mask, _ := tensor.FromSlice(maskData, tensor.Shape{3, 1}, backend)

	backend.Tape().StartRecording()
	values := x.MatMul(w.T()).MulScalar(omega).Sin() // [3,1]
	loss := values.Mul(mask).Reshape(1, 3).MeanDim(1, false)
	backend.Tape().StopRecording()

	if !loss.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("loss shape = %v, want [1]", loss.Shape())
	}
	if diff := loss.Item() - forward(weightData); diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("forward = %v, reference = %v", loss.Item(), forward(weightData))
	}

	grads := autodiff.Backward(loss, backend)
	wGrad := grads[w.Raw()]
	if wGrad == nil {
		t.Fatal("weight must receive a gradient")
	}

	const eps = 1e-3
	for i := range weightData {
		plus := append([]float32(nil), weightData...)
		minus := append([]float32(nil), weightData...)
		plus[i] += eps
		minus[i] -= eps

		numerical := (forward(plus) - forward(minus)) / (2 * eps)
		analytic := wGrad.AsFloat32()[i]

		if diff := float64(numerical - analytic); math.Abs(diff) > 1e-2 {
			t.Errorf("dL/dw[%d]: autodiff %v vs numerical %v", i, analytic, numerical)
		}
	}
}

// Gradient check for the MSE loss pattern used by the trainer:
// loss = mean((pred - target)²).
func TestGradientCheck_MSE(t *testing.T) {
	backend := autodiff.New(cpu.New())

	predData := []float32{0.5, -0.3, 0.8}
	targetData := []float32{0.2, 0.1, 0.9}

	pred, _ := tensor.FromSlice(predData, tensor.Shape{3}, backend)
	target, _ := tensor.FromSlice(targetData, tensor.Shape{3}, backend)

	backend.Tape().StartRecording()
	diff := pred.Sub(target)
	loss := diff.Mul(diff).Mean()
	backend.Tape().StopRecording()

	grads := autodiff.Backward(loss, backend)
	predGrad := grads[pred.Raw()].AsFloat32()

	// d/dp mean((p - t)²) = 2(p - t)/N
	for i := range predData {
		want := 2 * (predData[i] - targetData[i]) / 3
		if d := predGrad[i] - want; d > 1e-6 || d < -1e-6 {
			t.Errorf("grad[%d] = %v, want %v", i, predGrad[i], want)
		}
	}
}
