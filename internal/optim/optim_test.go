package optim_test

import (
	"math"
	"testing"

	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/nn"
	"github.com/vedranaa/tomo-nf/internal/optim"
	"github.com/vedranaa/tomo-nf/internal/tensor"
)

func makeParam(t *testing.T, backend *cpu.Backend, values []float32) *nn.Parameter[*cpu.Backend] {
	t.Helper()
	pt, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	if err != nil {
		t.Fatal(err)
	}
	return nn.NewParameter("p", pt)
}

func makeGrads(t *testing.T, param *nn.Parameter[*cpu.Backend], values []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat32(), values)
	return map[*tensor.RawTensor]*tensor.RawTensor{param.Tensor().Raw(): raw}
}

func TestSGD_Step(t *testing.T) {
	backend := cpu.New()
	param := makeParam(t, backend, []float32{1, 2})
	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{param}, optim.SGDConfig{LR: 0.1}, backend)

	sgd.Step(makeGrads(t, param, []float32{1, -2}))

	got := param.Tensor().Raw().AsFloat32()
	want := []float32{0.9, 2.2} // p - lr*g
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("param[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSGD_Momentum(t *testing.T) {
	backend := cpu.New()
	param := makeParam(t, backend, []float32{0})
	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{param}, optim.SGDConfig{LR: 0.1, Momentum: 0.9}, backend)

	// Step 1: v = 1, p = -0.1.
	sgd.Step(makeGrads(t, param, []float32{1}))
	// Step 2: v = 0.9 + 1 = 1.9, p = -0.1 - 0.19 = -0.29.
	sgd.Step(makeGrads(t, param, []float32{1}))

	got := param.Tensor().Raw().AsFloat32()[0]
	if diff := got + 0.29; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("param = %v, want -0.29", got)
	}
}

func TestSGD_SkipsMissingGradient(t *testing.T) {
	backend := cpu.New()
	param := makeParam(t, backend, []float32{1})
	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{param}, optim.SGDConfig{LR: 0.1}, backend)

	sgd.Step(map[*tensor.RawTensor]*tensor.RawTensor{})

	if got := param.Tensor().Raw().AsFloat32()[0]; got != 1 {
		t.Errorf("param changed to %v without a gradient", got)
	}
}

func TestAdam_FirstStep(t *testing.T) {
	backend := cpu.New()
	param := makeParam(t, backend, []float32{1})
	adam := optim.NewAdam([]*nn.Parameter[*cpu.Backend]{param}, optim.AdamConfig{LR: 0.001}, backend)

	adam.Step(makeGrads(t, param, []float32{0.5}))

	// After bias correction the first step is lr * g / (|g| + eps),
	// close to lr in magnitude.
	got := param.Tensor().Raw().AsFloat32()[0]
	want := float32(1) - 0.001*0.5/(0.5+1e-8)
	if diff := float64(got - want); math.Abs(diff) > 1e-6 {
		t.Errorf("param = %v, want %v", got, want)
	}
	if adam.GetTimestep() != 1 {
		t.Errorf("timestep = %d, want 1", adam.GetTimestep())
	}
}

func TestAdam_Defaults(t *testing.T) {
	backend := cpu.New()
	adam := optim.NewAdam([]*nn.Parameter[*cpu.Backend]{}, optim.AdamConfig{}, backend)
	if adam.GetLR() != 0.001 {
		t.Errorf("default LR = %v, want 0.001", adam.GetLR())
	}
}

func TestZeroGrad(t *testing.T) {
	backend := cpu.New()
	param := makeParam(t, backend, []float32{1})
	grad, _ := tensor.FromSlice([]float32{0.5}, tensor.Shape{1}, backend)
	param.SetGrad(grad)

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{param}, optim.SGDConfig{}, backend)
	sgd.ZeroGrad()

	if param.Grad() != nil {
		t.Error("ZeroGrad must clear parameter gradients")
	}
}
