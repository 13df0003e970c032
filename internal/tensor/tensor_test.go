package tensor

import (
	"math/rand"
	"testing"
)

// fakeBackend is a minimal stand-in so tensors can be created without
// importing the cpu package (which would be an import cycle).
type fakeBackend struct{}

func (fakeBackend) Add(a, b *RawTensor) *RawTensor                   { return nil }
func (fakeBackend) Sub(a, b *RawTensor) *RawTensor                   { return nil }
func (fakeBackend) Mul(a, b *RawTensor) *RawTensor                   { return nil }
func (fakeBackend) Div(a, b *RawTensor) *RawTensor                   { return nil }
func (fakeBackend) MatMul(a, b *RawTensor) *RawTensor                { return nil }
func (fakeBackend) Reshape(t *RawTensor, s Shape) *RawTensor         { return nil }
func (fakeBackend) Transpose(t *RawTensor, axes ...int) *RawTensor   { return nil }
func (fakeBackend) MulScalar(t *RawTensor, s any) *RawTensor         { return nil }
func (fakeBackend) AddScalar(t *RawTensor, s any) *RawTensor         { return nil }
func (fakeBackend) SubScalar(t *RawTensor, s any) *RawTensor         { return nil }
func (fakeBackend) DivScalar(t *RawTensor, s any) *RawTensor         { return nil }
func (fakeBackend) Exp(t *RawTensor) *RawTensor                      { return nil }
func (fakeBackend) Sqrt(t *RawTensor) *RawTensor                     { return nil }
func (fakeBackend) Sin(t *RawTensor) *RawTensor                      { return nil }
func (fakeBackend) Cos(t *RawTensor) *RawTensor                      { return nil }
func (fakeBackend) Sum(t *RawTensor) *RawTensor                      { return nil }
func (fakeBackend) Mean(t *RawTensor) *RawTensor                     { return nil }
func (fakeBackend) SumDim(t *RawTensor, d int, k bool) *RawTensor    { return nil }
func (fakeBackend) MeanDim(t *RawTensor, d int, k bool) *RawTensor   { return nil }
func (fakeBackend) Name() string                                     { return "Fake" }
func (fakeBackend) Device() Device                                   { return CPU }

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3}, 6},
		{Shape{1}, 1},
		{Shape{4, 1, 5}, 20},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestComputeStrides_RowMajor(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	if len(strides) != len(want) {
		t.Fatalf("strides = %v, want %v", strides, want)
	}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		needs      bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 3}, Shape{1, 3}, Shape{2, 3}, true},
		{Shape{4, 1}, Shape{3}, Shape{4, 3}, true},
		{Shape{5}, Shape{2, 5}, Shape{2, 5}, true},
	}
	for _, tt := range tests {
		got, needs, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
		}
		if !got.Equal(tt.want) || needs != tt.needs {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v; want %v, %v",
				tt.a, tt.b, got, needs, tt.want, tt.needs)
		}
	}
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{4, 3}); err == nil {
		t.Error("expected error for incompatible shapes")
	}
}

func TestFromSlice_Values(t *testing.T) {
	backend := fakeBackend{}
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatal(err)
	}
	if v := x.At(1, 2); v != 6 {
		t.Errorf("At(1,2) = %v, want 6", v)
	}
	if v := x.At(0, 0); v != 1 {
		t.Errorf("At(0,0) = %v, want 1", v)
	}
}

func TestFromSlice_CountMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}, fakeBackend{}); err == nil {
		t.Error("expected error for element count mismatch")
	}
}

func TestFull_Item(t *testing.T) {
	x := Full(Shape{1}, float32(2.5), fakeBackend{})
	if got := x.Item(); got != 2.5 {
		t.Errorf("Item() = %v, want 2.5", got)
	}
}

func TestLinspace_Endpoints(t *testing.T) {
	x := Linspace(float64(-1), 1, 5, fakeBackend{})
	data := x.Data()
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if diff := data[i] - want[i]; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}
	if data[len(data)-1] != 1 {
		t.Error("last element must be exactly the endpoint")
	}
}

func TestRandn_Seeded(t *testing.T) {
	a := Randn[float32](Shape{16}, rand.New(rand.NewSource(3)), fakeBackend{})
	b := Randn[float32](Shape{16}, rand.New(rand.NewSource(3)), fakeBackend{})
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			t.Fatal("same seed must produce identical tensors")
		}
	}
}

func TestRawTensor_View(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatal(err)
	}
	raw.AsFloat32()[0] = 7

	view, err := raw.View(Shape{6})
	if err != nil {
		t.Fatal(err)
	}
	if view.AsFloat32()[0] != 7 {
		t.Error("view must share storage with the original")
	}

	view.AsFloat32()[5] = 9
	if raw.AsFloat32()[5] != 9 {
		t.Error("writes through the view must be visible in the original")
	}

	if _, err := raw.View(Shape{4}); err == nil {
		t.Error("expected error for element count mismatch")
	}
}

func TestTensor_Clone(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2}, Shape{2}, fakeBackend{})
	y := x.Clone()
	y.Raw().AsFloat32()[0] = 5
	if x.Raw().AsFloat32()[0] != 1 {
		t.Error("clone must not share storage")
	}
}
