package tomo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedranaa/tomo-nf/internal/backend/cpu"
	"github.com/vedranaa/tomo-nf/internal/tensor"
	"github.com/vedranaa/tomo-nf/tomo"
)

// constantField evaluates to the same value everywhere, including outside
// the unit square. Out-of-domain masking is the projector's job.
type constantField struct {
	value   float32
	backend *cpu.Backend
}

func (f constantField) Eval(coords *tensor.Tensor[float32, *cpu.Backend]) *tensor.Tensor[float32, *cpu.Backend] {
	n := coords.Shape()[0]
	return tensor.Full(tensor.Shape{n, 1}, f.value, f.backend)
}

func TestNewProjector_Defaults(t *testing.T) {
	backend := cpu.New()

	p, err := tomo.NewProjector(backend, 32, 0)
	require.NoError(t, err)
	assert.Equal(t, 32, p.Bins())
	assert.Equal(t, 32, p.Samples(), "samples must default to bins")

	p, err = tomo.NewProjector(backend, 32, 48)
	require.NoError(t, err)
	assert.Equal(t, 48, p.Samples())
}

func TestNewProjector_RejectsBadGeometry(t *testing.T) {
	backend := cpu.New()
	_, err := tomo.NewProjector(backend, 0, 0)
	assert.Error(t, err)
	_, err = tomo.NewProjector(backend, -4, 0)
	assert.Error(t, err)
	_, err = tomo.NewProjector(backend, 8, 1)
	assert.Error(t, err)
}

func TestRays_GeometryAtZero(t *testing.T) {
	backend := cpu.New()
	p, err := tomo.NewProjector(backend, 3, 3)
	require.NoError(t, err)

	coords, mask := p.Rays(0)
	require.True(t, coords.Shape().Equal(tensor.Shape{9, 2}))
	require.True(t, mask.Shape().Equal(tensor.Shape{9, 1}))

	data := coords.Raw().AsFloat32()
	// At theta=0: x = s, y = b. First bin (b=-1), first sample (s=-1).
	assert.InDelta(t, -1, float64(data[0]), 1e-6)
	assert.InDelta(t, -1, float64(data[1]), 1e-6)
	// Middle bin (b=0), middle sample (s=0) is the origin.
	assert.InDelta(t, 0, float64(data[2*4]), 1e-6)
	assert.InDelta(t, 0, float64(data[2*4+1]), 1e-6)

	// Every on-axis sample lies inside the domain.
	for _, m := range mask.Raw().AsFloat32() {
		assert.Equal(t, float32(1), m)
	}
}

func TestRays_MaskZeroOutsideDomain(t *testing.T) {
	backend := cpu.New()
	p, err := tomo.NewProjector(backend, 5, 5)
	require.NoError(t, err)

	// At 45 degrees the corner rays leave the unit square.
	_, mask := p.Rays(math.Pi / 4)
	maskData := mask.Raw().AsFloat32()

	zeros := 0
	for _, m := range maskData {
		if m == 0 {
			zeros++
		}
	}
	assert.Greater(t, zeros, 0, "diagonal scan must have out-of-domain samples")
}

func TestProjectAngle_ConstantField(t *testing.T) {
	backend := cpu.New()
	p, err := tomo.NewProjector(backend, 8, 8)
	require.NoError(t, err)

	field := constantField{value: 2, backend: backend}

	// At theta=0 every ray stays inside the domain, so each bin averages
	// the constant exactly.
	row := p.ProjectAngle(field, 0)
	require.True(t, row.Shape().Equal(tensor.Shape{8}))
	for _, v := range row.Raw().AsFloat32() {
		assert.InDelta(t, 2, float64(v), 1e-6)
	}
}

func TestProjectAngle_MirrorSymmetry(t *testing.T) {
	backend := cpu.New()
	p, err := tomo.NewProjector(backend, 9, 9)
	require.NoError(t, err)

	img, err := tomo.NewImageField(offCenterBlob(32), backend)
	require.NoError(t, err)

	theta := 0.7
	forward := p.ProjectAngle(img, theta).Raw().AsFloat32()
	backward := p.ProjectAngle(img, theta+math.Pi).Raw().AsFloat32()

	// Opposite viewing directions see the same rays with the detector
	// axis reversed.
	n := len(forward)
	for i := 0; i < n; i++ {
		assert.InDelta(t, float64(forward[i]), float64(backward[n-1-i]), 1e-5)
	}
}

func TestProject_MatchesProjectAngleRows(t *testing.T) {
	backend := cpu.New()
	p, err := tomo.NewProjector(backend, 6, 6)
	require.NoError(t, err)

	img, err := tomo.NewImageField(offCenterBlob(16), backend)
	require.NoError(t, err)

	thetas := tomo.Angles(4)
	sinogram := p.Project(img, thetas)
	require.True(t, sinogram.Shape().Equal(tensor.Shape{4, 6}))

	data := sinogram.Raw().AsFloat32()
	for i, theta := range thetas {
		row := p.ProjectAngle(img, theta).Raw().AsFloat32()
		for j, v := range row {
			assert.Equal(t, v, data[i*6+j])
		}
	}
}

func TestAngles_HalfTurnCoverage(t *testing.T) {
	thetas := tomo.Angles(4)
	require.Len(t, thetas, 4)
	assert.Equal(t, 0.0, thetas[0])
	assert.InDelta(t, 3*math.Pi/4, thetas[3], 1e-12)
}
