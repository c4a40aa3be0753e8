package quality

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

func uniformGray(t *testing.T, rows, cols int, value uint8) gocv.Mat {
	t.Helper()

	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.SetUCharAt(y, x, value)
		}
	}

	t.Cleanup(func() { m.Close() })
	return m
}

// noisyPage builds a white page with thin black text strokes and additive
// Gaussian noise, clamped to the sample range.
func noisyPage(t *testing.T, rows, cols int, sigma float64) gocv.Mat {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			base := 255.0
			if y%40 >= 18 && y%40 <= 20 && x > 50 && x < cols-50 {
				base = 0.0
			}

			v := base + rng.NormFloat64()*sigma
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			m.SetUCharAt(y, x, uint8(v))
		}
	}

	t.Cleanup(func() { m.Close() })
	return m
}

func TestBrightnessUniform(t *testing.T) {
	m := uniformGray(t, 100, 200, 37)

	got, err := Brightness(m)
	require.NoError(t, err)

	assert.InDelta(t, 37.0, got, 0.5)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 255.0)
}

func TestBrightnessDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := Brightness(empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrDegenerate))
}

func TestIsInverted(t *testing.T) {
	tests := []struct {
		name  string
		value uint8
		want  bool
	}{
		{"dark field reads inverted", 30, true},
		{"light field reads normal", 220, false},
		{"just below midpoint", 126, true},
		{"just above midpoint", 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := uniformGray(t, 50, 50, tt.value)

			got, err := IsInverted(m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInvertedDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := IsInverted(empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrDegenerate))
}

func TestBlurScoreFlatImage(t *testing.T) {
	m := uniformGray(t, 80, 80, 128)

	got, err := BlurScore(m)
	require.NoError(t, err)

	// A flat image has no edge response at all, far below the blur cutoff.
	assert.InDelta(t, 0.0, got, 1e-9)
	assert.Less(t, got, BlurThreshold)
}

func TestBlurScoreDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := BlurScore(empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrDegenerate))
}

func TestNoiseScoreClassifiesNoisyScan(t *testing.T) {
	m := noisyPage(t, 400, 800, 25)

	got, err := NoiseScore(m)
	require.NoError(t, err)

	assert.Greater(t, got, NoiseThreshold)
	assert.Greater(t, got, SevereNoiseThreshold)
	assert.LessOrEqual(t, got, 100.0)
}

func TestNoiseScoreCleanScan(t *testing.T) {
	m := uniformGray(t, 400, 800, 250)

	got, err := NoiseScore(m)
	require.NoError(t, err)
	assert.Less(t, got, NoiseThreshold)
}

func TestForegroundRatio(t *testing.T) {
	m := uniformGray(t, 10, 10, 0)
	for x := 0; x < 10; x++ {
		for y := 0; y < 3; y++ {
			m.SetUCharAt(y, x, 255)
		}
	}
	// A mid-gray sample is neither foreground nor background white.
	m.SetUCharAt(5, 5, 128)

	got, err := ForegroundRatio(m)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-9)
}

func TestForegroundRatioDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := ForegroundRatio(empty)
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrDegenerate))
}

func TestEstimatorsRejectMultiChannel(t *testing.T) {
	m := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8UC3)
	defer m.Close()

	_, err := Brightness(m)
	assert.Error(t, err)

	_, err = NoiseScore(m)
	assert.Error(t, err)
}
