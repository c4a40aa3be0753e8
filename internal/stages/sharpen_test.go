package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestSharpenFlatRegionUnchanged(t *testing.T) {
	// Both kernels sum to one, so a flat field keeps its level exactly.
	for _, strength := range []SharpenStrength{SharpenNormal, SharpenStrong} {
		src := uniformGray(t, 80, 80, 128)

		out, err := Sharpen(src, strength)
		require.NoError(t, err)

		assert.True(t, matsEqual(t, src, out), "strength %s", strength)
		out.Close()
	}
}

func TestSharpenPreservesGeometry(t *testing.T) {
	src := stripedPage(t, 120, 300)

	out, err := Sharpen(src, SharpenStrong)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, src.Rows(), out.Rows())
	assert.Equal(t, src.Cols(), out.Cols())
	assert.Equal(t, 1, out.Channels())
}

func TestSharpenDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := Sharpen(empty, SharpenNormal)
	assert.Error(t, err)
}
