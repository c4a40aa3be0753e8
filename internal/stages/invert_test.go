package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestInvertPolarityComplement(t *testing.T) {
	src := grayFrom(t, 60, 80, func(y, x int) uint8 {
		return uint8((x*7 + y*13) % 256)
	})

	out, err := InvertPolarity(src)
	require.NoError(t, err)
	defer out.Close()

	for _, p := range [][2]int{{0, 0}, {30, 40}, {59, 79}} {
		want := 255 - src.GetUCharAt(p[0], p[1])
		assert.Equal(t, want, out.GetUCharAt(p[0], p[1]))
	}
}

func TestInvertPolarityInvolution(t *testing.T) {
	src := grayFrom(t, 60, 80, func(y, x int) uint8 {
		return uint8((x*3 + y*11) % 256)
	})

	once, err := InvertPolarity(src)
	require.NoError(t, err)
	defer once.Close()

	twice, err := InvertPolarity(once)
	require.NoError(t, err)
	defer twice.Close()

	assert.True(t, matsEqual(t, src, twice))
}

func TestInvertPolarityDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := InvertPolarity(empty)
	assert.Error(t, err)
}
