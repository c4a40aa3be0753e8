package raster

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestValidateRejectsEmpty(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	err := Validate(empty, "test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerate))
}

func TestValidateAcceptsWellFormed(t *testing.T) {
	m := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer m.Close()

	assert.NoError(t, Validate(m, "test"))
}

func TestValidateGrayRejectsColor(t *testing.T) {
	m := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer m.Close()

	assert.Error(t, ValidateGray(m, "test"))
	assert.NoError(t, Validate(m, "test"))
}

func TestScopeReleasesTracked(t *testing.T) {
	scope := NewScope()

	a := scope.Track(gocv.NewMatWithSize(5, 5, gocv.MatTypeCV8UC1))
	b := scope.Track(gocv.NewMatWithSize(5, 5, gocv.MatTypeCV8UC1))
	assert.Equal(t, 2, scope.Count())
	assert.False(t, a.Empty())
	assert.False(t, b.Empty())

	scope.Close()
	assert.Equal(t, 0, scope.Count())
}

func TestToImageGray(t *testing.T) {
	m := gocv.NewMatWithSize(4, 6, gocv.MatTypeCV8UC1)
	defer m.Close()
	m.SetUCharAt(2, 3, 137)

	img, err := ToImage(m)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, 6, gray.Bounds().Dx())
	assert.Equal(t, 4, gray.Bounds().Dy())
	assert.Equal(t, uint8(137), gray.GrayAt(3, 2).Y)
}

func TestToImageBGROrder(t *testing.T) {
	m := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3)
	defer m.Close()
	m.SetUCharAt3(0, 0, 0, 10)  // B
	m.SetUCharAt3(0, 0, 1, 20)  // G
	m.SetUCharAt3(0, 0, 2, 200) // R

	img, err := ToImage(m)
	require.NoError(t, err)

	rgba, ok := img.(*image.RGBA)
	require.True(t, ok)
	c := rgba.RGBAAt(0, 0)
	assert.Equal(t, uint8(200), c.R)
	assert.Equal(t, uint8(20), c.G)
	assert.Equal(t, uint8(10), c.B)
}

func TestToImageDegenerate(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := ToImage(empty)
	assert.Error(t, err)
}
