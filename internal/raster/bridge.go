package raster

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// ToImage converts a mat into a standard library image so encoders that do
// not speak OpenCV (debug artifact writers, previews) can consume it.
// Channel order follows the OpenCV BGR convention for 3-channel input.
func ToImage(m gocv.Mat) (image.Image, error) {
	if err := Validate(m, "ToImage"); err != nil {
		return nil, err
	}

	rows, cols := m.Rows(), m.Cols()

	switch m.Channels() {
	case 1:
		return grayToImage(m, rows, cols), nil
	case 3:
		return bgrToImage(m, rows, cols), nil
	default:
		return nil, fmt.Errorf("ToImage: unsupported channel count %d", m.Channels())
	}
}

func grayToImage(m gocv.Mat, rows, cols int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetGray(x, y, color.Gray{Y: m.GetUCharAt(y, x)})
		}
	}

	return img
}

func bgrToImage(m gocv.Mat, rows, cols int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			b := m.GetUCharAt3(y, x, 0)
			g := m.GetUCharAt3(y, x, 1)
			r := m.GetUCharAt3(y, x, 2)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}
