package stages

import (
	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

// InvertPolarity returns the bitwise complement of every sample. Applying
// it twice restores the original image.
func InvertPolarity(src gocv.Mat) (gocv.Mat, error) {
	if err := raster.Validate(src, "InvertPolarity"); err != nil {
		return gocv.NewMat(), err
	}

	dst := gocv.NewMat()
	gocv.BitwiseNot(src, &dst)

	return dst, nil
}
