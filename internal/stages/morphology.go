package stages

import (
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const morphKernelSize = 2

// MorphClean removes isolated speckle and closes small gaps in strokes by
// opening then closing with a small structuring element. Opening must run
// first: closing first would cement noise blobs before they can be removed.
func MorphClean(src gocv.Mat) (gocv.Mat, error) {
	if err := raster.ValidateGray(src, "MorphClean"); err != nil {
		return gocv.NewMat(), err
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(morphKernelSize, morphKernelSize))
	defer kernel.Close()

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(src, &opened, gocv.MorphOpen, kernel)

	dst := gocv.NewMat()
	gocv.MorphologyEx(opened, &dst, gocv.MorphClose, kernel)

	return dst, nil
}
