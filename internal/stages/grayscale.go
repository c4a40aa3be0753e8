package stages

import (
	"fmt"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

// Grayscale reduces a color image to a single luma channel. Single-channel
// input passes through as a copy so callers uniformly own the result.
func Grayscale(src gocv.Mat) (gocv.Mat, error) {
	if err := raster.Validate(src, "Grayscale"); err != nil {
		return gocv.NewMat(), err
	}

	switch src.Channels() {
	case 1:
		return src.Clone(), nil
	case 3:
		dst := gocv.NewMat()
		gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
		return dst, nil
	case 4:
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(src, &bgr, gocv.ColorBGRAToBGR)

		dst := gocv.NewMat()
		gocv.CvtColor(bgr, &dst, gocv.ColorBGRToGray)
		return dst, nil
	default:
		return gocv.NewMat(), fmt.Errorf("Grayscale: unsupported channel count %d", src.Channels())
	}
}
