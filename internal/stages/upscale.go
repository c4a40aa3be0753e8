package stages

import (
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	// Images narrower than this benefit from resampling before
	// binarization; anything wider already carries enough stroke detail.
	upscaleWidthLimit = 1000

	// AssumedSourceDPI is the resolution attributed to an unlabeled
	// input when deriving the upscale factor.
	AssumedSourceDPI = 72
)

// Upscale resamples a narrow image up to the target resolution with cubic
// interpolation. Wide images and non-magnifying factors pass through as a
// copy; the stage never downscales. The boolean reports whether resampling
// happened.
func Upscale(src gocv.Mat, targetDPI int) (gocv.Mat, bool, error) {
	if err := raster.ValidateGray(src, "Upscale"); err != nil {
		return gocv.NewMat(), false, err
	}

	if src.Cols() >= upscaleWidthLimit {
		return src.Clone(), false, nil
	}

	factor := float64(targetDPI) / float64(AssumedSourceDPI)
	if factor <= 1.0 {
		return src.Clone(), false, nil
	}

	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Point{}, factor, factor, gocv.InterpolationCubic)

	return dst, true, nil
}
