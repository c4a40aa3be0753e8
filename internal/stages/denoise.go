package stages

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	bilateralDiameter   = 9
	bilateralSigmaColor = 75.0
	bilateralSigmaSpace = 75.0
	gaussianKernelSize  = 5
	medianKernelSize    = 5

	nlMeansStrength    = 10.0
	nlMeansTemplateWin = 7
	nlMeansSearchWin   = 21
)

// Denoise reduces image noise with the selected filter. Bilateral smooths
// while preserving stroke edges; median targets impulse noise; the cascade
// chains non-local means, median and bilateral for severely noisy scans.
func Denoise(src gocv.Mat, method DenoiseMethod) (gocv.Mat, error) {
	if err := raster.ValidateGray(src, "Denoise"); err != nil {
		return gocv.NewMat(), err
	}

	switch method {
	case DenoiseBilateral:
		dst := gocv.NewMat()
		gocv.BilateralFilter(src, &dst, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)
		return dst, nil

	case DenoiseGaussian:
		dst := gocv.NewMat()
		gocv.GaussianBlur(src, &dst, image.Pt(gaussianKernelSize, gaussianKernelSize), 0, 0, gocv.BorderDefault)
		return dst, nil

	case DenoiseMedian:
		dst := gocv.NewMat()
		gocv.MedianBlur(src, &dst, medianKernelSize)
		return dst, nil

	case DenoiseCascaded:
		smoothed := gocv.NewMat()
		defer smoothed.Close()
		gocv.FastNlMeansDenoisingWithParams(src, &smoothed, nlMeansStrength, nlMeansTemplateWin, nlMeansSearchWin)

		median := gocv.NewMat()
		defer median.Close()
		gocv.MedianBlur(smoothed, &median, medianKernelSize)

		dst := gocv.NewMat()
		gocv.BilateralFilter(median, &dst, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)
		return dst, nil

	default:
		return gocv.NewMat(), fmt.Errorf("Denoise: unknown method %d", method)
	}
}

// DenoiseMethodForScore maps a measured noise score onto the filtering tier.
// Higher measured noise triggers strictly more aggressive filtering.
func DenoiseMethodForScore(noiseScore, noisy, severe float64) DenoiseMethod {
	switch {
	case noiseScore > severe:
		return DenoiseCascaded
	case noiseScore > noisy:
		return DenoiseMedian
	default:
		return DenoiseBilateral
	}
}
