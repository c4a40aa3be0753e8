package stages

import (
	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	thresholdMaxValue = 255
	thresholdConstant = 2.0

	minBlockSize     = 11
	maxBlockSize     = 31
	blockSizeDivisor = 50
)

// BinarizeAdaptive applies Gaussian local-mean thresholding, producing a
// strictly bitonal image (every sample 0 or 255). An even blockSize is
// corrected to the next odd value rather than rejected.
func BinarizeAdaptive(src gocv.Mat, blockSize int, c float64) (gocv.Mat, error) {
	if err := raster.ValidateGray(src, "BinarizeAdaptive"); err != nil {
		return gocv.NewMat(), err
	}

	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}

	dst := gocv.NewMat()
	gocv.AdaptiveThreshold(src, &dst, thresholdMaxValue, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, blockSize, float32(c))

	return dst, nil
}

// ThresholdConstant is the default C subtracted from the local mean.
func ThresholdConstant() float64 {
	return thresholdConstant
}

// BlockSizeForWidth derives the thresholding neighborhood from image
// geometry: wider images get a larger window so local lighting variation is
// still captured without fragmenting thin strokes.
func BlockSizeForWidth(width int) int {
	size := width / blockSizeDivisor

	if size < minBlockSize {
		size = minBlockSize
	}
	if size > maxBlockSize {
		size = maxBlockSize
	}
	if size%2 == 0 {
		size++
	}

	return size
}
