package stages

import (
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	claheClipNormal = 2.0
	claheClipStrong = 3.5
	claheTileSize   = 8

	// A dark page that stays dark after equalization gets a linear boost
	// instead of being equalized twice.
	boostGain      = 1.3
	boostOffset    = 30.0
	boostMeanLimit = 100.0
)

// EnhanceContrast applies contrast-limited adaptive histogram equalization.
// The strong tier raises the clip limit and, when the equalized image still
// reads dark, follows up with a linear brightness/contrast boost.
func EnhanceContrast(src gocv.Mat, strength ContrastStrength) (gocv.Mat, error) {
	if err := raster.ValidateGray(src, "EnhanceContrast"); err != nil {
		return gocv.NewMat(), err
	}

	clip := claheClipNormal
	if strength == ContrastStrong {
		clip = claheClipStrong
	}

	clahe := gocv.NewCLAHEWithParams(clip, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(src, &enhanced)

	if strength != ContrastStrong {
		return enhanced, nil
	}

	if enhanced.Mean().Val1 >= boostMeanLimit {
		return enhanced, nil
	}

	boosted := gocv.NewMat()
	enhanced.ConvertToWithParams(&boosted, gocv.MatTypeCV8U, boostGain, boostOffset)
	enhanced.Close()

	return boosted, nil
}
