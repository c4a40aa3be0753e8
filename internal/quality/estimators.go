// Package quality measures scalar signals on grayscale document images.
// The signals steer stage selection in the pipeline; they never mutate
// their input and never perform I/O.
package quality

import (
	"fmt"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	// PolarityThreshold splits dark-field (inverted) scans from normal
	// ones by their grayscale mean. Measured before any binarization;
	// a binary white-ratio reading conflates sparse text with polarity.
	PolarityThreshold = 127.0

	// DarkThreshold marks pages needing the strong contrast tier.
	DarkThreshold = 90.0

	// BlurThreshold classifies Laplacian variance below it as blurry.
	BlurThreshold = 100.0

	// NoiseThreshold and SevereNoiseThreshold split the rescaled
	// high-frequency energy into the three denoise tiers.
	NoiseThreshold       = 15.0
	SevereNoiseThreshold = 25.0

	// noiseBand rescales raw Laplacian variance into an approximate
	// 0-100 range for the noise thresholds above.
	noiseBand = 100.0

	whiteValue = 255
)

// Signals is the full set of measurements taken during one invocation.
type Signals struct {
	MeanBrightness float64
	BlurScore      float64
	NoiseScore     float64
	WhiteRatio     float64
}

// Brightness returns the arithmetic mean sample value in [0, 255].
func Brightness(img gocv.Mat) (float64, error) {
	if err := raster.ValidateGray(img, "Brightness"); err != nil {
		return 0, err
	}

	return img.Mean().Val1, nil
}

// IsInverted reports whether the grayscale image reads as light glyphs on a
// dark field. A genuinely inverted scan has most pixels dark, pulling the
// mean below the midpoint.
func IsInverted(img gocv.Mat) (bool, error) {
	mean, err := Brightness(img)
	if err != nil {
		return false, fmt.Errorf("IsInverted: %w", err)
	}

	return mean < PolarityThreshold, nil
}

// BlurScore returns the variance of the image's Laplacian response.
// Low values indicate blur; compare against BlurThreshold.
func BlurScore(img gocv.Mat) (float64, error) {
	energy, err := highFrequencyEnergy(img)
	if err != nil {
		return 0, fmt.Errorf("BlurScore: %w", err)
	}

	return energy, nil
}

// NoiseScore rescales the same high-frequency energy into a 0-100 band.
// Blur and noise both live in the second-derivative response; they are
// kept as two named signals because they drive different branches.
func NoiseScore(img gocv.Mat) (float64, error) {
	energy, err := highFrequencyEnergy(img)
	if err != nil {
		return 0, fmt.Errorf("NoiseScore: %w", err)
	}

	score := energy / noiseBand
	if score > 100.0 {
		score = 100.0
	}

	return score, nil
}

// ForegroundRatio returns the fraction of white samples in a bitonal image.
// Legacy inversion heuristic; reported for inspection, never the primary
// polarity signal.
func ForegroundRatio(binary gocv.Mat) (float64, error) {
	if err := raster.ValidateGray(binary, "ForegroundRatio"); err != nil {
		return 0, err
	}

	total := binary.Rows() * binary.Cols()

	white := 0
	for y := 0; y < binary.Rows(); y++ {
		for x := 0; x < binary.Cols(); x++ {
			if binary.GetUCharAt(y, x) == whiteValue {
				white++
			}
		}
	}

	return float64(white) / float64(total), nil
}

// highFrequencyEnergy computes the variance of the second-derivative (edge)
// response across the image.
func highFrequencyEnergy(img gocv.Mat) (float64, error) {
	if err := raster.ValidateGray(img, "highFrequencyEnergy"); err != nil {
		return 0, err
	}

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(img, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	rows, cols := lap.Rows(), lap.Cols()
	total := float64(rows * cols)

	sum := 0.0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sum += lap.GetDoubleAt(y, x)
		}
	}
	mean := sum / total

	variance := 0.0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			d := lap.GetDoubleAt(y, x) - mean
			variance += d * d
		}
	}

	return variance / total, nil
}
