package stages

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

const (
	// minSkewPoints is the smallest foreground sample count that gives a
	// meaningful bounding rectangle.
	minSkewPoints = 5

	// minSkewAngle is the rotation below which interpolation costs more
	// than the skew it would fix.
	minSkewAngle = 0.5

	// maxSkewAngle bounds plausible page skew; anything beyond is a
	// rectangle-orientation artifact.
	maxSkewAngle = 45.0
)

// Deskew estimates the text skew from the minimum-area rectangle around all
// foreground samples and rotates the image to correct it. Dimensions are
// preserved; the border fill replicates edge samples. Images with too few
// foreground points or negligible skew pass through as a copy. The float
// reports the applied angle in degrees, zero when rotation was skipped.
func Deskew(src gocv.Mat) (gocv.Mat, float64, error) {
	if err := raster.ValidateGray(src, "Deskew"); err != nil {
		return gocv.NewMat(), 0, err
	}

	points := foregroundPoints(src)
	if len(points) < minSkewPoints {
		return src.Clone(), 0, nil
	}

	pv := gocv.NewPointVectorFromPoints(points)
	defer pv.Close()

	angle := gocv.MinAreaRect(pv).Angle

	// The bounding rectangle is ambiguous between a near-horizontal and a
	// near-vertical long-axis reading; fold the vertical reading back.
	if angle < -45 {
		angle = -(90 + angle)
	} else {
		angle = -angle
	}

	// Tiny angles are noise-level skew, not worth the interpolation risk.
	// Near-quarter-turn readings are the perpendicular rectangle reading
	// surviving normalization, not page skew; rotating would destroy a
	// correctly oriented page.
	if math.Abs(angle) < minSkewAngle || math.Abs(angle) > maxSkewAngle {
		return src.Clone(), 0, nil
	}

	rows, cols := src.Rows(), src.Cols()
	center := image.Pt(cols/2, rows/2)

	rotation := gocv.GetRotationMatrix2D(center, angle, 1.0)
	defer rotation.Close()

	dst := gocv.NewMat()
	gocv.WarpAffineWithParams(src, &dst, rotation, image.Pt(cols, rows),
		gocv.InterpolationCubic, gocv.BorderReplicate, color.RGBA{})

	return dst, angle, nil
}

func foregroundPoints(src gocv.Mat) []image.Point {
	points := make([]image.Point, 0, 256)

	for y := 0; y < src.Rows(); y++ {
		for x := 0; x < src.Cols(); x++ {
			if src.GetUCharAt(y, x) > 0 {
				points = append(points, image.Pt(x, y))
			}
		}
	}

	return points
}
