package stages

import (
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

// DefaultBorderMargin is the trim width applied when the caller does not
// configure one.
const DefaultBorderMargin = 10

// TrimBorder crops a fixed margin from every edge, discarding scanner bed
// shadows and page edges that would otherwise binarize into dark bands.
// Images too small to trim pass through as a copy.
func TrimBorder(src gocv.Mat, margin int) (gocv.Mat, error) {
	if err := raster.Validate(src, "TrimBorder"); err != nil {
		return gocv.NewMat(), err
	}

	if margin <= 0 {
		return src.Clone(), nil
	}

	rows, cols := src.Rows(), src.Cols()
	if rows <= 2*margin || cols <= 2*margin {
		return src.Clone(), nil
	}

	region := src.Region(image.Rect(margin, margin, cols-margin, rows-margin))
	defer region.Close()

	return region.Clone(), nil
}
