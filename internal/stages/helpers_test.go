package stages

import (
	"testing"

	"gocv.io/x/gocv"
)

func uniformGray(t *testing.T, rows, cols int, value uint8) gocv.Mat {
	t.Helper()

	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	fillGray(m, func(y, x int) uint8 { return value })

	t.Cleanup(func() { m.Close() })
	return m
}

func grayFrom(t *testing.T, rows, cols int, f func(y, x int) uint8) gocv.Mat {
	t.Helper()

	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	fillGray(m, f)

	t.Cleanup(func() { m.Close() })
	return m
}

func fillGray(m gocv.Mat, f func(y, x int) uint8) {
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			m.SetUCharAt(y, x, f(y, x))
		}
	}
}

// matsEqual reports whether two mats have identical geometry and samples.
func matsEqual(t *testing.T, a, b gocv.Mat) bool {
	t.Helper()

	if a.Rows() != b.Rows() || a.Cols() != b.Cols() || a.Type() != b.Type() {
		return false
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	return gocv.CountNonZero(diff) == 0
}

// isBitonal reports whether every sample is exactly 0 or 255.
func isBitonal(m gocv.Mat) bool {
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			if v := m.GetUCharAt(y, x); v != 0 && v != 255 {
				return false
			}
		}
	}
	return true
}

// stripedPage builds a white page with thin full-width black strokes,
// resembling lines of text.
func stripedPage(t *testing.T, rows, cols int) gocv.Mat {
	t.Helper()

	return grayFrom(t, rows, cols, func(y, x int) uint8 {
		if y%20 >= 8 && y%20 <= 10 {
			return 0
		}
		return 255
	})
}
