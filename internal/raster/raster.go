// Package raster owns the lifecycle and validation of gocv image buffers
// as they move through the preprocessing pipeline.
package raster

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrDegenerate marks an image with no pixel area. Every estimator and
// stage refuses such input instead of producing a computed-looking value.
var ErrDegenerate = errors.New("degenerate image: zero area")

const maxDimension = 32768

// Validate rejects empty and zero-area mats before an operation touches them.
func Validate(m gocv.Mat, operation string) error {
	if m.Empty() {
		return fmt.Errorf("%s: %w", operation, ErrDegenerate)
	}

	rows, cols := m.Rows(), m.Cols()
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%s: %w (%dx%d)", operation, ErrDegenerate, cols, rows)
	}

	if rows > maxDimension || cols > maxDimension {
		return fmt.Errorf("%s: dimensions %dx%d exceed maximum size", operation, cols, rows)
	}

	return nil
}

// ValidateGray additionally requires a single-channel image.
func ValidateGray(m gocv.Mat, operation string) error {
	if err := Validate(m, operation); err != nil {
		return err
	}

	if ch := m.Channels(); ch != 1 {
		return fmt.Errorf("%s: expected single-channel image, got %d channels", operation, ch)
	}

	return nil
}

// Scope collects intermediate mats produced during one pipeline invocation
// and releases them together, so stage code never juggles Close calls.
type Scope struct {
	mats []gocv.Mat
}

func NewScope() *Scope {
	return &Scope{}
}

// Track registers a mat for release and returns it unchanged.
func (s *Scope) Track(m gocv.Mat) gocv.Mat {
	s.mats = append(s.mats, m)
	return m
}

// Close releases every tracked mat. Safe to call once per scope.
func (s *Scope) Close() {
	for i := range s.mats {
		if !s.mats[i].Empty() {
			s.mats[i].Close()
		}
	}
	s.mats = nil
}

// Count reports how many mats the scope currently tracks.
func (s *Scope) Count() int {
	return len(s.mats)
}
