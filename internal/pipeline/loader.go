package pipeline

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"docprep/internal/logger"
)

// Loader decodes source images. Decoding problems surface as *LoadError so
// callers can distinguish a bad source from a processing failure.
type Loader struct {
	logger logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop{}
	}
	return &Loader{logger: log}
}

// LoadFile reads and decodes an image file into a BGR mat.
func (l *Loader) LoadFile(path string) (gocv.Mat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.Mat{}, &LoadError{Source: path, Err: err}
	}

	mat, err := l.decode(data, path)
	if err != nil {
		return gocv.Mat{}, err
	}

	l.logger.Info("Loader", "image loaded", map[string]interface{}{
		"path":     path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	})

	return mat, nil
}

// LoadBytes decodes an in-memory encoded image, e.g. a camera frame.
func (l *Loader) LoadBytes(data []byte) (gocv.Mat, error) {
	return l.decode(data, "bytes")
}

func (l *Loader) decode(data []byte, source string) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.Mat{}, &LoadError{Source: source, Err: fmt.Errorf("empty input")}
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, &LoadError{Source: source, Err: err}
	}

	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, &LoadError{Source: source, Err: fmt.Errorf("decoder produced no pixels")}
	}

	return mat, nil
}
