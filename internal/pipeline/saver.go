package pipeline

import (
	"fmt"

	"gocv.io/x/gocv"

	"docprep/internal/logger"
	"docprep/internal/raster"
)

// Saver persists the final bitonal image. Format follows the target path's
// extension.
type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	if log == nil {
		log = logger.Nop{}
	}
	return &Saver{logger: log}
}

// SaveFile writes the image to path.
func (s *Saver) SaveFile(path string, m gocv.Mat) error {
	if err := raster.Validate(m, "SaveFile"); err != nil {
		return err
	}

	if ok := gocv.IMWrite(path, m); !ok {
		return fmt.Errorf("write image to %s failed", path)
	}

	s.logger.Info("Saver", "image saved", map[string]interface{}{
		"path":   path,
		"width":  m.Cols(),
		"height": m.Rows(),
	})

	return nil
}
