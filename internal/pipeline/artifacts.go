package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"docprep/internal/logger"
	"docprep/internal/raster"
)

// ArtifactWriter persists captured stage snapshots for inspection. It runs
// once after the pipeline returns; the stages themselves never touch disk.
type ArtifactWriter struct {
	dir    string
	logger logger.Logger
}

func NewArtifactWriter(dir string, log logger.Logger) *ArtifactWriter {
	if log == nil {
		log = logger.Nop{}
	}
	return &ArtifactWriter{dir: dir, logger: log}
}

// WriteAll saves every snapshot in res as debug_<stage>.png under the
// writer's directory, creating it if needed.
func (w *ArtifactWriter) WriteAll(res *Result) error {
	if res == nil || len(res.Snapshots) == 0 {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	for _, snap := range res.Snapshots {
		img, err := raster.ToImage(snap.Image)
		if err != nil {
			return fmt.Errorf("convert %s snapshot: %w", snap.Stage, err)
		}

		path := filepath.Join(w.dir, fmt.Sprintf("debug_%s.png", snap.Stage))
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("save %s snapshot: %w", snap.Stage, err)
		}

		w.logger.Debug("ArtifactWriter", "snapshot saved", map[string]interface{}{
			"stage": snap.Stage,
			"path":  path,
		})
	}

	return nil
}
