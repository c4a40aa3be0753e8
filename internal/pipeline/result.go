package pipeline

import (
	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"docprep/internal/quality"
	"docprep/internal/stages"
)

// Stage name identifiers, stable for external tooling that saves or
// inspects intermediate artifacts.
const (
	StageGrayscale   = "grayscale"
	StageInverted    = "inverted"
	StageUpscaled    = "upscaled"
	StageDenoised    = "denoised"
	StageEnhanced    = "enhanced"
	StageSharpened   = "sharpened"
	StageThresholded = "adaptive_threshold"
	StageMorphology  = "morphological"
	StageTrimmed     = "border_trimmed"
	StageDeskewed    = "deskewed"
)

// Snapshot is one intermediate image captured under debug mode, tagged
// with the stage that produced it.
type Snapshot struct {
	Stage string
	Image gocv.Mat
}

// Decisions records which branch the pipeline took at each content-driven
// choice point.
type Decisions struct {
	Inverted       bool
	IsDark         bool
	IsBlurry       bool
	IsNoisy        bool
	Upscaled       bool
	Denoise        stages.DenoiseMethod
	Contrast       stages.ContrastStrength
	Sharpen        stages.SharpenStrength
	SharpenSkipped bool
	DeskewApplied  bool
	DeskewAngle    float64
}

// Result owns the final bitonal image and, under debug capture, the ordered
// stage snapshots. Created per invocation; the caller owns it after return
// and must Close it.
type Result struct {
	ID        uuid.UUID
	Output    gocv.Mat
	Signals   quality.Signals
	Decisions Decisions
	Snapshots []Snapshot

	hasOutput bool
	closed    bool
}

// Close releases the output image and any captured snapshots. Safe to call
// more than once.
func (r *Result) Close() {
	if r == nil || r.closed {
		return
	}
	r.closed = true

	if r.hasOutput {
		r.Output.Close()
	}

	for i := range r.Snapshots {
		r.Snapshots[i].Image.Close()
	}
	r.Snapshots = nil
}
