// Package pipeline sequences the preprocessing stages and owns the image
// lifecycle of one invocation. Stage order is fixed; only stage parameters
// and strategy choices react to the measured content.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"docprep/internal/logger"
	"docprep/internal/quality"
	"docprep/internal/raster"
	"docprep/internal/stages"
)

// Orchestrator runs the adaptive preprocessing sequence. Stateless per
// invocation: two orchestrators, or two calls on one, may run fully in
// parallel over different images.
type Orchestrator struct {
	cfg    Config
	logger logger.Logger
}

func NewOrchestrator(cfg Config, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop{}
	}

	return &Orchestrator{
		cfg:    cfg.normalized(),
		logger: log,
	}
}

// Process runs the full stage sequence over a decoded image and returns the
// bitonal result. The input mat is never mutated; the caller keeps
// ownership of it and takes ownership of the returned Result.
func (o *Orchestrator) Process(ctx context.Context, src gocv.Mat) (*Result, error) {
	if err := raster.Validate(src, "Process"); err != nil {
		return nil, fmt.Errorf("pipeline input: %w", err)
	}

	scope := raster.NewScope()
	defer scope.Close()

	res := &Result{ID: uuid.New()}

	cur, err := o.run(ctx, res, scope, src)
	if err != nil {
		res.Close()
		return nil, err
	}

	res.Output = cur.Clone()
	res.hasOutput = true

	o.logger.Info("Orchestrator", "processing completed", map[string]interface{}{
		"invocation":  res.ID.String(),
		"output_size": fmt.Sprintf("%dx%d", res.Output.Cols(), res.Output.Rows()),
		"brightness":  res.Signals.MeanBrightness,
		"blur_score":  res.Signals.BlurScore,
		"noise_score": res.Signals.NoiseScore,
		"white_ratio": res.Signals.WhiteRatio,
		"denoise":     res.Decisions.Denoise.String(),
		"contrast":    res.Decisions.Contrast.String(),
		"inverted":    res.Decisions.Inverted,
	})

	return res, nil
}

func (o *Orchestrator) run(ctx context.Context, res *Result, scope *raster.Scope, src gocv.Mat) (gocv.Mat, error) {
	// Grayscale first; every estimator and later stage expects one channel.
	cur, err := o.stage(res, scope, StageGrayscale, func() (gocv.Mat, error) {
		return stages.Grayscale(src)
	})
	if err != nil {
		return gocv.Mat{}, err
	}

	if err := cancelled(ctx); err != nil {
		return gocv.Mat{}, err
	}

	// Brightness and polarity are both measured on the grayscale image
	// before any binarization or correction. The dark classification uses
	// the uncorrected reading: inversion flips a dark-field page to a
	// bright one, which would otherwise mask every page needing the
	// strong contrast tier.
	brightness, err := quality.Brightness(cur)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("brightness estimation: %w", err)
	}
	res.Signals.MeanBrightness = brightness
	res.Decisions.IsDark = brightness < quality.DarkThreshold

	inverted := brightness < quality.PolarityThreshold
	res.Decisions.Inverted = inverted

	// Correcting polarity here spares every later stage from
	// special-casing it.
	if inverted {
		cur, err = o.stage(res, scope, StageInverted, func() (gocv.Mat, error) {
			return stages.InvertPolarity(cur)
		})
		if err != nil {
			return gocv.Mat{}, err
		}
	}

	if err := cancelled(ctx); err != nil {
		return gocv.Mat{}, err
	}

	// Narrow captures carry too little stroke detail for thresholding.
	var scaled bool
	cur, scaled, err = o.upscale(res, scope, cur)
	if err != nil {
		return gocv.Mat{}, err
	}
	res.Decisions.Upscaled = scaled

	blurScore, err := quality.BlurScore(cur)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("blur estimation: %w", err)
	}
	noiseScore, err := quality.NoiseScore(cur)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("noise estimation: %w", err)
	}
	res.Signals.BlurScore = blurScore
	res.Signals.NoiseScore = noiseScore
	res.Decisions.IsBlurry = blurScore < quality.BlurThreshold
	res.Decisions.IsNoisy = noiseScore > quality.NoiseThreshold

	if err := cancelled(ctx); err != nil {
		return gocv.Mat{}, err
	}

	cur, err = o.denoise(res, scope, cur, noiseScore)
	if err != nil {
		return gocv.Mat{}, err
	}

	contrast := stages.ContrastNormal
	if res.Decisions.IsDark {
		contrast = stages.ContrastStrong
	}
	res.Decisions.Contrast = contrast

	cur, err = o.stage(res, scope, StageEnhanced, func() (gocv.Mat, error) {
		return stages.EnhanceContrast(cur, contrast)
	})
	if err != nil {
		return gocv.Mat{}, err
	}

	if err := cancelled(ctx); err != nil {
		return gocv.Mat{}, err
	}

	// Sharpening amplifies noise, so the noise classification above must
	// veto it; the ordering is a hard requirement.
	if res.Decisions.IsNoisy {
		res.Decisions.SharpenSkipped = true
	} else {
		sharpen := stages.SharpenNormal
		if res.Decisions.IsBlurry {
			sharpen = stages.SharpenStrong
		}
		res.Decisions.Sharpen = sharpen

		cur, err = o.stage(res, scope, StageSharpened, func() (gocv.Mat, error) {
			return stages.Sharpen(cur, sharpen)
		})
		if err != nil {
			return gocv.Mat{}, err
		}
	}

	blockSize := stages.BlockSizeForWidth(cur.Cols())
	cur, err = o.stage(res, scope, StageThresholded, func() (gocv.Mat, error) {
		return stages.BinarizeAdaptive(cur, blockSize, stages.ThresholdConstant())
	})
	if err != nil {
		return gocv.Mat{}, err
	}

	cur, err = o.stage(res, scope, StageMorphology, func() (gocv.Mat, error) {
		return stages.MorphClean(cur)
	})
	if err != nil {
		return gocv.Mat{}, err
	}

	if err := cancelled(ctx); err != nil {
		return gocv.Mat{}, err
	}

	if o.cfg.TrimBorder {
		cur, err = o.stage(res, scope, StageTrimmed, func() (gocv.Mat, error) {
			return stages.TrimBorder(cur, o.cfg.BorderMargin)
		})
		if err != nil {
			return gocv.Mat{}, err
		}
	}

	if o.cfg.Deskew == DeskewForceOn {
		cur, err = o.deskew(res, scope, cur)
		if err != nil {
			return gocv.Mat{}, err
		}
	}

	whiteRatio, err := quality.ForegroundRatio(cur)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("foreground ratio estimation: %w", err)
	}
	res.Signals.WhiteRatio = whiteRatio

	return cur, nil
}

// stage runs one transform, tracks its output for release, and captures a
// debug snapshot. Snapshot capture clones the output, so it never alters
// the numeric result.
func (o *Orchestrator) stage(res *Result, scope *raster.Scope, name string, fn func() (gocv.Mat, error)) (gocv.Mat, error) {
	out, err := fn()
	if err != nil {
		out.Close()
		return gocv.Mat{}, &StageError{Stage: name, Err: err}
	}

	scope.Track(out)
	o.capture(res, name, out)

	return out, nil
}

func (o *Orchestrator) upscale(res *Result, scope *raster.Scope, cur gocv.Mat) (gocv.Mat, bool, error) {
	out, scaled, err := stages.Upscale(cur, o.cfg.TargetDPI)
	if err != nil {
		return gocv.Mat{}, false, &StageError{Stage: StageUpscaled, Err: err}
	}

	scope.Track(out)
	if scaled {
		o.capture(res, StageUpscaled, out)
	}

	return out, scaled, nil
}

// denoise applies the tier selected by the measured noise. The high tier
// leads with a median pass for impulse noise before the edge-preserving
// bilateral finish; the severe tier runs the full cascade.
func (o *Orchestrator) denoise(res *Result, scope *raster.Scope, cur gocv.Mat, noiseScore float64) (gocv.Mat, error) {
	method := stages.DenoiseMethodForScore(noiseScore, quality.NoiseThreshold, quality.SevereNoiseThreshold)
	res.Decisions.Denoise = method

	if method != stages.DenoiseMedian {
		return o.stage(res, scope, StageDenoised, func() (gocv.Mat, error) {
			return stages.Denoise(cur, method)
		})
	}

	median, err := stages.Denoise(cur, stages.DenoiseMedian)
	if err != nil {
		return gocv.Mat{}, &StageError{Stage: StageDenoised, Err: err}
	}
	scope.Track(median)

	return o.stage(res, scope, StageDenoised, func() (gocv.Mat, error) {
		return stages.Denoise(median, stages.DenoiseBilateral)
	})
}

func (o *Orchestrator) deskew(res *Result, scope *raster.Scope, cur gocv.Mat) (gocv.Mat, error) {
	out, angle, err := stages.Deskew(cur)
	if err != nil {
		return gocv.Mat{}, &StageError{Stage: StageDeskewed, Err: err}
	}

	scope.Track(out)
	res.Decisions.DeskewApplied = angle != 0
	res.Decisions.DeskewAngle = angle

	if res.Decisions.DeskewApplied {
		o.capture(res, StageDeskewed, out)
	}

	return out, nil
}

func (o *Orchestrator) capture(res *Result, stage string, m gocv.Mat) {
	if !o.cfg.DebugCapture {
		return
	}

	res.Snapshots = append(res.Snapshots, Snapshot{Stage: stage, Image: m.Clone()})
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
