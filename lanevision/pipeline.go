package lanevision

import (
	"context"
	"fmt"
	"time"
)

// Processor runs the per-frame lane occupancy pipeline: dynamic threshold,
// morphological mask extraction, and perspective rasterization into a metric
// grid. The homography is frame-independent and computed once at
// construction.
//
// Processor is the only stateful part of the core: it retains the last
// computed grid and the previous frame's timings. Everything else is
// recomputed per frame with no shared mutable state between iterations.
type Processor struct {
	cfg    Config
	proj   *GroundProjector
	raster *Rasterizer

	lastGrid    *OccupancyGrid
	prevTimings Timings
}

// NewProcessor creates a Processor with the given configuration. Degenerate
// camera geometry or an invalid grid specification is surfaced here, once,
// rather than per frame.
func NewProcessor(cfg *Config) (*Processor, error) {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}

	proj, err := NewGroundProjector(cfg.Camera)
	if err != nil {
		return nil, fmt.Errorf("ground projector: %w", err)
	}
	raster, err := NewRasterizer(cfg.Grid, proj)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: %w", err)
	}

	return &Processor{cfg: *cfg, proj: proj, raster: raster}, nil
}

// Projector returns the fixed ground projector.
func (p *Processor) Projector() *GroundProjector {
	return p.proj
}

// LastGrid returns the most recently computed occupancy grid, or nil before
// the first successful frame.
func (p *Processor) LastGrid() *OccupancyGrid {
	return p.lastGrid
}

// PreviousTimings returns the stage timings of the previous successful frame.
func (p *Processor) PreviousTimings() Timings {
	return p.prevTimings
}

// RecordReceive folds the frame receive duration into a just-produced result
// and into the retained previous-frame timings, so PreviousTimings reports
// the full aggregate including reception. Process itself never sees the
// receive stage; the caller that owns the camera does.
func (p *Processor) RecordReceive(res *Result, d time.Duration) {
	res.Timings.Receive = d
	p.prevTimings.Receive = d
}

// Process runs the full pipeline on a single frame and returns the result
// aggregate for the reporting collaborator. The frame is not retained.
//
// A frame whose dimensions disagree with the configured camera resolution is
// rejected with ErrFrameDimensions before any projection can silently
// misplace it; the caller skips to the next frame. Failed invocations leave
// the retained state untouched.
func (p *Processor) Process(ctx context.Context, frame *Frame) (*Result, error) {
	if frame == nil {
		return nil, ErrNilFrame
	}
	if frame.Width != p.cfg.Camera.ImageWidth || frame.Height != p.cfg.Camera.ImageHeight {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameDimensions,
			frame.Width, frame.Height, p.cfg.Camera.ImageWidth, p.cfg.Camera.ImageHeight)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Frame: frame}

	// Step 1: bilateral filter. Diagnostic output only; the threshold and
	// mask stages below read the raw frame.
	start := time.Now()
	res.Filtered = BilateralFilter(frame, p.cfg.Filter)
	res.Timings.Filter = time.Since(start)

	// Step 2: brightness-adaptive threshold.
	start = time.Now()
	res.AverageBrightness = frame.AverageBrightness()
	res.Threshold = ThresholdForBrightness(res.AverageBrightness, p.cfg.Threshold)
	res.RawMask = Binarize(frame, res.Threshold)
	res.Timings.Threshold = time.Since(start)

	// Step 3: morphological enhancement. The enhanced mask comes back with
	// polarity LaneIsFalse; consumers read it through Lane().
	start = time.Now()
	enhanced, err := Enhance(res.RawMask, p.cfg.Morphology)
	if err != nil {
		return nil, fmt.Errorf("mask enhancement: %w", err)
	}
	res.EnhancedMask = enhanced
	res.Timings.Morphology = time.Since(start)

	// Step 4: overlay for the visualization collaborator.
	start = time.Now()
	res.Overlay = OverlayImage(enhanced)
	res.Timings.Overlay = time.Since(start)

	// Step 5: rasterize into the occupancy grid.
	start = time.Now()
	res.Grid = p.raster.Rasterize(enhanced)
	res.Timings.Projection = time.Since(start)

	p.lastGrid = res.Grid
	p.prevTimings = res.Timings
	return res, nil
}
