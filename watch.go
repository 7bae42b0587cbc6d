package lanegrid

import (
	"context"

	"github.com/BananaMilk313/Zerui-Li-Camera/lanevision"
)

// Watch runs the synchronous frame loop: one frame is fully processed before
// the next is accepted, with no queueing or overlap. Frame-source timeouts
// and per-frame failures are reported and skipped, never fatal. The loop
// terminates when the context is cancelled, checked once per iteration.
func Watch(ctx context.Context, r *Rover) error {
	r.logger.Info("Watching for camera frames...")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := r.ProcessOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.state.FramesSkipped++
			r.logger.Warnf("Frame skipped: %v", err)
			continue
		}

		reportResult(r, res)

		if r.DebugDir != "" {
			if err := saveArtifacts(r, res, r.state.FramesProcessed); err != nil {
				r.logger.Warnf("Failed to save debug artifacts: %v", err)
			}
		}
	}
}

// WatchFrames processes up to n frames and returns. Used by the diagnostic
// CLI; skipped frames do not count toward n.
func WatchFrames(ctx context.Context, r *Rover, n int) error {
	done := 0
	for done < n {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := r.ProcessOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.state.FramesSkipped++
			r.logger.Warnf("Frame skipped: %v", err)
			continue
		}
		done++

		reportResult(r, res)

		if r.DebugDir != "" {
			if err := saveArtifacts(r, res, done); err != nil {
				r.logger.Warnf("Failed to save debug artifacts: %v", err)
			}
		}
	}
	return nil
}

// reportResult logs the per-frame diagnostics the reporting collaborator
// consumes: the two scalars, the grid summary, and the stage timings.
func reportResult(r *Rover, res *lanevision.Result) {
	r.logger.Infof("Frame %d: brightness=%.2f threshold=%.2f occupied=%d/%d cells",
		r.state.FramesProcessed, res.AverageBrightness, res.Threshold,
		res.Grid.OccupiedCount(), len(res.Grid.Cells))
	r.logger.Debugf("  timings: receive=%v filter=%v threshold=%v morphology=%v overlay=%v projection=%v (total %v)",
		res.Timings.Receive, res.Timings.Filter, res.Timings.Threshold,
		res.Timings.Morphology, res.Timings.Overlay, res.Timings.Projection,
		res.Timings.Total())
}
