package lanegrid

import (
	"context"
	"errors"
)

// Run executes the continuous lane occupancy loop until the context is
// cancelled. Cancellation is the normal way to stop; it is not reported as
// an error.
func Run(ctx context.Context, r *Rover) error {
	r.logger.Info("Starting lane occupancy loop")

	err := Watch(ctx, r)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.logger.Infof("Shutting down: %d frames processed, %d skipped",
			r.state.FramesProcessed, r.state.FramesSkipped)
		return nil
	}
	return err
}
