package lanegrid

import (
	"context"
	"fmt"
	"time"

	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot"
	"go.viam.com/rdk/spatialmath"

	"github.com/BananaMilk313/Zerui-Li-Camera/lanevision"
)

// defaultReceiveTimeout bounds the wait for the next camera frame. Frames
// are perishable; a receive that takes longer than this is abandoned and the
// loop moves on.
const defaultReceiveTimeout = 5 * time.Second

// Rover holds the camera handle, the pipeline processor, and loop state for
// the lane occupancy system.
type Rover struct {
	logger  logging.Logger
	machine robot.Robot

	// Camera
	frontCam camera.Camera

	// Pipeline
	processor *lanevision.Processor
	gridSpec  lanevision.GridSpec

	// State
	state *NavState

	// ReceiveTimeout bounds each frame receive. Defaults to 5s.
	ReceiveTimeout time.Duration

	// DebugDir, when set, is a directory for persisting per-frame debug
	// artifacts (frame PNG, overlay PNG, grid PCD). If empty, nothing is
	// written.
	DebugDir string

	// VehiclePose, when set, is the vehicle's pose in the map frame; the
	// occupancy grid cloud is additionally exported in that frame.
	VehiclePose spatialmath.Pose
}

// NavState tracks loop progress across iterations. The pipeline core keeps
// no state of its own beyond the last grid; everything transient lives here.
type NavState struct {
	// Last successful pipeline result.
	LastResult *lanevision.Result

	// Frames fully processed this session.
	FramesProcessed int

	// Frames abandoned on receive timeout, transport error, or bad shape.
	FramesSkipped int
}

// NewRover creates a Rover by looking up the front camera from the machine
// and constructing the pipeline. Degenerate camera geometry in cfg fails
// here, before any frame is received.
func NewRover(ctx context.Context, machine robot.Robot, cameraName string, cfg *lanevision.Config, logger logging.Logger) (*Rover, error) {
	if cfg == nil {
		c := lanevision.DefaultConfig()
		cfg = &c
	}

	frontCam, err := camera.FromProvider(machine, cameraName)
	if err != nil {
		return nil, fmt.Errorf("front camera (%s): %w", cameraName, err)
	}

	processor, err := lanevision.NewProcessor(cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &Rover{
		logger:         logger,
		machine:        machine,
		frontCam:       frontCam,
		processor:      processor,
		gridSpec:       cfg.Grid,
		state:          &NavState{},
		ReceiveTimeout: defaultReceiveTimeout,
	}, nil
}

// ProcessOnce receives a single frame with a bounded wait and runs the full
// pipeline on it. Receive timeouts, transport errors, and malformed frames
// all come back as errors; the caller skips to the next iteration. No
// partial state from a failed iteration is retained.
func (r *Rover) ProcessOnce(ctx context.Context) (*lanevision.Result, error) {
	rctx, cancel := context.WithTimeout(ctx, r.ReceiveTimeout)
	defer cancel()

	start := time.Now()
	img, err := camera.DecodeImageFromCamera(rctx, "", nil, r.frontCam)
	if err != nil {
		return nil, fmt.Errorf("receive frame: %w", err)
	}
	received := time.Since(start)

	frame := lanevision.FrameFromImage(img)
	res, err := r.processor.Process(ctx, frame)
	if err != nil {
		return nil, err
	}
	r.processor.RecordReceive(res, received)

	r.state.LastResult = res
	r.state.FramesProcessed++
	return res, nil
}

// LastResult returns the most recent pipeline result, or nil before the
// first successful frame.
func (r *Rover) LastResult() *lanevision.Result {
	if r.state == nil {
		return nil
	}
	return r.state.LastResult
}

// State returns the loop state counters.
func (r *Rover) State() *NavState {
	return r.state
}

// FrontCam returns the front camera.
func (r *Rover) FrontCam() camera.Camera {
	return r.frontCam
}
