package lanevision

import "errors"

var (
	// ErrNilFrame is returned when a nil frame is passed to the pipeline.
	ErrNilFrame = errors.New("frame is nil")

	// ErrFrameDimensions is returned when a frame's dimensions do not match
	// the configured camera resolution. Recoverable: skip the frame.
	ErrFrameDimensions = errors.New("frame dimensions do not match camera configuration")

	// ErrDegenerateGeometry is returned when the ground-to-image homography is
	// singular or numerically ill-conditioned. Fatal: the camera constants are
	// invalid and no per-frame output can be produced.
	ErrDegenerateGeometry = errors.New("degenerate camera geometry: homography not invertible")

	// ErrBadGridSpec is returned when the output grid extents or resolution
	// yield an empty or inverted grid.
	ErrBadGridSpec = errors.New("invalid output grid specification")

	// ErrBadKernel is returned when a structuring element has a non-positive extent.
	ErrBadKernel = errors.New("structuring element extents must be positive")
)
