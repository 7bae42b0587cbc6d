package lanevision

// Config holds all configuration for the lane occupancy pipeline.
type Config struct {
	Threshold  ThresholdConfig
	Morphology MorphologyConfig
	Filter     FilterConfig
	Camera     CameraConfig
	Grid       GridSpec
}

// ThresholdConfig defines the clamped piecewise-linear brightness-to-threshold
// policy. Between the two clamp inputs the threshold is Slope*b + Intercept.
type ThresholdConfig struct {
	LowerClampInput  float64 // brightness at or below which the lower clamp applies
	LowerClampOutput float64 // threshold emitted under the lower clamp
	UpperClampInput  float64 // brightness at or above which the upper clamp applies
	UpperClampOutput float64 // threshold emitted under the upper clamp
	Slope            float64 // linear segment slope
	Intercept        float64 // linear segment intercept
}

// MorphologyConfig holds the structuring elements for mask enhancement.
// Both are deliberately anisotropic to favor elongated lane shapes.
type MorphologyConfig struct {
	Erosion  StructuringElement // small seed kernel
	Dilation StructuringElement // elongated gap-bridging kernel
}

// FilterConfig holds parameters for the diagnostic bilateral filter.
type FilterConfig struct {
	Diameter   int     // square window edge in pixels; <= 1 disables the filter
	SigmaSpace float64 // spatial gaussian sigma in pixels
	SigmaColor float64 // range gaussian sigma in intensity units
}

// CameraConfig holds the fixed pinhole intrinsics and mounting extrinsics.
// Constant for the system's lifetime; never auto-calibrated.
type CameraConfig struct {
	ImageWidth  int     // expected frame width in pixels
	ImageHeight int     // expected frame height in pixels
	Fx          float64 // focal length, horizontal, pixels
	Fy          float64 // focal length, vertical, pixels
	Cx          float64 // principal point, horizontal, pixels
	Cy          float64 // principal point, vertical, pixels
	PitchDeg    float64 // pitch about the lateral axis, degrees; negative looks down
	HeightM     float64 // camera center height above the ground plane, meters
}

// GridSpec defines the output grid's world extents and resolution. Grid
// dimensions are derived by rounding extent/resolution.
type GridSpec struct {
	XMinM       float64 // lateral extent, meters, left bound
	XMaxM       float64 // lateral extent, meters, right bound
	YMinM       float64 // forward extent, meters, near bound
	YMaxM       float64 // forward extent, meters, far bound
	ResolutionM float64 // world meters per cell
}

// DefaultConfig returns a Config with the production constants.
func DefaultConfig() Config {
	return Config{
		Threshold: ThresholdConfig{
			LowerClampInput:  13,
			LowerClampOutput: 12,
			UpperClampInput:  150,
			UpperClampOutput: 175,
			Slope:            1.0788,
			Intercept:        4.0248,
		},
		Morphology: MorphologyConfig{
			Erosion:  StructuringElement{Rows: 1, Cols: 2},
			Dilation: StructuringElement{Rows: 2, Cols: 6},
		},
		Filter: FilterConfig{
			Diameter:   5,
			SigmaSpace: 2.0,
			SigmaColor: 30.0,
		},
		Camera: CameraConfig{
			ImageWidth:  1024,
			ImageHeight: 544,
			Fx:          629.4,
			Fy:          629.4,
			Cx:          512.0,
			Cy:          272.0,
			PitchDeg:    -30.0,
			HeightM:     0.8,
		},
		Grid: GridSpec{
			XMinM:       -2.0,
			XMaxM:       2.0,
			YMinM:       0.0,
			YMaxM:       4.0,
			ResolutionM: 0.01,
		},
	}
}
