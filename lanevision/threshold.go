package lanevision

// ThresholdForBrightness maps a frame's average brightness to a binarization
// threshold via the clamped piecewise-linear policy. A single fixed threshold
// under- or over-segments lanes as ambient lighting shifts; the linear region
// was fit empirically, with hard clamps guarding the extremes.
//
// Pure and deterministic; continuity at the clamp boundaries is not enforced.
func ThresholdForBrightness(brightness float64, cfg ThresholdConfig) float64 {
	if brightness <= cfg.LowerClampInput {
		return cfg.LowerClampOutput
	}
	if brightness >= cfg.UpperClampInput {
		return cfg.UpperClampOutput
	}
	return cfg.Slope*brightness + cfg.Intercept
}
