package lanevision

import "go.viam.com/rdk/rimage"

// laneChannelValue is the overlay intensity written into the lane channel.
// The viz collaborator selects lane pixels as channel > 200.
const laneChannelValue = 255

// Binarize flags every sample strictly below the threshold as a candidate
// lane pixel. Lanes are assumed darker than pavement under this policy; a
// sample exactly equal to the threshold is NOT flagged. The returned mask has
// polarity LaneIsTrue.
func Binarize(frame *Frame, threshold float64) *BinaryMask {
	out := NewBinaryMask(frame.Width, frame.Height, LaneIsTrue)
	for i, v := range frame.Pixels {
		out.Bits[i] = float64(v) < threshold
	}
	return out
}

// Enhance runs the erosion -> reconstruction -> dilation sequence on a raw
// binarized mask. Erosion with the small element produces a conservative seed
// that drops isolated speckles; reconstruction restores the full connected
// regions that the seed still touches; dilation with the elongated element
// bridges small gaps along the lane direction and thickens thin detections.
//
// The returned mask is inverted relative to the input: its polarity is
// LaneIsFalse, i.e. a set bit means background. Downstream consumers go
// through Lane() so the flip cannot be lost.
func Enhance(raw *BinaryMask, cfg MorphologyConfig) (*BinaryMask, error) {
	if cfg.Erosion.Rows < 1 || cfg.Erosion.Cols < 1 ||
		cfg.Dilation.Rows < 1 || cfg.Dilation.Cols < 1 {
		return nil, ErrBadKernel
	}

	seed := Erode(raw, cfg.Erosion)
	restored := Reconstruct(raw, seed)
	widened := Dilate(restored, cfg.Dilation)

	return widened.Invert(), nil
}

// OverlayImage materializes the enhanced mask as a 3-channel image with the
// green channel set wherever the mask reads lane. This exists only for the
// external visualization collaborator; the rasterizer consumes the boolean
// mask through Lane() directly.
func OverlayImage(enhanced *BinaryMask) *rimage.Image {
	img := rimage.NewImage(enhanced.Width, enhanced.Height)
	for y := 0; y < enhanced.Height; y++ {
		for x := 0; x < enhanced.Width; x++ {
			if enhanced.Lane(x, y) {
				img.SetXY(x, y, rimage.NewColor(0, laneChannelValue, 0))
			} else {
				img.SetXY(x, y, rimage.NewColor(0, 0, 0))
			}
		}
	}
	return img
}
