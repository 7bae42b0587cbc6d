package lanevision

import "math"

// BilateralFilter returns an edge-preserving smoothed copy of the frame.
// The filtered frame is diagnostic output only: it is shown alongside the
// pipeline's products but never feeds the threshold or mask stages.
func BilateralFilter(frame *Frame, cfg FilterConfig) *Frame {
	if cfg.Diameter <= 1 {
		return frame
	}

	// The window spans [-radius, radius] on each axis, so an even diameter
	// widens to the next odd one rather than truncating the loop bounds.
	radius := cfg.Diameter / 2
	side := 2*radius + 1
	spaceDenom := 2 * cfg.SigmaSpace * cfg.SigmaSpace
	colorDenom := 2 * cfg.SigmaColor * cfg.SigmaColor

	// Spatial weights depend only on the offset; precompute the window.
	spatial := make([]float64, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*side+(dx+radius)] = math.Exp(-d2 / spaceDenom)
		}
	}

	out := NewFrame(frame.Width, frame.Height)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			center := float64(frame.At(x, y))
			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= frame.Height {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= frame.Width {
						continue
					}
					v := float64(frame.At(nx, ny))
					diff := v - center
					w := spatial[(dy+radius)*side+(dx+radius)] *
						math.Exp(-(diff*diff)/colorDenom)
					sum += w * v
					norm += w
				}
			}
			out.Set(x, y, uint8(math.Round(sum/norm)))
		}
	}
	return out
}
