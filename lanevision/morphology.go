package lanevision

// StructuringElement is a rectangular morphology kernel with explicit row and
// column extents. The anchor sits at (Rows/2, Cols/2), matching the usual
// even-kernel convention, so a 1x2 element reaches one pixel to the left and
// a 2x6 element reaches three left, two right, one up.
type StructuringElement struct {
	Rows int
	Cols int
}

// offsets returns the neighborhood offsets covered by the element, relative
// to its anchor.
func (se StructuringElement) offsets() (dys, dxs []int) {
	ay := se.Rows / 2
	ax := se.Cols / 2
	for r := 0; r < se.Rows; r++ {
		dys = append(dys, r-ay)
	}
	for c := 0; c < se.Cols; c++ {
		dxs = append(dxs, c-ax)
	}
	return dys, dxs
}

// Erode keeps a bit set only when every pixel under the structuring element
// is set. Pixels outside the mask count as set, so a uniform mask is a fixed
// point regardless of kernel size.
func Erode(m *BinaryMask, se StructuringElement) *BinaryMask {
	out := NewBinaryMask(m.Width, m.Height, m.Polarity)
	dys, dxs := se.offsets()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			keep := true
			for _, dy := range dys {
				ny := y + dy
				if ny < 0 || ny >= m.Height {
					continue
				}
				for _, dx := range dxs {
					nx := x + dx
					if nx < 0 || nx >= m.Width {
						continue
					}
					if !m.At(nx, ny) {
						keep = false
						break
					}
				}
				if !keep {
					break
				}
			}
			out.Set(x, y, keep)
		}
	}
	return out
}

// Dilate sets a bit when any pixel under the structuring element is set.
// Pixels outside the mask count as unset, the dual of Erode's border rule.
func Dilate(m *BinaryMask, se StructuringElement) *BinaryMask {
	out := NewBinaryMask(m.Width, m.Height, m.Polarity)
	dys, dxs := se.offsets()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			hit := false
			for _, dy := range dys {
				ny := y + dy
				if ny < 0 || ny >= m.Height {
					continue
				}
				for _, dx := range dxs {
					nx := x + dx
					if nx < 0 || nx >= m.Width {
						continue
					}
					if m.At(nx, ny) {
						hit = true
						break
					}
				}
				if hit {
					break
				}
			}
			out.Set(x, y, hit)
		}
	}
	return out
}

// Reconstruct performs morphological reconstruction by dilation: the marker
// is grown with 8-connected geodesic dilations, clipped to the mask, until
// stable. Connected regions of the mask that the marker touches are restored
// in full; regions the marker never touched stay suppressed.
//
// The marker must be a subset of the mask (erosion output always is); bits
// set in the marker but not the mask are dropped on the first pass.
func Reconstruct(mask, marker *BinaryMask) *BinaryMask {
	cur := NewBinaryMask(mask.Width, mask.Height, mask.Polarity)
	for i := range cur.Bits {
		cur.Bits[i] = marker.Bits[i] && mask.Bits[i]
	}

	for {
		changed := false
		next := cur.Clone()
		for y := 0; y < mask.Height; y++ {
			for x := 0; x < mask.Width; x++ {
				if next.At(x, y) || !mask.At(x, y) {
					continue
				}
				if hasSetNeighbor(cur, x, y) {
					next.Set(x, y, true)
					changed = true
				}
			}
		}
		cur = next
		if !changed {
			return cur
		}
	}
}

// hasSetNeighbor reports whether any of the 8 neighbors of (x, y) is set.
func hasSetNeighbor(m *BinaryMask, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= m.Height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= m.Width {
				continue
			}
			if m.At(nx, ny) {
				return true
			}
		}
	}
	return false
}
