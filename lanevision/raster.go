package lanevision

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// occupancyCoverageThreshold is the strict lower bound on warped coverage for
// a cell to count as occupied. Exactly 0.5 is classified unoccupied: the
// majority rule requires a strict majority.
const occupancyCoverageThreshold = 0.5

// Rasterizer warps a binary lane mask into a fixed-extent, fixed-resolution
// occupancy grid by inverse warping: each destination cell is sampled at its
// center under the forward ground-to-image relation, and the lane mask is
// bilinearly interpolated at the resulting source pixel.
//
// Cell world coordinates are sampled at cell centers. Row 0 spans the YMax
// edge (farthest ahead), column 0 the XMin edge (leftmost). Cells whose
// center projects outside the image footprint, or behind the camera, are
// unoccupied by construction.
type Rasterizer struct {
	spec GridSpec
	g2i  *mat.Dense
	rows int
	cols int
}

// Rows returns the grid row count, round((YMax-YMin)/resolution).
func (s GridSpec) Rows() int {
	return int(math.Round((s.YMaxM - s.YMinM) / s.ResolutionM))
}

// Cols returns the grid column count, round((XMax-XMin)/resolution).
func (s GridSpec) Cols() int {
	return int(math.Round((s.XMaxM - s.XMinM) / s.ResolutionM))
}

// NewRasterizer validates the grid specification and binds it to the
// projector's ground-to-image homography.
func NewRasterizer(spec GridSpec, proj *GroundProjector) (*Rasterizer, error) {
	return newRasterizer(spec, proj.GroundToImageMatrix())
}

func newRasterizer(spec GridSpec, groundToImage *mat.Dense) (*Rasterizer, error) {
	if spec.ResolutionM <= 0 || spec.XMaxM <= spec.XMinM || spec.YMaxM <= spec.YMinM {
		return nil, ErrBadGridSpec
	}
	rows, cols := spec.Rows(), spec.Cols()
	if rows < 1 || cols < 1 {
		return nil, ErrBadGridSpec
	}
	return &Rasterizer{spec: spec, g2i: groundToImage, rows: rows, cols: cols}, nil
}

// Rasterize produces the occupancy grid for one lane mask. The grid is fully
// recomputed; nothing persists from previous frames.
func (r *Rasterizer) Rasterize(laneMask *BinaryMask) *OccupancyGrid {
	grid := NewOccupancyGrid(r.rows, r.cols)
	for row := 0; row < r.rows; row++ {
		y := r.spec.YMaxM - (float64(row)+0.5)*r.spec.ResolutionM
		for col := 0; col < r.cols; col++ {
			x := r.spec.XMinM + (float64(col)+0.5)*r.spec.ResolutionM

			u := r.g2i.At(0, 0)*x + r.g2i.At(0, 1)*y + r.g2i.At(0, 2)
			v := r.g2i.At(1, 0)*x + r.g2i.At(1, 1)*y + r.g2i.At(1, 2)
			w := r.g2i.At(2, 0)*x + r.g2i.At(2, 1)*y + r.g2i.At(2, 2)
			if w <= 0 {
				// Behind the camera; outside the projected footprint.
				continue
			}

			coverage := sampleLane(laneMask, u/w, v/w)
			grid.Set(row, col, coverage > occupancyCoverageThreshold)
		}
	}
	return grid
}

// CellCenter returns the world coordinate sampled for a grid cell.
func (r *Rasterizer) CellCenter(row, col int) (x, y float64) {
	x = r.spec.XMinM + (float64(col)+0.5)*r.spec.ResolutionM
	y = r.spec.YMaxM - (float64(row)+0.5)*r.spec.ResolutionM
	return x, y
}

// sampleLane bilinearly interpolates the mask's lane indicator at a
// fractional pixel coordinate. Pixel centers sit at integer coordinates;
// pixels outside the image contribute zero coverage.
func sampleLane(m *BinaryMask, u, v float64) float64 {
	u0 := int(math.Floor(u))
	v0 := int(math.Floor(v))
	fu := u - float64(u0)
	fv := v - float64(v0)

	var coverage float64
	for dv := 0; dv <= 1; dv++ {
		for du := 0; du <= 1; du++ {
			px, py := u0+du, v0+dv
			if px < 0 || px >= m.Width || py < 0 || py >= m.Height {
				continue
			}
			if !m.Lane(px, py) {
				continue
			}
			wu := 1 - fu
			if du == 1 {
				wu = fu
			}
			wv := 1 - fv
			if dv == 1 {
				wv = fv
			}
			coverage += wu * wv
		}
	}
	return coverage
}
