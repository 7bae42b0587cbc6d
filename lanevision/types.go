package lanevision

import (
	"image"
	"image/color"
	"time"

	"go.viam.com/rdk/rimage"
)

// Polarity records which boolean value of a BinaryMask denotes a lane pixel.
type Polarity int

const (
	// LaneIsTrue means set bits are candidate lane pixels.
	LaneIsTrue Polarity = iota
	// LaneIsFalse means cleared bits are candidate lane pixels.
	LaneIsFalse
)

func (p Polarity) String() string {
	switch p {
	case LaneIsTrue:
		return "lane_is_true"
	case LaneIsFalse:
		return "lane_is_false"
	default:
		return "unknown"
	}
}

// Frame is a single-channel intensity image. Pixels are stored row-major.
// A Frame is owned by one pipeline invocation and never mutated after receipt.
type Frame struct {
	Width  int
	Height int
	Pixels []uint8
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height),
	}
}

// FrameFromImage converts an arbitrary image to a grayscale frame using the
// standard luminance model.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			f.Pixels[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
	return f
}

// At returns the intensity sample at (x, y). No bounds checking.
func (f *Frame) At(x, y int) uint8 {
	return f.Pixels[y*f.Width+x]
}

// Set writes the intensity sample at (x, y). No bounds checking.
func (f *Frame) Set(x, y int, v uint8) {
	f.Pixels[y*f.Width+x] = v
}

// AverageBrightness returns the mean intensity over all samples.
func (f *Frame) AverageBrightness() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range f.Pixels {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(f.Pixels))
}

// BinaryMask is a boolean grid with the same dimensions as its source frame.
// Polarity states which boolean value means "lane"; callers must go through
// Lane() rather than reading Bits directly when they care about lane-ness.
type BinaryMask struct {
	Width    int
	Height   int
	Bits     []bool
	Polarity Polarity
}

// NewBinaryMask allocates an all-false mask with the given polarity.
func NewBinaryMask(width, height int, polarity Polarity) *BinaryMask {
	return &BinaryMask{
		Width:    width,
		Height:   height,
		Bits:     make([]bool, width*height),
		Polarity: polarity,
	}
}

// At returns the raw bit at (x, y). No bounds checking.
func (m *BinaryMask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Set writes the raw bit at (x, y). No bounds checking.
func (m *BinaryMask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}

// Lane reports whether (x, y) is a lane pixel under the mask's polarity.
func (m *BinaryMask) Lane(x, y int) bool {
	if m.Polarity == LaneIsFalse {
		return !m.At(x, y)
	}
	return m.At(x, y)
}

// Invert returns a new mask with every bit flipped and the polarity swapped,
// so Lane() is unchanged.
func (m *BinaryMask) Invert() *BinaryMask {
	p := LaneIsTrue
	if m.Polarity == LaneIsTrue {
		p = LaneIsFalse
	}
	out := NewBinaryMask(m.Width, m.Height, p)
	for i, b := range m.Bits {
		out.Bits[i] = !b
	}
	return out
}

// Clone returns a deep copy of the mask.
func (m *BinaryMask) Clone() *BinaryMask {
	out := NewBinaryMask(m.Width, m.Height, m.Polarity)
	copy(out.Bits, m.Bits)
	return out
}

// Count returns the number of set bits.
func (m *BinaryMask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// OccupancyGrid is a top-down boolean grid over vehicle-centric world
// coordinates. Row 0 is the YMax edge (farthest ahead), column 0 the XMin
// edge (leftmost). True means occupied by lane evidence.
type OccupancyGrid struct {
	Rows  int
	Cols  int
	Cells []bool
}

// NewOccupancyGrid allocates an all-free grid.
func NewOccupancyGrid(rows, cols int) *OccupancyGrid {
	return &OccupancyGrid{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]bool, rows*cols),
	}
}

// At returns the cell at (row, col). No bounds checking.
func (g *OccupancyGrid) At(row, col int) bool {
	return g.Cells[row*g.Cols+col]
}

// Set writes the cell at (row, col). No bounds checking.
func (g *OccupancyGrid) Set(row, col int, v bool) {
	g.Cells[row*g.Cols+col] = v
}

// OccupiedCount returns the number of occupied cells.
func (g *OccupancyGrid) OccupiedCount() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

// Timings holds per-stage wall-clock durations for one pipeline invocation.
type Timings struct {
	Receive    time.Duration
	Filter     time.Duration
	Threshold  time.Duration
	Morphology time.Duration
	Overlay    time.Duration
	Projection time.Duration
}

// Total returns the sum of all stage durations.
func (t Timings) Total() time.Duration {
	return t.Receive + t.Filter + t.Threshold + t.Morphology + t.Overlay + t.Projection
}

// Result is the output of one pipeline invocation, a plain aggregate for the
// reporting collaborator. Nothing here references display state.
type Result struct {
	Frame             *Frame
	Filtered          *Frame // diagnostic only; never feeds the mask chain
	AverageBrightness float64
	Threshold         float64
	RawMask           *BinaryMask // polarity LaneIsTrue
	EnhancedMask      *BinaryMask // polarity LaneIsFalse
	Overlay           *rimage.Image
	Grid              *OccupancyGrid
	Timings           Timings
}
