package lanevision

import "testing"

func TestBinarize_StrictInequality(t *testing.T) {
	frame := NewFrame(3, 1)
	frame.Set(0, 0, 99)
	frame.Set(1, 0, 100)
	frame.Set(2, 0, 101)

	m := Binarize(frame, 100)
	if m.Polarity != LaneIsTrue {
		t.Fatalf("raw mask polarity = %v, want %v", m.Polarity, LaneIsTrue)
	}
	if !m.At(0, 0) {
		t.Error("sample below threshold not flagged")
	}
	if m.At(1, 0) {
		t.Error("sample exactly equal to threshold was flagged; inequality must be strict")
	}
	if m.At(2, 0) {
		t.Error("sample above threshold was flagged")
	}
}

func TestBinarize_AllBelowThreshold(t *testing.T) {
	frame := NewFrame(32, 16)
	for i := range frame.Pixels {
		frame.Pixels[i] = 50
	}
	m := Binarize(frame, 112.9048)
	if m.Count() != 32*16 {
		t.Errorf("all-dark frame flagged %d of %d pixels", m.Count(), 32*16)
	}
}

func TestEnhance_InvertsPolarity(t *testing.T) {
	// A solid dark block should come out of enhancement as lane pixels, but
	// carried in a mask whose set bits mean background.
	frame := NewFrame(20, 10)
	for i := range frame.Pixels {
		frame.Pixels[i] = 200
	}
	for y := 3; y < 7; y++ {
		for x := 4; x < 14; x++ {
			frame.Set(x, y, 10)
		}
	}

	raw := Binarize(frame, 100)
	enhanced, err := Enhance(raw, DefaultConfig().Morphology)
	if err != nil {
		t.Fatalf("Enhance failed: %v", err)
	}

	if enhanced.Polarity != LaneIsFalse {
		t.Fatalf("enhanced polarity = %v, want %v", enhanced.Polarity, LaneIsFalse)
	}
	// Center of the block: lane under polarity, bit cleared.
	if enhanced.At(8, 5) {
		t.Error("lane pixel has set bit; enhanced mask must be inverted")
	}
	if !enhanced.Lane(8, 5) {
		t.Error("Lane() does not report the block center as lane")
	}
	// Far corner: background, bit set.
	if !enhanced.At(0, 0) {
		t.Error("background pixel has cleared bit in enhanced mask")
	}
	if enhanced.Lane(0, 0) {
		t.Error("Lane() reports background as lane")
	}
}

func TestEnhance_SuppressesSpeckle(t *testing.T) {
	// A lone dark pixel has no 1x2 seed; enhancement removes it.
	frame := NewFrame(20, 10)
	for i := range frame.Pixels {
		frame.Pixels[i] = 200
	}
	frame.Set(10, 5, 10)

	raw := Binarize(frame, 100)
	enhanced, err := Enhance(raw, DefaultConfig().Morphology)
	if err != nil {
		t.Fatalf("Enhance failed: %v", err)
	}
	if enhanced.Lane(10, 5) {
		t.Error("isolated speckle survived enhancement")
	}
}

func TestEnhance_BadKernel(t *testing.T) {
	raw := NewBinaryMask(4, 4, LaneIsTrue)
	_, err := Enhance(raw, MorphologyConfig{
		Erosion:  StructuringElement{Rows: 0, Cols: 2},
		Dilation: StructuringElement{Rows: 2, Cols: 6},
	})
	if err != ErrBadKernel {
		t.Errorf("expected ErrBadKernel, got %v", err)
	}
}

func TestOverlayImage_LaneChannel(t *testing.T) {
	enhanced := NewBinaryMask(4, 2, LaneIsFalse)
	enhanced.Set(1, 0, true) // background
	// (0,0) stays cleared: lane under LaneIsFalse.

	img := OverlayImage(enhanced)

	r, g, b := img.GetXY(0, 0).RGB255()
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("lane pixel overlay = (%d,%d,%d), want (0,255,0)", r, g, b)
	}
	r, g, b = img.GetXY(1, 0).RGB255()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("background pixel overlay = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestInvert_PreservesLane(t *testing.T) {
	m := NewBinaryMask(3, 3, LaneIsTrue)
	m.Set(1, 1, true)

	inv := m.Invert()
	if inv.Polarity != LaneIsFalse {
		t.Fatalf("inverted polarity = %v, want %v", inv.Polarity, LaneIsFalse)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if m.Lane(x, y) != inv.Lane(x, y) {
				t.Errorf("Lane(%d,%d) changed under inversion", x, y)
			}
		}
	}
}
