package lanevision

import "testing"

func TestBilateralFilter_UniformFrameUnchanged(t *testing.T) {
	frame := uniformFrame(16, 16, 120)
	out := BilateralFilter(frame, DefaultConfig().Filter)
	for i, v := range out.Pixels {
		if v != 120 {
			t.Fatalf("pixel %d = %d, want 120", i, v)
		}
	}
}

func TestBilateralFilter_SmoothsMildNoise(t *testing.T) {
	frame := uniformFrame(16, 16, 100)
	frame.Set(8, 8, 130)

	out := BilateralFilter(frame, DefaultConfig().Filter)
	if got := out.At(8, 8); got >= 130 || got <= 100 {
		t.Errorf("noisy pixel filtered to %d, want between 100 and 130", got)
	}
	// Edges with large intensity steps are preserved: a far pixel stays put.
	if got := out.At(0, 0); got != 100 {
		t.Errorf("distant pixel changed to %d", got)
	}
}

func TestBilateralFilter_EvenDiameter(t *testing.T) {
	// An even diameter rounds up to the enclosing odd window; it must not
	// index past the precomputed weights.
	frame := uniformFrame(8, 8, 100)
	out := BilateralFilter(frame, FilterConfig{Diameter: 4, SigmaSpace: 2, SigmaColor: 30})
	for i, v := range out.Pixels {
		if v != 100 {
			t.Fatalf("pixel %d = %d, want 100", i, v)
		}
	}
}

func TestBilateralFilter_Disabled(t *testing.T) {
	frame := uniformFrame(8, 8, 77)
	out := BilateralFilter(frame, FilterConfig{Diameter: 1})
	if out != frame {
		t.Error("disabled filter should return the input frame")
	}
}
