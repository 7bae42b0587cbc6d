package lanevision

import (
	"errors"
	"math"
	"testing"
)

func TestGroundProjector_RoundTrip(t *testing.T) {
	proj, err := NewGroundProjector(DefaultConfig().Camera)
	if err != nil {
		t.Fatalf("NewGroundProjector failed: %v", err)
	}

	// Project known ground points to the image and back; the round trip must
	// recover them. This validates the inversion, not just the construction.
	points := [][2]float64{
		{0, 1}, {0, 3.5}, {-1.5, 2}, {1.5, 2}, {0.25, 0.5}, {-2, 4},
	}
	for _, p := range points {
		u, v := proj.GroundToImage(p[0], p[1])
		x, y := proj.ImageToGround(u, v)
		if math.Abs(x-p[0]) > 1e-9 || math.Abs(y-p[1]) > 1e-9 {
			t.Errorf("round trip (%v,%v) -> (%v,%v) -> (%v,%v)", p[0], p[1], u, v, x, y)
		}
		t.Logf("ground (%.2f, %.2f) -> image (%.1f, %.1f)", p[0], p[1], u, v)
	}
}

func TestGroundProjector_CenterlineAndDepthOrdering(t *testing.T) {
	cfg := DefaultConfig().Camera
	proj, err := NewGroundProjector(cfg)
	if err != nil {
		t.Fatalf("NewGroundProjector failed: %v", err)
	}

	// A point on the vehicle centerline projects to the principal column.
	u, _ := proj.GroundToImage(0, 2)
	if math.Abs(u-cfg.Cx) > 1e-9 {
		t.Errorf("centerline point projects to u=%v, want %v", u, cfg.Cx)
	}

	// Nearer ground appears lower in the image than farther ground.
	_, vNear := proj.GroundToImage(0, 1)
	_, vFar := proj.GroundToImage(0, 3)
	if vNear <= vFar {
		t.Errorf("near point v=%v not below far point v=%v", vNear, vFar)
	}
}

func TestGroundProjector_DegenerateGeometry(t *testing.T) {
	// Zero focal length and zero mounting height both collapse the
	// homography; construction must fail, not limp along per frame.
	bad := []CameraConfig{
		func() CameraConfig {
			c := DefaultConfig().Camera
			c.Fx = 0
			c.Fy = 0
			return c
		}(),
		func() CameraConfig {
			c := DefaultConfig().Camera
			c.HeightM = 0
			return c
		}(),
	}
	for i, cfg := range bad {
		if _, err := NewGroundProjector(cfg); !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("config %d: expected ErrDegenerateGeometry, got %v", i, err)
		}
	}
}

func TestGroundProjector_MatrixCopiesAreIndependent(t *testing.T) {
	proj, err := NewGroundProjector(DefaultConfig().Camera)
	if err != nil {
		t.Fatalf("NewGroundProjector failed: %v", err)
	}

	before, _ := proj.GroundToImage(0, 2)

	m := proj.GroundToImageMatrix()
	m.Set(0, 0, 1e6)

	after, _ := proj.GroundToImage(0, 2)
	if before != after {
		t.Error("mutating a returned matrix copy leaked into the projector")
	}
}
