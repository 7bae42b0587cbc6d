package lanevision

import (
	"testing"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
)

func TestGridPointCloud(t *testing.T) {
	spec := GridSpec{XMinM: -1, XMaxM: 1, YMinM: 0, YMaxM: 2, ResolutionM: 0.5}
	grid := NewOccupancyGrid(spec.Rows(), spec.Cols())
	grid.Set(0, 0, true)
	grid.Set(3, 3, true)

	cloud, err := GridPointCloud(grid, spec)
	if err != nil {
		t.Fatalf("GridPointCloud failed: %v", err)
	}
	if cloud.Size() != 2 {
		t.Fatalf("cloud has %d points, want 2", cloud.Size())
	}

	// Cell (0,0): center (-0.75, 1.75) m -> (-750, 1750) mm.
	if _, ok := cloud.At(-750, 1750, 0); !ok {
		t.Error("cell (0,0) center point missing from cloud")
	}
	// Cell (3,3): center (0.75, 0.25) m -> (750, 250) mm.
	if _, ok := cloud.At(750, 250, 0); !ok {
		t.Error("cell (3,3) center point missing from cloud")
	}

	cloud.Iterate(0, 0, func(pt r3.Vector, d pointcloud.Data) bool {
		if pt.Z != 0 {
			t.Errorf("point %v is off the ground plane", pt)
		}
		return true
	})
}

func TestGridPointCloud_SpecMismatch(t *testing.T) {
	spec := GridSpec{XMinM: -1, XMaxM: 1, YMinM: 0, YMaxM: 2, ResolutionM: 0.5}
	grid := NewOccupancyGrid(3, 3)
	if _, err := GridPointCloud(grid, spec); err != ErrBadGridSpec {
		t.Errorf("expected ErrBadGridSpec, got %v", err)
	}
}
