package lanevision

import (
	"image/color"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"
)

// GridPointCloud converts the occupied cells of a grid to a point cloud on
// the ground plane, one point per cell center. Grid coordinates are meters;
// point cloud coordinates are millimeters, matching the RDK convention.
func GridPointCloud(grid *OccupancyGrid, spec GridSpec) (pointcloud.PointCloud, error) {
	if grid.Rows != spec.Rows() || grid.Cols != spec.Cols() {
		return nil, ErrBadGridSpec
	}

	cloud := pointcloud.NewBasicEmpty()
	data := pointcloud.NewColoredData(color.NRGBA{R: 40, G: 220, B: 40, A: 255})
	for row := 0; row < grid.Rows; row++ {
		y := spec.YMaxM - (float64(row)+0.5)*spec.ResolutionM
		for col := 0; col < grid.Cols; col++ {
			if !grid.At(row, col) {
				continue
			}
			x := spec.XMinM + (float64(col)+0.5)*spec.ResolutionM
			pt := r3.Vector{X: x * 1000, Y: y * 1000, Z: 0}
			if err := cloud.Set(pt, data); err != nil {
				return nil, err
			}
		}
	}
	return cloud, nil
}
