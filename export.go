package lanegrid

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/rimage"

	"github.com/BananaMilk313/Zerui-Li-Camera/lanevision"
)

// saveArtifacts persists one frame's debug outputs under r.DebugDir: the raw
// frame and overlay as PNGs, and the occupancy grid as a PCD point cloud in
// the vehicle-centric grid frame. When VehiclePose is set, the grid cloud is
// additionally exported in the map frame.
func saveArtifacts(r *Rover, res *lanevision.Result, index int) error {
	if err := os.MkdirAll(r.DebugDir, 0o755); err != nil {
		return fmt.Errorf("create debug dir: %w", err)
	}

	framePath := filepath.Join(r.DebugDir, fmt.Sprintf("frame_%04d.png", index))
	if err := rimage.WriteImageToFile(framePath, frameImage(res.Frame)); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}

	overlayPath := filepath.Join(r.DebugDir, fmt.Sprintf("overlay_%04d.png", index))
	if err := rimage.WriteImageToFile(overlayPath, res.Overlay); err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}

	cloud, err := lanevision.GridPointCloud(res.Grid, r.gridSpec)
	if err != nil {
		return fmt.Errorf("grid cloud: %w", err)
	}

	gridPath := filepath.Join(r.DebugDir, fmt.Sprintf("grid_%04d_vehicle.pcd", index))
	if err := writePCD(cloud, gridPath); err != nil {
		return fmt.Errorf("save vehicle-frame grid: %w", err)
	}

	// Map-frame export, when the vehicle's pose in the map is known.
	if r.VehiclePose != nil {
		mapCloud := pointcloud.NewBasicPointCloud(cloud.Size())
		if err := pointcloud.ApplyOffset(cloud, r.VehiclePose, mapCloud); err != nil {
			return fmt.Errorf("transform grid to map frame: %w", err)
		}
		mapPath := filepath.Join(r.DebugDir, fmt.Sprintf("grid_%04d_map.pcd", index))
		if err := writePCD(mapCloud, mapPath); err != nil {
			return fmt.Errorf("save map-frame grid: %w", err)
		}
	}

	r.logger.Debugf("Saved debug artifacts for frame %d to %s", index, r.DebugDir)
	return nil
}

// writePCD serializes a cloud to disk as binary PCD.
func writePCD(cloud pointcloud.PointCloud, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := pointcloud.ToPCD(cloud, f, pointcloud.PCDBinary); err != nil {
		return fmt.Errorf("encode PCD: %w", err)
	}
	return nil
}

// frameImage wraps a grayscale frame as a stdlib image for encoding.
func frameImage(f *lanevision.Frame) image.Image {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pixels)
	return img
}
