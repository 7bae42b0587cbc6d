package lanevision

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"go.viam.com/rdk/spatialmath"
)

// GroundProjector holds the fixed planar homography between the Z=0 ground
// plane and the image plane. Both directions are kept as distinct matrices;
// conflating them silently inverts the projection.
//
// World frame: X lateral-right, Y forward, Z up. The camera sits at
// C = (0, 0, h) and pitches about the lateral axis; negative pitch looks
// down. Constant for the system's lifetime, computed once at startup.
type GroundProjector struct {
	groundToImage *mat.Dense // 3x3, maps homogeneous [x y 1] -> [u v w]
	imageToGround *mat.Dense // 3x3 inverse, maps [u v 1] -> [x y w]
}

// NewGroundProjector builds the ground-to-image homography from the camera
// constants and inverts it. A singular or ill-conditioned homography (zero
// focal length, zero mounting height, ...) is a fatal configuration error:
// the matrix is reused for every frame, so it is surfaced here rather than
// retried per frame.
func NewGroundProjector(cfg CameraConfig) (*GroundProjector, error) {
	pitch := cfg.PitchDeg * math.Pi / 180

	// World-to-camera rotation. A zero-pitch camera looks along +Y with
	// image x right and image y down; that frame is the world frame rolled
	// 90 degrees about the lateral axis, and pitching down by theta rolls it
	// further by -theta.
	rot := (&spatialmath.EulerAngles{Roll: math.Pi/2 - pitch}).RotationMatrix()

	// Translation t = -R*C with C = (0, 0, h).
	tx := -rot.At(0, 2) * cfg.HeightM
	ty := -rot.At(1, 2) * cfg.HeightM
	tz := -rot.At(2, 2) * cfg.HeightM

	k := mat.NewDense(3, 3, []float64{
		cfg.Fx, 0, cfg.Cx,
		0, cfg.Fy, cfg.Cy,
		0, 0, 1,
	})

	// For points on the Z=0 ground plane the 3-D projection collapses to a
	// planar homography: H = K * [r1 r2 t].
	rt := mat.NewDense(3, 3, []float64{
		rot.At(0, 0), rot.At(0, 1), tx,
		rot.At(1, 0), rot.At(1, 1), ty,
		rot.At(2, 0), rot.At(2, 1), tz,
	})

	g2i := mat.NewDense(3, 3, nil)
	g2i.Mul(k, rt)

	i2g := mat.NewDense(3, 3, nil)
	if err := i2g.Inverse(g2i); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}

	return &GroundProjector{
		groundToImage: g2i,
		imageToGround: i2g,
	}, nil
}

// GroundToImage projects a ground-plane point (meters) to image pixel
// coordinates.
func (p *GroundProjector) GroundToImage(x, y float64) (u, v float64) {
	return applyHomography(p.groundToImage, x, y)
}

// ImageToGround back-projects an image pixel onto the ground plane (meters).
func (p *GroundProjector) ImageToGround(u, v float64) (x, y float64) {
	return applyHomography(p.imageToGround, u, v)
}

// GroundToImageMatrix returns a copy of the ground-to-image homography.
func (p *GroundProjector) GroundToImageMatrix() *mat.Dense {
	return mat.DenseCopyOf(p.groundToImage)
}

// ImageToGroundMatrix returns a copy of the image-to-ground homography.
func (p *GroundProjector) ImageToGroundMatrix() *mat.Dense {
	return mat.DenseCopyOf(p.imageToGround)
}

// applyHomography applies a 3x3 homography to a point using the
// column-vector convention, H * [a b 1]^T, with perspective division.
// Callers porting this to a row-vector library must transpose H; the
// convention is deliberately not baked into the stored matrices.
func applyHomography(h *mat.Dense, a, b float64) (float64, float64) {
	x := h.At(0, 0)*a + h.At(0, 1)*b + h.At(0, 2)
	y := h.At(1, 0)*a + h.At(1, 1)*b + h.At(1, 2)
	w := h.At(2, 0)*a + h.At(2, 1)*b + h.At(2, 2)
	return x / w, y / w
}
