package picking

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// DefaultMarkerRadius is the radius of the sphere markers drawn at each point of interest.
const DefaultMarkerRadius float32 = 0.2

// Ray is a half-line in world space.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // unit length
}

// ScreenToNDC converts window pixel coordinates to normalized device coordinates,
// with (-1, -1) at the bottom-left and (1, 1) at the top-right.
//
// Parameters:
//   - x, y: cursor position in pixels from the top-left corner
//   - width, height: window client size in pixels
//
// Returns:
//   - ndcX, ndcY: normalized device coordinates
func ScreenToNDC(x, y float32, width, height int) (ndcX, ndcY float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	ndcX = x/float32(width)*2 - 1
	ndcY = -(y/float32(height)*2 - 1)
	return ndcX, ndcY
}

// RayFromNDC unprojects an NDC position through an inverse view-projection matrix.
// The near and far points use the WebGPU clip depth range [0, 1].
//
// Parameters:
//   - inverseViewProj: inverse of the camera view-projection matrix (column-major)
//   - ndcX, ndcY: normalized device coordinates
//
// Returns:
//   - Ray: the world-space ray from the near plane toward the far plane
func RayFromNDC(inverseViewProj common.Mat4, ndcX, ndcY float32) Ray {
	near := inverseViewProj.TransformPoint([3]float32{ndcX, ndcY, 0})
	far := inverseViewProj.TransformPoint([3]float32{ndcX, ndcY, 1})
	return Ray{
		Origin:    near,
		Direction: common.Normalize3(common.Sub3(far, near)),
	}
}

// IntersectSphere returns the distance along r to the first intersection with a sphere.
// Hits behind the ray origin are ignored; if the origin is inside the sphere the exit
// distance is returned.
//
// Parameters:
//   - r: the ray (Direction must be unit length)
//   - center: sphere center
//   - radius: sphere radius
//
// Returns:
//   - float32: distance to the hit
//   - bool: false if the ray misses
func IntersectSphere(r Ray, center [3]float32, radius float32) (float32, bool) {
	oc := common.Sub3(r.Origin, center)
	b := common.Dot3(oc, r.Direction)
	c := common.Dot3(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

// Nearest returns the index of the closest marker hit by r. Markers outside the frustum
// are skipped when frustum is non-nil.
//
// Parameters:
//   - r: the pick ray
//   - centers: marker centers, indexed like the point-of-interest list
//   - radius: marker radius
//   - frustum: optional view frustum used to cull markers before testing
//
// Returns:
//   - int: index of the nearest hit marker
//   - bool: false if no marker was hit
func Nearest(r Ray, centers [][3]float32, radius float32, frustum *common.Frustum) (int, bool) {
	best := -1
	bestDist := math32.Inf(1)
	for i, c := range centers {
		if frustum != nil && !frustum.ContainsSphere(c, radius) {
			continue
		}
		if d, ok := IntersectSphere(r, c, radius); ok && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}
