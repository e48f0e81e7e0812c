package common

// Plane is the set of points p with Dot3(Normal, p) + Distance == 0. Points with a
// positive value are on the inner side.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum is the six inward-facing planes bounding what a camera can see,
// in the order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the frustum of a view-projection matrix by combining its
// rows (Gribb and Hartmann). The near plane is clip z >= 0, matching Perspective.
func FrustumFromMatrix(viewProj Mat4) Frustum {
	x, y, z, w := viewProj.row(0), viewProj.row(1), viewProj.row(2), viewProj.row(3)
	combos := [6][4]float32{
		add4(w, x, 1),
		add4(w, x, -1),
		add4(w, y, 1),
		add4(w, y, -1),
		z,
		add4(w, z, -1),
	}

	var f Frustum
	for i, c := range combos {
		n := [3]float32{c[0], c[1], c[2]}
		length := Length3(n)
		if length == 0 {
			f.Planes[i] = Plane{Normal: n, Distance: c[3]}
			continue
		}
		f.Planes[i] = Plane{Normal: Scale3(n, 1/length), Distance: c[3] / length}
	}
	return f
}

// ContainsSphere reports whether any part of the sphere is inside f.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere is wholly behind one plane
func (f *Frustum) ContainsSphere(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		if Dot3(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

func add4(a, b [4]float32, sign float32) [4]float32 {
	return [4]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2], a[3] + sign*b[3]}
}
