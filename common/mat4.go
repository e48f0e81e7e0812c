package common

import (
	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix in column-major order: element (row r, column c) is m[c*4+r].
// This is the layout WGSL uniforms expect.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n, so n is applied to a point first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies m to (p, 1) and divides by w. When w is zero the point is
// returned undivided.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	var v [4]float32
	for r := 0; r < 4; r++ {
		v[r] = m[r]*p[0] + m[4+r]*p[1] + m[8+r]*p[2] + m[12+r]
	}
	if v[3] == 0 {
		return [3]float32{v[0], v[1], v[2]}
	}
	return [3]float32{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

// Inverse returns the inverse of m by Gauss-Jordan elimination with partial pivoting.
//
// Returns:
//   - Mat4: the inverse, or the identity when m is singular
//   - bool: false when m has no inverse
func (m Mat4) Inverse() (Mat4, bool) {
	// Work on rows: a[r] is [row r of m | row r of identity].
	var a [4][8]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m[c*4+r]
		}
		a[r][4+r] = 1
	}

	for col := 0; col < 4; col++ {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math32.Abs(a[r][col]) > math32.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math32.Abs(a[pivot][col]) < 1e-12 {
			return Identity4(), false
		}
		a[col], a[pivot] = a[pivot], a[col]

		inv := 1 / a[col][col]
		for c := range a[col] {
			a[col][c] *= inv
		}
		for r := 0; r < 4; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := range a[r] {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = a[r][4+c]
		}
	}
	return out, true
}

// Perspective returns a right-handed projection mapping view depth near..far onto
// clip depth 0..1, the WebGPU convention.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: width / height
//   - near, far: positive clip distances, near < far
//
// Returns:
//   - Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	depth := 1 / (near - far)
	var out Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far * depth
	out[11] = -1
	out[14] = near * far * depth
	return out
}

// LookAt returns the view matrix of an eye at eye looking toward center. Degenerate
// inputs (eye == center, or a view direction parallel to up) fall back to the +Z
// and +X axes rather than producing NaNs.
func LookAt(eye, center, up [3]float32) Mat4 {
	back := Normalize3(Sub3(eye, center))
	if back == ([3]float32{}) {
		back = [3]float32{0, 0, 1}
	}
	right := Normalize3(Cross3(up, back))
	if right == ([3]float32{}) {
		right = [3]float32{1, 0, 0}
	}
	upward := Cross3(back, right)

	return Mat4{
		right[0], upward[0], back[0], 0,
		right[1], upward[1], back[1], 0,
		right[2], upward[2], back[2], 0,
		-Dot3(right, eye), -Dot3(upward, eye), -Dot3(back, eye), 1,
	}
}

// row returns row r of m.
func (m Mat4) row(r int) [4]float32 {
	return [4]float32{m[r], m[4+r], m[8+r], m[12+r]}
}
