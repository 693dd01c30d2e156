package common

import (
	"math"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Perspective creates a right-handed perspective projection matrix for WebGPU clip
// space [0, 1]. A far plane of 0 selects the infinite projection glTF uses when
// zfar is absent.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance, 0 for infinite
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[11] = -1.0
	out[15] = 0.0
	if far == 0 {
		out[10] = -1.0
		out[14] = -near
		return
	}
	out[10] = far / (near - far)
	out[14] = (near * far) / (near - far)
}

// Orthographic creates a right-handed orthographic projection matrix for WebGPU clip
// space [0, 1], centered on the view axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - xmag: half the horizontal extent of the view volume
//   - ymag: half the vertical extent of the view volume
//   - near: near clipping plane distance
//   - far: far clipping plane distance (must be > near)
func Orthographic(out []float32, xmag, ymag, near, far float32) {
	Identity(out)

	out[0] = 1.0 / xmag
	out[5] = 1.0 / ymag
	out[10] = 1.0 / (near - far)
	out[14] = near / (near - far)
}
