package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// worldUp is the fixed up axis of the viewer's scenes.
var worldUp = [3]float32{0, 1, 0}

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32 // vertical, radians
	aspect float32
	near   float32
	far    float32

	view       common.Mat4
	projection common.Mat4
	viewProj   common.Mat4
	invViewPro common.Mat4

	controller CameraController
}

// Camera turns a controller's pose into render matrices.
//
// The eye is the controller position and the view direction is the controller's forward
// vector rather than the orbit target, so a pitch written during a tilt shows up even
// though the target has not moved. Matrices are refreshed only by Update (and by
// SetAspect); the viewer calls Update once per tick.
type Camera interface {
	// ViewMatrix returns the world-to-view matrix (column-major).
	ViewMatrix() common.Mat4

	// ProjectionMatrix returns the perspective matrix with WebGPU [0, 1] depth.
	ProjectionMatrix() common.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() common.Mat4

	// InverseViewProjectionMatrix maps NDC back to world space. Picking uses it to build rays.
	InverseViewProjectionMatrix() common.Mat4

	// Frustum returns the normalized view frustum planes of the current view-projection.
	Frustum() common.Frustum

	// Controller returns the controller the camera reads from, or nil.
	Controller() CameraController

	// Update recomputes all matrices from the controller. No-op without a controller.
	Update()

	// SetAspect changes the viewport aspect ratio and recomputes the matrices.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 75° field of view and a 0.1 to 1000 depth range.
// The matrices are computed immediately when a controller is supplied.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    75 * math32.Pi / 180,
		aspect: 1,
		near:   0.1,
		far:    1000,

		view:       common.Identity4(),
		projection: common.Identity4(),
		viewProj:   common.Identity4(),
		invViewPro: common.Identity4(),
	}

	for _, option := range options {
		option(c)
	}
	c.recompute()
	return c
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProj
}

func (c *cameraImpl) InverseViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invViewPro
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.FrustumFromMatrix(c.viewProj)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.recompute()
}

// recompute rebuilds every matrix. Caller must hold the mutex.
func (c *cameraImpl) recompute() {
	if c.controller == nil {
		return
	}
	px, py, pz := c.controller.Position()
	fx, fy, fz := c.controller.Forward()
	eye := [3]float32{px, py, pz}

	c.view = common.LookAt(eye, common.Add3(eye, [3]float32{fx, fy, fz}), worldUp)
	c.projection = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProj = c.projection.Mul(c.view)
	if inv, ok := c.viewProj.Inverse(); ok {
		c.invViewPro = inv
	}
}
