package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the poles, where LookAt degenerates.
const polarEpsilon = 1e-6

// OrbitControls orbits a camera around its target. Input handlers queue
// deltas; Update applies them once per frame.
type OrbitControls struct {
	Camera *PerspectiveCamera

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32 // Radians from +Y
	MaxPolar    float32

	Damping       bool
	DampingFactor float32

	AutoRotate      bool
	AutoRotateSpeed float32 // Orbits per minute at 60 fps equivalent

	viewportHeight int

	thetaDelta float32
	phiDelta   float32
	scale      float32
	panOffset  mgl32.Vec3
	rotating   bool
}

// NewOrbitControls attaches controls to cam with stock settings.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:          cam,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		PanSpeed:        1,
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		MinPolar:        0,
		MaxPolar:        math32.Pi,
		DampingFactor:   0.05,
		AutoRotateSpeed: 2,
		viewportHeight:  1,
		scale:           1,
	}
}

// SetViewport sets the window height drags are measured against.
func (c *OrbitControls) SetViewport(height int) {
	if height > 0 {
		c.viewportHeight = height
	}
}

// HandleDrag rotates by a pointer drag in window pixels. A drag across the
// full window height turns a full circle.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	h := float32(c.viewportHeight)
	c.thetaDelta -= 2 * math32.Pi * deltaX / h * c.RotateSpeed
	c.phiDelta -= 2 * math32.Pi * deltaY / h * c.RotateSpeed
	c.rotating = true
}

// HandleZoom dollies by wheel steps. Positive steps move closer.
func (c *OrbitControls) HandleZoom(steps float32) {
	if steps == 0 {
		return
	}
	c.scale *= math32.Pow(c.zoomScale(), steps)
}

// HandlePan moves the target in the view plane by a pointer drag in window
// pixels, so the point under the cursor follows it.
func (c *OrbitControls) HandlePan(deltaX, deltaY float32) {
	offset := c.Camera.Position.Sub(c.Camera.Target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(c.Camera.FOV)/2)

	h := float32(c.viewportHeight)
	left := 2 * deltaX * targetDistance / h * c.PanSpeed
	up := 2 * deltaY * targetDistance / h * c.PanSpeed

	// Camera basis from the inverse view matrix.
	inv := c.Camera.ViewMatrix().Inv()
	right := inv.Col(0).Vec3()
	upAxis := inv.Col(1).Vec3()

	c.panOffset = c.panOffset.Add(right.Mul(-left)).Add(upAxis.Mul(up))
}

// Update applies queued input and auto-rotation, then re-aims the camera.
// dt is the real time since the previous update, in seconds.
func (c *OrbitControls) Update(dt float32) {
	cam := c.Camera
	offset := cam.Position.Sub(cam.Target)

	radius, theta, phi := toSpherical(offset)

	if c.AutoRotate && !c.rotating {
		c.thetaDelta -= 2 * math32.Pi / 60 * c.AutoRotateSpeed * dt
	}

	if c.Damping {
		theta += c.thetaDelta * c.DampingFactor
		phi += c.phiDelta * c.DampingFactor
	} else {
		theta += c.thetaDelta
		phi += c.phiDelta
	}

	phi = clamp(phi, c.MinPolar, c.MaxPolar)
	phi = clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius = clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.Damping {
		cam.Target = cam.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		cam.Target = cam.Target.Add(c.panOffset)
	}

	cam.Position = cam.Target.Add(fromSpherical(radius, theta, phi))

	if c.Damping {
		keep := 1 - c.DampingFactor
		c.thetaDelta *= keep
		c.phiDelta *= keep
		c.panOffset = c.panOffset.Mul(keep)
	} else {
		c.thetaDelta = 0
		c.phiDelta = 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1
	c.rotating = false
}

// Distance returns the current camera to target distance.
func (c *OrbitControls) Distance() float32 {
	return c.Camera.Position.Sub(c.Camera.Target).Len()
}

func (c *OrbitControls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

// toSpherical converts an offset to radius, azimuth around +Y measured from
// +Z, and polar angle from +Y.
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(v.X(), v.Z())
	phi = math32.Acos(clamp(v.Y()/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	s := math32.Sin(phi) * radius
	return mgl32.Vec3{
		s * math32.Sin(theta),
		math32.Cos(phi) * radius,
		s * math32.Cos(theta),
	}
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(x, hi))
}
