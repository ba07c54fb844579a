package geom

import "github.com/chewxy/math32"

// Camera is a perspective camera looking from Pos at Target.
type Camera struct {
	Pos    Vec3
	Target Vec3
	UpDir  Vec3

	// vertical field of view in degrees
	FOV  float32
	Near float32
}

// NewCamera returns a camera at pos looking at the origin with +Y up.
func NewCamera(pos Vec3, fov float32) *Camera {
	return &Camera{
		Pos:   pos,
		UpDir: V3(0, 1, 0),
		FOV:   fov,
		Near:  0.1,
	}
}

// ViewVector is the vector from the target to the camera position.
func (c *Camera) ViewVector() Vec3 {
	return c.Pos.Sub(c.Target)
}

// ViewAxis is the unit view vector, defaulting to +Z when the camera sits
// on its target.
func (c *Camera) ViewAxis() Vec3 {
	v := c.ViewVector().Normal()
	if v.IsZero() {
		return V3(0, 0, 1)
	}
	return v
}

// basis returns the forward, right and up unit vectors of the view.
func (c *Camera) basis() (fwd, right, up Vec3) {
	fwd = c.ViewAxis().MulScalar(-1)
	right = fwd.Cross(c.UpDir).Normal()
	if right.IsZero() {
		right = V3(1, 0, 0)
	}
	up = right.Cross(fwd)
	return fwd, right, up
}

// focal returns the projection scale in pixels for a viewport of height h.
func (c *Camera) focal(h float32) float32 {
	half := c.FOV * math32.Pi / 360
	return (h / 2) / math32.Tan(half)
}

// Project maps a world point onto a w×h viewport. depth is the distance
// along the view direction; ok is false for points behind the near plane.
func (c *Camera) Project(p Vec3, w, h float32) (sx, sy, depth float32, ok bool) {
	fwd, right, up := c.basis()
	d := p.Sub(c.Pos)
	depth = d.Dot(fwd)
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	f := c.focal(h)
	sx = w/2 + d.Dot(right)/depth*f
	sy = h/2 - d.Dot(up)/depth*f
	return sx, sy, depth, true
}

// ScreenRadius is the projected pixel radius of a sphere of radius r at depth.
func (c *Camera) ScreenRadius(r, depth, h float32) float32 {
	if depth <= 0 {
		return 0
	}
	return r / depth * c.focal(h)
}

// Ray returns the world ray through viewport pixel (sx, sy).
func (c *Camera) Ray(sx, sy, w, h float32) Ray {
	fwd, right, up := c.basis()
	f := c.focal(h)
	x := (sx - w/2) / f
	y := (h/2 - sy) / f
	dir := fwd.Add(right.MulScalar(x)).Add(up.MulScalar(y)).Normal()
	return Ray{Origin: c.Pos, Dir: dir}
}
