// Package geom holds the small amount of 3D math the scene needs: vectors,
// rays, sphere intersection and a perspective camera.
package geom

import "github.com/chewxy/math32"

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// V3 returns a new Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) MulScalar(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Length() float32 { return math32.Sqrt(a.Dot(a)) }
func (a Vec3) DistanceTo(b Vec3) float32 { return a.Sub(b).Length() }
func (a Vec3) IsZero() bool { return a.X == 0 && a.Y == 0 && a.Z == 0 }
func (a Vec3) Lerp(b Vec3, t float32) Vec3 { return a.Add(b.Sub(a).MulScalar(t)) }

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Normal returns a unit-length copy of a, or the zero vector for zero input.
func (a Vec3) Normal() Vec3 {
	l := a.Length()
	if l == 0 {
		return Vec3{}
	}
	return a.MulScalar(1 / l)
}

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 { return r.Origin.Add(r.Dir.MulScalar(t)) }

// IntersectSphere returns the nearest non-negative distance at which the ray
// enters the sphere, or false when it misses. A ray starting inside the
// sphere reports the exit distance.
func (r Ray) IntersectSphere(center Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
