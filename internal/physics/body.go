package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultMaxAngularVelocity is the angular speed cap (rad/s) a new body starts with.
// Held items raise it so fast wrist turns are not clipped.
const DefaultMaxAngularVelocity = 7

// Collider is a box in body-local space: Center is the offset from the body origin,
// HalfExtents the half size along each local axis.
type Collider struct {
	Center      rl.Vector3
	HalfExtents rl.Vector3
}

// Body is a 3D rigid body with a pose, linear and angular velocity, and one or more box colliders.
// Static bodies do not move and are not affected by gravity. AngularVelocity is in rad/s around world axes.
type Body struct {
	Name               string
	Position           rl.Vector3
	Rotation           rl.Quaternion
	Velocity           rl.Vector3
	AngularVelocity    rl.Vector3
	MaxAngularVelocity float32
	Colliders          []Collider
	Mass               float32
	Static             bool
	UseGravity         bool
}

// NewBody returns a body at position with identity rotation and a single collider of the given
// half extents centered on the body. mass <= 0 is treated as 1. Dynamic bodies use gravity.
func NewBody(name string, position, halfExtents rl.Vector3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Name:               name,
		Position:           position,
		Rotation:           rl.QuaternionIdentity(),
		MaxAngularVelocity: DefaultMaxAngularVelocity,
		Colliders:          []Collider{{HalfExtents: halfExtents}},
		Mass:               mass,
		Static:             static,
		UseGravity:         !static,
	}
}

// Pose returns the body's world position and rotation. It lets a scene node follow the body.
func (b *Body) Pose() (rl.Vector3, rl.Quaternion) {
	return b.Position, b.Rotation
}

// SetVelocity replaces the linear velocity. Ignored for static bodies.
func (b *Body) SetVelocity(v rl.Vector3) {
	if b.Static {
		return
	}
	b.Velocity = v
}

// SetAngularVelocity replaces the angular velocity, scaled down to MaxAngularVelocity when it is
// exceeded (a cap of 0 or less means unlimited). Ignored for static bodies.
func (b *Body) SetAngularVelocity(w rl.Vector3) {
	if b.Static {
		return
	}
	b.AngularVelocity = clampLength(w, b.MaxAngularVelocity)
}

func clampLength(v rl.Vector3, max float32) rl.Vector3 {
	if max <= 0 {
		return v
	}
	l := rl.Vector3Length(v)
	if l <= max {
		return v
	}
	return rl.Vector3Scale(v, max/l)
}

// Bounds returns the world-space axis-aligned bounds of every collider. A rotated collider's
// bounds enclose all eight of its rotated corners.
func (b *Body) Bounds() []rl.BoundingBox {
	out := make([]rl.BoundingBox, 0, len(b.Colliders))
	for _, c := range b.Colliders {
		out = append(out, colliderBounds(b.Position, b.Rotation, c))
	}
	return out
}

// AABB returns the union of all collider bounds. A body without colliders gets a zero-size box at its position.
func (b *Body) AABB() rl.BoundingBox {
	bounds := b.Bounds()
	if len(bounds) == 0 {
		return rl.NewBoundingBox(b.Position, b.Position)
	}
	box := bounds[0]
	for _, other := range bounds[1:] {
		box.Min = rl.Vector3Min(box.Min, other.Min)
		box.Max = rl.Vector3Max(box.Max, other.Max)
	}
	return box
}

func colliderBounds(position rl.Vector3, rotation rl.Quaternion, c Collider) rl.BoundingBox {
	center := rl.Vector3Add(position, rl.Vector3RotateByQuaternion(c.Center, rotation))
	h := c.HalfExtents
	var min, max rl.Vector3
	for i := 0; i < 8; i++ {
		corner := rl.NewVector3(h.X, h.Y, h.Z)
		if i&1 != 0 {
			corner.X = -corner.X
		}
		if i&2 != 0 {
			corner.Y = -corner.Y
		}
		if i&4 != 0 {
			corner.Z = -corner.Z
		}
		p := rl.Vector3Add(center, rl.Vector3RotateByQuaternion(corner, rotation))
		if i == 0 {
			min, max = p, p
			continue
		}
		min = rl.Vector3Min(min, p)
		max = rl.Vector3Max(max, p)
	}
	return rl.NewBoundingBox(min, max)
}

// ClosestPointOnBox returns the point of box nearest to p. Points inside the box are returned unchanged.
func ClosestPointOnBox(box rl.BoundingBox, p rl.Vector3) rl.Vector3 {
	return rl.NewVector3(
		rl.Clamp(p.X, box.Min.X, box.Max.X),
		rl.Clamp(p.Y, box.Min.Y, box.Max.Y),
		rl.Clamp(p.Z, box.Min.Z, box.Max.Z),
	)
}

// ClosestColliderPoint scans the body's collider bounds and returns the point nearest to p and its distance.
// ok is false when the body has no colliders.
func (b *Body) ClosestColliderPoint(p rl.Vector3) (point rl.Vector3, distance float32, ok bool) {
	distance = math32.MaxFloat32
	for _, box := range b.Bounds() {
		closest := ClosestPointOnBox(box, p)
		d := rl.Vector3Distance(p, closest)
		if d < distance {
			distance = d
			point = closest
			ok = true
		}
	}
	return point, distance, ok
}
