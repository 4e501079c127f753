package interaction

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stock gains for a held item. Position and rotation gains turn a pose error into a target
// velocity; RestitutionStrength caps how far the current velocity moves toward it per tick.
const (
	DefaultPositionMagic       = 3000
	DefaultRotationMagic       = 20
	DefaultRestitutionStrength = 10
)

// Gains tunes how hard a held body is pulled toward its target pose.
type Gains struct {
	PositionMagic       float32
	RotationMagic       float32
	RestitutionStrength float32
}

// DefaultGains returns the stock gains.
func DefaultGains() Gains {
	return Gains{
		PositionMagic:       DefaultPositionMagic,
		RotationMagic:       DefaultRotationMagic,
		RestitutionStrength: DefaultRestitutionStrength,
	}
}

// AngleAxis returns the rotation of q as an angle in degrees in [0, 360] and a unit axis.
// An identity (or zero) quaternion yields angle 0 and axis +X.
func AngleAxis(q rl.Quaternion) (angle float32, axis rl.Vector3) {
	if rl.QuaternionLength(q) == 0 {
		return 0, rl.NewVector3(1, 0, 0)
	}
	q = rl.QuaternionNormalize(q)
	w := rl.Clamp(q.W, -1, 1)
	angle = 2 * math32.Acos(w) * rl.Rad2deg
	den := math32.Sqrt(1 - w*w)
	if den < 0.0001 {
		return angle, rl.NewVector3(1, 0, 0)
	}
	return angle, rl.NewVector3(q.X/den, q.Y/den, q.Z/den)
}

// WrapAngle maps an angle in degrees above 180 onto the equivalent negative angle so the
// correction takes the short way round. Inputs in [0, 360) come back in (-180, 180].
func WrapAngle(angle float32) float32 {
	if angle > 180 {
		return angle - 360
	}
	return angle
}

// MoveTowards moves current toward target by at most maxDelta (vector length). When the
// remaining gap is within maxDelta the target is returned exactly.
func MoveTowards(current, target rl.Vector3, maxDelta float32) rl.Vector3 {
	gap := rl.Vector3Subtract(target, current)
	dist := rl.Vector3Length(gap)
	if dist == 0 || (maxDelta >= 0 && dist <= maxDelta) {
		return target
	}
	return rl.Vector3Add(current, rl.Vector3Scale(gap, maxDelta/dist))
}

// Correct returns the new linear and angular velocity for a body that should close the given
// pose error over the coming tick. positionDelta is target minus current position and
// rotationDelta is target rotation times the inverse of the current rotation.
// The angular velocity is left untouched when the rotation error is exactly zero.
func (g Gains) Correct(dt float32, positionDelta rl.Vector3, rotationDelta rl.Quaternion, velocity, angularVelocity rl.Vector3) (rl.Vector3, rl.Vector3) {
	angle, axis := AngleAxis(rotationDelta)
	angle = WrapAngle(angle)
	if angle != 0 {
		angularTarget := rl.Vector3Scale(axis, dt*angle*g.RotationMagic)
		angularVelocity = MoveTowards(angularVelocity, angularTarget, g.RestitutionStrength)
	}
	velocityTarget := rl.Vector3Scale(positionDelta, g.PositionMagic*dt)
	velocity = MoveTowards(velocity, velocityTarget, g.RestitutionStrength)
	return velocity, angularVelocity
}
