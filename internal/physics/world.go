package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World holds a set of bodies and runs a simple 3D physics step: gravity, linear and angular
// integration, AABB collision. Velocities written between steps are what Step integrates, so
// anything driving a body through its velocity still gets pushed out of other bodies.
type World struct {
	Gravity rl.Vector3
	Bodies  []*Body
}

// NewWorld returns a new physics world with default gravity (0, -9.81, 0). Y is up.
func NewWorld() *World {
	return &World{
		Gravity: rl.NewVector3(0, -9.81, 0),
	}
}

// AddBody appends a body to the world. Order is preserved.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the minimum penetration.
// If no overlap, returns (0, -1).
func penetrationAxis(a, b rl.BoundingBox) (depth float32, axis int) {
	overlapX := min(a.Max.X, b.Max.X) - max(a.Min.X, b.Min.X)
	overlapY := min(a.Max.Y, b.Max.Y) - max(a.Min.Y, b.Min.Y)
	overlapZ := min(a.Max.Z, b.Max.Z) - max(a.Min.Z, b.Min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// axisSign returns +1 when b sits on the positive side of a along axis, -1 otherwise.
func axisSign(a, b rl.BoundingBox, axis int) float32 {
	ca := component(rl.Vector3Lerp(a.Min, a.Max, 0.5), axis)
	cb := component(rl.Vector3Lerp(b.Min, b.Max, 0.5), axis)
	if cb >= ca {
		return 1
	}
	return -1
}

func component(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func addComponent(v *rl.Vector3, axis int, d float32) {
	switch axis {
	case 0:
		v.X += d
	case 1:
		v.Y += d
	default:
		v.Z += d
	}
}

// stopAlong zeroes the velocity component along axis when it points in the direction of sign.
func stopAlong(v *rl.Vector3, axis int, sign float32) {
	switch axis {
	case 0:
		if v.X*sign > 0 {
			v.X = 0
		}
	case 1:
		if v.Y*sign > 0 {
			v.Y = 0
		}
	default:
		if v.Z*sign > 0 {
			v.Z = 0
		}
	}
}

// integrateRotation advances q by angular velocity w (rad/s) over dt: q += 0.5 * (w,0) * q * dt.
func integrateRotation(q rl.Quaternion, w rl.Vector3, dt float32) rl.Quaternion {
	if w.X == 0 && w.Y == 0 && w.Z == 0 {
		return q
	}
	spin := rl.QuaternionMultiply(rl.NewQuaternion(w.X, w.Y, w.Z, 0), q)
	return rl.QuaternionNormalize(rl.QuaternionAdd(q, rl.QuaternionScale(spin, 0.5*dt)))
}

// Step advances the simulation by dt seconds: apply gravity, integrate position and rotation,
// then resolve AABB overlaps by pushing bodies apart along the axis of least penetration and
// cancelling the approaching velocity component. Static bodies never move.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		if b.UseGravity {
			b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(w.Gravity, dt))
		}
		b.AngularVelocity = clampLength(b.AngularVelocity, b.MaxAngularVelocity)
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.Rotation = integrateRotation(b.Rotation, b.AngularVelocity, dt)
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			boxI, boxJ := bi.AABB(), bj.AABB()
			if !rl.CheckCollisionBoxes(boxI, boxJ) {
				continue
			}
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}
			// sign points from bi towards bj; bi moves against it, bj along it.
			sign := axisSign(boxI, boxJ, axis)
			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}
			if !bi.Static {
				addComponent(&bi.Position, axis, moveI*sign)
				stopAlong(&bi.Velocity, axis, sign)
			}
			if !bj.Static {
				addComponent(&bj.Position, axis, moveJ*sign)
				stopAlong(&bj.Velocity, axis, -sign)
			}
		}
	}
}
