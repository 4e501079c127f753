package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestNewBody_Defaults(t *testing.T) {
	b := NewBody("box", rl.NewVector3(1, 2, 3), rl.NewVector3(0.5, 0.5, 0.5), 0, false)

	assert.Equal(t, float32(1), b.Mass)
	assert.True(t, b.UseGravity)
	assert.Equal(t, rl.QuaternionIdentity(), b.Rotation)
	assert.Equal(t, float32(DefaultMaxAngularVelocity), b.MaxAngularVelocity)
	require.Len(t, b.Colliders, 1)

	floor := NewBody("floor", rl.Vector3Zero(), rl.NewVector3(5, 0.1, 5), 1, true)
	assert.False(t, floor.UseGravity)
}

func TestBody_SetAngularVelocityClampsToMax(t *testing.T) {
	b := NewBody("box", rl.Vector3Zero(), rl.NewVector3(0.1, 0.1, 0.1), 1, false)
	b.MaxAngularVelocity = 5

	b.SetAngularVelocity(rl.NewVector3(30, 0, 40))
	assert.InDelta(t, 5, rl.Vector3Length(b.AngularVelocity), eps)
	assertVec(t, rl.NewVector3(3, 0, 4), b.AngularVelocity)

	b.MaxAngularVelocity = 0
	b.SetAngularVelocity(rl.NewVector3(30, 0, 40))
	assertVec(t, rl.NewVector3(30, 0, 40), b.AngularVelocity)
}

func TestBody_StaticIgnoresVelocity(t *testing.T) {
	b := NewBody("floor", rl.Vector3Zero(), rl.NewVector3(1, 1, 1), 1, true)
	b.SetVelocity(rl.NewVector3(1, 0, 0))
	b.SetAngularVelocity(rl.NewVector3(1, 0, 0))
	assert.Equal(t, rl.Vector3Zero(), b.Velocity)
	assert.Equal(t, rl.Vector3Zero(), b.AngularVelocity)
}

func TestBody_BoundsFollowRotation(t *testing.T) {
	b := NewBody("plank", rl.NewVector3(0, 1, 0), rl.NewVector3(1, 0.1, 0.1), 1, false)

	box := b.Bounds()[0]
	assertVec(t, rl.NewVector3(-1, 0.9, -0.1), box.Min)
	assertVec(t, rl.NewVector3(1, 1.1, 0.1), box.Max)

	// Quarter turn about Z swaps the long axis onto Y.
	b.Rotation = rl.QuaternionFromAxisAngle(rl.NewVector3(0, 0, 1), rl.Pi/2)
	box = b.Bounds()[0]
	assertVec(t, rl.NewVector3(-0.1, 0, -0.1), box.Min)
	assertVec(t, rl.NewVector3(0.1, 2, 0.1), box.Max)
}

func TestClosestPointOnBox(t *testing.T) {
	box := rl.NewBoundingBox(rl.NewVector3(-1, -1, -1), rl.NewVector3(1, 1, 1))
	tests := []struct {
		name string
		p    rl.Vector3
		want rl.Vector3
	}{
		{name: "inside", p: rl.NewVector3(0.2, -0.3, 0.5), want: rl.NewVector3(0.2, -0.3, 0.5)},
		{name: "face", p: rl.NewVector3(3, 0, 0), want: rl.NewVector3(1, 0, 0)},
		{name: "corner", p: rl.NewVector3(-4, 5, 2), want: rl.NewVector3(-1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, ClosestPointOnBox(box, tt.p))
		})
	}
}

func TestBody_ClosestColliderPointPicksNearestCollider(t *testing.T) {
	b := NewBody("dumbbell", rl.Vector3Zero(), rl.NewVector3(0.5, 0.5, 0.5), 1, false)
	b.Colliders = []Collider{
		{Center: rl.NewVector3(-2, 0, 0), HalfExtents: rl.NewVector3(0.5, 0.5, 0.5)},
		{Center: rl.NewVector3(2, 0, 0), HalfExtents: rl.NewVector3(0.5, 0.5, 0.5)},
	}

	point, dist, ok := b.ClosestColliderPoint(rl.NewVector3(4, 0, 0))
	require.True(t, ok)
	assertVec(t, rl.NewVector3(2.5, 0, 0), point)
	assert.InDelta(t, 1.5, dist, eps)

	b.Colliders = nil
	_, _, ok = b.ClosestColliderPoint(rl.NewVector3(4, 0, 0))
	assert.False(t, ok)
}

func TestBody_AABBUnion(t *testing.T) {
	b := NewBody("pair", rl.Vector3Zero(), rl.NewVector3(0.5, 0.5, 0.5), 1, false)
	b.Colliders = append(b.Colliders, Collider{Center: rl.NewVector3(0, 2, 0), HalfExtents: rl.NewVector3(0.5, 0.5, 0.5)})

	box := b.AABB()
	assertVec(t, rl.NewVector3(-0.5, -0.5, -0.5), box.Min)
	assertVec(t, rl.NewVector3(0.5, 2.5, 0.5), box.Max)
}
