package interaction

import (
	"errors"
	"fmt"

	"vr-grab/internal/config"
	"vr-grab/internal/logger"
	"vr-grab/internal/physics"
	"vr-grab/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// heldMaxAngularVelocity is the spin cap (rad/s) applied to an item's body when it is set up,
// well above the physics default so the item can keep up with a flicked wrist.
const heldMaxAngularVelocity = 100

var (
	// ErrNoBody is returned by NewItem when there is no body to drive.
	ErrNoBody = errors.New("item has no body")
	// ErrNoColliders is returned by NewItem for a body without collision volumes.
	ErrNoColliders = errors.New("item body has no colliders")
	// ErrNilHand is returned by BeginInteraction when called without a hand.
	ErrNilHand = errors.New("nil hand")
)

// Item is a rigid body that can be picked up by a hand. While held it is pulled toward the
// hand every physics tick by correcting its velocity and angular velocity, never by moving it
// directly, so the world still resolves collisions for it.
//
// With no InteractionPoint the item keeps the pose it had relative to the hand at grab time:
// a pickup-offset node is parented under the hand and the body is driven onto it. With an
// InteractionPoint, that point is driven onto the hand itself.
type Item struct {
	// InteractionPoint, if set, is where the hand holds the item (usually a child of Node).
	InteractionPoint *scene.Node
	// HidesController disables the hand's renderers while the item is held.
	HidesController bool
	Gains           Gains

	Body *physics.Body
	// Node follows the body so interaction points can be authored as its children.
	Node *scene.Node

	graph *scene.Graph
	log   *logger.Logger

	hand   *Hand
	pickup *scene.Node
	hidden []*scene.Renderer
}

// NewItem sets up body as a grabbable item in g: it gets a scene node anchored to the body and
// its spin cap is raised to 100 rad/s. log may be nil.
func NewItem(g *scene.Graph, body *physics.Body, log *logger.Logger) (*Item, error) {
	if body == nil {
		return nil, ErrNoBody
	}
	if len(body.Colliders) == 0 {
		return nil, fmt.Errorf("%s: %w", body.Name, ErrNoColliders)
	}
	if log == nil {
		log = logger.NewNop()
	}
	body.MaxAngularVelocity = heldMaxAngularVelocity
	node := g.NewNode(body.Name, nil)
	node.SetAnchor(body)
	return &Item{
		Gains: DefaultGains(),
		Body:  body,
		Node:  node,
		graph: g,
		log:   log.With(zap.String("item", body.Name)),
	}, nil
}

// ApplyPrefs copies the tuning fields from p. A change of HidesController while held takes
// effect at the next grab; renderers hidden by the current grab are still restored on release.
func (it *Item) ApplyPrefs(p config.Prefs) {
	it.HidesController = p.HidesController
	it.Gains = Gains{
		PositionMagic:       p.AttachedPositionMagic,
		RotationMagic:       p.AttachedRotationMagic,
		RestitutionStrength: p.RestitutionStrength,
	}
	it.Body.MaxAngularVelocity = p.MaxAngularVelocity
}

// IsAttached reports whether a hand currently holds the item.
func (it *Item) IsAttached() bool { return it.hand != nil }

// AttachedHand returns the holding hand, or nil.
func (it *Item) AttachedHand() *Hand { return it.hand }

// PickupNode returns the pickup-offset node of the current grab, or nil when not held.
func (it *Item) PickupNode() *scene.Node { return it.pickup }

// BeginInteraction attaches the item to hand. If another hand holds it, that grab ends first.
func (it *Item) BeginInteraction(hand *Hand) error {
	if hand == nil {
		return ErrNilHand
	}
	if it.hand != nil {
		it.EndInteraction()
	}
	it.hand = hand

	if it.HidesController {
		for _, r := range hand.Node.RenderersInChildren() {
			if !r.Enabled {
				continue
			}
			r.Enabled = false
			it.hidden = append(it.hidden, r)
		}
	}

	handPos := hand.Position()
	if point, dist, ok := it.Body.ClosestColliderPoint(handPos); ok {
		it.log.Debug("grab point",
			zap.String("hand", hand.Name),
			zap.Float32("x", point.X), zap.Float32("y", point.Y), zap.Float32("z", point.Z),
			zap.Float32("distance", dist))
	}

	it.pickup = it.graph.NewNode(fmt.Sprintf("[%s] PickupOffset", it.Body.Name), hand.Node)
	it.pickup.SetWorldPose(it.Body.Position, it.Body.Rotation)

	it.log.Info("attached", zap.String("hand", hand.Name), zap.Int("hidden_renderers", len(it.hidden)))
	return nil
}

// EndInteraction releases the item: renderers hidden at grab time are shown again and the
// pickup-offset node is destroyed. Calling it when not held does nothing.
func (it *Item) EndInteraction() {
	if it.hand == nil {
		return
	}
	for _, r := range it.hidden {
		r.Enabled = true
	}
	if it.pickup != nil {
		it.graph.Destroy(it.pickup)
	}
	it.log.Info("released", zap.String("hand", it.hand.Name), zap.Int("shown_renderers", len(it.hidden)))
	it.hand = nil
	it.pickup = nil
	it.hidden = nil
}

// target returns the pose error to close this tick as (position delta, rotation delta).
func (it *Item) target() (rl.Vector3, rl.Quaternion) {
	if ip := it.InteractionPoint; ip != nil && !ip.Destroyed() {
		ipPos, ipRot := ip.WorldPose()
		return rl.Vector3Subtract(it.hand.Position(), ipPos),
			rl.QuaternionMultiply(it.hand.Rotation(), rl.QuaternionInvert(ipRot))
	}
	pickPos, pickRot := it.pickup.WorldPose()
	return rl.Vector3Subtract(pickPos, it.Body.Position),
		rl.QuaternionMultiply(pickRot, rl.QuaternionInvert(it.Body.Rotation))
}

// OnTick writes the corrected velocity and angular velocity to the body. Does nothing when not held.
func (it *Item) OnTick(dt float32) {
	if it.hand == nil || it.pickup == nil {
		return
	}
	positionDelta, rotationDelta := it.target()
	v, w := it.Gains.Correct(dt, positionDelta, rotationDelta, it.Body.Velocity, it.Body.AngularVelocity)
	it.Body.SetVelocity(v)
	it.Body.SetAngularVelocity(w)
}
