package interaction

import (
	"vr-grab/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Hand is a tracked controller. Its node carries the live pose and, as children,
// the controller model renderers that held items may hide.
type Hand struct {
	Name string
	Node *scene.Node
}

// NewHand creates a root node for the hand in g.
func NewHand(g *scene.Graph, name string) *Hand {
	return &Hand{Name: name, Node: g.NewNode(name, nil)}
}

// Position returns the hand's world position.
func (h *Hand) Position() rl.Vector3 { return h.Node.Position() }

// Rotation returns the hand's world rotation.
func (h *Hand) Rotation() rl.Quaternion { return h.Node.Rotation() }

// SetPose moves the hand to a world pose, as tracking would each frame.
func (h *Hand) SetPose(pos rl.Vector3, rot rl.Quaternion) {
	h.Node.SetWorldPose(pos, rot)
}
