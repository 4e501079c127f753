package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Anchor supplies the world pose of a root node, e.g. a physics body the node rides on.
type Anchor interface {
	Pose() (rl.Vector3, rl.Quaternion)
}

// Renderer is a visual attached to a node. Only its Enabled flag is modelled; drawing is someone else's job.
type Renderer struct {
	Name    string
	Enabled bool
}

// Node is a named transform in the scene graph. The local pose is relative to the parent,
// or to the anchor (if any) for a root node. Scale is not modelled.
type Node struct {
	ID            uuid.UUID
	Name          string
	LocalPosition rl.Vector3
	LocalRotation rl.Quaternion
	Renderers     []*Renderer

	graph     *Graph
	parent    *Node
	children  []*Node
	anchor    Anchor
	destroyed bool
}

func newNode(g *Graph, name string) *Node {
	return &Node{
		ID:            uuid.New(),
		Name:          name,
		LocalRotation: rl.QuaternionIdentity(),
		graph:         g,
	}
}

// Destroyed reports whether the node has been removed from its graph.
func (n *Node) Destroyed() bool { return n.destroyed }

// SetAnchor makes a root node follow a. The local pose is then an offset in the anchor's frame.
func (n *Node) SetAnchor(a Anchor) {
	n.anchor = a
}

// AddRenderer attaches an enabled renderer to the node and returns it.
func (n *Node) AddRenderer(name string) *Renderer {
	r := &Renderer{Name: name, Enabled: true}
	n.Renderers = append(n.Renderers, r)
	return r
}

// RenderersInChildren returns the renderers on n and every descendant, depth first, n's own first.
func (n *Node) RenderersInChildren() []*Renderer {
	out := append([]*Renderer(nil), n.Renderers...)
	for _, c := range n.children {
		out = append(out, c.RenderersInChildren()...)
	}
	return out
}

func (n *Node) removeChild(c *Node) {
	for i, other := range n.children {
		if other == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) parentPose() (rl.Vector3, rl.Quaternion) {
	switch {
	case n.parent != nil:
		return n.parent.WorldPose()
	case n.anchor != nil:
		return n.anchor.Pose()
	default:
		return rl.Vector3Zero(), rl.QuaternionIdentity()
	}
}

// WorldPose returns the node's position and rotation in world space.
func (n *Node) WorldPose() (rl.Vector3, rl.Quaternion) {
	pp, pr := n.parentPose()
	pos := rl.Vector3Add(pp, rl.Vector3RotateByQuaternion(n.LocalPosition, pr))
	rot := rl.QuaternionNormalize(rl.QuaternionMultiply(pr, n.LocalRotation))
	return pos, rot
}

// Position returns the world position.
func (n *Node) Position() rl.Vector3 {
	p, _ := n.WorldPose()
	return p
}

// Rotation returns the world rotation.
func (n *Node) Rotation() rl.Quaternion {
	_, r := n.WorldPose()
	return r
}

// SetWorldPose sets the local pose so that the node ends up at pos/rot in world space.
func (n *Node) SetWorldPose(pos rl.Vector3, rot rl.Quaternion) {
	pp, pr := n.parentPose()
	inv := rl.QuaternionInvert(pr)
	n.LocalPosition = rl.Vector3RotateByQuaternion(rl.Vector3Subtract(pos, pp), inv)
	n.LocalRotation = rl.QuaternionNormalize(rl.QuaternionMultiply(inv, rot))
}
