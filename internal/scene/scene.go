package scene

import (
	"github.com/google/uuid"
)

// Graph owns every live node. Nodes are created and destroyed through the graph so that
// the number of live nodes is always known (a grab that forgets to clean up shows up in Len).
type Graph struct {
	nodes map[uuid.UUID]*Node
}

// New returns an empty scene graph.
func New() *Graph {
	return &Graph{nodes: make(map[uuid.UUID]*Node)}
}

// NewNode creates a node named name under parent (nil for a root) with identity local pose.
func (g *Graph) NewNode(name string, parent *Node) *Node {
	n := newNode(g, name)
	g.nodes[n.ID] = n
	if parent != nil {
		n.parent = parent
		parent.children = append(parent.children, n)
	}
	return n
}

// Destroy removes n and all of its descendants from the graph and detaches n from its parent.
// Destroying an already destroyed node is a no-op.
func (g *Graph) Destroy(n *Node) {
	if n == nil || n.destroyed {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	g.destroyTree(n)
}

func (g *Graph) destroyTree(n *Node) {
	for _, c := range n.children {
		g.destroyTree(c)
	}
	n.children = nil
	n.destroyed = true
	delete(g.nodes, n.ID)
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
