// Package scene provides a small retained scene graph: named nodes with
// parent/child links, per-node visibility, and optional mesh geometry.
// The renderer walks it depth-first drawing visible mesh nodes.
package scene

import (
	"github.com/Faultbox/lodview/internal/engine/geometry"
	"github.com/Faultbox/lodview/pkg/math"
)

// Node is an element of the scene graph. A node with a nil Mesh is a pure
// grouping node; a node with geometry also carries a material.
type Node struct {
	name     string
	parent   *Node
	children []*Node

	// Visible gates rendering of this node and its subtree.
	Visible bool

	// Pos is the node's position relative to its parent.
	Pos math.Vec3

	// Mesh and Mat are set for renderable nodes, nil/nil for groups.
	Mesh *geometry.Mesh
	Mat  *Material

	// GPU holds renderer-owned buffer handles for this node's mesh.
	// The scene graph never touches it; the renderer sets and releases it.
	GPU any
}

// NewNode creates a visible grouping node with no geometry.
func NewNode(name string) *Node {
	return &Node{name: name, Visible: true}
}

// NewMeshNode creates a visible node carrying the given mesh and material.
func NewMeshNode(name string, mesh *geometry.Mesh, mat *Material) *Node {
	return &Node{name: name, Visible: true, Mesh: mesh, Mat: mat}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children.
func (n *Node) Children() []*Node { return n.children }

// HasGeometry reports whether the node carries renderable mesh data.
func (n *Node) HasGeometry() bool {
	return n.Mesh != nil && len(n.Mesh.Vertices) > 0
}

// AddChild attaches child under n. A node has at most one parent: if the
// child is currently attached elsewhere it is detached from there first.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. No-op if child is not a direct child.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// SetVisible sets the node's visibility flag.
func (n *Node) SetVisible(v bool) {
	n.Visible = v
}

// WorldPos returns the node's position in world space, the sum of its own
// and all ancestor positions.
func (n *Node) WorldPos() math.Vec3 {
	pos := n.Pos
	for p := n.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Pos)
	}
	return pos
}

// Walk calls fn for the node and every descendant, depth-first. Returning
// false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
