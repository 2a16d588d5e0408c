package gltf

import (
	"slices"

	"github.com/Faultbox/midgard-gltf/pkg/math"
)

// Node is an element of the visual hierarchy. Its local transform is either
// Matrix or the Translation, Rotation and Scale triple.
type Node struct {
	slot
	Properties
	Name     string
	camera   int
	mesh     int
	skin     int
	children []int

	// Matrix, when non-nil, replaces the TRS properties.
	Matrix      *math.Mat4
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
	Weights     []float32
}

// CreateNode appends a node with an identity transform.
func (d *Document) CreateNode(name string) *Node {
	n := &Node{
		slot:     slot{d, len(d.nodes)},
		Name:     name,
		camera:   -1,
		mesh:     -1,
		skin:     -1,
		Rotation: math.QuatIdentity(),
		Scale:    math.One(),
	}
	d.nodes = append(d.nodes, n)
	d.hierarchy.invalidate()
	return n
}

// Mesh returns the node's mesh, or nil.
func (n *Node) Mesh() *Mesh { return at(n.doc.meshes, n.mesh) }

// MeshIndex returns the raw mesh reference.
func (n *Node) MeshIndex() int { return n.mesh }

// SetMesh sets or clears the node's mesh.
func (n *Node) SetMesh(m *Mesh) { n.mesh = n.doc.ref(m) }

// Camera returns the node's camera, or nil.
func (n *Node) Camera() *Camera { return at(n.doc.cameras, n.camera) }

// CameraIndex returns the raw camera reference.
func (n *Node) CameraIndex() int { return n.camera }

// SetCamera sets or clears the node's camera.
func (n *Node) SetCamera(c *Camera) { n.camera = n.doc.ref(c) }

// Skin returns the node's skin, or nil.
func (n *Node) Skin() *Skin { return at(n.doc.skins, n.skin) }

// SkinIndex returns the raw skin reference.
func (n *Node) SkinIndex() int { return n.skin }

// SetSkin sets or clears the node's skin.
func (n *Node) SetSkin(s *Skin) { n.skin = n.doc.ref(s) }

// ChildIndices returns a copy of the raw child list.
func (n *Node) ChildIndices() []int { return slices.Clone(n.children) }

// AddChild appends child to the child list.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, n.doc.ref(child))
	n.doc.hierarchy.invalidate()
}

// RemoveChild removes every occurrence of child from the child list.
func (n *Node) RemoveChild(child *Node) {
	idx := n.doc.ref(child)
	n.children = slices.DeleteFunc(n.children, func(c int) bool { return c == idx })
	n.doc.hierarchy.invalidate()
}

// SetChildren replaces the child list.
func (n *Node) SetChildren(children ...*Node) {
	n.children = n.children[:0]
	for _, c := range children {
		n.children = append(n.children, n.doc.ref(c))
	}
	n.doc.hierarchy.invalidate()
}

// VisualChildren returns the in-range children in list order.
func (n *Node) VisualChildren() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if child := at(n.doc.nodes, c); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// VisualParent returns the node listing n as a child, or nil for roots.
func (n *Node) VisualParent() *Node {
	return at(n.doc.nodes, n.doc.hierarchy.parentOf(n.doc, n.index))
}

// VisualRoot walks up the hierarchy to n's root. The walk is bounded by the
// node count, so a cycle yields the node where the bound was hit.
func (n *Node) VisualRoot() *Node {
	root := n
	for range len(n.doc.nodes) {
		p := root.VisualParent()
		if p == nil {
			break
		}
		root = p
	}
	return root
}

// VisualScene returns the first scene whose root list contains n's root, or
// nil.
func (n *Node) VisualScene() *Scene {
	root := n.VisualRoot().index
	for _, s := range n.doc.scenes {
		if slices.Contains(s.nodes, root) {
			return s
		}
	}
	return nil
}

// IsJoint reports whether any skin lists n as a joint.
func (n *Node) IsJoint() bool {
	for _, s := range n.doc.skins {
		if slices.Contains(s.joints, n.index) {
			return true
		}
	}
	return false
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	if n.Matrix != nil {
		return *n.Matrix
	}
	return math.Compose(n.Translation, n.Rotation, n.Scale)
}

// SetLocalMatrix stores m as translation, rotation and scale and clears
// Matrix.
func (n *Node) SetLocalMatrix(m math.Mat4) {
	n.Matrix = nil
	n.Translation, n.Rotation, n.Scale = m.Decompose()
}

// WorldMatrix returns the node's transform relative to the scene root.
func (n *Node) WorldMatrix() math.Mat4 {
	world := n.LocalMatrix()
	p := n.VisualParent()
	for range len(n.doc.nodes) {
		if p == nil || p == n {
			break
		}
		world = p.LocalMatrix().Mul(world)
		p = p.VisualParent()
	}
	return world
}

// Scene is a set of root nodes.
type Scene struct {
	slot
	Properties
	Name  string
	nodes []int
}

// NodeIndices returns a copy of the raw root list.
func (s *Scene) NodeIndices() []int { return slices.Clone(s.nodes) }

// AddNode appends a root node.
func (s *Scene) AddNode(n *Node) {
	s.nodes = append(s.nodes, s.doc.ref(n))
	s.doc.hierarchy.invalidate()
}

// RemoveNode removes every occurrence of n from the root list.
func (s *Scene) RemoveNode(n *Node) {
	idx := s.doc.ref(n)
	s.nodes = slices.DeleteFunc(s.nodes, func(c int) bool { return c == idx })
	s.doc.hierarchy.invalidate()
}

// VisualChildren returns the in-range root nodes.
func (s *Scene) VisualChildren() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, i := range s.nodes {
		if n := at(s.doc.nodes, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// VisualRoots returns every node without a parent, in index order.
func (d *Document) VisualRoots() []*Node {
	var out []*Node
	for _, n := range d.nodes {
		if d.hierarchy.parentOf(d, n.index) < 0 {
			out = append(out, n)
		}
	}
	return out
}

// hierarchy caches the child to parent map. It is rebuilt on first use
// after any child list changes.
type hierarchy struct {
	parents []int
	dirty   bool
	built   bool
}

func (h *hierarchy) invalidate() { h.dirty = true }

func (h *hierarchy) parentOf(d *Document, child int) int {
	if !h.built || h.dirty || len(h.parents) != len(d.nodes) {
		h.rebuild(d)
	}
	if child < 0 || child >= len(h.parents) {
		return -1
	}
	return h.parents[child]
}

// rebuild records the first parent of every child. Out-of-range children
// are ignored; shared children are reported by validation.
func (h *hierarchy) rebuild(d *Document) {
	h.parents = slices.Grow(h.parents[:0], len(d.nodes))[:len(d.nodes)]
	for i := range h.parents {
		h.parents[i] = -1
	}
	for _, n := range d.nodes {
		for _, c := range n.children {
			if c >= 0 && c < len(h.parents) && h.parents[c] < 0 {
				h.parents[c] = n.index
			}
		}
	}
	h.built, h.dirty = true, false
}
