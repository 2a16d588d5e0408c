package gltf

import "slices"

// Skin binds a mesh to a joint hierarchy.
type Skin struct {
	slot
	Properties
	Name                string
	inverseBindMatrices int
	skeleton            int
	joints              []int
}

// CreateSkin appends a skin with no joints.
func (d *Document) CreateSkin(name string) *Skin {
	s := &Skin{slot: slot{d, len(d.skins)}, Name: name, inverseBindMatrices: -1, skeleton: -1}
	d.skins = append(d.skins, s)
	return s
}

// InverseBindMatrices returns the MAT4 accessor of inverse bind matrices,
// or nil when every joint uses identity.
func (s *Skin) InverseBindMatrices() *Accessor { return at(s.doc.accessors, s.inverseBindMatrices) }

// InverseBindMatricesIndex returns the raw accessor reference.
func (s *Skin) InverseBindMatricesIndex() int { return s.inverseBindMatrices }

// SetInverseBindMatrices sets or clears the inverse bind matrix accessor.
func (s *Skin) SetInverseBindMatrices(a *Accessor) { s.inverseBindMatrices = s.doc.ref(a) }

// Skeleton returns the common root of the joints, or nil.
func (s *Skin) Skeleton() *Node { return at(s.doc.nodes, s.skeleton) }

// SkeletonIndex returns the raw skeleton reference.
func (s *Skin) SkeletonIndex() int { return s.skeleton }

// SetSkeleton sets or clears the skeleton root.
func (s *Skin) SetSkeleton(n *Node) { s.skeleton = s.doc.ref(n) }

// JointIndices returns a copy of the raw joint list.
func (s *Skin) JointIndices() []int { return slices.Clone(s.joints) }

// Joints returns the in-range joint nodes.
func (s *Skin) Joints() []*Node {
	out := make([]*Node, 0, len(s.joints))
	for _, j := range s.joints {
		if n := at(s.doc.nodes, j); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// SetJoints replaces the joint list.
func (s *Skin) SetJoints(joints ...*Node) {
	s.joints = s.joints[:0]
	for _, n := range joints {
		s.joints = append(s.joints, s.doc.ref(n))
	}
}
