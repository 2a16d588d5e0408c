package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/math"
)

func TestVisualHierarchy(t *testing.T) {
	d := NewDocument()
	root := d.CreateNode("root")
	child := d.CreateNode("child")
	grandchild := d.CreateNode("grandchild")
	loose := d.CreateNode("loose")
	scene := d.CreateScene("main")
	scene.AddNode(root)

	root.AddChild(child)
	child.AddChild(grandchild)

	assert.Same(t, child, grandchild.VisualParent())
	assert.Same(t, root, grandchild.VisualRoot())
	assert.Same(t, scene, grandchild.VisualScene())
	assert.Nil(t, loose.VisualScene())
	assert.Equal(t, []*Node{root, loose}, d.VisualRoots())

	root.RemoveChild(child)
	assert.Nil(t, child.VisualParent())
	assert.Nil(t, grandchild.VisualScene())
	assert.Equal(t, []*Node{root, child, loose}, d.VisualRoots())

	root.SetChildren(child, loose)
	assert.Equal(t, []int{1, 3}, root.ChildIndices())
	assert.Same(t, root, loose.VisualParent())
	assert.Equal(t, []*Node{child, loose}, root.VisualChildren())
}

func TestVisualParentIgnoresOutOfRangeChildren(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":[{"children":[7,1]},{}]}`)
	assert.Same(t, d.Nodes()[0], d.Nodes()[1].VisualParent())
	assert.Len(t, d.Nodes()[0].VisualChildren(), 1)
}

func TestVisualRootTerminatesOnCycle(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":[{"children":[1]},{"children":[0]}]}`)
	assert.NotNil(t, d.Nodes()[0].VisualRoot())
	assert.NotPanics(t, func() { d.Nodes()[1].WorldMatrix() })
}

func TestIsJoint(t *testing.T) {
	d := NewDocument()
	hip := d.CreateNode("hip")
	body := d.CreateNode("body")
	skin := d.CreateSkin("skin")
	skin.SetJoints(hip)

	assert.True(t, hip.IsJoint())
	assert.False(t, body.IsJoint())
	assert.Equal(t, []*Node{hip}, skin.Joints())
}

func TestWorldMatrix(t *testing.T) {
	d := NewDocument()
	parent := d.CreateNode("parent")
	child := d.CreateNode("child")
	parent.AddChild(child)

	parent.Translation = math.Vec3{X: 1}
	parent.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	child.Translation = math.Vec3{Y: 3}

	got := child.WorldMatrix().TransformPoint(math.Vec3{})
	assert.InDelta(t, 1, got.X, 1e-6)
	assert.InDelta(t, 6, got.Y, 1e-6)
	assert.InDelta(t, 0, got.Z, 1e-6)

	m := math.Translate(4, 5, 6)
	child.Matrix = &m
	assert.Equal(t, m, child.LocalMatrix())

	child.SetLocalMatrix(m)
	assert.Nil(t, child.Matrix)
	assert.Equal(t, math.Vec3{X: 4, Y: 5, Z: 6}, child.Translation)
}

func TestCameraProjection(t *testing.T) {
	d := NewDocument()

	infinite := d.CreatePerspectiveCamera("infinite", 0.8, 0.1, 0)
	got, err := infinite.Projection(1.5)
	require.NoError(t, err)
	assert.Equal(t, math.InfinitePerspective(0.8, 1.5, 0.1), got)

	finite := d.CreatePerspectiveCamera("finite", 0.8, 0.1, 100)
	finite.Perspective.AspectRatio = 2
	got, err = finite.Projection(1.5)
	require.NoError(t, err)
	assert.Equal(t, math.Perspective(0.8, 2, 0.1, 100), got)

	_, err = finite.Projection(0)
	assert.NoError(t, err)

	noAspect := d.CreatePerspectiveCamera("noAspect", 0.8, 0.1, 100)
	_, err = noAspect.Projection(0)
	assert.ErrorIs(t, err, ErrInvalidValue)

	ortho := d.CreateOrthographicCamera("ortho", 2, 1, 0, 10)
	got, err = ortho.Projection(1)
	require.NoError(t, err)
	assert.Equal(t, math.Ortho(-2, 2, -1, 1, 0, 10), got)

	ortho.Orthographic.XMag = 0
	_, err = ortho.Projection(1)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
