package gltf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/math"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

// triangle is a one-triangle document: positions and uint16 indices packed
// in a single buffer, one mesh, one node, one scene.
type triangle struct {
	doc       *Document
	positions *Accessor
	indices   *Accessor
	mesh      *Mesh
	node      *Node
	scene     *Scene
}

func newTriangle(t *testing.T) *triangle {
	t.Helper()
	d := NewDocument()
	buf := d.CreateBuffer(44)

	memory.Fill[math.Vec3](memory.NewVector3Array(buf.Content, 0, 3, 0, memory.Float, false), []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	})
	idx := memory.NewIntegerArray(buf.Content, 36, 3, 0, memory.UnsignedShort)
	for i := range 3 {
		idx.Set(i, uint32(i))
	}

	posView := d.CreateBufferView(buf, 0, 36, 0, TargetArrayBuffer)
	idxView := d.CreateBufferView(buf, 36, 6, 0, TargetElementArrayBuffer)

	pos := d.CreateAccessor("positions")
	pos.SetVertexData(posView, 0, 3, memory.Vec3, memory.Float, false)
	require.NoError(t, pos.UpdateBounds())

	indices := d.CreateAccessor("indices")
	indices.SetIndexData(idxView, 0, 3, memory.UnsignedShort)

	mesh := d.CreateMesh("triangle")
	prim := mesh.CreatePrimitive()
	prim.SetAttribute("POSITION", pos)
	prim.SetIndices(indices)

	node := d.CreateNode("root")
	node.SetMesh(mesh)
	scene := d.CreateScene("scene")
	scene.AddNode(node)
	d.SetDefaultScene(scene)

	return &triangle{doc: d, positions: pos, indices: indices, mesh: mesh, node: node, scene: scene}
}

// decodeUnvalidated parses JSON text without validating it.
func decodeUnvalidated(t *testing.T, text string) *Document {
	t.Helper()
	d, err := DecodeJSON([]byte(text), &ReadSettings{Validation: ValidateNone})
	require.NoError(t, err)
	return d
}

// issuesOf returns the issues of kind, in report order.
func issuesOf(r *Report, kind error) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			out = append(out, issue)
		}
	}
	return out
}
