package gltf

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

func TestValidTriangle(t *testing.T) {
	tri := newTriangle(t)
	report := tri.doc.Validate(nil, ValidateContent)
	assert.Empty(t, report.Issues)
	assert.Equal(t, StageContentValidated, report.Stage)
	assert.NoError(t, report.Err())
}

func TestNodeHierarchyIssues(t *testing.T) {
	tests := []struct {
		name  string
		nodes string
		kind  error
		index int
		count int
	}{
		{"out of range child", `[{"children":[5]}]`, ErrInvalidReference, 0, 1},
		{"negative child", `[{"children":[-1]}]`, ErrInvalidReference, 0, 1},
		{"duplicate child", `[{"children":[1,1]},{}]`, ErrDuplicateReference, 0, 1},
		{"self reference", `[{},{"children":[1]}]`, ErrSelfReference, 1, 1},
		{"three node cycle", `[{"children":[1]},{"children":[2]},{"children":[0]},{}]`, ErrCircularReference, 0, 1},
		{"cycle away from zero", `[{},{},{"children":[3]},{"children":[2]}]`, ErrCircularReference, 2, 1},
		{"shared child", `[{"children":[2]},{"children":[2]},{}]`, ErrMultipleParents, 2, 1},
		{"cycle through shared child", `[{"children":[2]},{"children":[2]},{"children":[1]}]`, ErrCircularReference, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":`+tt.nodes+`}`)
			report := d.Validate(nil, ValidateStructure)

			found := issuesOf(report, tt.kind)
			require.Len(t, found, tt.count, "issues: %v", report.Issues)
			assert.Equal(t, CollectionNodes, found[0].Collection)
			assert.Equal(t, tt.index, found[0].Index)
			assert.Equal(t, StageExtensionsChecked, report.Stage)
			assert.True(t, errors.Is(report.Err(), tt.kind))
		})
	}
}

func TestCycleThroughSharedChildKeepsParentIssue(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":[{"children":[2]},{"children":[2]},{"children":[1]}]}`)
	report := d.Validate(nil, ValidateStructure)
	assert.Len(t, issuesOf(report, ErrCircularReference), 1)
	parents := issuesOf(report, ErrMultipleParents)
	require.Len(t, parents, 1)
	assert.Equal(t, 2, parents[0].Index)
}

func TestSelfReferenceIsNotAlsoACycle(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":[{"children":[0]}]}`)
	report := d.Validate(nil, ValidateStructure)
	assert.Len(t, issuesOf(report, ErrSelfReference), 1)
	assert.Empty(t, issuesOf(report, ErrCircularReference))
}

func TestSceneRootIssues(t *testing.T) {
	d := decodeUnvalidated(t, `{
		"asset":{"version":"2.0"},
		"nodes":[{"children":[1]},{}],
		"scenes":[{"nodes":[0,0,1,4]}],
		"scene":2
	}`)
	report := d.Validate(nil, ValidateStructure)

	assert.Len(t, issuesOf(report, ErrDuplicateReference), 1)
	refs := issuesOf(report, ErrInvalidReference)
	require.Len(t, refs, 3)
	assert.Equal(t, "scenes[0].nodes", refs[0].Location())
	assert.Equal(t, "scene", refs[2].Location())
}

func TestAssetStage(t *testing.T) {
	for _, asset := range []string{`{}`, `{"version":"1.0"}`, `{"version":"2"}`, `{"version":"2.0","minVersion":"2.1"}`} {
		d := decodeUnvalidated(t, `{"asset":`+asset+`,"nodes":[{"children":[0]}]}`)
		report := d.Validate(nil, ValidateStructure)
		assert.Equal(t, StageUnvalidated, report.Stage, asset)
		require.Len(t, report.Issues, 1, asset)
		assert.ErrorIs(t, report.Issues[0], ErrInvalidAsset)
	}
}

func TestRequiredExtensionStopsValidation(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		kind error
	}{
		{"unknown", "EXT_unknown", ErrUnsupportedExtension},
		{"draco", "KHR_draco_mesh_compression", ErrUnsupportedFormat},
		{"meshopt", "EXT_meshopt_compression", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
				"extensionsUsed":["`+tt.ext+`"],"extensionsRequired":["`+tt.ext+`"],
				"nodes":[{"children":[9]}]}`)
			report := d.Validate(nil, ValidateStructure)
			assert.Equal(t, StageAssetChecked, report.Stage)
			assert.Len(t, issuesOf(report, tt.kind), 1)
			assert.Empty(t, issuesOf(report, ErrInvalidReference))
		})
	}
}

func TestRequiredExtensionWithCustomRegistry(t *testing.T) {
	reg := DefaultRegistry.Clone()
	reg.RegisterSupported("EXT_custom")
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"extensionsUsed":["EXT_custom"],"extensionsRequired":["EXT_custom"]}`)

	assert.Equal(t, StageStructurallyValidated, d.Validate(reg, ValidateStructure).Stage)
	assert.Equal(t, StageAssetChecked, d.Validate(nil, ValidateStructure).Stage)
	assert.False(t, DefaultRegistry.IsSupported("EXT_custom"))
}

func TestUsedUnknownExtensionWarns(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"extensionsUsed":["EXT_vendor","KHR_draco_mesh_compression"],
		"nodes":[{"extensions":{"EXT_vendor":{"level":3}}}]}`)
	report := d.Validate(nil, ValidateStructure)

	assert.Equal(t, StageStructurallyValidated, report.Stage)
	assert.False(t, report.HasErrors())
	require.Len(t, report.Warnings(), 2)
	assert.Len(t, issuesOf(report, ErrUnsupportedExtension), 1)
	assert.Len(t, issuesOf(report, ErrUnsupportedFormat), 1)

	raw, ok := d.Nodes()[0].Extension("EXT_vendor").(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"level":3}`, string(raw))
}

func TestUndeclaredExtensionWarns(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},"nodes":[{"extensions":{"EXT_vendor":{}}}]}`)
	report := d.Validate(nil, ValidateStructure)
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "nodes[0].extensions", report.Warnings()[0].Location())
}

func TestBufferViewAndAccessorIssues(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"buffers":[{"byteLength":8,"uri":"data:application/octet-stream;base64,AAAAAAAAAAA="}],
		"bufferViews":[
			{"buffer":0,"byteLength":8,"byteStride":3},
			{"buffer":0,"byteOffset":4,"byteLength":8},
			{"buffer":2,"byteLength":4}
		],
		"accessors":[
			{"bufferView":0,"componentType":5126,"count":0,"type":"SCALAR"},
			{"bufferView":1,"componentType":5125,"normalized":true,"count":1,"type":"SCALAR"},
			{"bufferView":0,"byteOffset":2,"componentType":5126,"count":1,"type":"SCALAR"},
			{"componentType":5126,"count":1,"type":"VEC3","min":[0,0],"max":[1,1,1]},
			{"bufferView":1,"componentType":5126,"count":3,"type":"VEC2"}
		]}`)
	report := d.Validate(nil, ValidateStructure)

	locations := map[string]bool{}
	for _, issue := range report.Errors() {
		locations[issue.Location()] = true
	}
	for _, want := range []string{
		"bufferViews[0].byteStride",
		"bufferViews[1].byteLength",
		"bufferViews[2].buffer",
		"accessors[0].count",
		"accessors[1].normalized",
		"accessors[2].byteOffset",
		"accessors[3].min",
		"accessors[4].count",
	} {
		assert.True(t, locations[want], "missing issue at %s; got %v", want, report.Issues)
	}
}

func TestHugeAccessorCount(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"accessors":[{"count":768614336404564651,"componentType":5126,"type":"VEC3"}]}`)

	var report *Report
	require.NotPanics(t, func() { report = d.Validate(nil, ValidateContent) })
	found := issuesOf(report, ErrInvalidValue)
	require.NotEmpty(t, found, "issues: %v", report.Issues)
	assert.Equal(t, "accessors[0].count", found[0].Location())

	_, err := d.Accessors()[0].AsVector3Array()
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = DecodeJSON([]byte(`{"asset":{"version":"2.0"},
		"accessors":[{"count":768614336404564651,"componentType":5126,"type":"VEC3"}]}`),
		&ReadSettings{Validation: ValidateContent})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestOffsetsNearIntLimit(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"buffers":[{"byteLength":8,"uri":"data:application/octet-stream;base64,AAAAAAAAAAA="}],
		"bufferViews":[
			{"buffer":0,"byteOffset":9223372036854775807,"byteLength":8},
			{"buffer":0,"byteLength":8}
		],
		"accessors":[
			{"bufferView":1,"byteOffset":9223372036854775800,"componentType":5126,"count":2,"type":"SCALAR"},
			{"bufferView":1,"componentType":5126,"count":4611686018427387904,"type":"SCALAR"}
		]}`)

	var report *Report
	require.NotPanics(t, func() { report = d.Validate(nil, ValidateStructure) })
	locations := map[string]bool{}
	for _, issue := range report.Errors() {
		locations[issue.Location()] = true
	}
	assert.True(t, locations["bufferViews[0].byteLength"], "issues: %v", report.Issues)
	assert.True(t, locations["accessors[0].count"], "issues: %v", report.Issues)
	assert.True(t, locations["accessors[1].count"], "issues: %v", report.Issues)

	require.NotPanics(t, func() {
		_, err := d.BufferViews()[0].Content()
		assert.ErrorIs(t, err, ErrDataOutOfRange)
	})
}

func TestSkinAndAnimationIssues(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{"version":"2.0"},
		"nodes":[{}],
		"skins":[{"joints":[0,0,3]}],
		"animations":[{"channels":[
			{"sampler":0,"target":{"node":0,"path":"rotation"}},
			{"sampler":0,"target":{"node":0,"path":"rotation"}},
			{"sampler":4,"target":{"node":0,"path":"bend"}}
		],"samplers":[{"input":0,"output":1}]}]}`)
	report := d.Validate(nil, ValidateStructure)

	assert.Len(t, issuesOf(report, ErrDuplicateReference), 2)
	locations := map[string]bool{}
	for _, issue := range issuesOf(report, ErrInvalidReference) {
		locations[issue.Location()] = true
	}
	assert.True(t, locations["skins[0].joints"])
	assert.True(t, locations["animations[0].samplers[0].input"])
	assert.True(t, locations["animations[0].channels[2].sampler"])
}

func TestContentBoundsMismatch(t *testing.T) {
	tri := newTriangle(t)
	tri.positions.Max[0] = 7

	structural := tri.doc.Validate(nil, ValidateStructure)
	assert.False(t, structural.HasErrors())

	report := tri.doc.Validate(nil, ValidateContent)
	require.Len(t, report.Errors(), 1)
	assert.ErrorIs(t, report.Err(), ErrBoundsMismatch)
	assert.Equal(t, "accessors[0].max[0]", report.Errors()[0].Location())
	assert.Equal(t, StageStructurallyValidated, report.Stage)
}

func TestContentIndexOutOfRange(t *testing.T) {
	tri := newTriangle(t)
	tri.doc.Buffers()[0].Content[36] = 9

	report := tri.doc.Validate(nil, ValidateContent)
	assert.ErrorIs(t, report.Err(), ErrDataOutOfRange)
}

func TestContentSparseIndicesMustIncrease(t *testing.T) {
	d := NewDocument()
	buf := d.CreateBuffer(20)
	buf.Content[8], buf.Content[9] = 1, 0
	base := d.CreateBufferView(buf, 0, 8, 0, TargetNone)
	indices := d.CreateBufferView(buf, 8, 2, 0, TargetNone)
	values := d.CreateBufferView(buf, 12, 8, 0, TargetNone)

	a := d.CreateAccessor("sparse")
	a.SetVertexData(base, 0, 2, memory.Scalar, memory.Float, false)
	a.SetSparse(2, indices, 0, memory.UnsignedByte, values, 0)

	report := d.Validate(nil, ValidateContent)
	require.True(t, report.HasErrors(), "issues: %v", report.Issues)
	assert.Equal(t, "accessors[0].sparse.indices", report.Errors()[0].Location())
}

func TestValidateNone(t *testing.T) {
	d := decodeUnvalidated(t, `{"asset":{},"nodes":[{"children":[0]}]}`)
	report := d.Validate(nil, ValidateNone)
	assert.Empty(t, report.Issues)
	assert.Equal(t, StageUnvalidated, report.Stage)
}

func TestMissingAssetIsFatal(t *testing.T) {
	for _, level := range []ValidationMode{ValidateNone, ValidateContent} {
		_, err := DecodeJSON([]byte(`{"nodes":[{}]}`), &ReadSettings{Validation: level})
		assert.ErrorIs(t, err, ErrMissingAsset)
	}
}

func TestIssueError(t *testing.T) {
	issue := Issue{Kind: ErrSelfReference, Collection: CollectionNodes, Index: 3, Path: "children", Message: "node lists itself as a child"}
	assert.Equal(t, "nodes[3].children: self reference: node lists itself as a child", issue.Error())
	assert.ErrorIs(t, issue, ErrSelfReference)
}
