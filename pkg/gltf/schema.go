package gltf

import "encoding/json"

// Wire types mirror the glTF 2.0 JSON schema. Optional references are
// pointers so that an absent index and index 0 stay distinct; defaults are
// pointers so they can be omitted on write.

type jsonProperty struct {
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage            `json:"extras,omitempty"`
}

type jsonRoot struct {
	ExtensionsUsed     []string         `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string         `json:"extensionsRequired,omitempty"`
	Accessors          []jsonAccessor   `json:"accessors,omitempty"`
	Animations         []jsonAnimation  `json:"animations,omitempty"`
	Asset              *jsonAsset       `json:"asset"`
	Buffers            []jsonBuffer     `json:"buffers,omitempty"`
	BufferViews        []jsonBufferView `json:"bufferViews,omitempty"`
	Cameras            []jsonCamera     `json:"cameras,omitempty"`
	Images             []jsonImage      `json:"images,omitempty"`
	Materials          []jsonMaterial   `json:"materials,omitempty"`
	Meshes             []jsonMesh       `json:"meshes,omitempty"`
	Nodes              []jsonNode       `json:"nodes,omitempty"`
	Samplers           []jsonSampler    `json:"samplers,omitempty"`
	Scene              *int             `json:"scene,omitempty"`
	Scenes             []jsonScene      `json:"scenes,omitempty"`
	Skins              []jsonSkin       `json:"skins,omitempty"`
	Textures           []jsonTexture    `json:"textures,omitempty"`
	jsonProperty
}

type jsonAsset struct {
	Copyright  string `json:"copyright,omitempty"`
	Generator  string `json:"generator,omitempty"`
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	jsonProperty
}

type jsonAccessor struct {
	Name          string      `json:"name,omitempty"`
	BufferView    *int        `json:"bufferView,omitempty"`
	ByteOffset    int         `json:"byteOffset,omitempty"`
	ComponentType uint32      `json:"componentType"`
	Normalized    bool        `json:"normalized,omitempty"`
	Count         int         `json:"count"`
	Type          string      `json:"type"`
	Max           []float64   `json:"max,omitempty"`
	Min           []float64   `json:"min,omitempty"`
	Sparse        *jsonSparse `json:"sparse,omitempty"`
	jsonProperty
}

type jsonSparse struct {
	Count   int               `json:"count"`
	Indices jsonSparseIndices `json:"indices"`
	Values  jsonSparseValues  `json:"values"`
	jsonProperty
}

type jsonSparseIndices struct {
	BufferView    int    `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset,omitempty"`
	ComponentType uint32 `json:"componentType"`
	jsonProperty
}

type jsonSparseValues struct {
	BufferView int `json:"bufferView"`
	ByteOffset int `json:"byteOffset,omitempty"`
	jsonProperty
}

type jsonAnimation struct {
	Name     string            `json:"name,omitempty"`
	Channels []jsonAnimChannel `json:"channels"`
	Samplers []jsonAnimSampler `json:"samplers"`
	jsonProperty
}

type jsonAnimChannel struct {
	Sampler int            `json:"sampler"`
	Target  jsonAnimTarget `json:"target"`
	jsonProperty
}

type jsonAnimTarget struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
	jsonProperty
}

type jsonAnimSampler struct {
	Input         int    `json:"input"`
	Interpolation string `json:"interpolation,omitempty"`
	Output        int    `json:"output"`
	jsonProperty
}

type jsonBuffer struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	jsonProperty
}

type jsonBufferView struct {
	Name       string `json:"name,omitempty"`
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`
	ByteStride int    `json:"byteStride,omitempty"`
	Target     int    `json:"target,omitempty"`
	jsonProperty
}

type jsonCamera struct {
	Name         string            `json:"name,omitempty"`
	Type         string            `json:"type"`
	Perspective  *jsonPerspective  `json:"perspective,omitempty"`
	Orthographic *jsonOrthographic `json:"orthographic,omitempty"`
	jsonProperty
}

type jsonPerspective struct {
	AspectRatio *float32 `json:"aspectRatio,omitempty"`
	YFov        float32  `json:"yfov"`
	ZFar        *float32 `json:"zfar,omitempty"`
	ZNear       float32  `json:"znear"`
	jsonProperty
}

type jsonOrthographic struct {
	XMag  float32 `json:"xmag"`
	YMag  float32 `json:"ymag"`
	ZFar  float32 `json:"zfar"`
	ZNear float32 `json:"znear"`
	jsonProperty
}

type jsonImage struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	jsonProperty
}

type jsonTextureInfo struct {
	Index    int      `json:"index"`
	TexCoord int      `json:"texCoord,omitempty"`
	Scale    *float32 `json:"scale,omitempty"`
	Strength *float32 `json:"strength,omitempty"`
	jsonProperty
}

type jsonPBR struct {
	BaseColorFactor          *[4]float32      `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *jsonTextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32         `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float32         `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *jsonTextureInfo `json:"metallicRoughnessTexture,omitempty"`
	jsonProperty
}

type jsonMaterial struct {
	Name                 string           `json:"name,omitempty"`
	PBRMetallicRoughness *jsonPBR         `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *jsonTextureInfo `json:"normalTexture,omitempty"`
	OcclusionTexture     *jsonTextureInfo `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *jsonTextureInfo `json:"emissiveTexture,omitempty"`
	EmissiveFactor       *[3]float32      `json:"emissiveFactor,omitempty"`
	AlphaMode            string           `json:"alphaMode,omitempty"`
	AlphaCutoff          *float32         `json:"alphaCutoff,omitempty"`
	DoubleSided          bool             `json:"doubleSided,omitempty"`
	jsonProperty
}

type jsonMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []jsonPrimitive `json:"primitives"`
	Weights    []float32       `json:"weights,omitempty"`
	jsonProperty
}

type jsonPrimitive struct {
	Attributes map[string]int   `json:"attributes"`
	Indices    *int             `json:"indices,omitempty"`
	Material   *int             `json:"material,omitempty"`
	Mode       *int             `json:"mode,omitempty"`
	Targets    []map[string]int `json:"targets,omitempty"`
	jsonProperty
}

type jsonNode struct {
	Name        string       `json:"name,omitempty"`
	Camera      *int         `json:"camera,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Skin        *int         `json:"skin,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`
	Scale       *[3]float32  `json:"scale,omitempty"`
	Translation *[3]float32  `json:"translation,omitempty"`
	Weights     []float32    `json:"weights,omitempty"`
	jsonProperty
}

type jsonSampler struct {
	Name      string `json:"name,omitempty"`
	MagFilter int    `json:"magFilter,omitempty"`
	MinFilter int    `json:"minFilter,omitempty"`
	WrapS     *int   `json:"wrapS,omitempty"`
	WrapT     *int   `json:"wrapT,omitempty"`
	jsonProperty
}

type jsonScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
	jsonProperty
}

type jsonSkin struct {
	Name                string `json:"name,omitempty"`
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	Joints              []int  `json:"joints"`
	jsonProperty
}

type jsonTexture struct {
	Name    string `json:"name,omitempty"`
	Sampler *int   `json:"sampler,omitempty"`
	Source  *int   `json:"source,omitempty"`
	jsonProperty
}

// optional converts a JSON reference to an arena index.
func optional(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// reference converts an arena index to a JSON reference.
func reference(i int) *int {
	if i < 0 {
		return nil
	}
	return &i
}
