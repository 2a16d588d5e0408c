package gltf

import (
	"maps"
	"slices"
)

// PrimitiveMode is the topology of a mesh primitive.
type PrimitiveMode int

const (
	Points PrimitiveMode = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// Mesh is a set of primitives drawn together.
type Mesh struct {
	slot
	Properties
	Name       string
	Primitives []*MeshPrimitive
	Weights    []float32
}

// MeshPrimitive is one draw call: vertex attributes, optional indices and a
// material.
type MeshPrimitive struct {
	Properties
	mesh       *Mesh
	attributes map[string]int
	indices    int
	material   int
	targets    []map[string]int
	Mode       PrimitiveMode
}

// CreateMesh appends an empty mesh.
func (d *Document) CreateMesh(name string) *Mesh {
	m := &Mesh{slot: slot{d, len(d.meshes)}, Name: name}
	d.meshes = append(d.meshes, m)
	return m
}

// CreatePrimitive appends a triangle primitive with no attributes.
func (m *Mesh) CreatePrimitive() *MeshPrimitive {
	p := &MeshPrimitive{mesh: m, attributes: map[string]int{}, indices: -1, material: -1, Mode: Triangles}
	m.Primitives = append(m.Primitives, p)
	return p
}

// Mesh returns the owning mesh.
func (p *MeshPrimitive) Mesh() *Mesh { return p.mesh }

// SetAttribute binds an accessor to a vertex attribute semantic such as
// POSITION or TEXCOORD_0. A nil accessor removes the attribute.
func (p *MeshPrimitive) SetAttribute(name string, a *Accessor) {
	if a == nil {
		delete(p.attributes, name)
		return
	}
	p.attributes[name] = p.mesh.doc.ref(a)
}

// Attribute returns the accessor bound to name, or nil.
func (p *MeshPrimitive) Attribute(name string) *Accessor {
	i, ok := p.attributes[name]
	if !ok {
		return nil
	}
	return at(p.mesh.doc.accessors, i)
}

// Attributes returns the raw attribute map. The map must not be modified.
func (p *MeshPrimitive) Attributes() map[string]int { return p.attributes }

// AttributeNames returns the attribute semantics in sorted order.
func (p *MeshPrimitive) AttributeNames() []string {
	return slices.Sorted(maps.Keys(p.attributes))
}

// Indices returns the index accessor, or nil for non-indexed geometry.
func (p *MeshPrimitive) Indices() *Accessor { return at(p.mesh.doc.accessors, p.indices) }

// IndicesIndex returns the raw index accessor reference.
func (p *MeshPrimitive) IndicesIndex() int { return p.indices }

// SetIndices sets the index accessor; nil makes the primitive non-indexed.
func (p *MeshPrimitive) SetIndices(a *Accessor) { p.indices = p.mesh.doc.ref(a) }

// Material returns the primitive's material, or nil for the default.
func (p *MeshPrimitive) Material() *Material { return at(p.mesh.doc.materials, p.material) }

// MaterialIndex returns the raw material reference.
func (p *MeshPrimitive) MaterialIndex() int { return p.material }

// SetMaterial sets the material; nil selects the default material.
func (p *MeshPrimitive) SetMaterial(m *Material) { p.material = p.mesh.doc.ref(m) }

// MorphTargets returns the raw morph target attribute maps.
func (p *MeshPrimitive) MorphTargets() []map[string]int { return p.targets }

// AddMorphTarget appends a morph target built from attribute accessors.
func (p *MeshPrimitive) AddMorphTarget(attributes map[string]*Accessor) {
	target := make(map[string]int, len(attributes))
	for name, a := range attributes {
		target[name] = p.mesh.doc.ref(a)
	}
	p.targets = append(p.targets, target)
}

// AlphaMode controls how a material's alpha is interpreted.
type AlphaMode string

const (
	AlphaOpaque AlphaMode = "OPAQUE"
	AlphaMask   AlphaMode = "MASK"
	AlphaBlend  AlphaMode = "BLEND"
)

// TextureInfo references a texture from a material channel. Scale applies
// to normal textures and Strength to occlusion textures.
type TextureInfo struct {
	Properties
	Index    int
	TexCoord int
	Scale    float32
	Strength float32
}

// Material describes surface appearance with the metallic-roughness model.
type Material struct {
	slot
	Properties
	Name string

	// PBRProperties are the extensions and extras of the
	// pbrMetallicRoughness block.
	PBRProperties            Properties
	BaseColorFactor          [4]float32
	BaseColorTexture         *TextureInfo
	MetallicFactor           float32
	RoughnessFactor          float32
	MetallicRoughnessTexture *TextureInfo

	NormalTexture    *TextureInfo
	OcclusionTexture *TextureInfo
	EmissiveTexture  *TextureInfo
	EmissiveFactor   [3]float32

	AlphaMode   AlphaMode
	AlphaCutoff float32
	DoubleSided bool
}

// CreateMaterial appends a material with glTF default factors.
func (d *Document) CreateMaterial(name string) *Material {
	m := &Material{
		slot:            slot{d, len(d.materials)},
		Name:            name,
		BaseColorFactor: [4]float32{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
		AlphaMode:       AlphaOpaque,
		AlphaCutoff:     0.5,
	}
	d.materials = append(d.materials, m)
	return m
}

// NewTextureInfo builds a channel reference to t.
func (m *Material) NewTextureInfo(t *Texture, texCoord int) *TextureInfo {
	return &TextureInfo{Index: m.doc.ref(t), TexCoord: texCoord, Scale: 1, Strength: 1}
}

// Texture resolves a channel reference of this material.
func (m *Material) Texture(info *TextureInfo) *Texture {
	if info == nil {
		return nil
	}
	return at(m.doc.textures, info.Index)
}

// Channels returns the material's texture references keyed by glTF
// property name. Unset channels are omitted.
func (m *Material) Channels() map[string]*TextureInfo {
	out := map[string]*TextureInfo{}
	for name, info := range map[string]*TextureInfo{
		"baseColorTexture":         m.BaseColorTexture,
		"metallicRoughnessTexture": m.MetallicRoughnessTexture,
		"normalTexture":            m.NormalTexture,
		"occlusionTexture":         m.OcclusionTexture,
		"emissiveTexture":          m.EmissiveTexture,
	} {
		if info != nil {
			out[name] = info
		}
	}
	return out
}

// Texture pairs an image with a sampler.
type Texture struct {
	slot
	Properties
	Name    string
	sampler int
	source  int
}

// CreateTexture appends a texture with no sampler or image.
func (d *Document) CreateTexture(name string) *Texture {
	t := &Texture{slot: slot{d, len(d.textures)}, Name: name, sampler: -1, source: -1}
	d.textures = append(d.textures, t)
	return t
}

// Sampler returns the texture sampler, or nil for the default.
func (t *Texture) Sampler() *Sampler { return at(t.doc.samplers, t.sampler) }

// SamplerIndex returns the raw sampler reference.
func (t *Texture) SamplerIndex() int { return t.sampler }

// SetSampler sets the sampler; nil selects the default.
func (t *Texture) SetSampler(s *Sampler) { t.sampler = t.doc.ref(s) }

// Image returns the source image, or nil.
func (t *Texture) Image() *Image { return at(t.doc.images, t.source) }

// ImageIndex returns the raw image reference.
func (t *Texture) ImageIndex() int { return t.source }

// SetImage sets the source image.
func (t *Texture) SetImage(img *Image) { t.source = t.doc.ref(img) }

// Sampler filter and wrap modes.
const (
	FilterNearest              = 9728
	FilterLinear               = 9729
	FilterNearestMipmapNearest = 9984
	FilterLinearMipmapNearest  = 9985
	FilterNearestMipmapLinear  = 9986
	FilterLinearMipmapLinear   = 9987

	WrapClampToEdge    = 33071
	WrapMirroredRepeat = 33648
	WrapRepeat         = 10497
)

// Sampler holds texture filtering and wrapping. A zero filter means unset.
type Sampler struct {
	slot
	Properties
	Name      string
	MagFilter int
	MinFilter int
	WrapS     int
	WrapT     int
}

// CreateSampler appends a sampler with repeat wrapping and unset filters.
func (d *Document) CreateSampler(name string) *Sampler {
	s := &Sampler{slot: slot{d, len(d.samplers)}, Name: name, WrapS: WrapRepeat, WrapT: WrapRepeat}
	d.samplers = append(d.samplers, s)
	return s
}
