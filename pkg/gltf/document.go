package gltf

import (
	"encoding/json"
	"fmt"
)

// Collection names a top-level glTF array. It locates validation issues and
// keys extension factories.
type Collection string

const (
	CollectionDocument    Collection = ""
	CollectionAsset       Collection = "asset"
	CollectionAccessors   Collection = "accessors"
	CollectionAnimations  Collection = "animations"
	CollectionBuffers     Collection = "buffers"
	CollectionBufferViews Collection = "bufferViews"
	CollectionCameras     Collection = "cameras"
	CollectionImages      Collection = "images"
	CollectionMaterials   Collection = "materials"
	CollectionMeshes      Collection = "meshes"
	CollectionNodes       Collection = "nodes"
	CollectionSamplers    Collection = "samplers"
	CollectionScenes      Collection = "scenes"
	CollectionSkins       Collection = "skins"
	CollectionTextures    Collection = "textures"
)

// Properties are the extension and extras blocks every glTF object carries.
// Extension values are typed when the reading Registry knows the extension
// for that collection, and json.RawMessage otherwise.
type Properties struct {
	Extensions map[string]any
	Extras     json.RawMessage
}

// SetExtension stores an extension value, creating the map when needed.
func (p *Properties) SetExtension(name string, v any) {
	if p.Extensions == nil {
		p.Extensions = make(map[string]any)
	}
	p.Extensions[name] = v
}

// Extension returns the stored value for name, or nil.
func (p *Properties) Extension(name string) any {
	return p.Extensions[name]
}

func (p Properties) clone() Properties {
	out := Properties{Extras: cloneBytes(p.Extras)}
	if p.Extensions != nil {
		out.Extensions = make(map[string]any, len(p.Extensions))
		for k, v := range p.Extensions {
			if raw, ok := v.(json.RawMessage); ok {
				v = json.RawMessage(cloneBytes(raw))
			}
			out.Extensions[k] = v
		}
	}
	return out
}

// slot ties an entity to its owning document and its position in the
// owning collection.
type slot struct {
	doc   *Document
	index int
}

// LogicalIndex returns the entity's position in its collection.
func (s slot) LogicalIndex() int { return s.index }

// Document returns the owning document.
func (s slot) Document() *Document { return s.doc }

func (s slot) owner() *Document { return s.doc }

type owned interface {
	owner() *Document
	LogicalIndex() int
}

// Asset is the glTF asset block.
type Asset struct {
	Properties
	Version    string
	MinVersion string
	Generator  string
	Copyright  string
}

// Document is the root of a glTF model. It is not safe for concurrent use.
type Document struct {
	Properties
	Asset Asset

	// ExtensionsUsed and ExtensionsRequired list extension names as read.
	// Encoding adds every extension present on an entity to the used list.
	ExtensionsUsed     []string
	ExtensionsRequired []string

	defaultScene int

	accessors   []*Accessor
	animations  []*Animation
	buffers     []*Buffer
	bufferViews []*BufferView
	cameras     []*Camera
	images      []*Image
	materials   []*Material
	meshes      []*Mesh
	nodes       []*Node
	samplers    []*Sampler
	scenes      []*Scene
	skins       []*Skin
	textures    []*Texture

	hierarchy hierarchy
}

// Generator is written to asset.generator for new documents.
const Generator = "midgard-gltf"

// NewDocument returns an empty glTF 2.0 document.
func NewDocument() *Document {
	d := &Document{defaultScene: -1}
	d.Asset.Version = "2.0"
	d.Asset.Generator = Generator
	return d
}

// Accessors returns the accessor collection. The slice must not be modified.
func (d *Document) Accessors() []*Accessor { return d.accessors }

// Animations returns the animation collection.
func (d *Document) Animations() []*Animation { return d.animations }

// Buffers returns the buffer collection.
func (d *Document) Buffers() []*Buffer { return d.buffers }

// BufferViews returns the buffer view collection.
func (d *Document) BufferViews() []*BufferView { return d.bufferViews }

// Cameras returns the camera collection.
func (d *Document) Cameras() []*Camera { return d.cameras }

// Images returns the image collection.
func (d *Document) Images() []*Image { return d.images }

// Materials returns the material collection.
func (d *Document) Materials() []*Material { return d.materials }

// Meshes returns the mesh collection.
func (d *Document) Meshes() []*Mesh { return d.meshes }

// Nodes returns the node collection.
func (d *Document) Nodes() []*Node { return d.nodes }

// Samplers returns the sampler collection.
func (d *Document) Samplers() []*Sampler { return d.samplers }

// Scenes returns the scene collection.
func (d *Document) Scenes() []*Scene { return d.scenes }

// Skins returns the skin collection.
func (d *Document) Skins() []*Skin { return d.skins }

// Textures returns the texture collection.
func (d *Document) Textures() []*Texture { return d.textures }

// DefaultScene returns the scene shown by default, or nil when unset or out
// of range.
func (d *Document) DefaultScene() *Scene {
	return at(d.scenes, d.defaultScene)
}

// DefaultSceneIndex returns the raw default scene index, -1 when unset.
func (d *Document) DefaultSceneIndex() int {
	return d.defaultScene
}

// SetDefaultScene sets the default scene; nil clears it.
func (d *Document) SetDefaultScene(s *Scene) {
	d.defaultScene = d.ref(s)
}

// CreateScene appends a new scene.
func (d *Document) CreateScene(name string) *Scene {
	s := &Scene{slot: slot{d, len(d.scenes)}, Name: name}
	d.scenes = append(d.scenes, s)
	return s
}

// UseScene returns the scene at index, creating empty scenes up to it.
func (d *Document) UseScene(index int) *Scene {
	for len(d.scenes) <= index {
		d.CreateScene("")
	}
	return d.scenes[index]
}

// ref converts an entity to its index after checking ownership. A nil
// entity yields -1.
func (d *Document) ref(e owned) int {
	if isNil(e) {
		return -1
	}
	d.mustOwn(e)
	return e.LogicalIndex()
}

func (d *Document) mustOwn(e owned) {
	if e.owner() != d {
		panic(fmt.Sprintf("gltf: %T belongs to another document", e))
	}
}

// isNil reports whether e is a nil interface or a typed nil pointer.
func isNil(e owned) bool {
	if e == nil {
		return true
	}
	switch v := e.(type) {
	case *Accessor:
		return v == nil
	case *Animation:
		return v == nil
	case *Buffer:
		return v == nil
	case *BufferView:
		return v == nil
	case *Camera:
		return v == nil
	case *Image:
		return v == nil
	case *Material:
		return v == nil
	case *Mesh:
		return v == nil
	case *Node:
		return v == nil
	case *Sampler:
		return v == nil
	case *Scene:
		return v == nil
	case *Skin:
		return v == nil
	case *Texture:
		return v == nil
	}
	return false
}

// at returns s[i] or nil when i is out of range.
func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
