package gltf

import "sync"

// Extension names with built-in support.
const (
	ExtMaterialsUnlit            = "KHR_materials_unlit"
	ExtMaterialsEmissiveStrength = "KHR_materials_emissive_strength"
	ExtMeshQuantization          = "KHR_mesh_quantization"
)

// Compression extensions whose payloads this package cannot decode.
var compressionExtensions = map[string]bool{
	"KHR_draco_mesh_compression": true,
	"EXT_meshopt_compression":    true,
	"KHR_meshopt_compression":    true,
}

// ExtensionFactory returns a new pointer for an extension block to be
// unmarshaled into.
type ExtensionFactory func() any

// Registry lists the extensions a reader understands. Blocks of registered
// extensions are decoded into the factory's type; other blocks are kept as
// raw JSON. A Registry is safe for concurrent reads once set up.
type Registry struct {
	mu        sync.RWMutex
	supported map[string]bool
	factories map[string]map[Collection]ExtensionFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		supported: make(map[string]bool),
		factories: make(map[string]map[Collection]ExtensionFactory),
	}
}

// DefaultRegistry knows the built-in extensions.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ExtMaterialsUnlit, CollectionMaterials, func() any { return new(MaterialsUnlit) })
	r.Register(ExtMaterialsEmissiveStrength, CollectionMaterials, func() any { return &MaterialsEmissiveStrength{EmissiveStrength: 1} })
	r.RegisterSupported(ExtMeshQuantization)
	return r
}

// Register adds a typed extension for blocks found on objects of collection.
func (r *Registry) Register(name string, c Collection, f ExtensionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supported[name] = true
	if r.factories[name] == nil {
		r.factories[name] = make(map[Collection]ExtensionFactory)
	}
	r.factories[name][c] = f
}

// RegisterSupported marks an extension as understood without a typed block.
func (r *Registry) RegisterSupported(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supported[name] = true
}

// IsSupported reports whether name was registered.
func (r *Registry) IsSupported(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.supported[name]
}

// Factory returns the factory for name on collection, or nil.
func (r *Registry) Factory(name string, c Collection) ExtensionFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[name][c]
}

// Clone returns an independent copy that can be extended without touching
// r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	for name := range r.supported {
		out.supported[name] = true
	}
	for name, byCollection := range r.factories {
		out.factories[name] = make(map[Collection]ExtensionFactory, len(byCollection))
		for c, f := range byCollection {
			out.factories[name][c] = f
		}
	}
	return out
}

// MaterialsUnlit is the KHR_materials_unlit block. It has no properties.
type MaterialsUnlit struct{}

// MaterialsEmissiveStrength is the KHR_materials_emissive_strength block.
// EmissiveStrength defaults to 1.
type MaterialsEmissiveStrength struct {
	EmissiveStrength float32 `json:"emissiveStrength"`
}
