package gltf

import (
	"fmt"
	"maps"
	"slices"
)

// propertyVisitor is called for every Properties block in a document.
type propertyVisitor func(c Collection, index int, path string, p *Properties)

// walkProperties visits the document, every entity and their nested
// objects. Nested objects report the collection and index of their owner.
func (d *Document) walkProperties(visit propertyVisitor) {
	visit(CollectionDocument, -1, "", &d.Properties)
	visit(CollectionAsset, -1, "", &d.Asset.Properties)
	for _, a := range d.accessors {
		visit(CollectionAccessors, a.index, "", &a.Properties)
		if a.Sparse != nil {
			visit(CollectionAccessors, a.index, "sparse", &a.Sparse.Properties)
		}
	}
	for _, a := range d.animations {
		visit(CollectionAnimations, a.index, "", &a.Properties)
		for i, c := range a.Channels {
			visit(CollectionAnimations, a.index, fmt.Sprintf("channels[%d]", i), &c.Properties)
		}
		for i, s := range a.Samplers {
			visit(CollectionAnimations, a.index, fmt.Sprintf("samplers[%d]", i), &s.Properties)
		}
	}
	for _, b := range d.buffers {
		visit(CollectionBuffers, b.index, "", &b.Properties)
	}
	for _, bv := range d.bufferViews {
		visit(CollectionBufferViews, bv.index, "", &bv.Properties)
	}
	for _, c := range d.cameras {
		visit(CollectionCameras, c.index, "", &c.Properties)
		if c.Perspective != nil {
			visit(CollectionCameras, c.index, "perspective", &c.Perspective.Properties)
		}
		if c.Orthographic != nil {
			visit(CollectionCameras, c.index, "orthographic", &c.Orthographic.Properties)
		}
	}
	for _, img := range d.images {
		visit(CollectionImages, img.index, "", &img.Properties)
	}
	for _, m := range d.materials {
		visit(CollectionMaterials, m.index, "", &m.Properties)
		visit(CollectionMaterials, m.index, "pbrMetallicRoughness", &m.PBRProperties)
		for _, name := range slices.Sorted(maps.Keys(m.Channels())) {
			visit(CollectionMaterials, m.index, name, &m.Channels()[name].Properties)
		}
	}
	for _, m := range d.meshes {
		visit(CollectionMeshes, m.index, "", &m.Properties)
		for i, p := range m.Primitives {
			visit(CollectionMeshes, m.index, fmt.Sprintf("primitives[%d]", i), &p.Properties)
		}
	}
	for _, n := range d.nodes {
		visit(CollectionNodes, n.index, "", &n.Properties)
	}
	for _, s := range d.samplers {
		visit(CollectionSamplers, s.index, "", &s.Properties)
	}
	for _, s := range d.scenes {
		visit(CollectionScenes, s.index, "", &s.Properties)
	}
	for _, s := range d.skins {
		visit(CollectionSkins, s.index, "", &s.Properties)
	}
	for _, t := range d.textures {
		visit(CollectionTextures, t.index, "", &t.Properties)
	}
}

// PresentExtensions returns the sorted names of every extension block in
// the document.
func (d *Document) PresentExtensions() []string {
	seen := map[string]bool{}
	d.walkProperties(func(_ Collection, _ int, _ string, p *Properties) {
		for name := range p.Extensions {
			seen[name] = true
		}
	})
	return slices.Sorted(maps.Keys(seen))
}

// checkExtensions runs the extension stage. It fails when a required
// extension cannot be honored.
func (v *validator) checkExtensions() bool {
	d := v.doc
	used := map[string]bool{}
	for _, name := range d.ExtensionsUsed {
		used[name] = true
	}

	ok := true
	for _, name := range d.ExtensionsRequired {
		switch {
		case compressionExtensions[name]:
			v.errorf(ErrUnsupportedFormat, CollectionDocument, -1, "extensionsRequired", "compressed data (%s) cannot be decoded", name)
			ok = false
		case !v.reg.IsSupported(name):
			v.errorf(ErrUnsupportedExtension, CollectionDocument, -1, "extensionsRequired", "required extension %s is not supported", name)
			ok = false
		}
		if !used[name] {
			v.errorf(ErrInvalidValue, CollectionDocument, -1, "extensionsRequired", "%s is required but not listed in extensionsUsed", name)
			ok = false
		}
	}
	if !ok {
		return false
	}

	for _, name := range d.ExtensionsUsed {
		switch {
		case slices.Contains(d.ExtensionsRequired, name):
		case compressionExtensions[name]:
			v.warnf(ErrUnsupportedFormat, CollectionDocument, -1, "extensionsUsed", "compressed data (%s) ignored, using fallback", name)
		case !v.reg.IsSupported(name):
			v.warnf(ErrUnsupportedExtension, CollectionDocument, -1, "extensionsUsed", "%s is not supported and is kept as raw JSON", name)
		}
	}

	d.walkProperties(func(c Collection, index int, path string, p *Properties) {
		for _, name := range slices.Sorted(maps.Keys(p.Extensions)) {
			if !used[name] {
				v.warnf(ErrInvalidValue, c, index, joinPath(path, "extensions"), "%s is not listed in extensionsUsed", name)
			}
		}
	})
	return true
}

func joinPath(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "."
		}
		out += p
	}
	return out
}
