package gltf

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the document. Buffer and image bytes are
// copied and every logical index is preserved, so the copy validates
// exactly like the original. Typed extension values are copied shallowly.
func (d *Document) Clone() *Document {
	c := &Document{
		Properties:         d.Properties.clone(),
		Asset:              d.Asset,
		ExtensionsUsed:     slices.Clone(d.ExtensionsUsed),
		ExtensionsRequired: slices.Clone(d.ExtensionsRequired),
		defaultScene:       d.defaultScene,
	}
	c.Asset.Properties = d.Asset.Properties.clone()

	for _, a := range d.accessors {
		n := *a
		n.slot = slot{c, a.index}
		n.Properties = a.Properties.clone()
		n.Min, n.Max = slices.Clone(a.Min), slices.Clone(a.Max)
		if a.Sparse != nil {
			s := *a.Sparse
			s.Properties = a.Sparse.Properties.clone()
			n.Sparse = &s
		}
		c.accessors = append(c.accessors, &n)
	}
	for _, a := range d.animations {
		n := &Animation{slot: slot{c, a.index}, Properties: a.Properties.clone(), Name: a.Name}
		for _, s := range a.Samplers {
			cs := *s
			cs.anim = n
			cs.Properties = s.Properties.clone()
			n.Samplers = append(n.Samplers, &cs)
		}
		for _, ch := range a.Channels {
			cc := *ch
			cc.anim = n
			cc.Properties = ch.Properties.clone()
			n.Channels = append(n.Channels, &cc)
		}
		c.animations = append(c.animations, n)
	}
	for _, b := range d.buffers {
		c.buffers = append(c.buffers, &Buffer{
			slot:       slot{c, b.index},
			Properties: b.Properties.clone(),
			Name:       b.Name,
			Content:    cloneBytes(b.Content),
		})
	}
	for _, v := range d.bufferViews {
		n := *v
		n.slot = slot{c, v.index}
		n.Properties = v.Properties.clone()
		c.bufferViews = append(c.bufferViews, &n)
	}
	for _, cam := range d.cameras {
		n := *cam
		n.slot = slot{c, cam.index}
		n.Properties = cam.Properties.clone()
		if cam.Perspective != nil {
			p := *cam.Perspective
			p.Properties = cam.Perspective.Properties.clone()
			n.Perspective = &p
		}
		if cam.Orthographic != nil {
			o := *cam.Orthographic
			o.Properties = cam.Orthographic.Properties.clone()
			n.Orthographic = &o
		}
		c.cameras = append(c.cameras, &n)
	}
	for _, img := range d.images {
		n := *img
		n.slot = slot{c, img.index}
		n.Properties = img.Properties.clone()
		n.content = cloneBytes(img.content)
		c.images = append(c.images, &n)
	}
	for _, m := range d.materials {
		n := *m
		n.slot = slot{c, m.index}
		n.Properties = m.Properties.clone()
		n.PBRProperties = m.PBRProperties.clone()
		n.BaseColorTexture = m.BaseColorTexture.clone()
		n.MetallicRoughnessTexture = m.MetallicRoughnessTexture.clone()
		n.NormalTexture = m.NormalTexture.clone()
		n.OcclusionTexture = m.OcclusionTexture.clone()
		n.EmissiveTexture = m.EmissiveTexture.clone()
		c.materials = append(c.materials, &n)
	}
	for _, m := range d.meshes {
		n := &Mesh{slot: slot{c, m.index}, Properties: m.Properties.clone(), Name: m.Name, Weights: slices.Clone(m.Weights)}
		for _, p := range m.Primitives {
			cp := *p
			cp.mesh = n
			cp.Properties = p.Properties.clone()
			cp.attributes = maps.Clone(p.attributes)
			cp.targets = nil
			for _, t := range p.targets {
				cp.targets = append(cp.targets, maps.Clone(t))
			}
			n.Primitives = append(n.Primitives, &cp)
		}
		c.meshes = append(c.meshes, n)
	}
	for _, node := range d.nodes {
		n := *node
		n.slot = slot{c, node.index}
		n.Properties = node.Properties.clone()
		n.children = slices.Clone(node.children)
		n.Weights = slices.Clone(node.Weights)
		if node.Matrix != nil {
			m := *node.Matrix
			n.Matrix = &m
		}
		c.nodes = append(c.nodes, &n)
	}
	for _, s := range d.samplers {
		n := *s
		n.slot = slot{c, s.index}
		n.Properties = s.Properties.clone()
		c.samplers = append(c.samplers, &n)
	}
	for _, s := range d.scenes {
		n := *s
		n.slot = slot{c, s.index}
		n.Properties = s.Properties.clone()
		n.nodes = slices.Clone(s.nodes)
		c.scenes = append(c.scenes, &n)
	}
	for _, s := range d.skins {
		n := *s
		n.slot = slot{c, s.index}
		n.Properties = s.Properties.clone()
		n.joints = slices.Clone(s.joints)
		c.skins = append(c.skins, &n)
	}
	for _, t := range d.textures {
		n := *t
		n.slot = slot{c, t.index}
		n.Properties = t.Properties.clone()
		c.textures = append(c.textures, &n)
	}
	c.hierarchy.invalidate()
	return c
}

func (t *TextureInfo) clone() *TextureInfo {
	if t == nil {
		return nil
	}
	n := *t
	n.Properties = t.Properties.clone()
	return &n
}
