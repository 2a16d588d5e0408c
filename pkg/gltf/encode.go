package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gltf/pkg/encoding"
	"github.com/Faultbox/midgard-gltf/pkg/glb"
	"github.com/Faultbox/midgard-gltf/pkg/math"
)

// Encode writes the document in the form selected by settings.BufferMode.
// External resources go through settings.Writer. The document is never
// modified.
func (d *Document) Encode(settings *WriteSettings) ([]byte, error) {
	if settings == nil {
		settings = &WriteSettings{}
	}
	if settings.BufferMode == BufferBinary {
		return d.EncodeBinary(settings)
	}
	return d.EncodeJSON(settings)
}

// EncodeJSON writes .gltf text. BufferBinary is treated as BufferEmbedded.
func (d *Document) EncodeJSON(settings *WriteSettings) ([]byte, error) {
	if settings == nil {
		settings = &WriteSettings{}
	}
	mode := settings.BufferMode
	if mode == BufferBinary {
		mode = BufferEmbedded
	}
	text, _, err := d.encode(settings, mode)
	return text, err
}

// EncodeBinary writes a .glb container. A document with more than one
// buffer fails with ErrMultipleBuffers unless settings.MergeBuffers is set.
func (d *Document) EncodeBinary(settings *WriteSettings) ([]byte, error) {
	if settings == nil {
		settings = &WriteSettings{}
	}
	text, bin, err := d.encode(settings, BufferBinary)
	if err != nil {
		return nil, err
	}
	return glb.Marshal(text, bin)
}

func (d *Document) encode(settings *WriteSettings, mode BufferMode) ([]byte, []byte, error) {
	log := settings.logger()
	src := d
	if settings.MergeBuffers && len(d.buffers) > 1 {
		src = d.Clone()
		if err := src.MergeBuffers(); err != nil {
			return nil, nil, err
		}
		log.Debug("merged buffers for output", zap.Int("buffers", len(d.buffers)), zap.Int("merged", len(src.buffers)))
	}
	if mode == BufferBinary && len(src.buffers) > 1 {
		return nil, nil, fmt.Errorf("%w: document has %d buffers", ErrMultipleBuffers, len(src.buffers))
	}
	if mode == BufferExternal && settings.Writer == nil {
		return nil, nil, ErrMissingWriter
	}

	if settings.Validation != ValidateNone {
		report := src.Validate(settings.registry(), settings.Validation)
		if report.HasErrors() {
			return nil, nil, fmt.Errorf("%w: %w", ErrValidation, report.Err())
		}
	}

	enc := &encoder{doc: src, settings: settings, mode: mode}
	root, err := enc.root()
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	je := json.NewEncoder(&buf)
	je.SetEscapeHTML(false)
	if settings.Indent {
		je.SetIndent("", "  ")
	}
	if err := je.Encode(root); err != nil {
		return nil, nil, fmt.Errorf("gltf: encode json: %w", err)
	}
	text := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	log.Debug("encoded glTF document", zap.Stringer("mode", mode), zap.Int("jsonBytes", len(text)), zap.Int("binBytes", len(enc.bin)))
	return text, enc.bin, nil
}

type encoder struct {
	doc      *Document
	settings *WriteSettings
	mode     BufferMode
	bin      []byte
}

func (enc *encoder) properties(p Properties) (jsonProperty, error) {
	jp := jsonProperty{Extras: p.Extras}
	for name, v := range p.Extensions {
		raw, ok := v.(json.RawMessage)
		if !ok {
			var err error
			if raw, err = json.Marshal(v); err != nil {
				return jsonProperty{}, fmt.Errorf("gltf: encode extension %s: %w", name, err)
			}
		}
		if jp.Extensions == nil {
			jp.Extensions = make(map[string]json.RawMessage, len(p.Extensions))
		}
		jp.Extensions[name] = raw
	}
	return jp, nil
}

func (enc *encoder) write(uri string, data []byte) error {
	if err := enc.settings.Writer(uri, data); err != nil {
		return fmt.Errorf("gltf: write %q: %w", uri, err)
	}
	return nil
}

func (enc *encoder) root() (*jsonRoot, error) {
	d := enc.doc
	r := &jsonRoot{Scene: reference(d.defaultScene)}

	used := slices.Clone(d.ExtensionsUsed)
	for _, name := range d.PresentExtensions() {
		if !slices.Contains(used, name) {
			used = append(used, name)
		}
	}
	r.ExtensionsUsed = used
	r.ExtensionsRequired = d.ExtensionsRequired

	var err error
	if r.jsonProperty, err = enc.properties(d.Properties); err != nil {
		return nil, err
	}
	r.Asset = &jsonAsset{
		Copyright:  d.Asset.Copyright,
		Generator:  d.Asset.Generator,
		Version:    d.Asset.Version,
		MinVersion: d.Asset.MinVersion,
	}
	if r.Asset.jsonProperty, err = enc.properties(d.Asset.Properties); err != nil {
		return nil, err
	}

	steps := []func(*jsonRoot) error{
		enc.buffers, enc.bufferViews, enc.accessors, enc.images, enc.samplers,
		enc.textures, enc.materials, enc.meshes, enc.nodes, enc.scenes,
		enc.skins, enc.cameras, enc.animations,
	}
	for _, step := range steps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (enc *encoder) buffers(r *jsonRoot) error {
	d := enc.doc
	for _, b := range d.buffers {
		jb := jsonBuffer{Name: b.Name, ByteLength: len(b.Content)}
		switch enc.mode {
		case BufferBinary:
			enc.bin = b.Content
		case BufferExternal:
			jb.URI = enc.settings.baseName() + ".bin"
			if len(d.buffers) > 1 {
				jb.URI = fmt.Sprintf("%s_%d.bin", enc.settings.baseName(), b.index)
			}
			if err := enc.write(jb.URI, b.Content); err != nil {
				return err
			}
		default:
			jb.URI = encoding.EncodeDataURI(encoding.MIMEOctetStream, b.Content)
		}
		var err error
		if jb.jsonProperty, err = enc.properties(b.Properties); err != nil {
			return err
		}
		r.Buffers = append(r.Buffers, jb)
	}
	return nil
}

func (enc *encoder) bufferViews(r *jsonRoot) error {
	for _, v := range enc.doc.bufferViews {
		jv := jsonBufferView{
			Name:       v.Name,
			Buffer:     v.buffer,
			ByteOffset: v.ByteOffset,
			ByteLength: v.ByteLength,
			ByteStride: v.ByteStride,
			Target:     int(v.Target),
		}
		var err error
		if jv.jsonProperty, err = enc.properties(v.Properties); err != nil {
			return err
		}
		r.BufferViews = append(r.BufferViews, jv)
	}
	return nil
}

func (enc *encoder) accessors(r *jsonRoot) error {
	for _, a := range enc.doc.accessors {
		ja := jsonAccessor{
			Name:          a.Name,
			BufferView:    reference(a.bufferView),
			ByteOffset:    a.ByteOffset,
			ComponentType: uint32(a.Encoding),
			Normalized:    a.Normalized,
			Count:         a.Count,
			Type:          a.Dimensions.String(),
			Min:           a.Min,
			Max:           a.Max,
		}
		var err error
		if ja.jsonProperty, err = enc.properties(a.Properties); err != nil {
			return err
		}
		if s := a.Sparse; s != nil {
			ja.Sparse = &jsonSparse{
				Count: s.Count,
				Indices: jsonSparseIndices{
					BufferView:    s.indicesView,
					ByteOffset:    s.IndicesByteOffset,
					ComponentType: uint32(s.IndicesEncoding),
				},
				Values: jsonSparseValues{BufferView: s.valuesView, ByteOffset: s.ValuesByteOffset},
			}
			if ja.Sparse.jsonProperty, err = enc.properties(s.Properties); err != nil {
				return err
			}
		}
		r.Accessors = append(r.Accessors, ja)
	}
	return nil
}

func (enc *encoder) images(r *jsonRoot) error {
	for _, img := range enc.doc.images {
		ji := jsonImage{Name: img.Name, MimeType: img.MimeType, BufferView: reference(img.bufferView)}
		if img.bufferView < 0 && img.content != nil {
			mime := img.ResolvedMimeType()
			if enc.mode == BufferExternal {
				ji.URI = fmt.Sprintf("%s_image%d%s", enc.settings.baseName(), img.index, encoding.ImageExtension(mime))
				if err := enc.write(ji.URI, img.content); err != nil {
					return err
				}
			} else {
				if mime != encoding.MIMEPNG && mime != encoding.MIMEJPEG {
					mime = encoding.MIMEOctetStream
				}
				ji.URI = encoding.EncodeDataURI(mime, img.content)
			}
		}
		var err error
		if ji.jsonProperty, err = enc.properties(img.Properties); err != nil {
			return err
		}
		r.Images = append(r.Images, ji)
	}
	return nil
}

func (enc *encoder) samplers(r *jsonRoot) error {
	for _, s := range enc.doc.samplers {
		js := jsonSampler{Name: s.Name, MagFilter: s.MagFilter, MinFilter: s.MinFilter}
		if s.WrapS != WrapRepeat {
			js.WrapS = &s.WrapS
		}
		if s.WrapT != WrapRepeat {
			js.WrapT = &s.WrapT
		}
		var err error
		if js.jsonProperty, err = enc.properties(s.Properties); err != nil {
			return err
		}
		r.Samplers = append(r.Samplers, js)
	}
	return nil
}

func (enc *encoder) textures(r *jsonRoot) error {
	for _, t := range enc.doc.textures {
		jt := jsonTexture{Name: t.Name, Sampler: reference(t.sampler), Source: reference(t.source)}
		var err error
		if jt.jsonProperty, err = enc.properties(t.Properties); err != nil {
			return err
		}
		r.Textures = append(r.Textures, jt)
	}
	return nil
}

func (enc *encoder) textureInfo(info *TextureInfo, withScale, withStrength bool) (*jsonTextureInfo, error) {
	if info == nil {
		return nil, nil
	}
	ji := &jsonTextureInfo{Index: info.Index, TexCoord: info.TexCoord}
	if withScale && info.Scale != 1 {
		ji.Scale = &info.Scale
	}
	if withStrength && info.Strength != 1 {
		ji.Strength = &info.Strength
	}
	var err error
	ji.jsonProperty, err = enc.properties(info.Properties)
	return ji, err
}

func (enc *encoder) materials(r *jsonRoot) error {
	for _, m := range enc.doc.materials {
		jm := jsonMaterial{Name: m.Name, DoubleSided: m.DoubleSided}
		if m.AlphaMode != AlphaOpaque {
			jm.AlphaMode = string(m.AlphaMode)
		}
		if m.AlphaCutoff != 0.5 {
			jm.AlphaCutoff = &m.AlphaCutoff
		}
		if m.EmissiveFactor != [3]float32{} {
			jm.EmissiveFactor = &m.EmissiveFactor
		}

		pbr := &jsonPBR{}
		if m.BaseColorFactor != [4]float32{1, 1, 1, 1} {
			pbr.BaseColorFactor = &m.BaseColorFactor
		}
		if m.MetallicFactor != 1 {
			pbr.MetallicFactor = &m.MetallicFactor
		}
		if m.RoughnessFactor != 1 {
			pbr.RoughnessFactor = &m.RoughnessFactor
		}
		var err error
		if pbr.BaseColorTexture, err = enc.textureInfo(m.BaseColorTexture, false, false); err != nil {
			return err
		}
		if pbr.MetallicRoughnessTexture, err = enc.textureInfo(m.MetallicRoughnessTexture, false, false); err != nil {
			return err
		}
		if pbr.jsonProperty, err = enc.properties(m.PBRProperties); err != nil {
			return err
		}
		if !pbr.isDefault() {
			jm.PBRMetallicRoughness = pbr
		}
		if jm.NormalTexture, err = enc.textureInfo(m.NormalTexture, true, false); err != nil {
			return err
		}
		if jm.OcclusionTexture, err = enc.textureInfo(m.OcclusionTexture, false, true); err != nil {
			return err
		}
		if jm.EmissiveTexture, err = enc.textureInfo(m.EmissiveTexture, false, false); err != nil {
			return err
		}
		if jm.jsonProperty, err = enc.properties(m.Properties); err != nil {
			return err
		}
		r.Materials = append(r.Materials, jm)
	}
	return nil
}

func (enc *encoder) meshes(r *jsonRoot) error {
	for _, m := range enc.doc.meshes {
		jm := jsonMesh{Name: m.Name, Weights: m.Weights, Primitives: []jsonPrimitive{}}
		var err error
		if jm.jsonProperty, err = enc.properties(m.Properties); err != nil {
			return err
		}
		for _, p := range m.Primitives {
			jp := jsonPrimitive{
				Attributes: p.attributes,
				Indices:    reference(p.indices),
				Material:   reference(p.material),
				Targets:    p.targets,
			}
			if p.Mode != Triangles {
				mode := int(p.Mode)
				jp.Mode = &mode
			}
			if jp.jsonProperty, err = enc.properties(p.Properties); err != nil {
				return err
			}
			jm.Primitives = append(jm.Primitives, jp)
		}
		r.Meshes = append(r.Meshes, jm)
	}
	return nil
}

func (enc *encoder) nodes(r *jsonRoot) error {
	for _, n := range enc.doc.nodes {
		jn := jsonNode{
			Name:     n.Name,
			Camera:   reference(n.camera),
			Children: n.children,
			Skin:     reference(n.skin),
			Mesh:     reference(n.mesh),
			Weights:  n.Weights,
		}
		if n.Matrix != nil {
			if *n.Matrix != math.Identity() {
				m := [16]float32(*n.Matrix)
				jn.Matrix = &m
			}
		} else {
			if n.Translation != (math.Vec3{}) {
				jn.Translation = &[3]float32{n.Translation.X, n.Translation.Y, n.Translation.Z}
			}
			if n.Rotation != math.QuatIdentity() {
				jn.Rotation = &[4]float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z, n.Rotation.W}
			}
			if n.Scale != math.One() {
				jn.Scale = &[3]float32{n.Scale.X, n.Scale.Y, n.Scale.Z}
			}
		}
		var err error
		if jn.jsonProperty, err = enc.properties(n.Properties); err != nil {
			return err
		}
		r.Nodes = append(r.Nodes, jn)
	}
	return nil
}

func (enc *encoder) scenes(r *jsonRoot) error {
	for _, s := range enc.doc.scenes {
		js := jsonScene{Name: s.Name, Nodes: s.nodes}
		var err error
		if js.jsonProperty, err = enc.properties(s.Properties); err != nil {
			return err
		}
		r.Scenes = append(r.Scenes, js)
	}
	return nil
}

func (enc *encoder) skins(r *jsonRoot) error {
	for _, s := range enc.doc.skins {
		js := jsonSkin{
			Name:                s.Name,
			InverseBindMatrices: reference(s.inverseBindMatrices),
			Skeleton:            reference(s.skeleton),
			Joints:              s.joints,
		}
		var err error
		if js.jsonProperty, err = enc.properties(s.Properties); err != nil {
			return err
		}
		r.Skins = append(r.Skins, js)
	}
	return nil
}

func (enc *encoder) cameras(r *jsonRoot) error {
	for _, c := range enc.doc.cameras {
		jc := jsonCamera{Name: c.Name, Type: string(c.Type)}
		var err error
		if p := c.Perspective; p != nil {
			jc.Perspective = &jsonPerspective{YFov: p.YFov, ZNear: p.ZNear}
			if p.AspectRatio != 0 {
				jc.Perspective.AspectRatio = &p.AspectRatio
			}
			if p.ZFar != 0 {
				jc.Perspective.ZFar = &p.ZFar
			}
			if jc.Perspective.jsonProperty, err = enc.properties(p.Properties); err != nil {
				return err
			}
		}
		if o := c.Orthographic; o != nil {
			jc.Orthographic = &jsonOrthographic{XMag: o.XMag, YMag: o.YMag, ZFar: o.ZFar, ZNear: o.ZNear}
			if jc.Orthographic.jsonProperty, err = enc.properties(o.Properties); err != nil {
				return err
			}
		}
		if jc.jsonProperty, err = enc.properties(c.Properties); err != nil {
			return err
		}
		r.Cameras = append(r.Cameras, jc)
	}
	return nil
}

func (enc *encoder) animations(r *jsonRoot) error {
	for _, a := range enc.doc.animations {
		ja := jsonAnimation{Name: a.Name, Channels: []jsonAnimChannel{}, Samplers: []jsonAnimSampler{}}
		var err error
		if ja.jsonProperty, err = enc.properties(a.Properties); err != nil {
			return err
		}
		for _, s := range a.Samplers {
			js := jsonAnimSampler{Input: s.input, Output: s.output}
			if s.Interpolation != InterpolationLinear {
				js.Interpolation = string(s.Interpolation)
			}
			if js.jsonProperty, err = enc.properties(s.Properties); err != nil {
				return err
			}
			ja.Samplers = append(ja.Samplers, js)
		}
		for _, c := range a.Channels {
			jc := jsonAnimChannel{Sampler: c.sampler, Target: jsonAnimTarget{Node: reference(c.node), Path: string(c.Path)}}
			if jc.jsonProperty, err = enc.properties(c.Properties); err != nil {
				return err
			}
			ja.Channels = append(ja.Channels, jc)
		}
		r.Animations = append(r.Animations, ja)
	}
	return nil
}

func (p *jsonPBR) isDefault() bool {
	return p.BaseColorFactor == nil && p.BaseColorTexture == nil &&
		p.MetallicFactor == nil && p.RoughnessFactor == nil &&
		p.MetallicRoughnessTexture == nil &&
		len(p.Extensions) == 0 && len(p.Extras) == 0
}
