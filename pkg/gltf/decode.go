package gltf

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gltf/pkg/encoding"
	"github.com/Faultbox/midgard-gltf/pkg/glb"
	"github.com/Faultbox/midgard-gltf/pkg/math"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

// Decode reads a .gltf or .glb document, telling them apart by the GLB
// magic. settings may be nil.
func Decode(data []byte, settings *ReadSettings) (*Document, error) {
	if glb.IsBinary(data) {
		return DecodeBinary(data, settings)
	}
	return DecodeJSON(data, settings)
}

// DecodeJSON reads a .gltf text document.
func DecodeJSON(data []byte, settings *ReadSettings) (*Document, error) {
	return decode(data, nil, false, settings)
}

// DecodeBinary reads a .glb container.
func DecodeBinary(data []byte, settings *ReadSettings) (*Document, error) {
	c, err := glb.Decode(data)
	if err != nil {
		return nil, err
	}
	return decode(c.JSON, c.BIN, true, settings)
}

func decode(text, bin []byte, binary bool, settings *ReadSettings) (*Document, error) {
	log := settings.logger()
	text, err := encoding.DecodeText(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	var root jsonRoot
	if err := json.Unmarshal(text, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	dec := &decoder{
		root:     &root,
		bin:      bin,
		binary:   binary,
		settings: settings,
		registry: settings.registry(),
		log:      log,
	}
	d, err := dec.document()
	if err != nil {
		return nil, err
	}
	log.Debug("decoded glTF document",
		zap.Bool("binary", binary),
		zap.Int("buffers", len(d.buffers)),
		zap.Int("accessors", len(d.accessors)),
		zap.Int("meshes", len(d.meshes)),
		zap.Int("nodes", len(d.nodes)))

	mode := ValidateStructure
	if settings != nil {
		mode = settings.Validation
	}
	if mode == ValidateNone {
		return d, nil
	}
	report := d.Validate(dec.registry, mode)
	for _, w := range report.Warnings() {
		log.Warn("glTF validation warning", zap.String("issue", w.Error()))
	}
	if report.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, report.Err())
	}
	log.Debug("validated glTF document", zap.Stringer("stage", report.Stage))
	return d, nil
}

type decoder struct {
	root     *jsonRoot
	bin      []byte
	binary   bool
	settings *ReadSettings
	registry *Registry
	log      *zap.Logger
	doc      *Document
}

func (dec *decoder) resolve(uri string) ([]byte, error) {
	if dec.settings == nil || dec.settings.Resolver == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingResolver, uri)
	}
	data, err := dec.settings.Resolver(uri)
	if err != nil {
		return nil, fmt.Errorf("gltf: resolve %q: %w", uri, err)
	}
	return data, nil
}

func (dec *decoder) properties(c Collection, jp jsonProperty) (Properties, error) {
	p := Properties{Extras: cloneBytes(jp.Extras)}
	for name, raw := range jp.Extensions {
		f := dec.registry.Factory(name, c)
		if f == nil {
			p.SetExtension(name, json.RawMessage(cloneBytes(raw)))
			continue
		}
		v := f()
		if err := json.Unmarshal(raw, v); err != nil {
			return Properties{}, fmt.Errorf("%w: %s extension on %s: %v", ErrInvalidJSON, name, c, err)
		}
		p.SetExtension(name, v)
	}
	return p, nil
}

func (dec *decoder) document() (*Document, error) {
	r := dec.root
	d := &Document{defaultScene: optional(r.Scene)}
	dec.doc = d

	if r.Asset == nil {
		return nil, ErrMissingAsset
	}
	var err error
	if d.Properties, err = dec.properties(CollectionDocument, r.jsonProperty); err != nil {
		return nil, err
	}
	d.Asset = Asset{
		Version:    r.Asset.Version,
		MinVersion: r.Asset.MinVersion,
		Generator:  r.Asset.Generator,
		Copyright:  r.Asset.Copyright,
	}
	if d.Asset.Properties, err = dec.properties(CollectionAsset, r.Asset.jsonProperty); err != nil {
		return nil, err
	}
	d.ExtensionsUsed = r.ExtensionsUsed
	d.ExtensionsRequired = r.ExtensionsRequired
	for _, name := range r.ExtensionsUsed {
		if !dec.registry.IsSupported(name) {
			dec.log.Warn("keeping unsupported extension as raw JSON", zap.String("extension", name))
		}
	}

	steps := []func() error{
		dec.buffers, dec.bufferViews, dec.accessors, dec.images, dec.samplers,
		dec.textures, dec.materials, dec.meshes, dec.nodes, dec.scenes,
		dec.skins, dec.cameras, dec.animations,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (dec *decoder) buffers() error {
	d := dec.doc
	for k, jb := range dec.root.Buffers {
		var content []byte
		switch {
		case jb.URI == "" && dec.binary && k == 0:
			content = dec.bin
		case jb.URI == "":
			return fmt.Errorf("%w: buffer %d has no uri", ErrInvalidJSON, k)
		case encoding.IsDataURI(jb.URI):
			_, data, err := encoding.DecodeDataURI(jb.URI, encoding.BufferMIMETypes...)
			if err != nil {
				return fmt.Errorf("gltf: buffer %d: %w", k, err)
			}
			content = data
		default:
			data, err := dec.resolve(jb.URI)
			if err != nil {
				return err
			}
			content = data
		}
		if jb.ByteLength < 0 || len(content) < jb.ByteLength {
			return fmt.Errorf("%w: buffer %d declares %d bytes, found %d", ErrDataOutOfRange, k, jb.ByteLength, len(content))
		}
		b := d.addBuffer(content[:jb.ByteLength:jb.ByteLength])
		b.Name = jb.Name
		var err error
		if b.Properties, err = dec.properties(CollectionBuffers, jb.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) bufferViews() error {
	d := dec.doc
	for _, jv := range dec.root.BufferViews {
		v := &BufferView{
			slot:       slot{d, len(d.bufferViews)},
			Name:       jv.Name,
			buffer:     jv.Buffer,
			ByteOffset: jv.ByteOffset,
			ByteLength: jv.ByteLength,
			ByteStride: jv.ByteStride,
			Target:     BufferTarget(jv.Target),
		}
		var err error
		if v.Properties, err = dec.properties(CollectionBufferViews, jv.jsonProperty); err != nil {
			return err
		}
		d.bufferViews = append(d.bufferViews, v)
	}
	return nil
}

func (dec *decoder) accessors() error {
	d := dec.doc
	for _, ja := range dec.root.Accessors {
		// An unknown type is left invalid for validation to report.
		dims, _ := memory.ParseDimensions(ja.Type)
		a := d.CreateAccessor(ja.Name)
		a.bufferView = optional(ja.BufferView)
		a.ByteOffset = ja.ByteOffset
		a.Count = ja.Count
		a.Encoding = memory.Encoding(ja.ComponentType)
		a.Normalized = ja.Normalized
		a.Dimensions = dims
		a.Min, a.Max = ja.Min, ja.Max
		var err error
		if a.Properties, err = dec.properties(CollectionAccessors, ja.jsonProperty); err != nil {
			return err
		}
		if js := ja.Sparse; js != nil {
			a.Sparse = &AccessorSparse{
				Count:             js.Count,
				indicesView:       js.Indices.BufferView,
				IndicesByteOffset: js.Indices.ByteOffset,
				IndicesEncoding:   memory.Encoding(js.Indices.ComponentType),
				valuesView:        js.Values.BufferView,
				ValuesByteOffset:  js.Values.ByteOffset,
			}
			if a.Sparse.Properties, err = dec.properties(CollectionAccessors, js.jsonProperty); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dec *decoder) images() error {
	d := dec.doc
	for k, ji := range dec.root.Images {
		img := d.CreateImage(ji.Name)
		img.MimeType = ji.MimeType
		img.bufferView = optional(ji.BufferView)
		switch {
		case ji.URI == "":
		case encoding.IsDataURI(ji.URI):
			mime, data, err := encoding.DecodeDataURI(ji.URI, encoding.ImageMIMETypes...)
			if err != nil {
				return fmt.Errorf("gltf: image %d: %w", k, err)
			}
			img.content = data
			if img.MimeType == "" && encoding.IsImageMIME(mime) {
				img.MimeType = mime
			}
		default:
			data, err := dec.resolve(ji.URI)
			if err != nil {
				return err
			}
			img.content = data
		}
		var err error
		if img.Properties, err = dec.properties(CollectionImages, ji.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) samplers() error {
	d := dec.doc
	for _, js := range dec.root.Samplers {
		s := d.CreateSampler(js.Name)
		s.MagFilter, s.MinFilter = js.MagFilter, js.MinFilter
		if js.WrapS != nil {
			s.WrapS = *js.WrapS
		}
		if js.WrapT != nil {
			s.WrapT = *js.WrapT
		}
		var err error
		if s.Properties, err = dec.properties(CollectionSamplers, js.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) textures() error {
	d := dec.doc
	for _, jt := range dec.root.Textures {
		t := d.CreateTexture(jt.Name)
		t.sampler, t.source = optional(jt.Sampler), optional(jt.Source)
		var err error
		if t.Properties, err = dec.properties(CollectionTextures, jt.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) textureInfo(ji *jsonTextureInfo) (*TextureInfo, error) {
	if ji == nil {
		return nil, nil
	}
	info := &TextureInfo{Index: ji.Index, TexCoord: ji.TexCoord, Scale: 1, Strength: 1}
	if ji.Scale != nil {
		info.Scale = *ji.Scale
	}
	if ji.Strength != nil {
		info.Strength = *ji.Strength
	}
	var err error
	info.Properties, err = dec.properties(CollectionMaterials, ji.jsonProperty)
	return info, err
}

func (dec *decoder) materials() error {
	d := dec.doc
	for _, jm := range dec.root.Materials {
		m := d.CreateMaterial(jm.Name)
		m.DoubleSided = jm.DoubleSided
		if jm.AlphaMode != "" {
			m.AlphaMode = AlphaMode(jm.AlphaMode)
		}
		if jm.AlphaCutoff != nil {
			m.AlphaCutoff = *jm.AlphaCutoff
		}
		if jm.EmissiveFactor != nil {
			m.EmissiveFactor = *jm.EmissiveFactor
		}
		var err error
		if pbr := jm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				m.BaseColorFactor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				m.MetallicFactor = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				m.RoughnessFactor = *pbr.RoughnessFactor
			}
			if m.BaseColorTexture, err = dec.textureInfo(pbr.BaseColorTexture); err != nil {
				return err
			}
			if m.MetallicRoughnessTexture, err = dec.textureInfo(pbr.MetallicRoughnessTexture); err != nil {
				return err
			}
			if m.PBRProperties, err = dec.properties(CollectionMaterials, pbr.jsonProperty); err != nil {
				return err
			}
		}
		if m.NormalTexture, err = dec.textureInfo(jm.NormalTexture); err != nil {
			return err
		}
		if m.OcclusionTexture, err = dec.textureInfo(jm.OcclusionTexture); err != nil {
			return err
		}
		if m.EmissiveTexture, err = dec.textureInfo(jm.EmissiveTexture); err != nil {
			return err
		}
		if m.Properties, err = dec.properties(CollectionMaterials, jm.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) meshes() error {
	d := dec.doc
	for _, jm := range dec.root.Meshes {
		m := d.CreateMesh(jm.Name)
		m.Weights = jm.Weights
		var err error
		if m.Properties, err = dec.properties(CollectionMeshes, jm.jsonProperty); err != nil {
			return err
		}
		for _, jp := range jm.Primitives {
			p := m.CreatePrimitive()
			if jp.Attributes != nil {
				p.attributes = jp.Attributes
			}
			p.indices = optional(jp.Indices)
			p.material = optional(jp.Material)
			if jp.Mode != nil {
				p.Mode = PrimitiveMode(*jp.Mode)
			}
			p.targets = jp.Targets
			if p.Properties, err = dec.properties(CollectionMeshes, jp.jsonProperty); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dec *decoder) nodes() error {
	d := dec.doc
	for _, jn := range dec.root.Nodes {
		n := d.CreateNode(jn.Name)
		n.camera, n.mesh, n.skin = optional(jn.Camera), optional(jn.Mesh), optional(jn.Skin)
		n.children = jn.Children
		n.Weights = jn.Weights
		if jn.Matrix != nil {
			m := math.Mat4(*jn.Matrix)
			n.Matrix = &m
		}
		if t := jn.Translation; t != nil {
			n.Translation = math.Vec3{X: t[0], Y: t[1], Z: t[2]}
		}
		if r := jn.Rotation; r != nil {
			n.Rotation = math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}
		}
		if s := jn.Scale; s != nil {
			n.Scale = math.Vec3{X: s[0], Y: s[1], Z: s[2]}
		}
		var err error
		if n.Properties, err = dec.properties(CollectionNodes, jn.jsonProperty); err != nil {
			return err
		}
	}
	d.hierarchy.invalidate()
	return nil
}

func (dec *decoder) scenes() error {
	d := dec.doc
	for _, js := range dec.root.Scenes {
		s := d.CreateScene(js.Name)
		s.nodes = js.Nodes
		var err error
		if s.Properties, err = dec.properties(CollectionScenes, js.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) skins() error {
	d := dec.doc
	for _, js := range dec.root.Skins {
		s := d.CreateSkin(js.Name)
		s.inverseBindMatrices = optional(js.InverseBindMatrices)
		s.skeleton = optional(js.Skeleton)
		s.joints = js.Joints
		var err error
		if s.Properties, err = dec.properties(CollectionSkins, js.jsonProperty); err != nil {
			return err
		}
	}
	return nil
}

func (dec *decoder) cameras() error {
	d := dec.doc
	for _, jc := range dec.root.Cameras {
		c := &Camera{slot: slot{d, len(d.cameras)}, Name: jc.Name, Type: CameraType(jc.Type)}
		var err error
		if p := jc.Perspective; p != nil {
			c.Perspective = &Perspective{YFov: p.YFov, ZNear: p.ZNear}
			if p.AspectRatio != nil {
				c.Perspective.AspectRatio = *p.AspectRatio
			}
			if p.ZFar != nil {
				c.Perspective.ZFar = *p.ZFar
			}
			if c.Perspective.Properties, err = dec.properties(CollectionCameras, p.jsonProperty); err != nil {
				return err
			}
		}
		if o := jc.Orthographic; o != nil {
			c.Orthographic = &Orthographic{XMag: o.XMag, YMag: o.YMag, ZFar: o.ZFar, ZNear: o.ZNear}
			if c.Orthographic.Properties, err = dec.properties(CollectionCameras, o.jsonProperty); err != nil {
				return err
			}
		}
		if c.Properties, err = dec.properties(CollectionCameras, jc.jsonProperty); err != nil {
			return err
		}
		d.cameras = append(d.cameras, c)
	}
	return nil
}

func (dec *decoder) animations() error {
	d := dec.doc
	for _, ja := range dec.root.Animations {
		a := d.CreateAnimation(ja.Name)
		var err error
		if a.Properties, err = dec.properties(CollectionAnimations, ja.jsonProperty); err != nil {
			return err
		}
		for _, js := range ja.Samplers {
			s := &AnimationSampler{anim: a, input: js.Input, output: js.Output, Interpolation: InterpolationLinear}
			if js.Interpolation != "" {
				s.Interpolation = Interpolation(js.Interpolation)
			}
			if s.Properties, err = dec.properties(CollectionAnimations, js.jsonProperty); err != nil {
				return err
			}
			a.Samplers = append(a.Samplers, s)
		}
		for _, jc := range ja.Channels {
			c := &AnimationChannel{anim: a, sampler: jc.Sampler, node: optional(jc.Target.Node), Path: TargetPath(jc.Target.Path)}
			if c.Properties, err = dec.properties(CollectionAnimations, jc.jsonProperty); err != nil {
				return err
			}
			a.Channels = append(a.Channels, c)
		}
	}
	return nil
}
