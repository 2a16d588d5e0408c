package gltf

import (
	"fmt"
	"maps"
	stdmath "math"
	"slices"
	"strings"

	"github.com/Faultbox/midgard-gltf/pkg/math"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

func (v *validator) checkStructure() {
	v.checkBuffers()
	v.checkBufferViews()
	v.checkAccessors()
	v.checkImages()
	v.checkSamplers()
	v.checkTextures()
	v.checkMaterials()
	v.checkMeshes()
	v.checkNodes()
	v.checkScenes()
	v.checkSkins()
	v.checkCameras()
	v.checkAnimations()
	if d := v.doc; d.defaultScene != -1 {
		v.ref(CollectionDocument, -1, "scene", CollectionScenes, d.defaultScene, len(d.scenes), false)
	}
}

func (v *validator) checkBuffers() {
	for _, b := range v.doc.buffers {
		if len(b.Content) == 0 {
			v.errorf(ErrInvalidValue, CollectionBuffers, b.index, "byteLength", "buffer is empty")
		}
	}
}

func (v *validator) checkBufferViews() {
	d := v.doc
	for _, bv := range d.bufferViews {
		c, i := CollectionBufferViews, bv.index
		if bv.ByteOffset < 0 {
			v.errorf(ErrInvalidValue, c, i, "byteOffset", "negative offset %d", bv.ByteOffset)
		}
		if bv.ByteLength < 1 {
			v.errorf(ErrInvalidValue, c, i, "byteLength", "length %d < 1", bv.ByteLength)
		}
		if bv.ByteStride != 0 && (bv.ByteStride < 4 || bv.ByteStride > 252 || bv.ByteStride%4 != 0) {
			v.errorf(ErrInvalidValue, c, i, "byteStride", "stride %d must be a multiple of 4 in [4, 252]", bv.ByteStride)
		}
		if !bv.Target.IsValid() {
			v.errorf(ErrInvalidValue, c, i, "target", "unknown target %d", bv.Target)
		}
		if v.ref(c, i, "buffer", CollectionBuffers, bv.buffer, len(d.buffers), false) {
			size := len(d.buffers[bv.buffer].Content)
			if bv.ByteOffset >= 0 && bv.ByteLength >= 1 && !spanFits(bv.ByteOffset, 1, bv.ByteLength, bv.ByteLength, size) {
				v.errorf(ErrInvalidValue, c, i, "byteLength", "%d bytes at offset %d run past buffer %d of %d bytes", bv.ByteLength, bv.ByteOffset, bv.buffer, size)
			}
		}
	}
}

func (v *validator) checkAccessors() {
	d := v.doc
	for _, a := range d.accessors {
		c, i := CollectionAccessors, a.index
		if a.Count < 1 {
			v.errorf(ErrInvalidValue, c, i, "count", "count %d < 1", a.Count)
		}
		if !a.Encoding.IsValid() {
			v.errorf(ErrInvalidValue, c, i, "componentType", "unknown componentType %d", a.Encoding)
			continue
		}
		if !a.Dimensions.IsValid() {
			v.errorf(ErrInvalidValue, c, i, "type", "unknown type")
			continue
		}
		if int64(a.Count) > a.MaxCount() {
			v.errorf(ErrInvalidValue, c, i, "count", "count %d exceeds %d elements of %d bytes", a.Count, a.MaxCount(), a.ElementByteLength())
		}
		if a.Normalized && !a.Encoding.CanNormalize() {
			v.errorf(ErrInvalidValue, c, i, "normalized", "%s cannot be normalized", a.Encoding)
		}
		size := a.Encoding.ByteLength()
		if a.ByteOffset < 0 || a.ByteOffset%size != 0 {
			v.errorf(ErrInvalidValue, c, i, "byteOffset", "offset %d is not a multiple of %d", a.ByteOffset, size)
		}
		if a.bufferView == -1 && a.ByteOffset != 0 {
			v.errorf(ErrInvalidValue, c, i, "byteOffset", "byteOffset requires a bufferView")
		}
		if a.bufferView != -1 && v.ref(c, i, "bufferView", CollectionBufferViews, a.bufferView, len(d.bufferViews), true) {
			v.checkAccessorFit(a, d.bufferViews[a.bufferView])
		}
		v.checkAccessorBoundsShape(a)
		if a.Sparse != nil {
			v.checkSparse(a)
		}
	}
}

func (v *validator) checkAccessorFit(a *Accessor, bv *BufferView) {
	c, i := CollectionAccessors, a.index
	elem := a.ElementByteLength()
	size := a.Encoding.ByteLength()
	if (bv.ByteOffset+a.ByteOffset)%size != 0 {
		v.errorf(ErrInvalidValue, c, i, "byteOffset", "total offset %d is not a multiple of %d", bv.ByteOffset+a.ByteOffset, size)
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = elem
	} else if stride < elem {
		v.errorf(ErrInvalidValue, c, i, "bufferView", "bufferView %d stride %d < element size %d", bv.index, stride, elem)
		return
	}
	if a.Count >= 1 && a.ByteOffset >= 0 && !spanFits(a.ByteOffset, a.Count, stride, elem, bv.ByteLength) {
		v.errorf(ErrInvalidValue, c, i, "count", "%d elements of stride %d from offset %d do not fit bufferView %d of %d bytes",
			a.Count, stride, a.ByteOffset, bv.index, bv.ByteLength)
	}
}

// spanFits reports whether count elements of elem bytes, stride bytes
// apart, fit in length bytes starting at offset. offset must be >= 0,
// count >= 1 and stride >= elem > 0. The check never overflows.
func spanFits(offset, count, stride, elem, length int) bool {
	if offset > length || elem > length-offset {
		return false
	}
	return count-1 <= (length-offset-elem)/stride
}

func (v *validator) checkAccessorBoundsShape(a *Accessor) {
	c, i := CollectionAccessors, a.index
	n := a.Dimensions.Components()
	if (a.Min == nil) != (a.Max == nil) {
		v.errorf(ErrInvalidValue, c, i, "min", "min and max must be given together")
	}
	if a.Min != nil && len(a.Min) != n {
		v.errorf(ErrInvalidValue, c, i, "min", "has %d values, want %d", len(a.Min), n)
	}
	if a.Max != nil && len(a.Max) != n {
		v.errorf(ErrInvalidValue, c, i, "max", "has %d values, want %d", len(a.Max), n)
	}
	for _, f := range append(slices.Clone(a.Min), a.Max...) {
		if !finite64(f) {
			v.errorf(ErrInvalidValue, c, i, "min", "bounds must be finite")
			break
		}
	}
}

func (v *validator) checkSparse(a *Accessor) {
	d := v.doc
	s := a.Sparse
	c, i := CollectionAccessors, a.index
	if s.Count < 1 || s.Count > a.Count {
		v.errorf(ErrInvalidValue, c, i, "sparse.count", "count %d outside [1, %d]", s.Count, a.Count)
	}
	if !s.IndicesEncoding.IsUnsigned() {
		v.errorf(ErrInvalidValue, c, i, "sparse.indices.componentType", "indices must be unsigned, got %s", s.IndicesEncoding)
	} else if s.IndicesByteOffset < 0 || s.IndicesByteOffset%s.IndicesEncoding.ByteLength() != 0 {
		v.errorf(ErrInvalidValue, c, i, "sparse.indices.byteOffset", "offset %d misaligned", s.IndicesByteOffset)
	}
	if s.ValuesByteOffset < 0 {
		v.errorf(ErrInvalidValue, c, i, "sparse.values.byteOffset", "negative offset %d", s.ValuesByteOffset)
	}
	for _, ref := range []struct {
		path  string
		index int
	}{{"sparse.indices.bufferView", s.indicesView}, {"sparse.values.bufferView", s.valuesView}} {
		if v.ref(c, i, ref.path, CollectionBufferViews, ref.index, len(d.bufferViews), false) && d.bufferViews[ref.index].ByteStride != 0 {
			v.errorf(ErrInvalidValue, c, i, ref.path, "bufferView %d used by sparse data must not have byteStride", ref.index)
		}
	}
}

func (v *validator) checkImages() {
	d := v.doc
	for _, img := range d.images {
		c, i := CollectionImages, img.index
		switch {
		case img.bufferView != -1:
			v.ref(c, i, "bufferView", CollectionBufferViews, img.bufferView, len(d.bufferViews), false)
			if img.MimeType == "" {
				v.errorf(ErrInvalidValue, c, i, "mimeType", "required for images stored in a bufferView")
			}
		case img.content == nil:
			v.errorf(ErrInvalidValue, c, i, "uri", "image has no data")
		}
	}
}

func (v *validator) checkSamplers() {
	validFilter := func(f int, allowMipmap bool) bool {
		switch f {
		case 0, FilterNearest, FilterLinear:
			return true
		case FilterNearestMipmapNearest, FilterLinearMipmapNearest, FilterNearestMipmapLinear, FilterLinearMipmapLinear:
			return allowMipmap
		}
		return false
	}
	validWrap := func(w int) bool {
		return w == WrapRepeat || w == WrapClampToEdge || w == WrapMirroredRepeat
	}
	for _, s := range v.doc.samplers {
		c, i := CollectionSamplers, s.index
		if !validFilter(s.MagFilter, false) {
			v.errorf(ErrInvalidValue, c, i, "magFilter", "invalid filter %d", s.MagFilter)
		}
		if !validFilter(s.MinFilter, true) {
			v.errorf(ErrInvalidValue, c, i, "minFilter", "invalid filter %d", s.MinFilter)
		}
		if !validWrap(s.WrapS) {
			v.errorf(ErrInvalidValue, c, i, "wrapS", "invalid wrap mode %d", s.WrapS)
		}
		if !validWrap(s.WrapT) {
			v.errorf(ErrInvalidValue, c, i, "wrapT", "invalid wrap mode %d", s.WrapT)
		}
	}
}

func (v *validator) checkTextures() {
	d := v.doc
	for _, t := range d.textures {
		v.ref(CollectionTextures, t.index, "sampler", CollectionSamplers, t.sampler, len(d.samplers), true)
		v.ref(CollectionTextures, t.index, "source", CollectionImages, t.source, len(d.images), true)
	}
}

func (v *validator) checkMaterials() {
	d := v.doc
	for _, m := range d.materials {
		c, i := CollectionMaterials, m.index
		for name, info := range m.Channels() {
			v.ref(c, i, name+".index", CollectionTextures, info.Index, len(d.textures), false)
			if info.TexCoord < 0 {
				v.errorf(ErrInvalidValue, c, i, name+".texCoord", "negative texCoord %d", info.TexCoord)
			}
		}
		for k, f := range m.BaseColorFactor {
			if f < 0 || f > 1 {
				v.errorf(ErrInvalidValue, c, i, fmt.Sprintf("pbrMetallicRoughness.baseColorFactor[%d]", k), "%g outside [0, 1]", f)
			}
		}
		if m.MetallicFactor < 0 || m.MetallicFactor > 1 {
			v.errorf(ErrInvalidValue, c, i, "pbrMetallicRoughness.metallicFactor", "%g outside [0, 1]", m.MetallicFactor)
		}
		if m.RoughnessFactor < 0 || m.RoughnessFactor > 1 {
			v.errorf(ErrInvalidValue, c, i, "pbrMetallicRoughness.roughnessFactor", "%g outside [0, 1]", m.RoughnessFactor)
		}
		for k, f := range m.EmissiveFactor {
			if f < 0 || f > 1 {
				v.errorf(ErrInvalidValue, c, i, fmt.Sprintf("emissiveFactor[%d]", k), "%g outside [0, 1]", f)
			}
		}
		switch m.AlphaMode {
		case AlphaOpaque, AlphaMask, AlphaBlend:
		default:
			v.errorf(ErrInvalidValue, c, i, "alphaMode", "unknown alpha mode %q", m.AlphaMode)
		}
		if m.AlphaCutoff < 0 {
			v.errorf(ErrInvalidValue, c, i, "alphaCutoff", "negative cutoff %g", m.AlphaCutoff)
		}
	}
}

func (v *validator) checkMeshes() {
	d := v.doc
	quantized := slices.Contains(d.ExtensionsUsed, ExtMeshQuantization)
	for _, m := range d.meshes {
		c, i := CollectionMeshes, m.index
		if len(m.Primitives) == 0 {
			v.errorf(ErrInvalidValue, c, i, "primitives", "mesh has no primitives")
		}
		for k, p := range m.Primitives {
			path := fmt.Sprintf("primitives[%d]", k)
			if len(p.attributes) == 0 {
				v.errorf(ErrInvalidValue, c, i, path+".attributes", "primitive has no attributes")
			}
			for _, name := range p.AttributeNames() {
				ai := p.attributes[name]
				if !v.ref(c, i, path+".attributes."+name, CollectionAccessors, ai, len(d.accessors), false) {
					continue
				}
				if name == "POSITION" {
					a := d.accessors[ai]
					if a.Dimensions != memory.Vec3 || (a.Encoding != memory.Float && !quantized) {
						v.errorf(ErrInvalidValue, c, i, path+".attributes.POSITION", "accessor %d is %s %s, want VEC3 FLOAT", ai, a.Dimensions, a.Encoding)
					}
				}
			}
			if v.ref(c, i, path+".indices", CollectionAccessors, p.indices, len(d.accessors), true) && p.indices >= 0 {
				a := d.accessors[p.indices]
				if a.Dimensions != memory.Scalar || !a.Encoding.IsUnsigned() {
					v.errorf(ErrInvalidValue, c, i, path+".indices", "accessor %d is %s %s, want unsigned SCALAR", p.indices, a.Dimensions, a.Encoding)
				}
			}
			v.ref(c, i, path+".material", CollectionMaterials, p.material, len(d.materials), true)
			if p.Mode < Points || p.Mode > TriangleFan {
				v.errorf(ErrInvalidValue, c, i, path+".mode", "unknown mode %d", p.Mode)
			}
			for t, target := range p.targets {
				for _, name := range slices.Sorted(maps.Keys(target)) {
					v.ref(c, i, fmt.Sprintf("%s.targets[%d].%s", path, t, name), CollectionAccessors, target[name], len(d.accessors), false)
				}
			}
			if m.Weights != nil && len(p.targets) != len(m.Weights) {
				v.errorf(ErrInvalidValue, c, i, "weights", "%d weights for %d morph targets", len(m.Weights), len(p.targets))
			}
		}
	}
}

// checkNodes runs the range, duplicate and self reference checks on every
// node's children and the per-node property checks, then the cycle and
// shared child checks over the whole hierarchy.
func (v *validator) checkNodes() {
	d := v.doc
	n := len(d.nodes)
	for _, node := range d.nodes {
		c, i := CollectionNodes, node.index
		seen := make(map[int]bool, len(node.children))
		for _, child := range node.children {
			switch {
			case child < 0 || child >= n:
				v.errorf(ErrInvalidReference, c, i, "children", "nodes index %d out of range [0:%d]", child, n)
			case seen[child]:
				v.errorf(ErrDuplicateReference, c, i, "children", "child %d listed more than once", child)
			case child == i:
				v.errorf(ErrSelfReference, c, i, "children", "node lists itself as a child")
			}
			seen[child] = true
		}

		v.ref(c, i, "mesh", CollectionMeshes, node.mesh, len(d.meshes), true)
		v.ref(c, i, "skin", CollectionSkins, node.skin, len(d.skins), true)
		v.ref(c, i, "camera", CollectionCameras, node.camera, len(d.cameras), true)
		if node.skin >= 0 && node.mesh < 0 {
			v.errorf(ErrInvalidValue, c, i, "skin", "skin requires a mesh")
		}
		if node.Weights != nil && node.mesh < 0 {
			v.errorf(ErrInvalidValue, c, i, "weights", "weights require a mesh")
		}
		v.checkNodeTransform(node)
	}

	v.checkNodeCycles()

	// A child listed by more than one parent.
	parents := make(map[int][]int)
	for _, node := range d.nodes {
		for _, child := range slices.Compact(slices.Sorted(slices.Values(node.children))) {
			if child >= 0 && child < n && child != node.index {
				parents[child] = append(parents[child], node.index)
			}
		}
	}
	for child := 0; child < n; child++ {
		if p := parents[child]; len(p) > 1 {
			v.errorf(ErrMultipleParents, CollectionNodes, child, "", "listed as a child of nodes %s", joinInts(p))
		}
	}
}

// checkNodeCycles finds the groups of nodes that reach one another through
// child links (strongly connected components, Tarjan) and reports each group
// once, at its lowest node index. Shared children are followed like any
// other link. Self references are reported by checkNodes and ignored here.
func (v *validator) checkNodeCycles() {
	d := v.doc
	n := len(d.nodes)
	order := make([]int, n) // visit order + 1, 0 while unvisited
	low := make([]int, n)
	onStack := make([]bool, n)
	var stack []int
	next := 1

	var visit func(u int)
	visit = func(u int) {
		order[u], low[u] = next, next
		next++
		stack = append(stack, u)
		onStack[u] = true
		for _, w := range d.nodes[u].children {
			switch {
			case w < 0 || w >= n || w == u:
			case order[w] == 0:
				visit(w)
				low[u] = min(low[u], low[w])
			case onStack[w]:
				low[u] = min(low[u], order[w])
			}
		}
		if low[u] != order[u] {
			return
		}
		lowest, size := u, 0
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			lowest = min(lowest, w)
			size++
			if w == u {
				break
			}
		}
		if size > 1 {
			v.errorf(ErrCircularReference, CollectionNodes, lowest, "children", "node is its own ancestor through %d nodes", size)
		}
	}
	for u := range n {
		if order[u] == 0 {
			visit(u)
		}
	}
}

func (v *validator) checkNodeTransform(node *Node) {
	c, i := CollectionNodes, node.index
	if node.Matrix != nil {
		if node.Translation != (math.Vec3{}) || node.Rotation != math.QuatIdentity() || node.Scale != math.One() {
			v.errorf(ErrInvalidValue, c, i, "matrix", "matrix and translation/rotation/scale are mutually exclusive")
		}
		if !node.Matrix.IsFinite() {
			v.errorf(ErrInvalidValue, c, i, "matrix", "matrix has non-finite values")
		} else if !node.Matrix.IsAffine() {
			v.errorf(ErrInvalidValue, c, i, "matrix", "matrix is not affine")
		}
		return
	}
	if !node.Translation.IsFinite() {
		v.errorf(ErrInvalidValue, c, i, "translation", "non-finite translation")
	}
	if !node.Scale.IsFinite() {
		v.errorf(ErrInvalidValue, c, i, "scale", "non-finite scale")
	}
	switch {
	case !node.Rotation.IsFinite():
		v.errorf(ErrInvalidValue, c, i, "rotation", "non-finite rotation")
	case !node.Rotation.IsNormalized(5e-4):
		v.errorf(ErrInvalidValue, c, i, "rotation", "rotation is not a unit quaternion (length %g)", node.Rotation.Length())
	}
}

func (v *validator) checkScenes() {
	d := v.doc
	for _, s := range d.scenes {
		c, i := CollectionScenes, s.index
		seen := make(map[int]bool, len(s.nodes))
		for _, root := range s.nodes {
			switch {
			case root < 0 || root >= len(d.nodes):
				v.errorf(ErrInvalidReference, c, i, "nodes", "nodes index %d out of range [0:%d]", root, len(d.nodes))
			case seen[root]:
				v.errorf(ErrDuplicateReference, c, i, "nodes", "root %d listed more than once", root)
			case d.hierarchy.parentOf(d, root) >= 0:
				v.errorf(ErrInvalidReference, c, i, "nodes", "node %d is a child of node %d and cannot be a root", root, d.hierarchy.parentOf(d, root))
			}
			seen[root] = true
		}
	}
}

func (v *validator) checkSkins() {
	d := v.doc
	for _, s := range d.skins {
		c, i := CollectionSkins, s.index
		if len(s.joints) == 0 {
			v.errorf(ErrInvalidValue, c, i, "joints", "skin has no joints")
		}
		seen := make(map[int]bool, len(s.joints))
		for _, j := range s.joints {
			switch {
			case j < 0 || j >= len(d.nodes):
				v.errorf(ErrInvalidReference, c, i, "joints", "nodes index %d out of range [0:%d]", j, len(d.nodes))
			case seen[j]:
				v.errorf(ErrDuplicateReference, c, i, "joints", "joint %d listed more than once", j)
			}
			seen[j] = true
		}
		v.ref(c, i, "skeleton", CollectionNodes, s.skeleton, len(d.nodes), true)
		if s.inverseBindMatrices != -1 && v.ref(c, i, "inverseBindMatrices", CollectionAccessors, s.inverseBindMatrices, len(d.accessors), true) {
			a := d.accessors[s.inverseBindMatrices]
			if a.Dimensions != memory.Mat4 || a.Encoding != memory.Float {
				v.errorf(ErrInvalidValue, c, i, "inverseBindMatrices", "accessor %d is %s %s, want MAT4 FLOAT", a.index, a.Dimensions, a.Encoding)
			}
			if a.Count < len(s.joints) {
				v.errorf(ErrInvalidValue, c, i, "inverseBindMatrices", "%d matrices for %d joints", a.Count, len(s.joints))
			}
		}
	}
}

func (v *validator) checkCameras() {
	for _, cam := range v.doc.cameras {
		c, i := CollectionCameras, cam.index
		switch cam.Type {
		case CameraPerspective:
			p := cam.Perspective
			if p == nil {
				v.errorf(ErrInvalidValue, c, i, "perspective", "perspective camera without parameters")
				continue
			}
			if p.YFov <= 0 {
				v.errorf(ErrInvalidValue, c, i, "perspective.yfov", "yfov %g must be positive", p.YFov)
			}
			if p.ZNear <= 0 {
				v.errorf(ErrInvalidValue, c, i, "perspective.znear", "znear %g must be positive", p.ZNear)
			}
			if p.ZFar != 0 && p.ZFar <= p.ZNear {
				v.errorf(ErrInvalidValue, c, i, "perspective.zfar", "zfar %g must exceed znear %g", p.ZFar, p.ZNear)
			}
			if p.AspectRatio < 0 {
				v.errorf(ErrInvalidValue, c, i, "perspective.aspectRatio", "aspect ratio %g must be positive", p.AspectRatio)
			}
		case CameraOrthographic:
			o := cam.Orthographic
			if o == nil {
				v.errorf(ErrInvalidValue, c, i, "orthographic", "orthographic camera without parameters")
				continue
			}
			if o.XMag == 0 || o.YMag == 0 {
				v.errorf(ErrInvalidValue, c, i, "orthographic", "xmag and ymag must be non-zero")
			}
			if o.ZNear < 0 || o.ZFar <= o.ZNear {
				v.errorf(ErrInvalidValue, c, i, "orthographic.zfar", "need 0 <= znear < zfar, got %g and %g", o.ZNear, o.ZFar)
			}
		default:
			v.errorf(ErrInvalidValue, c, i, "type", "unknown camera type %q", cam.Type)
		}
	}
}

func (v *validator) checkAnimations() {
	d := v.doc
	for _, anim := range d.animations {
		c, i := CollectionAnimations, anim.index
		if len(anim.Channels) == 0 {
			v.errorf(ErrInvalidValue, c, i, "channels", "animation has no channels")
		}
		if len(anim.Samplers) == 0 {
			v.errorf(ErrInvalidValue, c, i, "samplers", "animation has no samplers")
		}
		for k, s := range anim.Samplers {
			path := fmt.Sprintf("samplers[%d]", k)
			if v.ref(c, i, path+".input", CollectionAccessors, s.input, len(d.accessors), false) {
				in := d.accessors[s.input]
				if in.Dimensions != memory.Scalar || in.Encoding != memory.Float {
					v.errorf(ErrInvalidValue, c, i, path+".input", "accessor %d is %s %s, want SCALAR FLOAT", in.index, in.Dimensions, in.Encoding)
				}
			}
			v.ref(c, i, path+".output", CollectionAccessors, s.output, len(d.accessors), false)
			switch s.Interpolation {
			case InterpolationLinear, InterpolationStep, InterpolationCubicSpline:
			default:
				v.errorf(ErrInvalidValue, c, i, path+".interpolation", "unknown interpolation %q", s.Interpolation)
			}
		}
		targets := map[string]bool{}
		for k, ch := range anim.Channels {
			path := fmt.Sprintf("channels[%d]", k)
			v.ref(c, i, path+".sampler", CollectionAnimations, ch.sampler, len(anim.Samplers), false)
			v.ref(c, i, path+".target.node", CollectionNodes, ch.node, len(d.nodes), true)
			switch ch.Path {
			case PathTranslation, PathRotation, PathScale, PathWeights:
			default:
				v.errorf(ErrInvalidValue, c, i, path+".target.path", "unknown path %q", ch.Path)
			}
			if ch.node >= 0 {
				key := fmt.Sprintf("%d/%s", ch.node, ch.Path)
				if targets[key] {
					v.errorf(ErrDuplicateReference, c, i, path+".target", "node %d %s is already animated", ch.node, ch.Path)
				}
				targets[key] = true
			}
		}
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for k, x := range values {
		parts[k] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

func finite64(f float64) bool {
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}
