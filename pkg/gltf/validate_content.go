package gltf

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/midgard-gltf/pkg/encoding"
	"github.com/Faultbox/midgard-gltf/pkg/memory"
)

// checkContent reads buffer data. It runs only on structurally valid
// documents, so every reference resolves.
func (v *validator) checkContent() {
	d := v.doc
	for _, a := range d.accessors {
		v.checkAccessorContent(a)
	}
	for _, m := range d.meshes {
		for k, p := range m.Primitives {
			v.checkPrimitiveContent(m, k, p)
		}
	}
	for _, anim := range d.animations {
		for k, s := range anim.Samplers {
			v.checkSamplerContent(anim, k, s)
		}
	}
	for _, img := range d.images {
		data, err := img.Content()
		if err != nil {
			v.errorf(ErrInvalidValue, CollectionImages, img.index, "", "%v", err)
			continue
		}
		if img.MimeType != "" {
			if sniffed := imageMIME(data); sniffed != img.MimeType && sniffed != "" {
				v.warnf(ErrInvalidValue, CollectionImages, img.index, "mimeType", "declared %s but content looks like %s", img.MimeType, sniffed)
			}
		}
	}
}

func (v *validator) checkAccessorContent(a *Accessor) {
	c, i := CollectionAccessors, a.index
	if a.Sparse != nil {
		_, indices, err := a.sparseParts(false)
		if err != nil {
			v.errorf(kindOf(err), c, i, "sparse", "%v", err)
			return
		}
		for k := 1; k < indices.Len(); k++ {
			if indices.At(k) <= indices.At(k-1) {
				v.errorf(ErrInvalidValue, c, i, "sparse.indices", "indices must strictly increase, %d follows %d", indices.At(k), indices.At(k-1))
				break
			}
		}
	}
	r, err := a.Components()
	if err != nil {
		v.errorf(kindOf(err), c, i, "", "%v", err)
		return
	}
	if a.Min == nil || a.Max == nil {
		return
	}
	lo, hi := memory.Bounds(r)
	for k := range lo {
		if k >= len(a.Min) || k >= len(a.Max) {
			break
		}
		if !boundEqual(a.Min[k], lo[k], a.Encoding) {
			v.errorf(ErrBoundsMismatch, c, i, fmt.Sprintf("min[%d]", k), "declared %g, data has %g", a.Min[k], lo[k])
		}
		if !boundEqual(a.Max[k], hi[k], a.Encoding) {
			v.errorf(ErrBoundsMismatch, c, i, fmt.Sprintf("max[%d]", k), "declared %g, data has %g", a.Max[k], hi[k])
		}
	}
}

// boundEqual compares a declared bound with a computed one at the precision
// of the component type.
func boundEqual(declared, computed float64, enc memory.Encoding) bool {
	if stdmath.IsNaN(computed) {
		return true
	}
	if enc == memory.Float {
		return float32(declared) == float32(computed)
	}
	return declared == computed
}

func (v *validator) checkPrimitiveContent(m *Mesh, k int, p *MeshPrimitive) {
	d := v.doc
	c, i := CollectionMeshes, m.index
	path := fmt.Sprintf("primitives[%d]", k)

	vertexCount := -1
	for _, name := range p.AttributeNames() {
		a := d.accessors[p.attributes[name]]
		if vertexCount >= 0 && a.Count != vertexCount {
			v.errorf(ErrInvalidValue, c, i, path+".attributes."+name, "accessor %d has %d elements, other attributes have %d", a.index, a.Count, vertexCount)
		}
		if vertexCount < 0 {
			vertexCount = a.Count
		}
	}
	if p.indices < 0 || vertexCount < 0 {
		return
	}
	indices, err := d.accessors[p.indices].AsIndicesArray()
	if err != nil {
		v.errorf(kindOf(err), c, i, path+".indices", "%v", err)
		return
	}
	for n := 0; n < indices.Len(); n++ {
		if idx := indices.At(n); int64(idx) >= int64(vertexCount) {
			v.errorf(ErrDataOutOfRange, c, i, path+".indices", "index %d at %d >= vertex count %d", idx, n, vertexCount)
			return
		}
	}
}

func (v *validator) checkSamplerContent(anim *Animation, k int, s *AnimationSampler) {
	d := v.doc
	c, i := CollectionAnimations, anim.index
	path := fmt.Sprintf("samplers[%d]", k)
	in, out := d.accessors[s.input], d.accessors[s.output]

	times, err := in.AsScalarArray()
	if err != nil {
		v.errorf(kindOf(err), c, i, path+".input", "%v", err)
		return
	}
	for n := 0; n < times.Len(); n++ {
		t := times.At(n)
		if t < 0 || (n > 0 && t <= times.At(n-1)) {
			v.errorf(ErrInvalidValue, c, i, path+".input", "keyframe times must be non-negative and strictly increasing (at %d)", n)
			break
		}
	}

	want := in.Count
	if s.Interpolation == InterpolationCubicSpline {
		want *= 3
	}
	if out.Count%max(want, 1) != 0 || out.Count < want {
		v.errorf(ErrInvalidValue, c, i, path+".output", "%d output elements for %d keyframes", out.Count, in.Count)
	}
}

// kindOf maps a data access error to an issue kind.
func kindOf(err error) error {
	for _, kind := range []error{ErrInvalidReference, ErrInvalidValue, ErrDataOutOfRange} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInvalidValue
}

// imageMIME returns the sniffed image type, or "" when the content is not a
// recognized image.
func imageMIME(data []byte) string {
	if m := encoding.DetectImageMIME(data); encoding.IsImageMIME(m) {
		return m
	}
	return ""
}
