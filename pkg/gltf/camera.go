package gltf

import (
	"fmt"

	"github.com/Faultbox/midgard-gltf/pkg/math"
)

// CameraType selects the projection.
type CameraType string

const (
	CameraPerspective  CameraType = "perspective"
	CameraOrthographic CameraType = "orthographic"
)

// Perspective holds perspective projection parameters. AspectRatio 0 means
// "use the viewport" and ZFar 0 means an infinite far plane.
type Perspective struct {
	Properties
	AspectRatio float32
	YFov        float32
	ZFar        float32
	ZNear       float32
}

// Orthographic holds orthographic projection parameters.
type Orthographic struct {
	Properties
	XMag  float32
	YMag  float32
	ZFar  float32
	ZNear float32
}

// Camera is a projection attached to nodes.
type Camera struct {
	slot
	Properties
	Name         string
	Type         CameraType
	Perspective  *Perspective
	Orthographic *Orthographic
}

// CreatePerspectiveCamera appends a perspective camera.
func (d *Document) CreatePerspectiveCamera(name string, yfov, znear, zfar float32) *Camera {
	c := &Camera{
		slot:        slot{d, len(d.cameras)},
		Name:        name,
		Type:        CameraPerspective,
		Perspective: &Perspective{YFov: yfov, ZNear: znear, ZFar: zfar},
	}
	d.cameras = append(d.cameras, c)
	return c
}

// CreateOrthographicCamera appends an orthographic camera.
func (d *Document) CreateOrthographicCamera(name string, xmag, ymag, znear, zfar float32) *Camera {
	c := &Camera{
		slot:         slot{d, len(d.cameras)},
		Name:         name,
		Type:         CameraOrthographic,
		Orthographic: &Orthographic{XMag: xmag, YMag: ymag, ZNear: znear, ZFar: zfar},
	}
	d.cameras = append(d.cameras, c)
	return c
}

// Projection returns the camera's projection matrix. viewportAspect is used
// when a perspective camera has no aspect ratio of its own.
func (c *Camera) Projection(viewportAspect float32) (math.Mat4, error) {
	switch c.Type {
	case CameraPerspective:
		p := c.Perspective
		if p == nil {
			break
		}
		aspect := p.AspectRatio
		if aspect == 0 {
			aspect = viewportAspect
		}
		if aspect <= 0 || p.YFov <= 0 || p.ZNear <= 0 {
			return math.Mat4{}, fmt.Errorf("%w: camera %d perspective parameters", ErrInvalidValue, c.index)
		}
		if p.ZFar == 0 {
			return math.InfinitePerspective(p.YFov, aspect, p.ZNear), nil
		}
		return math.Perspective(p.YFov, aspect, p.ZNear, p.ZFar), nil
	case CameraOrthographic:
		o := c.Orthographic
		if o == nil {
			break
		}
		if o.XMag == 0 || o.YMag == 0 || o.ZFar <= o.ZNear {
			return math.Mat4{}, fmt.Errorf("%w: camera %d orthographic parameters", ErrInvalidValue, c.index)
		}
		return math.Ortho(-o.XMag, o.XMag, -o.YMag, o.YMag, o.ZNear, o.ZFar), nil
	}
	return math.Mat4{}, fmt.Errorf("%w: camera %d has type %q", ErrInvalidValue, c.index, c.Type)
}
