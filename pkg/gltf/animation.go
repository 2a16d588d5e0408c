package gltf

// Interpolation is the keyframe interpolation of an animation sampler.
type Interpolation string

const (
	InterpolationLinear      Interpolation = "LINEAR"
	InterpolationStep        Interpolation = "STEP"
	InterpolationCubicSpline Interpolation = "CUBICSPLINE"
)

// TargetPath is the node property an animation channel drives.
type TargetPath string

const (
	PathTranslation TargetPath = "translation"
	PathRotation    TargetPath = "rotation"
	PathScale       TargetPath = "scale"
	PathWeights     TargetPath = "weights"
)

// Animation is a set of channels sampling keyframe accessors.
type Animation struct {
	slot
	Properties
	Name     string
	Channels []*AnimationChannel
	Samplers []*AnimationSampler
}

// AnimationSampler pairs keyframe times with output values.
type AnimationSampler struct {
	Properties
	anim          *Animation
	input         int
	output        int
	Interpolation Interpolation
}

// AnimationChannel connects a sampler to a node property.
type AnimationChannel struct {
	Properties
	anim    *Animation
	sampler int
	node    int
	Path    TargetPath
}

// CreateAnimation appends an empty animation.
func (d *Document) CreateAnimation(name string) *Animation {
	a := &Animation{slot: slot{d, len(d.animations)}, Name: name}
	d.animations = append(d.animations, a)
	return a
}

// CreateSampler appends a sampler reading times from input and values from
// output.
func (a *Animation) CreateSampler(input, output *Accessor, interp Interpolation) *AnimationSampler {
	s := &AnimationSampler{anim: a, input: a.doc.ref(input), output: a.doc.ref(output), Interpolation: interp}
	a.Samplers = append(a.Samplers, s)
	return s
}

// CreateChannel appends a channel driving path of node from sampler. The
// sampler must belong to a.
func (a *Animation) CreateChannel(sampler *AnimationSampler, node *Node, path TargetPath) *AnimationChannel {
	idx := -1
	for i, s := range a.Samplers {
		if s == sampler {
			idx = i
		}
	}
	if idx < 0 {
		panic("gltf: animation sampler belongs to another animation")
	}
	c := &AnimationChannel{anim: a, sampler: idx, node: a.doc.ref(node), Path: path}
	a.Channels = append(a.Channels, c)
	return c
}

// Input returns the keyframe time accessor, or nil.
func (s *AnimationSampler) Input() *Accessor { return at(s.anim.doc.accessors, s.input) }

// InputIndex returns the raw input accessor reference.
func (s *AnimationSampler) InputIndex() int { return s.input }

// Output returns the keyframe value accessor, or nil.
func (s *AnimationSampler) Output() *Accessor { return at(s.anim.doc.accessors, s.output) }

// OutputIndex returns the raw output accessor reference.
func (s *AnimationSampler) OutputIndex() int { return s.output }

// Sampler returns the channel's sampler, or nil.
func (c *AnimationChannel) Sampler() *AnimationSampler { return at(c.anim.Samplers, c.sampler) }

// SamplerIndex returns the raw sampler reference within the animation.
func (c *AnimationChannel) SamplerIndex() int { return c.sampler }

// Node returns the target node, or nil when the channel has none.
func (c *AnimationChannel) Node() *Node { return at(c.anim.doc.nodes, c.node) }

// NodeIndex returns the raw target node reference, -1 when absent.
func (c *AnimationChannel) NodeIndex() int { return c.node }
