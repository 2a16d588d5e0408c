package memory

import "math"

// ComponentReader is the read surface Bounds needs. ElementArray and
// SparseComponents implement it.
type ComponentReader interface {
	Len() int
	Dimensions() Dimensions
	Value(i, c int) float64
}

// SparseComponents overlays replacement elements on a base element array at
// component granularity, so bounds can be computed over sparse accessors
// without materializing them.
type SparseComponents struct {
	base      ElementArray
	top       ElementArray
	overrides map[int]int
}

// NewSparseComponents builds the overlay. top[k] replaces base[indices[k]].
// Shape mismatches and out-of-range indices panic.
func NewSparseComponents(base, top ElementArray, indices Array[uint32]) SparseComponents {
	top.mustBe(base.dims)
	s := NewSparseArray[int](indexArray(base.Len()), indexArray(top.Len()), indices)
	return SparseComponents{base: base, top: top, overrides: s.overrides}
}

// Len returns the length of the base array.
func (s SparseComponents) Len() int { return s.base.Len() }

// Dimensions returns the element shape.
func (s SparseComponents) Dimensions() Dimensions { return s.base.dims }

// Value returns component c of element i, from the overlay when i is
// overridden.
func (s SparseComponents) Value(i, c int) float64 {
	if k, ok := s.overrides[i]; ok {
		return s.top.Value(k, c)
	}
	return s.base.Value(i, c)
}

// indexArray is the identity array 0..n-1.
type indexArray int

func (n indexArray) Len() int     { return int(n) }
func (n indexArray) At(i int) int { return i }
func (n indexArray) Set(int, int) {}

// Bounds returns per-component minimum and maximum over all elements. NaN
// values are skipped and a component whose samples are all NaN reports NaN
// for both. An empty reader returns nil slices.
func Bounds(r ComponentReader) (lo, hi []float64) {
	if r.Len() == 0 {
		return nil, nil
	}
	n := r.Dimensions().Components()
	lo = make([]float64, n)
	hi = make([]float64, n)
	for c := range lo {
		lo[c], hi[c] = math.NaN(), math.NaN()
	}
	for i := 0; i < r.Len(); i++ {
		for c := 0; c < n; c++ {
			v := r.Value(i, c)
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(lo[c]) || v < lo[c] {
				lo[c] = v
			}
			if math.IsNaN(hi[c]) || v > hi[c] {
				hi[c] = v
			}
		}
	}
	return lo, hi
}
