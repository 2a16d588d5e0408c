package memory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotOverridden is returned when writing through a sparse array at an
// index the overlay does not cover.
var ErrNotOverridden = errors.New("memory: index not overridden by sparse overlay")

// SparseArray overlays a small set of replacement values on a dense base
// array. Reads consult the overlay first. The base is never modified.
type SparseArray[T any] struct {
	base      Array[T]
	top       MutableArray[T]
	overrides map[int]int
}

// NewSparseArray creates an overlay where element top[k] replaces
// base[indices[k]]. Extra entries in top beyond indices.Len() are ignored
// and a repeated index keeps its last entry.
// More indices than replacement values, or an index outside base, panics.
func NewSparseArray[T any](base Array[T], top MutableArray[T], indices Array[uint32]) SparseArray[T] {
	if indices.Len() > top.Len() {
		panic(fmt.Sprintf("memory: %d sparse indices but only %d values", indices.Len(), top.Len()))
	}
	overrides := make(map[int]int, indices.Len())
	for k := 0; k < indices.Len(); k++ {
		idx := int(indices.At(k))
		if idx >= base.Len() {
			panic(fmt.Sprintf("memory: sparse index %d out of range [0:%d]", idx, base.Len()))
		}
		overrides[idx] = k
	}
	return SparseArray[T]{base: base, top: top, overrides: overrides}
}

// Len returns the length of the base array.
func (a SparseArray[T]) Len() int {
	return a.base.Len()
}

// At returns the overlay value when i is overridden, otherwise base[i].
func (a SparseArray[T]) At(i int) T {
	if k, ok := a.overrides[i]; ok {
		return a.top.At(k)
	}
	return a.base.At(i)
}

// Set writes v into the overlay slot for i. Indices without a slot return
// ErrNotOverridden and nothing is written.
func (a SparseArray[T]) Set(i int, v T) error {
	k, ok := a.overrides[i]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotOverridden, i)
	}
	a.top.Set(k, v)
	return nil
}

// Overrides returns the overridden base indices in ascending order.
func (a SparseArray[T]) Overrides() []int {
	out := make([]int, 0, len(a.overrides))
	for i := range a.overrides {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
