package collections

import (
	"cmp"
	"slices"
)

type Set[V cmp.Ordered] map[V]struct{}

// SetOf builds a Set from the given values
func SetOf[V cmp.Ordered](values ...V) Set[V] {
	set := make(Set[V], len(values))
	for _, v := range values {
		set.Add(v)
	}
	return set
}

// Add an element to the set
func (set Set[V]) Add(value V) {
	set[value] = struct{}{}
}

// Contains returns whether the element exists within the set
func (set Set[V]) Contains(value V) bool {
	_, contains := set[value]
	return contains
}

// Len returns the number of elements in the set
func (set Set[V]) Len() int {
	return len(set)
}

// Difference returns a new Set containing all elements from the calling set
// not present in the other set
func (set Set[V]) Difference(other Set[V]) Set[V] {
	difference := make(Set[V])
	for v := range set {
		if !other.Contains(v) {
			difference.Add(v)
		}
	}
	return difference
}

// Equal reports whether both sets hold exactly the same elements
func (set Set[V]) Equal(other Set[V]) bool {
	if len(set) != len(other) {
		return false
	}
	for v := range set {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Sorted returns the elements in ascending order
func (set Set[V]) Sorted() []V {
	out := make([]V, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
