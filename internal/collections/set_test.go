package collections

import (
	"slices"
	"testing"
)

func TestSetOperations(t *testing.T) {
	a := SetOf('c', 'a', 't')
	b := SetOf('a', 'x')

	if !a.Contains('c') || a.Contains('x') {
		t.Errorf("Contains gave wrong answers for %v", a)
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}

	diff := a.Difference(b)
	if got := diff.Sorted(); !slices.Equal(got, []rune{'c', 't'}) {
		t.Errorf("Difference().Sorted() = %q, want %q", got, []rune{'c', 't'})
	}

	if !a.Equal(SetOf('t', 'a', 'c', 'a')) {
		t.Error("Equal should ignore order and duplicates")
	}
	if a.Equal(SetOf('c', 'a')) || a.Equal(SetOf('c', 'a', 't', 's')) {
		t.Error("Equal must not accept subsets or supersets")
	}
}
