package reactive

import (
	"fmt"
	"slices"
)

// Array is an observable list. The whole array shares one atom: any read
// depends on the array, any structural or item write changes it.
type Array[T any] struct {
	base     Atom
	values   []T
	enhancer Enhancer
	equals   func(a, b any) bool
}

func NewArray[T any](s *State, initial []T, opts ...ValueOption) *Array[T] {
	cfg := newValueConfig(opts)
	a := &Array[T]{
		enhancer: cfg.enhancer,
		equals:   cfg.equals,
	}
	a.base.init(s, cfg.name, "ObservableArray")
	a.values = a.enhanceAll(initial)
	return a
}

func (a *Array[T]) atom() *Atom {
	return &a.base
}

func (a *Array[T]) Atom() *Atom {
	return &a.base
}

func (a *Array[T]) Name() string {
	return a.base.name
}

func (a *Array[T]) ObserverCount() int {
	return a.base.ObserverCount()
}

func (a *Array[T]) Len() int {
	a.base.ReportObserved()
	return len(a.values)
}

// Get returns the item at index; ok is false when index is out of range.
func (a *Array[T]) Get(index int) (item T, ok bool) {
	a.base.ReportObserved()
	if index < 0 || index >= len(a.values) {
		return item, false
	}
	return a.values[index], true
}

// Set replaces the item at index. Writing at Len appends; any other index
// outside the array is a misuse and returns ErrIndexOutOfRange.
func (a *Array[T]) Set(index int, value T) error {
	switch {
	case index >= 0 && index < len(a.values):
		next := enhance(a.base.state, a.enhancer, value)
		if a.equals(a.values[index], next) {
			return nil
		}
		a.values[index] = next
		a.base.ReportChanged()
		return nil
	case index == len(a.values):
		a.Splice(index, 0, value)
		return nil
	default:
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(a.values))
	}
}

// Splice removes deleteCount items at index, inserts items there and returns
// the removed items. A negative index counts from the end; both index and
// deleteCount are clamped to the array bounds.
func (a *Array[T]) Splice(index, deleteCount int, items ...T) []T {
	length := len(a.values)
	if index > length {
		index = length
	} else if index < 0 {
		index = max(0, length+index)
	}
	deleteCount = max(0, min(deleteCount, length-index))

	added := a.enhanceAll(items)
	removed := slices.Clone(a.values[index : index+deleteCount])
	a.values = slices.Replace(a.values, index, index+deleteCount, added...)

	if deleteCount != 0 || len(added) != 0 {
		a.base.ReportChanged()
	}
	return removed
}

func (a *Array[T]) Push(items ...T) int {
	a.Splice(len(a.values), 0, items...)
	return len(a.values)
}

func (a *Array[T]) Pop() (item T, ok bool) {
	if len(a.values) == 0 {
		return item, false
	}
	removed := a.Splice(len(a.values)-1, 1)
	return removed[0], true
}

// SetLength truncates the array or grows it with zero values.
func (a *Array[T]) SetLength(n int) {
	length := len(a.values)
	switch {
	case n < 0 || n == length:
		return
	case n > length:
		a.Splice(length, 0, make([]T, n-length)...)
	default:
		a.Splice(n, length-n)
	}
}

// ToSlice returns a copy of the items.
func (a *Array[T]) ToSlice() []T {
	a.base.ReportObserved()
	return slices.Clone(a.values)
}

// Sorted returns a sorted copy; the array itself is left untouched.
func (a *Array[T]) Sorted(cmp func(x, y T) int) []T {
	out := a.ToSlice()
	slices.SortStableFunc(out, cmp)
	return out
}

func (a *Array[T]) enhanceAll(items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = enhance(a.base.state, a.enhancer, item)
	}
	return out
}
