package core

import (
	"slices"
)

const (
	SHRINK_DIVIDER         = 2
	MIN_SHRINKABLE_SEQ_LEN = 10 * SHRINK_DIVIDER
)

// Append adds items at the end of the sequence and returns the new length.
func (s *ObservableSequence[T]) Append(items ...T) int {
	o := s.activeObserver()
	if o == nil {
		s.elements = append(s.elements, items...)
		return len(s.elements)
	}

	start := len(s.elements)
	s.elements = append(s.elements, items...)

	for i := range items {
		o.indexMap = append(o.indexMap, New(start+i))
	}

	o.notify(Mutation[T]{Kind: AppendMutation, Items: items})
	return len(s.elements)
}

// Prepend adds items at the start of the sequence and returns the new length. The entries of the shifted elements
// keep their values.
func (s *ObservableSequence[T]) Prepend(items ...T) int {
	o := s.activeObserver()
	if o == nil {
		s.elements = slices.Insert(s.elements, 0, items...)
		return len(s.elements)
	}

	s.elements = slices.Insert(s.elements, 0, items...)

	newEntries := make(IndexMap, len(items))
	for i := range newEntries {
		newEntries[i] = New(i)
	}
	o.indexMap = slices.Insert(o.indexMap, 0, newEntries...)

	o.notify(Mutation[T]{Kind: PrependMutation, Items: items})
	return len(s.elements)
}

// RemoveLast removes the last element and returns it, ok is false if the sequence is empty.
func (s *ObservableSequence[T]) RemoveLast() (elem T, ok bool) {
	o := s.activeObserver()
	length := len(s.elements)

	if o == nil {
		if length == 0 {
			return
		}
		return s.removeLastElement(), true
	}

	if length == 0 {
		o.notify(Mutation[T]{Kind: RemoveLastMutation})
		return
	}

	elem = s.removeLastElement()
	o.indexMap = o.indexMap[:length-1]

	o.notify(Mutation[T]{Kind: RemoveLastMutation})
	return elem, true
}

func (s *ObservableSequence[T]) removeLastElement() T {
	last := len(s.elements) - 1
	elem := s.elements[last]

	var zero T
	s.elements[last] = zero
	s.elements = shrinkIfWastedCapacity(s.elements[:last])
	return elem
}

// RemoveFirst removes the first element and returns it, ok is false if the sequence is empty.
// The remaining elements are shifted to the left along with their entries.
func (s *ObservableSequence[T]) RemoveFirst() (elem T, ok bool) {
	o := s.activeObserver()
	length := len(s.elements)

	if o == nil {
		if length == 0 {
			return
		}
		return s.removeFirstElement(), true
	}

	if length == 0 {
		o.notify(Mutation[T]{Kind: RemoveFirstMutation})
		return
	}

	elem = s.removeFirstElement()
	copy(o.indexMap, o.indexMap[1:])
	o.indexMap = o.indexMap[:length-1]

	o.notify(Mutation[T]{Kind: RemoveFirstMutation})
	return elem, true
}

func (s *ObservableSequence[T]) removeFirstElement() T {
	elem := s.elements[0]
	last := len(s.elements) - 1

	copy(s.elements, s.elements[1:])

	var zero T
	s.elements[last] = zero
	s.elements = shrinkIfWastedCapacity(s.elements[:last])
	return elem
}

// Reverse reverses the sequence in place and returns it, the entries of the IndexMap are swapped along with
// the elements.
func (s *ObservableSequence[T]) Reverse() *ObservableSequence[T] {
	o := s.activeObserver()
	if o == nil {
		slices.Reverse(s.elements)
		return s
	}

	elements := s.elements
	indexMap := o.indexMap

	for lower, upper := 0, len(elements)-1; lower < upper; lower, upper = lower+1, upper-1 {
		elements[lower], elements[upper] = elements[upper], elements[lower]
		indexMap[lower], indexMap[upper] = indexMap[upper], indexMap[lower]
	}

	o.notify(Mutation[T]{Kind: ReverseMutation})
	return s
}

// shrinkIfWastedCapacity reallocates the slice if less than 1/SHRINK_DIVIDER of its capacity is used.
func shrinkIfWastedCapacity[T any](s []T) []T {
	if cap(s) < MIN_SHRINKABLE_SEQ_LEN || len(s) > cap(s)/SHRINK_DIVIDER {
		return s
	}
	shrunk := make([]T, len(s))
	copy(shrunk, s)
	return shrunk
}
