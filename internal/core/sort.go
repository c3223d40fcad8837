package core

const (
	// ranges whose length is less or equal to this value are sorted by insertion sort.
	INSERTION_SORT_THRESHOLD = 10
)

// Sort sorts the sequence in place and returns it. Missing values (see WithMissingFunc) are always placed after
// the other elements and are never passed to cmp. The other elements are ordered by cmp, or by DefaultCompare
// if cmp is nil. Elements that compare equal keep their relative order, the result is the same as the one of
// a stable sort.
//
// If cmp panics the panic propagates, the elements may be partially sorted but the IndexMap stays consistent
// with them. If cmp is not a consistent ordering the resulting order is unspecified.
func (s *ObservableSequence[T]) Sort(cmp Comparator[T]) *ObservableSequence[T] {
	if cmp == nil {
		cmp = DefaultCompare[T]
	}

	o := s.activeObserver()

	var indexMap IndexMap
	if o != nil {
		indexMap = o.indexMap
	}

	sorter := newPairSorter(s.elements, indexMap)
	isMissing := s.isMissing

	//phase A: move missing values to the tail.
	sorter.sort(0, len(s.elements), func(a, b T) int {
		aMissing, bMissing := isMissing(a), isMissing(b)
		switch {
		case aMissing == bMissing:
			return 0
		case aMissing:
			return 1
		default:
			return -1
		}
	})

	//phase B: sort the present values.
	presentCount := len(s.elements)
	for i, e := range s.elements {
		if isMissing(e) {
			presentCount = i
			break
		}
	}
	sorter.sort(0, presentCount, cmp)

	if o != nil {
		o.notify(Mutation[T]{Kind: SortMutation})
	}
	return s
}

// A pairSorter sorts elements with a quicksort/insertion sort hybrid, the entries of the IndexMap (if any) and the
// positions of the elements before the sort are moved along with the elements. The positions are used to order
// the elements that compare equal. All moves are swaps, so a panic of the comparator leaves the elements and the
// IndexMap consistent.
type pairSorter[T any] struct {
	elements  []T
	indexMap  IndexMap
	positions []int
	cmp       Comparator[T]
}

func newPairSorter[T any](elements []T, indexMap IndexMap) *pairSorter[T] {
	positions := make([]int, len(elements))
	for i := range positions {
		positions[i] = i
	}

	return &pairSorter[T]{
		elements:  elements,
		indexMap:  indexMap,
		positions: positions,
	}
}

// sort sorts the range [start, end).
func (s *pairSorter[T]) sort(start, end int, cmp Comparator[T]) {
	if end-start < 2 {
		return
	}
	s.cmp = cmp
	s.quicksort(start, end)
}

func (s *pairSorter[T]) less(i, j int) bool {
	c := s.cmp(s.elements[i], s.elements[j])
	if c != 0 {
		return c < 0
	}
	return s.positions[i] < s.positions[j]
}

func (s *pairSorter[T]) swap(i, j int) {
	s.elements[i], s.elements[j] = s.elements[j], s.elements[i]
	s.positions[i], s.positions[j] = s.positions[j], s.positions[i]
	if s.indexMap != nil {
		s.indexMap[i], s.indexMap[j] = s.indexMap[j], s.indexMap[i]
	}
}

func (s *pairSorter[T]) quicksort(start, end int) {
	for end-start > INSERTION_SORT_THRESHOLD {
		pivot := s.partition(start, end)

		//recurse on the smaller side to bound the stack depth.
		if pivot-start < end-pivot-1 {
			s.quicksort(start, pivot)
			start = pivot + 1
		} else {
			s.quicksort(pivot+1, end)
			end = pivot
		}
	}

	s.insertionSort(start, end)
}

// partition partitions [start, end) around the median of the first, middle and last elements and returns the final
// index of the pivot.
func (s *pairSorter[T]) partition(start, end int) int {
	last := end - 1
	middle := start + (end-start)/2

	if s.less(middle, start) {
		s.swap(middle, start)
	}
	if s.less(last, middle) {
		s.swap(last, middle)
		if s.less(middle, start) {
			s.swap(middle, start)
		}
	}

	//the pivot is moved before the last element, which is known to be greater or equal.
	pivotIndex := last - 1
	s.swap(middle, pivotIndex)

	store := start + 1
	for i := start + 1; i < pivotIndex; i++ {
		if s.less(i, pivotIndex) {
			s.swap(i, store)
			store++
		}
	}
	s.swap(store, pivotIndex)
	return store
}

func (s *pairSorter[T]) insertionSort(start, end int) {
	for i := start + 1; i < end; i++ {
		for j := i; j > start && s.less(j, j-1); j-- {
			s.swap(j, j-1)
		}
	}
}
