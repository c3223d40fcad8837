package core

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {

	t.Run("missing values should be sorted last with the default comparator", func(t *testing.T) {
		s := NewObservableSequenceFrom[any](5, 3, nil, 1)
		o, mutations := observe(t, s)

		assert.Same(t, s, s.Sort(nil))

		assert.Equal(t, []any{1, 3, 5, nil}, s.Elements())
		assert.Equal(t, []int{3, 1, 0, 2}, encoded(o))
		assert.Equal(t, []Mutation[any]{{Kind: SortMutation}}, *mutations)
	})

	t.Run("the comparator should never receive missing values", func(t *testing.T) {
		one, two, three := 1, 2, 3
		s := NewObservableSequenceFrom[*int](nil, &three, nil, &one, &two, nil)
		o, _ := observe(t, s)

		s.Sort(func(a, b *int) int {
			if a == nil || b == nil {
				panic("missing value passed to the comparator")
			}
			return *b - *a
		})

		assert.Equal(t, []*int{&three, &two, &one, nil, nil, nil}, s.Elements())
		assert.Equal(t, []int{1, 4, 3, 0, 2, 5}, encoded(o))
	})

	t.Run("custom missing value", func(t *testing.T) {
		s := NewObservableSequence([]int{3, -1, 2, -1, 1}, WithMissingFunc(func(v int) bool { return v < 0 }))
		o, _ := observe(t, s)

		s.Sort(func(a, b int) int { return a - b })

		assert.Equal(t, []int{1, 2, 3, -1, -1}, s.Elements())
		assert.Equal(t, []int{4, 2, 0, 1, 3}, encoded(o))
	})

	t.Run("default comparator compares string conversions", func(t *testing.T) {
		s := NewObservableSequenceFrom[any](10, 9, 1, "b", "a", true)
		observe(t, s)

		s.Sort(nil)

		assert.Equal(t, []any{1, 10, 9, "a", "b", true}, s.Elements())
	})

	t.Run("equal elements should keep their relative order", func(t *testing.T) {
		words := strings.Fields("pear fig apple kiwi plum date lime sloe yuzu nut bean corn okra leek")
		s := NewObservableSequence(slices.Clone(words))
		o, _ := observe(t, s)

		byLen := func(a, b string) int { return len(a) - len(b) }
		s.Sort(byLen)

		expected := slices.Clone(words)
		slices.SortStableFunc(expected, byLen)
		assert.Equal(t, expected, s.Elements())

		assertProvenance(t, words, s.Elements(), o.IndexMap())
	})

	t.Run("new slots should be moved with their elements", func(t *testing.T) {
		s := NewObservableSequenceFrom(3, 1)
		o, _ := observe(t, s)
		s.Append(2)
		s.Prepend(0)

		s.Sort(func(a, b int) int { return a - b })

		assert.Equal(t, []int{0, 1, 2, 3}, s.Elements())
		assert.Equal(t, []int{-2, 1, -4, 0}, encoded(o))
	})

	t.Run("empty and single element sequences", func(t *testing.T) {
		empty := NewObservableSequence[int](nil)
		o, mutations := observe(t, empty)
		empty.Sort(nil)
		assert.Empty(t, encoded(o))
		assert.Len(t, *mutations, 1)

		single := NewObservableSequenceFrom("a")
		o2, _ := observe(t, single)
		single.Sort(nil)
		assert.Equal(t, []int{0}, encoded(o2))
	})
}

func TestSortRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	cmp := func(a, b *int) int { return *a%50 - *b%50 }

	for _, length := range []int{2, 9, 10, 11, 12, 30, 100, 1000} {
		for round := 0; round < 5; round++ {
			values := make([]*int, length)
			for i := range values {
				if r.Intn(8) == 0 {
					continue //missing value
				}
				n := r.Intn(200)
				values[i] = &n
			}

			s := NewObservableSequence(slices.Clone(values))
			o, _ := observe(t, s)

			s.Sort(cmp)

			expected := slices.Clone(values)
			slices.SortStableFunc(expected, func(a, b *int) int {
				switch {
				case a == nil && b == nil:
					return 0
				case a == nil:
					return 1
				case b == nil:
					return -1
				}
				return cmp(a, b)
			})

			require.Equal(t, expected, s.Elements(), "length %d", length)
			assertProvenance(t, values, s.Elements(), o.IndexMap())
		}
	}
}

func TestSortPanickingComparator(t *testing.T) {
	values := make([]int, 50)
	for i := range values {
		values[i] = (i * 37) % 50
	}

	s := NewObservableSequence(slices.Clone(values))
	o, mutations := observe(t, s)

	calls := 0
	assert.PanicsWithValue(t, "comparator failure", func() {
		s.Sort(func(a, b int) int {
			calls++
			if calls == 40 {
				panic("comparator failure")
			}
			return a - b
		})
	})

	assert.Empty(t, *mutations)
	assert.ElementsMatch(t, values, s.Elements())
	assertProvenance(t, values, s.Elements(), o.IndexMap())
}

func TestSortInvalidComparator(t *testing.T) {
	values := make([]int, 200)
	for i := range values {
		values[i] = i
	}
	r := rand.New(rand.NewSource(2))

	s := NewObservableSequence(slices.Clone(values))
	o, _ := observe(t, s)

	s.Sort(func(a, b int) int { return r.Intn(3) - 1 })

	assert.ElementsMatch(t, values, s.Elements())
	assertProvenance(t, values, s.Elements(), o.IndexMap())
}

// assertProvenance checks that each slot with an origin holds the element that was at the origin slot.
func assertProvenance[T any](t *testing.T, before, after []T, indexMap IndexMap) {
	t.Helper()

	if !assert.Len(t, indexMap, len(after)) {
		return
	}

	seen := map[int]bool{}
	for i, entry := range indexMap {
		origin, ok := entry.Origin()
		if !ok {
			continue
		}
		assert.False(t, seen[origin], "origin %d found twice", origin)
		seen[origin] = true
		assert.Equal(t, before[origin], after[i], "slot %d", i)
	}
}
