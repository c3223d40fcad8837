package core

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Splice removes deleteCount elements starting at start, inserts items in their place and returns the removed
// elements. The arguments are clamped like the native operation: a negative start counts from the end (and is
// clamped to 0), deleteCount is clamped to [0, length - start].
func (s *ObservableSequence[T]) Splice(start, deleteCount int, items ...T) []T {
	return s.splice(start, deleteCount, false, items)
}

// SpliceTail removes the elements from start to the end of the sequence and returns them, this is the native
// operation with an omitted delete count.
func (s *ObservableSequence[T]) SpliceTail(start int) []T {
	return s.splice(start, 0, true, nil)
}

// SpliceLoose is like Splice but accepts loosely typed numeric arguments (integers, floats, numeric strings, booleans
// and nil). The arguments are converted with the same rules as ToIntegerOrInfinity, it never fails.
func (s *ObservableSequence[T]) SpliceLoose(start, deleteCount any, items ...T) []T {
	return s.splice(SaturatedInt(ToIntegerOrInfinity(start)), SaturatedInt(ToIntegerOrInfinity(deleteCount)), false, items)
}

func (s *ObservableSequence[T]) splice(rawStart, rawDeleteCount int, deleteCountOmitted bool, items []T) []T {
	o := s.activeObserver()

	start, deleteCount := ResolveSpliceRange(len(s.elements), rawStart, rawDeleteCount, deleteCountOmitted)
	end := start + deleteCount

	deleted := make([]T, deleteCount)
	copy(deleted, s.elements[start:end])

	s.elements = slices.Replace(s.elements, start, end, items...)

	if o == nil {
		return deleted
	}

	ledgerLen := len(o.deleted)
	deletedEntries := slices.Clone(o.indexMap[start:end])

	newEntries := make(IndexMap, len(items))
	for i := range newEntries {
		newEntries[i] = New(start + i)
	}
	o.indexMap = slices.Replace(o.indexMap, start, end, newEntries...)

	if deleteCount > 0 {
		s.reconcileRemovedElements(o, deleted, deletedEntries, start, len(items))
	}
	if ledgerLen > 0 && len(items) > 0 {
		s.reconcileInsertedElements(o, start, len(items), ledgerLen)
	}

	o.notify(Mutation[T]{
		Kind:               SpliceReplaceMutation,
		Items:              items,
		Start:              rawStart,
		DeleteCount:        rawDeleteCount,
		DeleteCountOmitted: deleteCountOmitted,
	})
	return deleted
}

// reconcileRemovedElements gives the origin of each removed element to a slot inserted by a previous operation that
// holds the same element. Removed elements whose origin is not given are added to the ledger of deleted items.
func (s *ObservableSequence[T]) reconcileRemovedElements(o *Observer[T], deleted []T, entries IndexMap, insertionStart, insertedCount int) {
	insertionEnd := insertionStart + insertedCount

	for i, entry := range entries {
		origin, ok := entry.Origin()
		if !ok {
			continue
		}
		elem := deleted[i]
		reclaimed := false

		for slot, slotEntry := range o.indexMap {
			if slot >= insertionStart && slot < insertionEnd {
				continue
			}
			if slotEntry.isNew && s.same(s.elements[slot], elem) {
				o.indexMap[slot] = Origin(origin)
				reclaimed = true
				break
			}
		}

		if !reclaimed {
			o.deleted = append(o.deleted, DeletedItem[T]{Origin: origin, Item: elem})
		}
	}
}

// reconcileInsertedElements gives to the inserted slots the origin of a same element removed by a previous operation.
// Only the ledgerLen first items of the ledger are considered, the others have been removed by the current operation.
func (s *ObservableSequence[T]) reconcileInsertedElements(o *Observer[T], insertionStart, insertedCount, ledgerLen int) {
	for slot := insertionStart; slot < insertionStart+insertedCount; slot++ {
		elem := s.elements[slot]

		for i := 0; i < ledgerLen; i++ {
			if s.same(o.deleted[i].Item, elem) {
				o.indexMap[slot] = Origin(o.deleted[i].Origin)
				o.deleted = slices.Delete(o.deleted, i, i+1)
				ledgerLen--
				break
			}
		}

		if ledgerLen == 0 {
			return
		}
	}
}

// ResolveSpliceRange returns the actual start and delete count of a splice operation on a sequence of the given
// length.
func ResolveSpliceRange(length, relativeStart, deleteCount int, deleteCountOmitted bool) (start, actualDeleteCount int) {
	if relativeStart < 0 {
		start = max(length+relativeStart, 0)
	} else {
		start = min(relativeStart, length)
	}

	if deleteCountOmitted {
		return start, length - start
	}
	return start, min(max(deleteCount, 0), length-start)
}

// ToIntegerOrInfinity converts v to an integral number: NaN and values that are not numbers become 0,
// infinities are kept and other numbers are truncated toward zero.
func ToIntegerOrInfinity(v any) float64 {
	var f float64

	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		f = float64(val)
	case float64:
		f = val
	case string:
		f = stringToNumber(val)
	default:
		rval := reflect.ValueOf(v)
		switch {
		case rval.CanInt():
			return float64(rval.Int())
		case rval.CanUint():
			return float64(rval.Uint())
		case rval.CanFloat():
			f = rval.Float()
		case rval.Kind() == reflect.String:
			f = stringToNumber(rval.String())
		default:
			return 0
		}
	}

	if math.IsNaN(f) {
		return 0
	}
	if math.IsInf(f, 0) {
		return f
	}
	return math.Trunc(f)
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			i, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(i)
		}
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "_") {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		//overflows are infinities, underflows are zeros.
		return f
	}
	if err != nil {
		return math.NaN()
	}
	return f
}

func SaturatedInt(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}
