package core

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	// NEW_MARKER_OFFSET is the offset of the encoded form of new slots: a slot inserted at index i is encoded as -(i + 2).
	NEW_MARKER_OFFSET = 2
)

// An IndexEntry is the provenance of a slot of an observed sequence: either the index of the slot the element
// originated from (Origin), or a marker telling that the element has been inserted (New).
type IndexEntry struct {
	index int
	isNew bool
}

func Origin(index int) IndexEntry {
	return IndexEntry{index: index}
}

// New returns the entry of a slot inserted at insertionIndex.
func New(insertionIndex int) IndexEntry {
	return IndexEntry{index: insertionIndex, isNew: true}
}

func (e IndexEntry) IsNew() bool {
	return e.isNew
}

// Origin returns the origin index of the slot, ok is false for new slots.
func (e IndexEntry) Origin() (index int, ok bool) {
	if e.isNew {
		return -1, false
	}
	return e.index, true
}

// InsertionIndex returns the index at which a new slot has been inserted, ok is false for origin entries.
// The insertion index is not updated when the slot is later moved.
func (e IndexEntry) InsertionIndex() (index int, ok bool) {
	if !e.isNew {
		return -1, false
	}
	return e.index, true
}

// Encode returns the integer form of the entry: the origin index for origin entries, -(insertionIndex + 2)
// for new slots.
func (e IndexEntry) Encode() int {
	if e.isNew {
		return -e.index - NEW_MARKER_OFFSET
	}
	return e.index
}

func DecodeIndexEntry(v int) IndexEntry {
	if v < 0 {
		return New(-(v + NEW_MARKER_OFFSET))
	}
	return Origin(v)
}

func (e IndexEntry) String() string {
	if e.isNew {
		return "new@" + strconv.Itoa(e.index)
	}
	return strconv.Itoa(e.index)
}

// An IndexMap correlates each slot of an observed sequence to its provenance, it always has the same length
// as the sequence.
type IndexMap []IndexEntry

func IdentityIndexMap(length int) IndexMap {
	m := make(IndexMap, length)
	for i := range m {
		m[i] = Origin(i)
	}
	return m
}

func DecodeIndexMap(encoded []int) IndexMap {
	m := make(IndexMap, len(encoded))
	for i, v := range encoded {
		m[i] = DecodeIndexEntry(v)
	}
	return m
}

func (m IndexMap) Encode() []int {
	encoded := make([]int, len(m))
	for i, e := range m {
		encoded[i] = e.Encode()
	}
	return encoded
}

func (m IndexMap) IsIdentity() bool {
	for i, e := range m {
		if e.isNew || e.index != i {
			return false
		}
	}
	return true
}

// NewSlots returns the set of slots holding inserted elements.
func (m IndexMap) NewSlots() *bitset.BitSet {
	set := bitset.New(uint(len(m)))
	for i, e := range m {
		if e.isNew {
			set.Set(uint(i))
		}
	}
	return set
}

// SurvivingOrigins returns the set of original slots (in [0, originalLen)) whose element is still present.
// The slots missing from the set have been removed since the map was the identity.
func (m IndexMap) SurvivingOrigins(originalLen int) *bitset.BitSet {
	set := bitset.New(uint(originalLen))
	for _, e := range m {
		if !e.isNew && e.index < originalLen {
			set.Set(uint(e.index))
		}
	}
	return set
}

func (m IndexMap) String() string {
	buf := strings.Builder{}
	buf.WriteByte('[')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(e.Encode()))
	}
	buf.WriteByte(']')
	return buf.String()
}
