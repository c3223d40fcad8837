package core

import (
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// An Observer tracks the structural mutations of a single sequence, it maintains the IndexMap of the sequence
// and notifies its callbacks after each mutating operation. Observers are created by Attach and live as long
// as their sequence.
type Observer[T any] struct {
	id        ulid.ULID
	seq       *ObservableSequence[T]
	indexMap  IndexMap
	callbacks *MutationCallbacks[T]

	// removed elements that had an origin, used by splice-replace to recognize moved elements.
	deleted []DeletedItem[T]

	// set when the sequence has been mutated while observing was disabled.
	stale bool

	logger zerolog.Logger
}

// A DeletedItem is an element removed by a splice-replace whose origin has not been reclaimed by a later insertion.
type DeletedItem[T any] struct {
	Origin int
	Item   T
}

func newObserver[T any](seq *ObservableSequence[T]) *Observer[T] {
	id := ulid.Make()

	o := &Observer[T]{
		id:       id,
		seq:      seq,
		indexMap: IdentityIndexMap(len(seq.elements)),
		logger:   currentLogger().With().Stringer(OBSERVER_LOG_FIELD_NAME, id).Logger(),
	}
	o.callbacks = newMutationCallbacks(o)
	return o
}

func (o *Observer[T]) ID() ulid.ULID {
	return o.id
}

func (o *Observer[T]) Sequence() *ObservableSequence[T] {
	return o.seq
}

// IndexMap returns a copy of the current IndexMap.
func (o *Observer[T]) IndexMap() IndexMap {
	o.resyncIfStale()
	return append(IndexMap{}, o.indexMap...)
}

func (o *Observer[T]) IndexEntryAt(i int) IndexEntry {
	o.resyncIfStale()
	return o.indexMap[i]
}

// DeletedItems returns a copy of the ledger of removed elements (see DeletedItem).
func (o *Observer[T]) DeletedItems() []DeletedItem[T] {
	return append([]DeletedItem[T](nil), o.deleted...)
}

// ResetIndices makes the IndexMap the identity and clears the ledger of deleted items. It is never called by the
// observer itself: a consumer calls it after having processed the IndexMap so that the provenance of the next
// mutations is relative to the state it has just observed.
func (o *Observer[T]) ResetIndices() {
	o.resyncIfStale()

	length := len(o.indexMap)
	for i := 0; i < length; i++ {
		o.indexMap[i] = Origin(i)
	}
	clear(o.deleted)
	o.deleted = o.deleted[:0]
	o.stale = false

	o.logger.Debug().Int("length", length).Msg("indices reset")
}

func (o *Observer[T]) OnMutation(fn MutationCallback[T]) CallbackHandle {
	return o.callbacks.Add(fn)
}

func (o *Observer[T]) RemoveMutationCallback(handle CallbackHandle) {
	o.callbacks.Remove(handle)
}

func (o *Observer[T]) RemoveMutationCallbacks() {
	o.callbacks.RemoveAll()
}

func (o *Observer[T]) CallbackCount() int {
	return o.callbacks.Count()
}

// resyncIfStale makes the IndexMap the identity over the current length if the sequence has been mutated while observing was
// disabled. The provenance of the elements is lost in that case.
func (o *Observer[T]) resyncIfStale() {
	length := len(o.seq.elements)
	if !o.stale && len(o.indexMap) == length {
		return
	}

	o.logger.Warn().
		Int("previous-length", len(o.indexMap)).
		Int("length", length).
		Msg("sequence mutated while observing was disabled, index map resynchronized")

	o.indexMap = IdentityIndexMap(length)
	clear(o.deleted)
	o.deleted = o.deleted[:0]
	o.stale = false
}

func (o *Observer[T]) notify(m Mutation[T]) {
	o.callbacks.call(m)
}
