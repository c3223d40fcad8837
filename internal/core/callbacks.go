package core

import (
	"github.com/inoxlang/seqwatch/internal/utils"
)

const (
	FIRST_VALID_CALLBACK_HANDLE = 1
)

type CallbackHandle int

func (h CallbackHandle) Valid() bool {
	return h >= FIRST_VALID_CALLBACK_HANDLE
}

// A MutationCallback is called synchronously after each mutating operation, it is unregistered if it returns false.
type MutationCallback[T any] func(m Mutation[T]) (registerAgain bool)

// MutationCallbacks is the list of callbacks of an observer. Removed callbacks leave a hole that is reused
// by the next added callback.
type MutationCallbacks[T any] struct {
	nextIndex  int
	nextHandle CallbackHandle
	callbacks  []mutationCallback[T]
	observer   *Observer[T]
}

type mutationCallback[T any] struct {
	fn     MutationCallback[T]
	handle CallbackHandle
}

func newMutationCallbacks[T any](observer *Observer[T]) *MutationCallbacks[T] {
	return &MutationCallbacks[T]{
		nextHandle: FIRST_VALID_CALLBACK_HANDLE,
		observer:   observer,
	}
}

func (t *MutationCallbacks[T]) Add(fn MutationCallback[T]) (handle CallbackHandle) {
	if fn == nil {
		return
	}

	handle = t.nextHandle
	t.nextHandle++

	callback := mutationCallback[T]{
		fn:     fn,
		handle: handle,
	}

	if t.nextIndex >= len(t.callbacks) {
		t.callbacks = append(t.callbacks, callback)
	} else {
		t.callbacks[t.nextIndex] = callback
	}
	t.updateNextIndex()

	return
}

func (t *MutationCallbacks[T]) Remove(handle CallbackHandle) {
	for i := range t.callbacks {
		if t.callbacks[i].handle == handle {
			t.callbacks[i] = mutationCallback[T]{}
			break
		}
	}

	t.updateNextIndex()
}

func (t *MutationCallbacks[T]) RemoveAll() {
	for i := range t.callbacks {
		t.callbacks[i] = mutationCallback[T]{}
	}

	t.updateNextIndex()
}

// Count returns the number of registered callbacks.
func (t *MutationCallbacks[T]) Count() int {
	count := 0
	for _, callback := range t.callbacks {
		if callback.fn != nil {
			count++
		}
	}
	return count
}

// call calls the registered callbacks in registration order. A callback can mutate the sequence, (un)register
// callbacks: callbacks registered during the call are not called, removed callbacks that have not been called
// yet are skipped.
func (t *MutationCallbacks[T]) call(m Mutation[T]) {
	maxHandle := t.nextHandle - 1

	for i := 0; i < len(t.callbacks); i++ {
		callback := t.callbacks[i]
		if callback.fn == nil || callback.handle > maxHandle {
			continue
		}

		if !t.callOne(callback, m) {
			t.removeIfPresent(i, callback.handle)
		}
	}
}

func (t *MutationCallbacks[T]) callOne(callback mutationCallback[T], m Mutation[T]) (registerAgain bool) {
	defer func() {
		if e := recover(); e != nil {
			err := utils.ConvertPanicValueToError(e)
			logger := t.observer.logger

			logger.Error().Err(err).
				Int("handle", int(callback.handle)).
				Stringer("mutation", m).
				Msg("mutation callback panicked, it has been unregistered")
			registerAgain = false
		}
	}()

	return callback.fn(m)
}

// removeIfPresent removes the callback at index if it still has the same handle,
// the slot may have been reused by a re-entrant registration.
func (t *MutationCallbacks[T]) removeIfPresent(index int, handle CallbackHandle) {
	if index < len(t.callbacks) && t.callbacks[index].handle == handle {
		t.callbacks[index] = mutationCallback[T]{}
		t.updateNextIndex()
	}
}

func (t *MutationCallbacks[T]) updateNextIndex() {
	for i, callback := range t.callbacks {
		if callback.fn == nil {
			t.nextIndex = i
			return
		}
	}
	t.nextIndex = len(t.callbacks)
}
