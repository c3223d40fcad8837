package core

import (
	"errors"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnreachable     = errors.New("unreachable")
)

// An ObservableSequence is a resizable sequence whose structural mutations are tracked by an optional Observer.
// Without an attached observer, or while observing is disabled, every operation behaves like the native
// operation and nothing else is done.
//
// An ObservableSequence is not safe for concurrent use.
type ObservableSequence[T any] struct {
	elements []T
	observer *Observer[T]

	isMissing MissingFunc[T]
	same      SameFunc[T]
}

type SequenceOption[T any] func(s *ObservableSequence[T])

// WithMissingFunc sets the predicate telling whether an element is the missing-value sentinel, missing elements
// are always sorted last. The default predicate is IsNilValue.
func WithMissingFunc[T any](fn MissingFunc[T]) SequenceOption[T] {
	return func(s *ObservableSequence[T]) {
		s.isMissing = fn
	}
}

// WithSameFunc sets the identity predicate used to recognize elements moved by splice-replace operations.
// The default predicate is IsSameValue.
func WithSameFunc[T any](fn SameFunc[T]) SequenceOption[T] {
	return func(s *ObservableSequence[T]) {
		s.same = fn
	}
}

// NewObservableSequence creates a sequence that takes ownership of elements.
func NewObservableSequence[T any](elements []T, opts ...SequenceOption[T]) *ObservableSequence[T] {
	s := &ObservableSequence[T]{
		elements:  elements,
		isMissing: IsNilValue[T],
		same:      IsSameValue[T],
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewObservableSequenceFrom[T any](elements ...T) *ObservableSequence[T] {
	return NewObservableSequence(elements)
}

// Attach returns the observer of the sequence, the observer is created if necessary.
func Attach[T any](s *ObservableSequence[T]) *Observer[T] {
	return s.Observe()
}

// Observe returns the observer of the sequence, the observer is created if necessary with an identity IndexMap
// and no callbacks.
func (s *ObservableSequence[T]) Observe() *Observer[T] {
	if s.observer == nil {
		s.observer = newObserver(s)
		s.observer.logger.Debug().Int("length", len(s.elements)).Msg("observer attached")
	}
	return s.observer
}

// Observer returns the attached observer or nil.
func (s *ObservableSequence[T]) Observer() *Observer[T] {
	return s.observer
}

func (s *ObservableSequence[T]) Len() int {
	return len(s.elements)
}

func (s *ObservableSequence[T]) At(i int) T {
	if i < 0 || i >= len(s.elements) {
		panic(ErrIndexOutOfRange)
	}
	return s.elements[i]
}

// Elements returns a copy of the elements.
func (s *ObservableSequence[T]) Elements() []T {
	return append([]T{}, s.elements...)
}

// activeObserver returns the observer if the observing path should be taken. If an observer is attached but
// observing is disabled the observer is marked stale.
func (s *ObservableSequence[T]) activeObserver() *Observer[T] {
	o := s.observer
	if o == nil {
		return nil
	}
	if !ObservingEnabled() {
		o.stale = true
		return nil
	}
	o.resyncIfStale()
	return o
}
