package core

import "sync/atomic"

var (
	observingDisabled atomic.Bool
)

// EnableObserving makes sequences with an attached observer take the observing code path.
// Observing is enabled at process start. The state is shared by the whole process and is not
// reference counted: callers sharing the capability have to coordinate.
func EnableObserving() {
	observingDisabled.Store(false)
}

// DisableObserving makes every sequence behave natively, even if an observer is attached.
// Attached observers are marked stale and resynchronize their IndexMap on the next observed operation.
func DisableObserving() {
	observingDisabled.Store(true)
}

func ObservingEnabled() bool {
	return !observingDisabled.Load()
}
