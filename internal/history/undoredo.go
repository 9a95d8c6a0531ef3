package history

// UndoRedo is a linear in-memory history over values of type T, used for
// transient editor state that is not backed by persisted snapshots. Values
// are captured through the supplied clone function so history entries never
// share memory with live state.
type UndoRedo[T any] struct {
	past    []T
	present T
	future  []T
	clone   func(T) T
}

// NewUndoRedo creates a history seeded with an initial present value.
// clone must return a deep copy; it is applied to every value entering or
// leaving the history.
func NewUndoRedo[T any](initial T, clone func(T) T) *UndoRedo[T] {
	return &UndoRedo[T]{
		present: clone(initial),
		clone:   clone,
	}
}

// Push records a new present value. Any redo entries are discarded: a new
// edit starts a fresh branch and linear history keeps only one.
func (u *UndoRedo[T]) Push(value T) {
	u.past = append(u.past, u.present)
	u.present = u.clone(value)
	u.future = nil
}

// Undo steps back one entry. Returns the new present and true, or the zero
// value and false when there is nothing to undo.
func (u *UndoRedo[T]) Undo() (T, bool) {
	if len(u.past) == 0 {
		var zero T
		return zero, false
	}
	u.future = append(u.future, u.present)
	u.present = u.past[len(u.past)-1]
	u.past = u.past[:len(u.past)-1]
	return u.clone(u.present), true
}

// Redo steps forward one entry. Returns the new present and true, or the
// zero value and false when there is nothing to redo.
func (u *UndoRedo[T]) Redo() (T, bool) {
	if len(u.future) == 0 {
		var zero T
		return zero, false
	}
	u.past = append(u.past, u.present)
	u.present = u.future[len(u.future)-1]
	u.future = u.future[:len(u.future)-1]
	return u.clone(u.present), true
}

// Present returns a copy of the current value.
func (u *UndoRedo[T]) Present() T {
	return u.clone(u.present)
}

// CanUndo reports whether an undo step is available.
func (u *UndoRedo[T]) CanUndo() bool {
	return len(u.past) > 0
}

// CanRedo reports whether a redo step is available.
func (u *UndoRedo[T]) CanRedo() bool {
	return len(u.future) > 0
}
