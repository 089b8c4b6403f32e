// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

// frozen is a field that may be set once. After that, any incoming value is
// overwritten with the captured one and the save goes on.
//
// This is deliberately asymmetric with every other rule in the engine, which
// rejects the write. Identity keys and survey begin dates are corrected, not
// rejected.
type frozen[T comparable] struct {
	captured T
}

func freeze[T comparable](captured T) frozen[T] {
	return frozen[T]{captured: captured}
}

// apply returns the value that must be persisted.
func (f frozen[T]) apply(incoming T) T {
	var empty T
	if f.captured == empty {
		return incoming
	}
	return f.captured
}

// changed reports whether apply would discard incoming.
func (f frozen[T]) changed(incoming T) bool {
	return f.apply(incoming) != incoming
}
