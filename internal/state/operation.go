package state

import "fmt"

// Kind tags which variant an Operation holds.
type Kind int

const (
	// KindIdle means nothing has been requested yet, or the state was cleared.
	KindIdle Kind = iota
	KindLoading
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Operation is the Loading / Success(T) / Error(message) union for one
// operation kind. Fields are unexported so only the constructors below can
// build a value, and a value can't be both loaded and failed.
type Operation[T any] struct {
	kind    Kind
	value   T
	message string
}

// Idle returns the zero state.
func Idle[T any]() Operation[T] {
	return Operation[T]{}
}

func Loading[T any]() Operation[T] {
	return Operation[T]{kind: KindLoading}
}

func Success[T any](v T) Operation[T] {
	return Operation[T]{kind: KindSuccess, value: v}
}

func Failure[T any](message string) Operation[T] {
	return Operation[T]{kind: KindError, message: message}
}

func (o Operation[T]) Kind() Kind { return o.kind }

// Value returns the payload and true only in the Success state.
func (o Operation[T]) Value() (T, bool) {
	if o.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Message is empty unless the state is Error.
func (o Operation[T]) Message() string { return o.message }

func (o Operation[T]) IsIdle() bool    { return o.kind == KindIdle }
func (o Operation[T]) IsLoading() bool { return o.kind == KindLoading }
func (o Operation[T]) IsSuccess() bool { return o.kind == KindSuccess }
func (o Operation[T]) IsError() bool   { return o.kind == KindError }

// Terminal reports whether a request lifecycle has ended.
func (o Operation[T]) Terminal() bool {
	return o.kind == KindSuccess || o.kind == KindError
}

func (o Operation[T]) String() string {
	if o.kind == KindError {
		return fmt.Sprintf("error(%s)", o.message)
	}
	return o.kind.String()
}
