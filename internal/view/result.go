// Package view holds presentation state for repository lists, repository
// detail, and subscription settings, and keeps that state in step with the
// repository updates published by reposync.
package view

// Result is either a successful value or the error that prevented one.
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful Result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure returns a failed Result holding err.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the value, or the zero value if r is a failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error, or nil if r is a success.
func (r Result[T]) Err() error {
	return r.err
}
