// Copyright (c) 2026 Keymaster Team
// gpgkeys - GnuPG key listing parser
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds small generic slice helpers.
package slicest

// Map returns fn applied to every element of s.
func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result := make([]U, 0, len(s))
	for _, t := range s {
		result = append(result, fn(t))
	}
	return result
}

// Filter returns the elements of s for which fn is true. The result never
// aliases s.
func Filter[T any, S ~[]T](s S, fn func(T) bool) S {
	var result S
	for _, t := range s {
		if fn(t) {
			result = append(result, t)
		}
	}
	return result
}

// Find returns the first element for which fn is true.
func Find[T any, S ~[]T](s S, fn func(T) bool) (T, bool) {
	for _, t := range s {
		if fn(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}
