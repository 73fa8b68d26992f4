// Package util holds small helpers shared by tests and option structs.
package util

// Ptr returns a pointer to a copy of v, e.g. util.Ptr(`{"a":1}`) for an optional job body.
func Ptr[T any](v T) *T {
	return &v
}
