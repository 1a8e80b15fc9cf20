package utils

// Value dereferences v, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to a copy of v. Used for optional fields in partial updates.
func Ptr[T any](v T) *T {
	return &v
}

// PtrOrNil returns nil for the zero value so it is omitted from JSON payloads.
func PtrOrNil[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
