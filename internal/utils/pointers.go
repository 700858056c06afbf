package utils

// Ptr returns a pointer to a copy of v. Optional form fields are pointers so
// that an unset field can be told apart from a zero value.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr dereferences p, or returns fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Assign copies *src into *dst when src is set. Partial updates use it so
// unset fields keep their stored value.
func Assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
