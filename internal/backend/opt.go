package backend

// Opt is a patch field that distinguishes three states: absent (zero
// value, the column is left untouched), explicitly set to a value, and
// explicitly set to null. Plain pointer fields cover the first two for
// non-nullable columns; Opt is used where the schema allows NULL and
// the caller must be able to write one deliberately.
type Opt[T any] struct {
	set   bool
	value *T
}

// Set returns an Opt carrying an explicit value.
func Set[T any](v T) Opt[T] {
	return Opt[T]{set: true, value: &v}
}

// SetNull returns an Opt carrying an explicit null.
func SetNull[T any]() Opt[T] {
	return Opt[T]{set: true}
}

// IsSet reports whether the field was provided at all.
func (o Opt[T]) IsSet() bool { return o.set }

// Ptr returns the provided value, or nil for an explicit null or an
// absent field. Check IsSet to tell the last two apart.
func (o Opt[T]) Ptr() *T { return o.value }

// Apply records the field into a column update map when it was
// provided. A nil pointer writes NULL.
func (o Opt[T]) Apply(updates map[string]any, column string) {
	if !o.set {
		return
	}
	if o.value == nil {
		updates[column] = nil
		return
	}
	updates[column] = *o.value
}
