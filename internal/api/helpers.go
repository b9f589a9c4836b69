package api

// put records a pointer patch field into a request body map when it
// was provided.
func put[T any](m map[string]any, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}
