// Package resolve composes ordered fallback lookups. Several parts of the
// engine pick the first usable value out of a fixed-priority list of sources
// (base pay overrides, directory index keys, date representations); this
// package keeps that first-match-wins shape in one place.
package resolve

// First runs each resolver in order and returns the first non-nil result.
func First[T any](resolvers ...func() *T) *T {
	for _, resolver := range resolvers {
		if value := resolver(); value != nil {
			return value
		}
	}
	return nil
}

// FirstErr is First for resolvers that can fail. A resolver error stops the
// chain and is returned as-is; a nil result moves on to the next resolver.
func FirstErr[T any](resolvers ...func() (*T, error)) (*T, error) {
	for _, resolver := range resolvers {
		value, err := resolver()
		if err != nil {
			return nil, err
		}
		if value != nil {
			return value, nil
		}
	}
	return nil, nil
}
