package schema

// Flatter is an interface for flattening a hierarchy of values to a map of paths -> values.
type Flatter[T any] interface {
	Flatten(t T) (map[string]any, error)
}

// Unflatter is an interface for rebuilding a hierarchy of values from a map of paths -> values.
type Unflatter[T any] interface {
	Unflatten(flat map[string]any) (T, error)
}
