package pack

// DefaultMaxCount bounds the values in one block when Options.MaxCount is 0.
const DefaultMaxCount = 1 << 24

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
