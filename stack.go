package di

// visitedStack tracks keys currently being resolved. Order is preserved so
// that a revisit can be reported as the exact chain that closed the cycle.
type visitedStack[T comparable] []T

func (v *visitedStack[T]) Push(value T) {
	*v = append(*v, value)
}

func (v *visitedStack[T]) Pop() {
	if len(*v) == 0 {
		return
	}

	*v = (*v)[:len(*v)-1]
}

func (v visitedStack[T]) Contains(value T) bool {
	for _, item := range v {
		if item == value {
			return true
		}
	}

	return false
}

// PathFrom returns the stack from the first occurrence of value to the top.
// Empty result means value was never pushed.
func (v visitedStack[T]) PathFrom(value T) []T {
	for i, item := range v {
		if item == value {
			path := make([]T, len(v)-i)
			copy(path, v[i:])
			return path
		}
	}

	return nil
}

// Path returns a copy of the whole stack, bottom first.
func (v visitedStack[T]) Path() []T {
	path := make([]T, len(v))
	copy(path, v)
	return path
}
