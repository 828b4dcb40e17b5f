package di

// Parameters holds the override values of one registration: values keyed by
// name and values keyed by their own type, in independent namespaces.
// Setting an occupied name or type overwrites the previous value silently.
// A registration's Parameters exist for its factory and are not reachable
// once the container is built.
type Parameters struct {
	named map[string]any
	typed map[TypeKey]any
}

func NewParameters() *Parameters { return &Parameters{} }

// SetNamed stores value under name, replacing any previous value held under
// that name regardless of its type.
func (p *Parameters) SetNamed(name string, value any) {
	if p.named == nil {
		p.named = make(map[string]any)
	}

	p.named[name] = value
}

// SetTyped stores value keyed by its dynamic type, replacing any previous
// value of that type. Interface-typed values cannot be addressed this way,
// use SetNamed for those. Panics on nil.
func (p *Parameters) SetTyped(value any) {
	if value == nil {
		panic("di: typed parameter must not be nil")
	}

	if p.typed == nil {
		p.typed = make(map[TypeKey]any)
	}

	p.typed[keyOfValue(value)] = value
}

// Len reports the number of stored values across both namespaces.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}

	return len(p.named) + len(p.typed)
}

// GetNamed returns the value stored under name. A value of a different
// runtime type than V counts as absent.
func GetNamed[V any](p *Parameters, name string) (V, bool) {
	if p == nil {
		return *new(V), false
	}

	value, ok := p.named[name]

	if !ok {
		return *new(V), false
	}

	typed, ok := value.(V)
	return typed, ok
}

// GetTyped returns the value stored under the type V.
func GetTyped[V any](p *Parameters) (V, bool) {
	if p == nil {
		return *new(V), false
	}

	value, ok := p.typed[KeyOf[V]()]

	if !ok {
		return *new(V), false
	}

	typed, ok := value.(V)
	return typed, ok
}

// RequireNamed is GetNamed with a miss reported as *ParameterError, which
// Build surfaces as a ParameterResolutionError for the component whose
// factory returned it.
func RequireNamed[V any](p *Parameters, name string) (V, error) {
	value, ok := GetNamed[V](p, name)

	if !ok {
		return value, &ParameterError{Name: name}
	}

	return value, nil
}

// RequireTyped is GetTyped with a miss reported as *ParameterError.
func RequireTyped[V any](p *Parameters) (V, error) {
	value, ok := GetTyped[V](p)

	if !ok {
		return value, &ParameterError{Type: KeyOf[V]()}
	}

	return value, nil
}
