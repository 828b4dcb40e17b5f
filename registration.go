package di

import "fmt"

// Factory constructs a component instance from its resolved dependencies,
// passed in declared order, and the registration's parameters.
type Factory func(deps Dependencies, params *Parameters) (any, error)

// Dependencies carries the resolved instances a factory receives. Positions
// match the dependency keys the component was registered with.
type Dependencies []any

// Dependency returns the resolved dependency at position i as T. A wrong
// index or type is a defect in the registration and panics.
func Dependency[T Interface](deps Dependencies, i int) T {
	if i < 0 || i >= len(deps) {
		panic(fmt.Sprintf("di: dependency index %d out of range, %d resolved", i, len(deps)))
	}

	if deps[i] == nil {
		return *new(T)
	}

	value, ok := deps[i].(T)

	if !ok {
		panic(fmt.Sprintf("di: dependency %d is %s, not %s", i, keyOfValue(deps[i]), typeOf[T]()))
	}

	return value
}

// Registration configures one component: the interface key it resolves as,
// its factory, the keys handed to the factory and the parameter overrides.
// Register returns it for fluent configuration.
type Registration struct {
	key     TypeKey
	deps    []TypeKey
	factory Factory
	params  *Parameters
	envs    []envBinding
}

// Key returns the interface key this component resolves as.
func (r *Registration) Key() TypeKey { return r.key }

// WithNamedParameter stores a parameter under name for the factory,
// replacing any previous value under that name.
func (r *Registration) WithNamedParameter(name string, value any) *Registration {
	r.params.SetNamed(name, value)
	return r
}

// WithTypedParameter stores a parameter keyed by its dynamic type,
// replacing any previous value of that type.
func (r *Registration) WithTypedParameter(value any) *Registration {
	r.params.SetTyped(value)
	return r
}

// RegisterType registers a factory for the interface I. Dependencies are
// declared by key and resolved into the factory in that order. Registering
// the same interface again replaces the earlier registration.
func RegisterType[I Interface](b *Builder, build func(Dependencies, *Parameters) (I, error), deps ...TypeKey) *Registration {
	return b.Register(KeyOf[I](), func(deps Dependencies, params *Parameters) (any, error) {
		return build(deps, params)
	}, deps...)
}
