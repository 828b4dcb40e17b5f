package di

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBuilderConsumed is returned by Build when the builder was already
// consumed by a previous Build call.
var ErrBuilderConsumed = errors.New("di: builder already consumed")

// UnregisteredDependencyError reports a declared dependency that has no
// registration. Path is the resolution chain that reached it and ends with
// the missing key.
type UnregisteredDependencyError struct {
	Key  TypeKey
	Path []TypeKey
}

func (e *UnregisteredDependencyError) Error() string {
	if len(e.Path) > 1 {
		return fmt.Sprintf("di: unregistered dependency: %s", pathString(e.Path))
	}

	return fmt.Sprintf("di: unregistered dependency: %s", e.Key)
}

// CircularDependencyError reports a dependency chain that revisits a
// component currently being built. Path runs from the first pending
// occurrence of the key to the revisit, inclusive, so a cycle A -> B -> C
// -> A is reported with all of its members.
type CircularDependencyError struct {
	Path []TypeKey
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("di: circular dependency: %s", pathString(e.Path))
}

// ParameterResolutionError reports a factory that could not obtain a
// required named or typed parameter, or an env-bound parameter that could
// not be materialized.
type ParameterResolutionError struct {
	Key    TypeKey
	Detail error
}

func (e *ParameterResolutionError) Error() string {
	return fmt.Sprintf("di: %s: %s", e.Key, e.Detail)
}

func (e *ParameterResolutionError) Unwrap() error { return e.Detail }

// ConstructionError reports a factory failure unrelated to parameters. The
// cause is propagated, not interpreted.
type ConstructionError struct {
	Key   TypeKey
	Cause error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("di: constructing %s: %s", e.Key, e.Cause)
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// NotFoundError reports a post-build lookup of an interface that was never
// registered.
type NotFoundError struct {
	Key TypeKey
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("di: no component registered for %s", e.Key)
}

// ParameterError is the miss reported by RequireNamed and RequireTyped and
// by env-bound parameter materialization. Either Name or Type is set.
type ParameterError struct {
	Name string
	Type TypeKey
	Err  error
}

func (e *ParameterError) Error() string {
	switch {
	case e.Err != nil && e.Name != "":
		return fmt.Sprintf("parameter %q: %s", e.Name, e.Err)
	case e.Name != "":
		return fmt.Sprintf("parameter %q is missing or has the wrong type", e.Name)
	default:
		return fmt.Sprintf("parameter of type %s is missing or has the wrong type", e.Type)
	}
}

func (e *ParameterError) Unwrap() error { return e.Err }

func pathString(path []TypeKey) string {
	var b strings.Builder

	for i, key := range path {
		if i > 0 {
			b.WriteString(" -> ")
		}

		b.WriteString(key.String())
	}

	return b.String()
}
