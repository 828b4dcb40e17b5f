package di

import (
	"errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"time"
)

// buildContext is the transient state of one Build call: the finalized
// registry, the instances built so far and the pending chain guarding
// against cycles. It is discarded once the container is produced.
type buildContext struct {
	registry map[TypeKey]*Registration
	order    []TypeKey
	env      func(string) (string, bool)
	log      zerolog.Logger

	id         uuid.UUID
	built      map[TypeKey]any
	builtOrder []TypeKey
	pending    visitedStack[TypeKey]
}

func newBuildContext(b *Builder) *buildContext {
	return &buildContext{
		registry:   b.registry,
		order:      b.order,
		env:        b.lookupEnv,
		log:        b.log,
		id:         uuid.New(),
		built:      make(map[TypeKey]any, len(b.order)),
		builtOrder: make([]TypeKey, 0, len(b.order)),
	}
}

func (bc *buildContext) run() (*Container, error) {
	start := time.Now()
	bc.log.Debug().Stringer("build", bc.id).Int("components", len(bc.order)).Msg("build started")

	for _, key := range bc.order {
		if _, err := bc.resolve(key); err != nil {
			bc.log.Error().Stringer("build", bc.id).Err(err).Msg("build failed")
			return nil, err
		}
	}

	container := newContainer(bc.id, bc.built, bc.builtOrder)
	bc.log.Debug().Stringer("build", bc.id).Dur("in", time.Since(start)).Msg("container built")

	return container, nil
}

// resolve builds key and everything below it, depth first. Every component
// is constructed at most once, repeated walks hit the built cache.
func (bc *buildContext) resolve(key TypeKey) (any, error) {
	if instance, ok := bc.built[key]; ok {
		return instance, nil
	}

	if bc.pending.Contains(key) {
		return nil, &CircularDependencyError{Path: append(bc.pending.PathFrom(key), key)}
	}

	registration, ok := bc.registry[key]

	if !ok {
		return nil, &UnregisteredDependencyError{Key: key, Path: append(bc.pending.Path(), key)}
	}

	bc.pending.Push(key)
	defer bc.pending.Pop()

	deps := make(Dependencies, len(registration.deps))

	for i, dep := range registration.deps {
		instance, err := bc.resolve(dep)

		if err != nil {
			return nil, err
		}

		deps[i] = instance
	}

	if err := registration.applyEnv(bc.env); err != nil {
		return nil, &ParameterResolutionError{Key: key, Detail: err}
	}

	start := time.Now()
	instance, err := registration.factory(deps, registration.params)

	if err != nil {
		var paramErr *ParameterError

		if errors.As(err, &paramErr) {
			return nil, &ParameterResolutionError{Key: key, Detail: err}
		}

		return nil, &ConstructionError{Key: key, Cause: err}
	}

	bc.built[key] = instance
	bc.builtOrder = append(bc.builtOrder, key)
	bc.log.Debug().Stringer("build", bc.id).Stringer("component", key).Dur("in", time.Since(start)).Msg("component built")

	return instance, nil
}
