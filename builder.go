package di

import (
	"github.com/rs/zerolog"
	"sync/atomic"
)

// Builder accumulates registrations and turns them into a Container. Use
// NewBuilder, the zero value is not functional.
//
// A builder is consumed by its first Build call and cannot be reused, a
// fresh dependency graph needs a fresh builder.
type Builder struct {
	registry map[TypeKey]*Registration
	order    []TypeKey
	env      map[string]string
	log      zerolog.Logger

	consumed atomic.Bool
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		registry: make(map[TypeKey]*Registration),
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Register adds or replaces the registration resolved as key. The factory
// receives the instances of deps in the given order. Replacing a
// registration keeps its original position, so build-order tie-breaking
// stays stable. Registering on a consumed builder panics.
func (b *Builder) Register(key TypeKey, factory Factory, deps ...TypeKey) *Registration {
	if b.consumed.Load() {
		panic("di: builder already consumed")
	}

	registration := &Registration{
		key:     key,
		deps:    deps,
		factory: factory,
		params:  NewParameters(),
	}

	if _, replaced := b.registry[key]; replaced {
		b.log.Debug().Stringer("component", key).Msg("registration replaced")
	} else {
		b.order = append(b.order, key)
	}

	b.registry[key] = registration
	b.log.Debug().Stringer("component", key).Int("dependencies", len(deps)).Msg("component registered")

	return registration
}

// Build resolves every registration in dependency order and produces the
// container. Independent components are built in registration order. The
// builder is consumed whether the build succeeds or not, a second call
// returns ErrBuilderConsumed. Any failure aborts the whole build: no
// container is returned and no partially built graph is observable.
func (b *Builder) Build() (*Container, error) {
	if !b.consumed.CompareAndSwap(false, true) {
		return nil, ErrBuilderConsumed
	}

	return newBuildContext(b).run()
}
