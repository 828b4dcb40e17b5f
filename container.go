package di

import (
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

// Container is the immutable result of a successful Build: one instance
// per registered interface. Instances are shared, every resolution of the
// same interface observes the same object. The instance map never changes
// after construction, so lookups are safe for concurrent use without
// synchronization. There is no unregister and no rebuild, a new graph
// needs a new Builder.
type Container struct {
	id        uuid.UUID
	instances *xsync.MapOf[TypeKey, any]
	order     []TypeKey
}

func newContainer(id uuid.UUID, built map[TypeKey]any, order []TypeKey) *Container {
	instances := xsync.NewIntegerMapOf[TypeKey, any]()

	for key, instance := range built {
		instances.Store(key, instance)
	}

	return &Container{id: id, instances: instances, order: order}
}

// Resolve returns the instance built for the interface I, or NotFoundError
// if I was never registered. An instance stored through the type-erased
// Register that does not implement I counts as absent.
func Resolve[I Interface](c *Container) (I, error) {
	instance, err := c.ResolveKey(KeyOf[I]())

	if err != nil {
		return *new(I), err
	}

	if instance == nil {
		return *new(I), nil
	}

	typed, ok := instance.(I)

	if !ok {
		return *new(I), &NotFoundError{Key: KeyOf[I]()}
	}

	return typed, nil
}

// MustResolve is Resolve for wiring paths where a missing component is
// unrecoverable anyway. Panics on error.
func MustResolve[I Interface](c *Container) I {
	instance, err := Resolve[I](c)

	if err != nil {
		panic(err)
	}

	return instance
}

// ResolveKey is the type-erased Resolve consumed by generated registration
// code and by the application runner.
func (c *Container) ResolveKey(key TypeKey) (any, error) {
	instance, ok := c.instances.Load(key)

	if !ok {
		return nil, &NotFoundError{Key: key}
	}

	return instance, nil
}

// Has reports whether an instance was built for key.
func (c *Container) Has(key TypeKey) bool {
	_, ok := c.instances.Load(key)
	return ok
}

// Keys returns the component keys in build order: dependencies before their
// dependents, ties between independent components in registration order.
func (c *Container) Keys() []TypeKey {
	keys := make([]TypeKey, len(c.order))
	copy(keys, c.order)
	return keys
}

// Size reports the number of built components.
func (c *Container) Size() int { return len(c.order) }

// ID identifies the build that produced this container. The same id is
// stamped on the build's log events.
func (c *Container) ID() uuid.UUID { return c.id }
