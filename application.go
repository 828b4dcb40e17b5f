package di

import (
	"context"
	"github.com/rs/zerolog"
	"os"
	"os/signal"
	"syscall"
)

type containerKey struct{}

// ContainerFrom returns the container Run placed into the context passed
// to Launchable services.
func ContainerFrom(ctx context.Context) (*Container, bool) {
	container, ok := ctx.Value(containerKey{}).(*Container)
	return container, ok
}

// Application ties a dependency graph to the process lifecycle: build the
// container, launch its services, wait for a signal, shut them down.
type Application struct {
	name      string
	builder   *Builder
	log       zerolog.Logger
	container *Container
}

func NewApplication(name string, opts ...Option) *Application {
	builder := NewBuilder(opts...)
	return &Application{name: name, builder: builder, log: builder.log}
}

func (a *Application) Name() string { return a.name }

// Builder exposes the registration surface until Run consumes it.
func (a *Application) Builder() *Builder { return a.builder }

// Container returns the built container, nil before Run reaches a
// successful build.
func (a *Application) Container() *Container { return a.container }

// Run builds the container, launches every Launchable component in its own
// goroutine and blocks until ctx ends or the process receives SIGINT or
// SIGTERM. Stoppable components are then shut down sequentially in reverse
// build order, so dependents stop before anything they depend on. Returns
// the build error, if any.
func (a *Application) Run(ctx context.Context) error {
	container, err := a.builder.Build()

	if err != nil {
		return err
	}

	a.container = container

	ctx = context.WithValue(ctx, containerKey{}, container)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info().Str("application", a.name).Int("components", container.Size()).Msg("application starting")

	keys := container.Keys()

	for _, key := range keys {
		instance, _ := container.ResolveKey(key)

		if service, ok := instance.(Launchable); ok {
			go a.launch(ctx, service)
		}
	}

	<-ctx.Done()

	// Shutdown still sees the context values, including the container, but
	// not the cancellation that triggered it.
	shutdownCtx := context.WithoutCancel(ctx)

	for i := len(keys) - 1; i >= 0; i-- {
		instance, _ := container.ResolveKey(keys[i])

		if service, ok := instance.(Stoppable); ok {
			service.Shutdown(shutdownCtx)
		}
	}

	a.log.Info().Str("application", a.name).Msg("application stopped")
	return nil
}

func (a *Application) launch(ctx context.Context, service Launchable) {
	defer func() {
		if err := recover(); err != nil {
			a.log.Error().Interface("panic", err).Msg("service panicked, relaunching")
			go a.launch(ctx, service)
		}
	}()

	service.Launch(ctx)
}
