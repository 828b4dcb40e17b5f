package di

import (
	"context"
)

// Interface marks a type as eligible for registration and resolution.
// Any type qualifies. Instances stored in a container are shared between
// every dependent, so implementations must be safe for concurrent use once
// the container is built.
type Interface = any

// Launchable services are started by Application.Run in their own goroutine.
type Launchable interface {
	Launch(context.Context)
}

// Stoppable services are shut down by Application.Run when its context ends.
type Stoppable interface {
	Shutdown(context.Context)
}
