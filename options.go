package di

import "github.com/rs/zerolog"

// Option configures a Builder at construction time.
type Option = func(*Builder)

// WithLogger attaches a logger. Registration and build events are emitted
// at debug level, build failures at error level. The default is a nop
// logger, the container stays silent unless a logger is provided.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Builder) { b.log = log }
}
