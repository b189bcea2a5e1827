package installer

import (
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/rs/zerolog"
)

// Engine plans and applies installs against a filesystem.
type Engine struct {
	fs     types.FS
	logger zerolog.Logger
	lock   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLock enables or disables the advisory lock file taken by Apply.
// The lock is enabled by default.
func WithLock(enabled bool) Option {
	return func(e *Engine) {
		e.lock = enabled
	}
}

// New returns an Engine operating on fs.
func New(fs types.FS, opts ...Option) *Engine {
	e := &Engine{
		fs:     fs,
		logger: logging.GetLogger("installer"),
		lock:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
