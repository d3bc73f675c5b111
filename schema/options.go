package schema

import (
	"github.com/erraggy/schemagraph/schemaerrors"
)

// DefaultMaxDepth bounds the nesting depth of schema text accepted by Load.
// It protects against hostile input only; resolved graphs may be cyclic and
// are never depth limited.
const DefaultMaxDepth = 512

// LoadOption configures Load.
type LoadOption func(*loadConfig) error

type loadConfig struct {
	logger     Logger
	sourceName string
	maxDepth   int
}

func applyLoadOptions(opts ...LoadOption) (*loadConfig, error) {
	cfg := &loadConfig{
		logger:   NopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger used while loading.
func WithLogger(l Logger) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.logger = LoggerOrNop(l)
		return nil
	}
}

// WithSourceName records where the text came from; it appears in errors and
// becomes Document.Source.
func WithSourceName(name string) LoadOption {
	return func(cfg *loadConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) LoadOption {
	return func(cfg *loadConfig) error {
		if depth <= 0 {
			return &schemaerrors.ConfigError{Option: "WithMaxDepth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}
