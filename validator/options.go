package validator

import (
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

// Option configures a Validator.
type Option func(*config) error

type config struct {
	formats  bool
	logger   schema.Logger
	patterns *PatternCache
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{formats: true, logger: schema.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.patterns == nil {
		cfg.patterns = NewPatternCache()
	}
	return cfg, nil
}

// WithFormatValidation enables or disables checking string formats such as
// date-time and email.
// Default: true
func WithFormatValidation(enabled bool) Option {
	return func(c *config) error {
		c.formats = enabled
		return nil
	}
}

// WithLogger sets the logger. Invalid patterns are reported at warn level.
func WithLogger(l schema.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return &schemaerrors.ConfigError{Option: "WithLogger", Message: "logger is nil"}
		}
		c.logger = l
		return nil
	}
}

// WithPatternCache shares a compiled pattern cache between validators.
// A nil cache gives the validator a private one.
func WithPatternCache(p *PatternCache) Option {
	return func(c *config) error {
		c.patterns = p
		return nil
	}
}
