package builder

import (
	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

// Option configures a Builder instance.
// Options are applied when creating a new Builder with New().
type Option func(*config) error

// config holds builder configuration applied via options.
type config struct {
	settings  Settings
	logger    schema.Logger
	processor FieldProcessor
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		settings: DefaultSettings(),
		logger:   schema.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithSettings replaces the generation settings.
func WithSettings(s Settings) Option {
	return func(cfg *config) error {
		if _, ok := schemaTypeNames[s.SchemaType]; !ok {
			return &schemaerrors.ConfigError{Option: "WithSettings", Value: s.SchemaType, Message: "unknown schema type"}
		}
		cfg.settings = s
		return nil
	}
}

// WithSchemaType sets only the output dialect.
func WithSchemaType(t SchemaType) Option {
	return func(cfg *config) error {
		if _, ok := schemaTypeNames[t]; !ok {
			return &schemaerrors.ConfigError{Option: "WithSchemaType", Value: t, Message: "unknown schema type"}
		}
		cfg.settings.SchemaType = t
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l schema.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = schema.LoggerOrNop(l)
		return nil
	}
}

// WithFieldProcessor sets a hook called for every struct field the Go type
// front end turns into a property. See FieldProcessor.
func WithFieldProcessor(fn FieldProcessor) Option {
	return func(cfg *config) error {
		cfg.processor = fn
		return nil
	}
}
