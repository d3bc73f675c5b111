package composition

import "github.com/erraggy/schemagraph/schema"

// Option configures Resolve.
type Option func(*config) error

type config struct {
	flatten bool
	doc     *schema.Document
	logger  schema.Logger
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{logger: schema.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithFlatten lets a redeclared property replace the inherited one instead
// of failing.
func WithFlatten(flatten bool) Option {
	return func(cfg *config) error {
		cfg.flatten = flatten
		return nil
	}
}

// WithDocument names types by their definition name in errors.
func WithDocument(doc *schema.Document) Option {
	return func(cfg *config) error {
		cfg.doc = doc
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
