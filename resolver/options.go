package resolver

import (
	"strings"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

// Option configures Resolve, Lookup and NewRegistry.
type Option func(*config) error

type config struct {
	logger    schema.Logger
	documents map[string]*schema.Document
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger:    schema.NopLogger{},
		documents: make(map[string]*schema.Document),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger.
func WithLogger(l schema.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = schema.LoggerOrNop(l)
		return nil
	}
}

// WithDocument makes doc addressable by id, so "id#/definitions/X" resolves
// into it. The document's root id, when set, is registered as well.
func WithDocument(id string, doc *schema.Document) Option {
	return func(cfg *config) error {
		if doc == nil {
			return &schemaerrors.ConfigError{Option: "WithDocument", Value: id, Message: "document is nil"}
		}
		id = normalizeID(id)
		if id == "" {
			return &schemaerrors.ConfigError{Option: "WithDocument", Message: "id must not be empty"}
		}
		cfg.documents[id] = doc
		if rootID := normalizeID(doc.Root.ID); rootID != "" {
			cfg.documents[rootID] = doc
		}
		return nil
	}
}

func normalizeID(id string) string {
	return strings.TrimSuffix(id, "#")
}
