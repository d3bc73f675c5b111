package generator

import (
	"go/token"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
)

// Language selects the emitted source language.
type Language string

const (
	LanguageTypeScript Language = "ts"
	LanguageGo         Language = "go"
)

// ParseLanguage accepts the short names and a few common spellings.
func ParseLanguage(s string) (Language, bool) {
	switch s {
	case "ts", "typescript", "TypeScript":
		return LanguageTypeScript, true
	case "go", "golang", "Go":
		return LanguageGo, true
	}
	return "", false
}

// TypeScriptStyle selects how TypeScript classes are declared.
type TypeScriptStyle int

const (
	// TypeScriptInterface emits `export interface` declarations.
	TypeScriptInterface TypeScriptStyle = iota
	// TypeScriptClass emits `export class` declarations that set their
	// discriminator value in the constructor.
	TypeScriptClass
)

const defaultPackageName = "models"

// Option configures a generation run.
type Option func(*generateConfig) error

type generateConfig struct {
	language    Language
	packageName string
	rootName    string
	dates       bool
	tsStyle     TypeScriptStyle
	enumNames   EnumNameGenerator
	propNames   PropertyNameGenerator
	logger      schema.Logger
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		language:    LanguageTypeScript,
		packageName: defaultPackageName,
		rootName:    "Root",
		dates:       true,
		enumNames:   DefaultEnumNameGenerator{},
		propNames:   DefaultPropertyNameGenerator{},
		logger:      schema.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLanguage selects the output language. The default is TypeScript.
func WithLanguage(l Language) Option {
	return func(cfg *generateConfig) error {
		if l != LanguageTypeScript && l != LanguageGo {
			return &schemaerrors.ConfigError{Option: "WithLanguage", Value: l, Message: "unsupported language"}
		}
		cfg.language = l
		return nil
	}
}

// WithPackageName sets the Go package clause. Ignored for TypeScript.
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &schemaerrors.ConfigError{Option: "WithPackageName", Message: "package name cannot be empty"}
		}
		if !token.IsIdentifier(name) {
			return &schemaerrors.ConfigError{Option: "WithPackageName", Value: name, Message: "not a valid Go package name"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithRootName sets the name hint for the root schema when it has neither
// a type name nor a title.
func WithRootName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &schemaerrors.ConfigError{Option: "WithRootName", Message: "root name cannot be empty"}
		}
		cfg.rootName = name
		return nil
	}
}

// WithDates controls whether date-time strings map to the language's date
// type (Date, time.Time) or stay strings.
func WithDates(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.dates = enabled
		return nil
	}
}

// WithTypeScriptStyle selects interfaces or classes for TypeScript output.
func WithTypeScriptStyle(style TypeScriptStyle) Option {
	return func(cfg *generateConfig) error {
		if style != TypeScriptInterface && style != TypeScriptClass {
			return &schemaerrors.ConfigError{Option: "WithTypeScriptStyle", Value: style, Message: "unknown style"}
		}
		cfg.tsStyle = style
		return nil
	}
}

// WithEnumNameGenerator replaces DefaultEnumNameGenerator.
func WithEnumNameGenerator(g EnumNameGenerator) Option {
	return func(cfg *generateConfig) error {
		if g == nil {
			return &schemaerrors.ConfigError{Option: "WithEnumNameGenerator", Message: "generator cannot be nil"}
		}
		cfg.enumNames = g
		return nil
	}
}

// WithPropertyNameGenerator replaces DefaultPropertyNameGenerator.
func WithPropertyNameGenerator(g PropertyNameGenerator) Option {
	return func(cfg *generateConfig) error {
		if g == nil {
			return &schemaerrors.ConfigError{Option: "WithPropertyNameGenerator", Message: "generator cannot be nil"}
		}
		cfg.propNames = g
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l schema.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = schema.LoggerOrNop(l)
		return nil
	}
}
