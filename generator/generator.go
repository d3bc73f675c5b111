package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/schemagraph/schema"
	"github.com/erraggy/schemagraph/schemaerrors"
	"github.com/erraggy/schemagraph/typedesc"
)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "models.ts", "models.go")
	Name string
	// Content is the generated source code
	Content []byte
}

// GenerateResult contains the results of generating code from a schema document
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// Language is the emitted language
	Language Language
	// PackageName is the Go package name used in generation; empty for TypeScript
	PackageName string
	// GeneratedTypes is the count of types generated
	GeneratedTypes int
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// TypeDefinition is one declaration of the output. Exactly one of Class
// and Enum is set.
type TypeDefinition struct {
	Class *ClassModel
	Enum  *EnumModel
}

// Name returns the declared type name.
func (t TypeDefinition) Name() string {
	if t.Enum != nil {
		return t.Enum.Name
	}
	return t.Class.Name
}

// ModelSet holds the models of every type a document produces, in
// registration order: definitions first, then the root, then anonymous
// types in the order they were first referenced.
type ModelSet struct {
	Language Language
	Types    []TypeDefinition
}

// Class returns the class model with the given name, or nil.
func (m *ModelSet) Class(name string) *ClassModel {
	for _, t := range m.Types {
		if t.Class != nil && t.Class.Name == name {
			return t.Class
		}
	}
	return nil
}

// Enum returns the enum model with the given name, or nil.
func (m *ModelSet) Enum(name string) *EnumModel {
	for _, t := range m.Types {
		if t.Enum != nil && t.Enum.Name == name {
			return t.Enum
		}
	}
	return nil
}

// BuildModels builds the class and enum models of doc without rendering
// them. Type expressions in the models are in the configured language.
func BuildModels(doc *schema.Document, opts ...Option) (*ModelSet, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	return buildModels(doc, cfg)
}

func buildModels(doc *schema.Document, cfg *generateConfig) (*ModelSet, error) {
	if doc == nil || doc.Root == nil {
		return nil, &schemaerrors.StructureError{Message: "generator: document has no root schema"}
	}

	reg := NewTypeNameRegistry(doc)
	b := &modelBuilder{
		doc:       doc,
		registry:  reg,
		enumNames: cfg.enumNames,
		propNames: cfg.propNames,
	}
	switch cfg.language {
	case LanguageGo:
		b.resolver = NewGoResolver(reg, cfg.dates)
	default:
		b.resolver = NewTypeScriptResolver(reg, cfg.dates)
	}

	for _, name := range doc.DefinitionNames() {
		def, _ := doc.Definition(name)
		if isNamedType(typedesc.Describe(def)) {
			reg.Register(def, name)
		}
	}
	if isNamedType(typedesc.Describe(doc.Root)) {
		reg.Register(doc.Root, cfg.rootName)
	}

	set := &ModelSet{Language: cfg.language}
	// Building a class resolves its property types, which may register
	// more types; the loop picks them up.
	for i := 0; i < reg.Len(); i++ {
		node := reg.At(i)
		name, _ := reg.Lookup(node)
		if typedesc.Describe(node).Kind == typedesc.KindEnum {
			set.Types = append(set.Types, TypeDefinition{Enum: b.enumModel(name, node)})
			continue
		}
		class, err := b.classModel(name, node)
		if err != nil {
			return nil, err
		}
		set.Types = append(set.Types, TypeDefinition{Class: class})
		cfg.logger.Debug("built class model", "name", name, "properties", len(class.Properties))
	}
	return set, nil
}

// Generate renders the models of doc into one source file of the
// configured language: models.ts or models.go.
func Generate(doc *schema.Document, opts ...Option) (*GenerateResult, error) {
	start := time.Now()
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	set, err := buildModels(doc, cfg)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		Language:       cfg.language,
		GeneratedTypes: len(set.Types),
	}
	switch cfg.language {
	case LanguageGo:
		src, err := renderGo(set, cfg.packageName)
		if err != nil {
			return nil, fmt.Errorf("generator: formatting Go output: %w", err)
		}
		result.PackageName = cfg.packageName
		result.Files = append(result.Files, GeneratedFile{Name: "models.go", Content: src})
	default:
		result.Files = append(result.Files, GeneratedFile{Name: "models.ts", Content: renderTypeScript(set, cfg.tsStyle)})
	}
	result.GenerateTime = time.Since(start)

	cfg.logger.Info("generated code", "language", string(cfg.language), "types", result.GeneratedTypes)
	return result, nil
}
