package mcpserver

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/erraggy/schemagraph/resolver"
	"github.com/erraggy/schemagraph/schema"
)

// schemaInput represents the two ways a schema document can be provided to
// a tool. Exactly one of File or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON Schema file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON Schema document content (JSON or YAML)"`
}

// loadGroup collapses concurrent loads of the same document into one.
var loadGroup singleflight.Group

// load returns the resolved document for the input, from the cache when
// possible.
func (s schemaInput) load() (*schema.Document, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if err := checkInlineSize("schema", s.Content); err != nil {
		return nil, err
	}

	if !cfg.CacheEnabled {
		return s.loadUncached()
	}
	key, ok := keyFor(s)
	if !ok {
		return s.loadUncached()
	}
	if doc, ok := docCache.lookup(key); ok {
		return doc, nil
	}

	v, err, _ := loadGroup.Do(key.String(), func() (any, error) {
		doc, err := s.loadUncached()
		if err != nil {
			return nil, err
		}
		docCache.store(key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schema.Document), nil
}

func (s schemaInput) loadUncached() (*schema.Document, error) {
	var doc *schema.Document
	var err error
	if s.File != "" {
		doc, err = schema.LoadFile(s.File)
	} else {
		doc, err = schema.Load([]byte(s.Content), schema.WithSourceName("content"))
	}
	if err != nil {
		return nil, err
	}
	if err := resolver.Resolve(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkInlineSize(what, content string) error {
	if int64(len(content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline %s size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMAGRAPH_MAX_INLINE_SIZE to increase",
			what, len(content), cfg.MaxInlineSize)
	}
	return nil
}
