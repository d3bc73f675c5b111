package builder

import (
	"reflect"
	"strings"

	"github.com/erraggy/schemagraph/internal/naming"
)

// typeName returns the definition name for a named Go type: the type name
// with generic brackets sanitized. When checkConflict reports the name as
// taken by another type, the sanitized package path is prepended.
func typeName(t reflect.Type, checkConflict func(name string) bool) string {
	if t.Name() == "" {
		return ""
	}
	name := sanitizeSchemaName(t.Name())
	if checkConflict(name) {
		if pkg := t.PkgPath(); pkg != "" {
			name = sanitizePath(pkg) + "_" + name
		}
	}
	return name
}

// genericBaseName returns the base name of a generic type, e.g.
// "Response[User]" -> "Response".
func genericBaseName(name string) string {
	if idx := strings.Index(name, "["); idx != -1 {
		return name[:idx]
	}
	return name
}

// sanitizePath replaces path separators with underscores.
// Example: "github.com/org/models" -> "github.com_org_models"
func sanitizePath(s string) string {
	return strings.ReplaceAll(s, "/", "_")
}

// sanitizeSchemaName turns a Go type name into a name usable in a JSON
// pointer. Generic arguments are reduced to their last path element and
// PascalCased.
// Example: "Response[github.com/org/models.User]" -> "Response_User"
func sanitizeSchemaName(name string) string {
	base := genericBaseName(name)
	if base == name {
		return name
	}
	params := strings.TrimSuffix(strings.TrimPrefix(name[len(base):], "["), "]")

	var b strings.Builder
	b.WriteString(base)
	for _, param := range splitGenericParams(params) {
		if idx := strings.LastIndexAny(genericBaseName(param), "./"); idx != -1 {
			param = param[idx+1:]
		}
		b.WriteByte('_')
		b.WriteString(naming.ToPascalCase(sanitizeSchemaName(param)))
	}
	return b.String()
}

// splitGenericParams splits type parameters on top-level commas.
// Example: "string,List[int]" -> ["string", "List[int]"]
func splitGenericParams(s string) []string {
	var params []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		params = append(params, strings.TrimSpace(current.String()))
	}
	return params
}
