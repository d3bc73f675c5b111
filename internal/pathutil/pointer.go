package pathutil

import (
	"fmt"
	"net/url"
	"strings"
)

// RefPrefixDefinitions is the pointer prefix of the shared definitions table.
const RefPrefixDefinitions = "#/definitions/"

// DefinitionRef builds "#/definitions/{name}".
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + Escape(name)
}

// DefinitionName extracts the definition name from a "#/definitions/{name}"
// reference, or returns "" when ref points elsewhere.
func DefinitionName(ref string) string {
	if !strings.HasPrefix(ref, RefPrefixDefinitions) {
		return ""
	}
	rest := ref[len(RefPrefixDefinitions):]
	if strings.Contains(rest, "/") {
		return ""
	}
	return Unescape(rest)
}

// Escape encodes a reference token per RFC 6901 (~ to ~0, / to ~1).
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// Unescape reverses Escape. ~1 must be replaced before ~0.
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// SplitRef separates a reference into its document part and its fragment.
// "other.json#/definitions/A" yields ("other.json", "/definitions/A").
func SplitRef(ref string) (doc, fragment string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// Split parses a fragment pointer ("/a/b~1c" or "#/a/b") into unescaped
// tokens. Percent-encoding is decoded first, as fragments are URI encoded.
func Split(pointer string) ([]string, error) {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" {
		return nil, nil
	}
	decoded, err := url.PathUnescape(pointer)
	if err != nil {
		return nil, fmt.Errorf("pathutil: invalid pointer %q: %w", pointer, err)
	}
	if decoded[0] != '/' {
		return nil, fmt.Errorf("pathutil: pointer %q must start with '/'", pointer)
	}
	parts := strings.Split(decoded[1:], "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts, nil
}
