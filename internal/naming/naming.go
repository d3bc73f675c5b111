package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToUpperCamelCase removes hyphens, upper-casing the letter after each one,
// and upper-cases the first character. When firstMustBeLetter is set, a
// leading digit is prefixed with an underscore.
// Example: "foo-bar" -> "FooBar"
// Example: "foo_bar" -> "Foo_bar"
// Example: "1st" -> "_1st"
func ToUpperCamelCase(s string, firstMustBeLetter bool) string {
	if s == "" {
		return ""
	}
	if r, _ := utf8.DecodeRuneInString(s); firstMustBeLetter && unicode.IsDigit(r) {
		s = "_" + s
	}

	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))
	capitalizeNext := false

	for _, r := range s {
		if r == '-' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return ToTitleCase(result.String())
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.English, cases.NoLower).String(string(r)) + s[size:]
}
