package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Empty and single characters
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "single uppercase letter", input: "A", want: "A"},
		{name: "single digit", input: "1", want: "1"},

		// Underscore separators
		{name: "snake_case simple", input: "user_profile", want: "UserProfile"},
		{name: "snake_case three words", input: "get_user_by_id", want: "GetUserById"},
		{name: "leading underscore", input: "_private", want: "Private"},
		{name: "trailing underscore", input: "value_", want: "Value"},
		{name: "double underscore", input: "double__under", want: "DoubleUnder"},

		// Hyphen separators
		{name: "kebab-case simple", input: "api-client", want: "ApiClient"},
		{name: "kebab-case three words", input: "get-user-by-id", want: "GetUserById"},
		{name: "leading hyphen", input: "-private", want: "Private"},
		{name: "trailing hyphen", input: "value-", want: "Value"},

		// Dot separators
		{name: "dot separator", input: "com.example.api", want: "ComExampleApi"},
		{name: "leading dot", input: ".hidden", want: "Hidden"},

		// Slash separators
		{name: "slash separator", input: "users/profile", want: "UsersProfile"},
		{name: "path-like", input: "/api/v1/users", want: "ApiV1Users"},

		// Mixed separators
		{name: "mixed separators", input: "get_user-by.id/name", want: "GetUserByIdName"},
		{name: "consecutive mixed separators", input: "foo_-bar", want: "FooBar"},

		// Already cased
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "all caps", input: "API", want: "API"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},

		// Unicode characters
		{name: "unicode lowercase", input: "über_user", want: "ÜberUser"},
		{name: "unicode uppercase", input: "Über_user", want: "ÜberUser"},
		{name: "japanese characters", input: "日本語_test", want: "日本語Test"},

		// Numbers
		{name: "with numbers", input: "api_v2_client", want: "ApiV2Client"},
		{name: "leading number", input: "123_abc", want: "123Abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPascalCase(tt.input)
			assert.Equal(t, tt.want, got, "ToPascalCase(%q)", tt.input)
		})
	}
}

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Empty and single characters
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "single uppercase letter", input: "A", want: "A"},
		{name: "single digit", input: "1", want: "1"},

		// Words
		{name: "lowercase word", input: "hello", want: "Hello"},
		{name: "uppercase word", input: "HELLO", want: "HELLO"},
		{name: "mixed case", input: "hELLO", want: "HELLO"},
		{name: "multiple words", input: "hello world", want: "Hello world"},
		{name: "already titled", input: "Hello", want: "Hello"},

		// Unicode
		{name: "unicode lowercase", input: "über", want: "Über"},
		{name: "unicode uppercase", input: "Über", want: "Über"},
		{name: "japanese", input: "日本語", want: "日本語"},

		// With separators (only first letter is affected)
		{name: "snake_case", input: "hello_world", want: "Hello_world"},
		{name: "kebab-case", input: "hello-world", want: "Hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToTitleCase(tt.input)
			assert.Equal(t, tt.want, got, "ToTitleCase(%q)", tt.input)
		})
	}
}

func TestToUpperCamelCase(t *testing.T) {
	tests := []struct {
		input     string
		mustAlpha bool
		want      string
	}{
		{"", true, ""},
		{"foo", true, "Foo"},
		{"foo-bar", true, "FooBar"},
		{"foo_bar", true, "Foo_bar"},
		{"foo bar", true, "Foo bar"},
		{"odata-type", true, "OdataType"},
		{"1st", true, "_1st"},
		{"1st", false, "1st"},
		{"-1", true, "1"},
		{"a--b", true, "AB"},
		{"über-user", true, "ÜberUser"},
	}
	for _, tt := range tests {
		got := ToUpperCamelCase(tt.input, tt.mustAlpha)
		assert.Equal(t, tt.want, got, "ToUpperCamelCase(%q, %v)", tt.input, tt.mustAlpha)
	}
}

func TestEdgeCases(t *testing.T) {
	t.Run("consecutive separators in PascalCase", func(t *testing.T) {
		tests := []struct {
			input string
			want  string
		}{
			{"a__b", "AB"},
			{"a---b", "AB"},
			{"a...b", "AB"},
			{"a///b", "AB"},
			{"_-._", ""},
		}
		for _, tt := range tests {
			got := ToPascalCase(tt.input)
			assert.Equal(t, tt.want, got, "ToPascalCase(%q)", tt.input)
		}
	})
}
