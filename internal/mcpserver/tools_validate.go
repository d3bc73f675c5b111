package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/internal/describe"
	"github.com/erraggy/schemagraph/validator"
)

// patterns is shared by every validate_instance call in the session.
var patterns = validator.NewPatternCache()

type validateInstanceInput struct {
	Schema       schemaInput `json:"schema"                  jsonschema:"The JSON Schema document to validate against"`
	Instance     string      `json:"instance,omitempty"      jsonschema:"Inline JSON instance to validate"`
	InstanceFile string      `json:"instance_file,omitempty" jsonschema:"Path to a JSON instance file on disk"`
	Ref          string      `json:"ref,omitempty"           jsonschema:"Definition name or JSON pointer (#/definitions/Pet) to validate against instead of the root"`
	Formats      *bool       `json:"formats,omitempty"       jsonschema:"Check string formats such as date-time, email and uuid"`
	Offset       int         `json:"offset,omitempty"        jsonschema:"Skip the first N top-level errors (for pagination)"`
	Limit        int         `json:"limit,omitempty"         jsonschema:"Maximum number of top-level errors to return (default 100). Nested errors of a returned error are always included."`
}

// validateIssue is one error of the tree in pre-order. Nested errors
// follow their parent with Depth one greater; Branch is the index of the
// sub-schema that produced them.
type validateIssue struct {
	Kind     string `json:"kind"`
	Property string `json:"property,omitempty"`
	Path     string `json:"path"`
	Depth    int    `json:"depth"`
	Branch   int    `json:"branch"`
}

type validateInstanceOutput struct {
	Valid         bool            `json:"valid"`
	ErrorCount    int             `json:"error_count"`
	TopLevelCount int             `json:"top_level_count"`
	Returned      int             `json:"returned"`
	Errors        []validateIssue `json:"errors,omitempty"`
	Report        string          `json:"report,omitempty"`
}

func handleValidateInstance(_ context.Context, _ *mcp.CallToolRequest, input validateInstanceInput) (*mcp.CallToolResult, validateInstanceOutput, error) {
	formats := cfg.ValidateFormats
	if input.Formats != nil {
		formats = *input.Formats
	}

	raw, err := readInstance(input.Instance, input.InstanceFile)
	if err != nil {
		return errResult(err), validateInstanceOutput{}, nil
	}
	instance, err := validator.ParseInstance(raw)
	if err != nil {
		return errResult(err), validateInstanceOutput{}, nil
	}

	doc, err := input.Schema.load()
	if err != nil {
		return errResult(err), validateInstanceOutput{}, nil
	}
	node, err := describe.Select(doc, input.Ref)
	if err != nil {
		return errResult(err), validateInstanceOutput{}, nil
	}

	v, err := validator.New(
		validator.WithFormatValidation(formats),
		validator.WithPatternCache(patterns),
	)
	if err != nil {
		return errResult(err), validateInstanceOutput{}, nil
	}
	errs := v.Validate(instance, node)

	output := validateInstanceOutput{
		Valid:         len(errs) == 0,
		ErrorCount:    validator.Count(errs),
		TopLevelCount: len(errs),
	}
	page := paginate(errs, input.Offset, input.Limit)
	output.Returned = len(page)
	output.Errors = makeSlice[validateIssue](validator.Count(page))
	for _, e := range page {
		output.Errors = appendIssues(output.Errors, e, 0, 0)
	}
	output.Report = validator.Report(page)

	return nil, output, nil
}

func appendIssues(dst []validateIssue, e validator.ValidationError, depth, branch int) []validateIssue {
	dst = append(dst, validateIssue{
		Kind:     e.Kind.String(),
		Property: e.Property,
		Path:     e.Path,
		Depth:    depth,
		Branch:   branch,
	})
	for i, b := range e.Errors {
		for _, child := range b.Errors {
			dst = appendIssues(dst, child, depth+1, i)
		}
	}
	return dst
}

func readInstance(content, file string) ([]byte, error) {
	if (content == "") == (file == "") {
		return nil, fmt.Errorf("exactly one of instance or instance_file must be provided")
	}
	if file != "" {
		return os.ReadFile(file)
	}
	if err := checkInlineSize("instance", content); err != nil {
		return nil, err
	}
	return []byte(content), nil
}
