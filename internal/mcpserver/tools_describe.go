package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/internal/describe"
)

type describeSchemaInput struct {
	Schema schemaInput `json:"schema"        jsonschema:"The JSON Schema document containing the node"`
	Ref    string      `json:"ref,omitempty" jsonschema:"Definition name or JSON pointer (#/definitions/Pet) of the node to describe. Defaults to the root."`
}

func handleDescribeSchema(_ context.Context, _ *mcp.CallToolRequest, input describeSchemaInput) (*mcp.CallToolResult, describe.Summary, error) {
	doc, err := input.Schema.load()
	if err != nil {
		return errResult(err), describe.Summary{}, nil
	}

	var summary *describe.Summary
	if input.Ref == "" {
		summary, err = describe.Document(doc)
	} else {
		node, lookupErr := describe.Select(doc, input.Ref)
		if lookupErr != nil {
			return errResult(lookupErr), describe.Summary{}, nil
		}
		summary, err = describe.Node(doc, node)
	}
	if err != nil {
		return errResult(err), describe.Summary{}, nil
	}
	return nil, *summary, nil
}
