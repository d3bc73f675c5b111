// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemagraph capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph"
)

const serverInstructions = `schemagraph MCP server: validates JSON instances against JSON Schema (draft-04) documents, describes schema nodes, and generates TypeScript or Go models.

Configuration: All defaults are configurable via SCHEMAGRAPH_* environment variables set in your MCP client config.

Key settings:
- SCHEMAGRAPH_CACHE_ENABLED (default: true) - disable schema caching entirely
- SCHEMAGRAPH_CACHE_MAX_SIZE (default: 10) - maximum number of cached schema documents
- SCHEMAGRAPH_CACHE_TTL (default: 15m) - cache TTL for loaded schemas
- SCHEMAGRAPH_VALIDATE_FORMATS (default: true) - check string formats during validation
- SCHEMAGRAPH_ERROR_LIMIT (default: 100) - default page size for validation errors
- SCHEMAGRAPH_MAX_INLINE_SIZE (default: 10MiB) - maximum inline schema or instance size

Caching: Loaded schemas are cached per session. File entries use path+mtime as key (auto-invalidated on change); inline content is keyed by its SHA-256 hash. A background sweeper removes expired entries.

Refs: tools that take a ref accept a definition name ("Pet") or a JSON pointer ("#/definitions/Pet"). Without a ref the document root is used.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemagraph", Version: schemagraph.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_instance",
		Description: "Validate a JSON instance against a JSON Schema (draft-04) document. Returns every violation with its kind, property and JSON path. Composition failures (anyOf, allOf, oneOf), array items and additional properties carry the nested errors of each sub-schema tried. Use ref to validate against a definition instead of the root. Use offset/limit to paginate through top-level errors. Format checking defaults to SCHEMAGRAPH_VALIDATE_FORMATS.",
	}, handleValidateInstance)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_schema",
		Description: "Describe a schema node: its kind (object, dictionary, enum, array or primitive), format, nullability, inherited base, derived schemas, discriminator and the effective property list after allOf inheritance is merged. Without ref, also lists the document's definitions.",
	}, handleDescribeSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_code",
		Description: "Generate TypeScript interfaces/classes or Go structs from a JSON Schema document. Every definition and the root become named types; enums become TypeScript enums or Go const blocks. Returns the generated source inline, or writes it to output_dir and returns a manifest.",
	}, handleGenerateCode)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ErrorLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ErrorLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
