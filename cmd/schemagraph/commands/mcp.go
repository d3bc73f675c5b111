package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/schemagraph/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagraph mcp\n\n")
		Writef(fs.Output(), "Serve the validate_instance, describe_schema and generate_code tools\n")
		Writef(fs.Output(), "over the Model Context Protocol on stdin/stdout.\n\n")
		Writef(fs.Output(), "Configuration is read from SCHEMAGRAPH_* environment variables.\n")
	}
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
