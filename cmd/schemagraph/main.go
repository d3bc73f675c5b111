package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/schemagraph"
	"github.com/erraggy/schemagraph/cmd/schemagraph/commands"
)

// commandNames lists every command main dispatches, for typo suggestions.
var commandNames = []string{"validate", "describe", "flatten", "generate", "mcp", "version", "help"}

var handlers = map[string]func([]string) error{
	"validate": commands.HandleValidate,
	"describe": commands.HandleDescribe,
	"flatten":  commands.HandleFlatten,
	"generate": commands.HandleGenerate,
	"mcp":      commands.HandleMCP,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schemagraph v%s\n", schemagraph.Version())
		fmt.Println(schemagraph.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err := handler(args[1:]); err != nil {
		if !errors.Is(err, commands.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprint(os.Stderr, `schemagraph - JSON Schema (draft-04) toolkit

Usage:
  schemagraph <command> [flags] [args]

Commands:
  validate   Validate a JSON instance against a schema
  describe   Describe a schema node and its effective properties
  flatten    Merge allOf inheritance into each definition
  generate   Generate TypeScript or Go models
  mcp        Run the MCP server over stdio
  version    Show version information
  help       Show this help message

Run 'schemagraph <command> --help' for command flags.
`)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
