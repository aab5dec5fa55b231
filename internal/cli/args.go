package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/credload/internal/files/filesystem"
)

// RequireSource validates that exactly one source argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireSource(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <source>

Usage: %s

Example:
  %s users.txt
  cat users.txt | %s -`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// sourceLabel names a source in messages.
func sourceLabel(source string) string {
	if source == filesystem.StdinPath {
		return "stdin"
	}
	return fmt.Sprintf("%q", source)
}
