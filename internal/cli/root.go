package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvka-141/credload/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "credload",
	Short: "Validate and load username/PIN credential files",
	Long: `credload validates a flat file of <username>!<pin> records and loads it into a
credential store. Every record is validated before anything is written: a
single invalid line leaves the store exactly as it was.

Stores:
  memory    in-process map (validation and statistics only)
  postgres  upserts into a table, one transaction per load
  redis     one HSET into a hash, atomic on the server

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Credential store connection failed
  12 - Source file could not be read
  13 - Invalid records in the source
  14 - Store rejected the commit`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints the error that ended it, if any.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	err := rootCmd.Execute()
	if err != nil {
		ui.NewPrinter(os.Stderr).Failure(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
