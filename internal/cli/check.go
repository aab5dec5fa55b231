package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/credload/internal/files/filesystem"
	"github.com/vvka-141/credload/internal/files/loader"
	"github.com/vvka-141/credload/internal/logging"
	"github.com/vvka-141/credload/internal/ui"
)

type checkFlagValues struct {
	configPath string
	strict     bool
}

func newCheckCmd() *cobra.Command {
	var flags checkFlagValues

	cmd := &cobra.Command{
		Use:   "check <source>",
		Short: "Validate a credential file without loading it",
		Long: `Check validates every record of <source> ("-" for stdin) and lists each invalid
line with the reason. Nothing is written to any store. Record content is never
printed, so the output is safe to share.

Exits 13 when at least one line is invalid.

Examples:
  credload check users.txt
  credload check users.txt --strict`,
		Args: RequireSource,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to the config file (default: ./credload.yaml when present)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"Reject empty usernames and usernames repeated within the source")

	return cmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func runCheck(cmd *cobra.Command, args []string, flags checkFlagValues) error {
	source := args[0]
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	cfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return err
	}
	policy := resolvePolicy(cmd, flags.strict, cfg)

	l := loader.New(filesystem.NewOSFileSystemWithStdin(cmd.InOrStdin()), logger, loader.WithPolicy(policy))
	report, problems, err := l.Check(source)
	if err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).CheckSummary(report, problems)
	if len(problems) > 0 {
		return fmt.Errorf("check %s: %d invalid line(s), first %w", sourceLabel(source), len(problems), problems[0])
	}
	return nil
}
