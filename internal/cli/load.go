package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/credload/internal/files/filesystem"
	"github.com/vvka-141/credload/internal/files/loader"
	"github.com/vvka-141/credload/internal/logging"
	"github.com/vvka-141/credload/internal/store"
	"github.com/vvka-141/credload/internal/ui"
	"github.com/vvka-141/credload/pkg/credload"
)

func newLoadCmd() *cobra.Command {
	var flags storeFlagValues

	cmd := &cobra.Command{
		Use:   "load <source>",
		Short: "Validate a credential file and load it into a store",
		Long: `Load reads <source> ("-" for stdin), validates every record and, only when all
of them are valid, commits them to the selected store in file order. A
username that appears twice keeps the PIN of its last occurrence.

Record format, one per line:
  <username>!<pin>      PIN is 4 digits and does not start with 0

Configuration precedence: flag > environment variable > credload.yaml > default.

Environment:
  CREDLOAD_STORE            store backend
  CREDLOAD_DATABASE_URL     PostgreSQL DSN (falls back to DATABASE_URL)
  CREDLOAD_REDIS_ADDR       Redis host:port or redis:// URL
  CREDLOAD_REDIS_PASSWORD   Redis password (never accepted as a flag)

Examples:
  # Validate and count only
  credload load users.txt

  # Load into PostgreSQL
  credload load users.txt --store postgres --dsn postgres://loader@db/auth

  # Load from a pipe into Redis, rejecting duplicates and empty usernames
  cat users.txt | credload load - --store redis --redis-addr cache:6379 --strict`,
		Args: RequireSource,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "",
		"Path to the config file (default: ./credload.yaml when present)")
	f.BoolVar(&flags.strict, "strict", false,
		"Reject empty usernames and usernames repeated within the source")
	f.DurationVar(&flags.timeout, "timeout", credload.DefaultTimeout,
		"Upper bound for the whole load, including store connection and retries")

	f.StringVar(&flags.store, "store", credload.StoreMemory,
		"Credential store: memory|postgres|redis")
	f.StringVar(&flags.dsn, "dsn", "",
		"PostgreSQL connection string (or $CREDLOAD_DATABASE_URL, $DATABASE_URL)")
	f.StringVar(&flags.table, "table", "",
		"PostgreSQL table, optionally schema-qualified (default "+credload.DefaultPostgresTable+")")
	f.BoolVar(&flags.skipSchema, "skip-schema", false,
		"Do not create the PostgreSQL table if it is missing")
	f.StringVar(&flags.redisAddr, "redis-addr", "",
		"Redis host:port or redis:// URL (or $CREDLOAD_REDIS_ADDR)")
	f.IntVar(&flags.redisDB, "redis-db", 0,
		"Redis logical database")
	f.StringVar(&flags.redisKey, "redis-key", "",
		"Redis hash key (default "+credload.DefaultRedisKey+")")

	return cmd
}

func init() {
	rootCmd.AddCommand(newLoadCmd())
}

func runLoad(cmd *cobra.Command, args []string, flags storeFlagValues) error {
	source := args[0]
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)

	cfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return err
	}
	opts, err := resolveLoadOptions(cmd, flags, cfg, os.Getenv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The memory backend is discarded on exit; the load still validates and reports.
	backend, err := store.Open(ctx, opts.store, credload.Credentials{}, store.WithLogger(logger))
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Verbose("Store: %s", backend.Name())

	l := loader.New(filesystem.NewOSFileSystemWithStdin(cmd.InOrStdin()), logger, loader.WithPolicy(opts.policy))
	report, err := l.Load(ctx, source, backend)
	if err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).LoadSummary(report)
	return nil
}
