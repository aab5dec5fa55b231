package credload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Load or check completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitConnectionError   = 11 // Failed to connect to the credential store
	ExitSourceUnavailable = 12 // Source file could not be opened or read
	ExitInvalidRecords    = 13 // At least one record failed validation
	ExitCommitFailed      = 14 // Store rejected the commit
)

const (
	// Delimiter separates the username from the PIN within a record.
	Delimiter = "!"

	// PINLength is the exact number of characters of a PIN field.
	PINLength = 4

	// DefaultPostgresTable is the table credentials are upserted into.
	DefaultPostgresTable = "credload_credential"

	// DefaultRedisKey is the hash holding username -> PIN fields.
	DefaultRedisKey = "credload:credentials"

	// DefaultTimeout bounds a whole CLI load, including store connection and commit.
	DefaultTimeout = 1 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)

// Store backend names accepted by configuration and the --store flag.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)
