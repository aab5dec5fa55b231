// Package retry replays store operations that fail for transient reasons.
//
// Credential commits are all-or-nothing on every backend, so replaying a
// failed commit is safe: a PostgreSQL transaction that died mid-way was rolled
// back, and a Redis HSET either ran completely or not at all.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return commitTransaction(ctx)
//	})
//
// # Error Classification
//
// An ErrorClassifier decides which errors are transient. PostgreSQLErrorClassifier
// knows SQLSTATE classes (connection exceptions, serialization failures, resource
// exhaustion, operator intervention); RedisErrorClassifier knows the server's
// retryable replies (LOADING, BUSY, TRYAGAIN, ...). Both treat network failures
// such as refused or reset connections as transient.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
