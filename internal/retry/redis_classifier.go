package retry

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// redisTransientReplies are error reply prefixes the server uses for
// conditions that clear on their own.
var redisTransientReplies = []string{
	"LOADING ",
	"BUSY ",
	"TRYAGAIN ",
	"CLUSTERDOWN ",
	"MASTERDOWN ",
	"READONLY ",
}

var redisTransientMessages = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"broken pipe",
	"connection pool timeout",
	"unexpected eof",
}

// RedisErrorClassifier implements ErrorClassifier for go-redis errors.
type RedisErrorClassifier struct{}

// NewRedisErrorClassifier creates a new Redis error classifier.
func NewRedisErrorClassifier() *RedisErrorClassifier {
	return &RedisErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
// A closed client and cancelled contexts are fatal.
func (c *RedisErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, redis.ErrClosed) || errors.Is(err, redis.Nil) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	msg := err.Error()
	for _, prefix := range redisTransientReplies {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}

	return isNetworkError(err) || hasTransientMessage(err, redisTransientMessages)
}
