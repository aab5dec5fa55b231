package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/credload/internal/retry"
	"github.com/vvka-141/credload/pkg/credload"
)

const testRedisKey = "credload:test"

func newMockRedis(t *testing.T) (*Redis, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	r, err := NewRedis(db, testRedisKey, WithBackoff(retry.NewExponentialBackoff(2,
		retry.WithInitialDelay(time.Millisecond),
		retry.WithJitter(0),
	)))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, mock
}

func TestRedis_CommitIssuesSingleHSetInSourceOrder(t *testing.T) {
	r, mock := newMockRedis(t)

	mock.ExpectHSet(testRedisKey, "alice", 1234, "bob", 9876, "alice", 4321).SetVal(2)

	err := r.Commit(context.Background(), []credload.Entry{
		{Username: "alice", PIN: 1234},
		{Username: "bob", PIN: 9876},
		{Username: "alice", PIN: 4321},
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_EmptyCommitSendsNothing(t *testing.T) {
	r, mock := newMockRedis(t)

	require.NoError(t, r.Commit(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_CommitRetriesTransientError(t *testing.T) {
	r, mock := newMockRedis(t)

	mock.ExpectHSet(testRedisKey, "alice", 1234).SetErr(errors.New("LOADING Redis is loading the dataset in memory"))
	mock.ExpectHSet(testRedisKey, "alice", 1234).SetVal(1)

	err := r.Commit(context.Background(), []credload.Entry{{Username: "alice", PIN: 1234}})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_CommitFatalErrorNotRetried(t *testing.T) {
	r, mock := newMockRedis(t)

	mock.ExpectHSet(testRedisKey, "alice", 1234).
		SetErr(errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"))

	err := r.Commit(context.Background(), []credload.Entry{{Username: "alice", PIN: 1234}})

	require.ErrorIs(t, err, credload.ErrCommitFailed)
	require.Contains(t, err.Error(), "WRONGTYPE")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_CommitGivesUpAfterMaxAttempts(t *testing.T) {
	r, mock := newMockRedis(t)

	loading := errors.New("LOADING Redis is loading the dataset in memory")
	for i := 0; i < 3; i++ {
		mock.ExpectHSet(testRedisKey, "alice", 1234).SetErr(loading)
	}

	err := r.Commit(context.Background(), []credload.Entry{{Username: "alice", PIN: 1234}})

	require.ErrorIs(t, err, credload.ErrCommitFailed)
	require.ErrorIs(t, err, loading)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Snapshot(t *testing.T) {
	r, mock := newMockRedis(t)

	mock.ExpectHGetAll(testRedisKey).SetVal(map[string]string{"alice": "4321", "bob": "9876"})

	creds, err := r.Snapshot(context.Background())

	require.NoError(t, err)
	require.Equal(t, credload.Credentials{"alice": 4321, "bob": 9876}, creds)
}

func TestRedis_SnapshotRejectsNonNumericField(t *testing.T) {
	r, mock := newMockRedis(t)

	mock.ExpectHGetAll(testRedisKey).SetVal(map[string]string{"alice": "abcd"})

	_, err := r.Snapshot(context.Background())
	require.Error(t, err)
}

func TestNewRedis_EmptyKey(t *testing.T) {
	db, _ := redismock.NewClientMock()
	_, err := NewRedis(db, "")
	require.ErrorIs(t, err, credload.ErrInvalidConfig)
}
