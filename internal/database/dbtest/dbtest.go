// Package dbtest holds helpers shared by the repository tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/observe"
)

// Timeout bounds every wait on a stream in tests.
const Timeout = 2 * time.Second

// Open creates an unseeded database in a temporary directory, closed when the
// test ends.
func Open(t *testing.T) *database.Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath, database.Options{LogLevel: logger.Silent, Workers: 2})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// Next waits for the next emission of stream and fails the test on error,
// timeout or a closed stream.
func Next[T any](t *testing.T, stream <-chan observe.Update[T]) T {
	t.Helper()
	select {
	case u, ok := <-stream:
		require.True(t, ok, "stream closed")
		require.NoError(t, u.Err)
		return u.Value
	case <-time.After(Timeout):
		t.Fatal("timed out waiting for stream")
	}
	var zero T
	return zero
}

// Until reads stream until match accepts a value, returning that value.
func Until[T any](t *testing.T, stream <-chan observe.Update[T], match func(T) bool) T {
	t.Helper()
	deadline := time.After(Timeout)
	for {
		select {
		case u, ok := <-stream:
			require.True(t, ok, "stream closed")
			require.NoError(t, u.Err)
			if match(u.Value) {
				return u.Value
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching emission")
			var zero T
			return zero
		}
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
