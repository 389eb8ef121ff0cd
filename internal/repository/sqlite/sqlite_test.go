package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/hashimkp/pricewatch/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestRepo is a helper function that creates a temporary database for a test.
func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(context.Background(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		if err = repo.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

func TestNewRepository_Success(t *testing.T) {
	repo := newTestRepo(t)
	require.NotNil(t, repo)
	require.NotNil(t, repo.DB())
}

func TestNewRepository_InvalidPath(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := sqlite.NewRepository(context.Background(), logger, "/invalid/path/to/db.sqlite")
	require.Error(t, err)
}
