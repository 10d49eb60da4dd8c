package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(files), 2)

	var all strings.Builder
	for _, f := range files {
		require.True(t, strings.HasSuffix(f.Name(), ".up.sql"), f.Name())
		b, err := migrationsFS.ReadFile("migrations/" + f.Name())
		require.NoError(t, err)
		all.Write(b)
	}
	sql := all.String()
	for _, want := range []string{"CREATE TABLE IF NOT EXISTS transactions", "user_profiles", "audit_logs", "increment_transaction_count"} {
		require.Contains(t, sql, want)
	}
}
