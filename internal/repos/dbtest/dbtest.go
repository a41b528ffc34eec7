// Package dbtest provides helpers for tests running against a migrated SQLite database
package dbtest

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/derWhity/fyyur/internal/migrate"
	"github.com/derWhity/fyyur/internal/repos"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Just needed for the sqlite driver
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// Logger returns a logger that discards everything
func Logger() *logrus.Entry {
	l := logrus.New()
	l.Out = ioutil.Discard
	return logrus.NewEntry(l)
}

// Open creates a fresh database file inside the test's temporary directory and applies all migrations. The database
// is closed when the test ends
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", repos.SQLiteDSN(filepath.Join(t.TempDir(), "fyyur.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrate.ExecuteMigrationsOnDb(db, Logger()))
	return db
}
