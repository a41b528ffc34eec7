package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/derWhity/fyyur/internal/repos/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdogURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:5000/alive", watchdogURL(":5000"))
	assert.Equal(t, "http://127.0.0.1:8080/alive", watchdogURL("0.0.0.0:8080"))
}

func TestEnsureDirCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	ensureDir(dir, dbtest.Logger())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenDatabaseMigrates(t *testing.T) {
	db, err := openDatabase(filepath.Join(t.TempDir(), "fyyur.db"), dbtest.Logger())
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM Venues"))
	assert.Equal(t, 0, count)
}
