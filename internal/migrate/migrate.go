// Package migrate handles SQL database migration for the internal Fyyur database
package migrate

import (
	"database/sql"

	"github.com/derWhity/fyyur/internal/repos"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var migrations []dbMigration

type dbMigration struct {
	Version uint
	Queries []string
}

// applied checks if the migration has been executed successfully before
func (mig *dbMigration) applied(db *sqlx.DB) (bool, error) {
	var success bool
	err := db.Get(&success, `SELECT success FROM Migrations WHERE version = ?`, mig.Version)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return success, err
}

// Execute runs the current DB migration on the given database. All queries of one migration share a transaction,
// so a failing query leaves the schema of the previous version behind
func (mig *dbMigration) Execute(db *sqlx.DB, logger *logrus.Entry) error {
	logger = logger.WithField("migration", mig.Version)
	done, err := mig.applied(db)
	if err != nil {
		return errors.Wrap(err, "Execute: Failed to fetch version information")
	}
	if done {
		logger.Debug("DB migration already applied")
		return nil
	}
	logger.Infof("Executing DB migration #%d", mig.Version)
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Execute: Failed to start transaction")
	}
	for i, query := range mig.Queries {
		logger.Debugf("Query %d of %d...", i+1, len(mig.Queries))
		if _, err := tx.Exec(query); err != nil {
			return repos.DoRollback(tx, errors.Wrapf(err, "Execute: Query #%d failed", i+1))
		}
	}
	if _, err := tx.Exec(`REPLACE INTO Migrations(version, success) VALUES(?, 1)`, mig.Version); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Execute: Failed to store migration status"))
	}
	return errors.Wrap(tx.Commit(), "Execute: Failed to commit migration")
}

// ExecuteMigrationsOnDb executes the database migrations on the given database instance
func ExecuteMigrationsOnDb(db *sqlx.DB, logger *logrus.Entry) error {
	query := `CREATE TABLE IF NOT EXISTS Migrations (
                version   INTEGER NOT NULL,
                success   INTEGER NOT NULL DEFAULT 0,
                PRIMARY KEY(version)
            )`
	if _, err := db.Exec(query); err != nil {
		logger.WithError(err).Error("Failed to create migrations table")
		return err
	}
	for _, mig := range migrations {
		if err := mig.Execute(db, logger); err != nil {
			logger.WithError(err).Errorf("Failed to execute migration #%d", mig.Version)
			return err
		}
	}
	return nil
}

// For now, the migrations are part of the package...
func init() {
	migrations = []dbMigration{
		{
			Version: 1,
			Queries: []string{
				`CREATE TABLE "Venues" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(128) NOT NULL DEFAULT '',
                    city VARCHAR(120) NOT NULL DEFAULT '',
                    state VARCHAR(120) NOT NULL DEFAULT '',
                    address VARCHAR(120) NOT NULL DEFAULT '',
                    phone VARCHAR(120) NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(120) NOT NULL DEFAULT '',
                    website VARCHAR(120) NOT NULL DEFAULT '',
                    seekingTalent BOOLEAN NOT NULL DEFAULT 0,
                    seekingDescription VARCHAR(500) NOT NULL DEFAULT '',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Artists" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    name VARCHAR(128) NOT NULL DEFAULT '',
                    city VARCHAR(120) NOT NULL DEFAULT '',
                    state VARCHAR(120) NOT NULL DEFAULT '',
                    phone VARCHAR(120) NOT NULL DEFAULT '',
                    genres TEXT NOT NULL DEFAULT '[]',
                    imageLink VARCHAR(500) NOT NULL DEFAULT '',
                    facebookLink VARCHAR(120) NOT NULL DEFAULT '',
                    website VARCHAR(120) NOT NULL DEFAULT '',
                    seekingVenue BOOLEAN NOT NULL DEFAULT 0,
                    seekingDescription VARCHAR(500) NOT NULL DEFAULT '',
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE TABLE "Shows" (
                    id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
                    venueId INTEGER NOT NULL REFERENCES Venues(id) ON DELETE CASCADE,
                    artistId INTEGER NOT NULL REFERENCES Artists(id) ON DELETE CASCADE,
                    startTime DATETIME NOT NULL,
                    createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                    updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
                );`,
				`CREATE INDEX idx_venue_name ON Venues (name ASC);`,
				`CREATE INDEX idx_artist_name ON Artists (name ASC);`,
				`CREATE INDEX idx_show_venue ON Shows (venueId ASC, startTime ASC);`,
				`CREATE INDEX idx_show_artist ON Shows (artistId ASC, startTime ASC);`,
			},
		},
	}
}
