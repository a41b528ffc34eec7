// Package sqlite provides an artist repository that stores its data inside a SQLite database
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	artistFields = `name, city, state, phone, genres, imageLink, facebookLink, website, seekingVenue,
                    seekingDescription, createdAt, updatedAt`
)

// ArtistRepo is a repository that stores artists inside a SQLite database
type ArtistRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new artist repository instance
func New(db *sqlx.DB, logger *logrus.Entry) *ArtistRepo {
	return &ArtistRepo{db, logger}
}

// Create creates a new artist
func (r *ArtistRepo) Create(a *models.Artist) error {
	r.logger.WithField("name", a.Name).Debug("Adding new artist")
	query := fmt.Sprintf(`INSERT INTO Artists(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'),
        datetime('now'))`, artistFields)
	res, err := r.db.Exec(query, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return repos.TranslateWriteError(err, "Create: Failed to insert artist")
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "Create: Failed to get ID of new artist")
	}
	a.ID = uint(id)
	return nil
}

// Update replaces all editable fields of an existing artist
func (r *ArtistRepo) Update(a *models.Artist) error {
	r.logger.WithField(log.FldArtist, a.ID).Debug("Updating artist")
	query := `UPDATE Artists SET name = ?, city = ?, state = ?, phone = ?, genres = ?, imageLink = ?, facebookLink = ?,
        website = ?, seekingVenue = ?, seekingDescription = ?, updatedAt = datetime('now') WHERE id = ?`
	res, err := r.db.Exec(query, a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription, a.ID)
	if err != nil {
		return repos.TranslateWriteError(err, "Update: Failed to update artist")
	}
	a.UpdatedAt = time.Now()
	num, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "Update: Failed to get number of updated rows")
	}
	if num == 0 {
		return repos.ErrEntityNotExisting
	}
	return nil
}

// Delete removes the artist together with all the artist's shows
func (r *ArtistRepo) Delete(id uint) error {
	r.logger.WithField(log.FldArtist, id).Debug("Deleting artist")
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Delete: Failed to start transaction")
	}
	if _, err = tx.Exec("DELETE FROM Shows WHERE artistId = ?", id); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to remove shows"))
	}
	res, err := tx.Exec("DELETE FROM Artists WHERE id = ?", id)
	if err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to remove artist"))
	}
	if num, err := res.RowsAffected(); err != nil || num == 0 {
		if err != nil {
			return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to get number of deleted rows"))
		}
		return repos.DoRollback(tx, repos.ErrEntityNotExisting)
	}
	return errors.Wrap(tx.Commit(), "Delete: Failed to commit transaction")
}

// GetByID returns the artist with the given ID
func (r *ArtistRepo) GetByID(id uint) (*models.Artist, error) {
	r.logger.WithField(log.FldArtist, id).Debug("Loading artist")
	query := fmt.Sprintf("SELECT id, %s FROM Artists WHERE id = ?", artistFields)
	var a models.Artist
	if err := r.db.Get(&a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrap(err, "GetByID: Failed to load artist")
	}
	return &a, nil
}

// List returns all artists ordered by ID
func (r *ArtistRepo) List() ([]models.Artist, error) {
	query := fmt.Sprintf("SELECT id, %s FROM Artists ORDER BY id", artistFields)
	ret := []models.Artist{}
	if err := r.db.Select(&ret, query); err != nil {
		return nil, errors.Wrap(err, "List: Failed to load artists")
	}
	return ret, nil
}

// Find returns all artists whose name contains the search string. Case is ignored for all Unicode letters
func (r *ArtistRepo) Find(search string) ([]models.Artist, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for artist")
	all, err := r.List()
	if err != nil {
		return nil, errors.Wrap(err, "Find: Failed to load artist candidates")
	}
	matcher := repos.NewNameMatcher(search)
	ret := []models.Artist{}
	for _, item := range all {
		if matcher.Matches(item.Name) {
			ret = append(ret, item)
		}
	}
	return ret, nil
}
