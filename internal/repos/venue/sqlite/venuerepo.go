// Package sqlite provides a venue repository that stores its data inside a SQLite database
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
	venueFields = `name, city, state, address, phone, genres, imageLink, facebookLink, website, seekingTalent,
                    seekingDescription, createdAt, updatedAt`
)

// VenueRepo is a repository that stores its data inside a SQLite database
type VenueRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new venue repository instance with the given database and logger
func New(db *sqlx.DB, logger *logrus.Entry) *VenueRepo {
	return &VenueRepo{
		db:     db,
		logger: logger,
	}
}

// Create creates a new venue
func (r *VenueRepo) Create(v *models.Venue) error {
	r.logger.WithField("name", v.Name).Debug("Adding new venue")
	query := fmt.Sprintf(`INSERT INTO Venues(%s) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'),
        datetime('now'))`, venueFields)
	res, err := r.db.Exec(query, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres, v.ImageLink, v.FacebookLink,
		v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return repos.TranslateWriteError(err, "Create: Failed to insert venue")
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	var id int64
	if id, err = res.LastInsertId(); err == nil {
		v.ID = uint(id)
	}
	return err
}

// Update replaces all editable fields of an existing venue
func (r *VenueRepo) Update(v *models.Venue) error {
	r.logger.WithField(log.FldVenue, v.ID).Debug("Updating venue")
	query := `UPDATE Venues SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?, imageLink = ?,
        facebookLink = ?, website = ?, seekingTalent = ?, seekingDescription = ?, updatedAt = datetime('now')
        WHERE id = ?`
	res, err := r.db.Exec(query, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres, v.ImageLink, v.FacebookLink,
		v.Website, v.SeekingTalent, v.SeekingDescription, v.ID)
	if err != nil {
		return repos.TranslateWriteError(err, "Update: Failed to update venue")
	}
	v.UpdatedAt = time.Now()
	if num, err := res.RowsAffected(); err != nil || num == 0 {
		if err != nil {
			return errors.Wrap(err, "Update: Failed to get number of updated rows")
		}
		return repos.ErrEntityNotExisting
	}
	return nil
}

// Delete removes the venue and all shows taking place there
func (r *VenueRepo) Delete(id uint) error {
	r.logger.WithField(log.FldVenue, id).Debug("Deleting venue")
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "Delete: Failed to start transaction")
	}
	if _, err = tx.Exec("DELETE FROM Shows WHERE venueId = ?", id); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to remove shows"))
	}
	res, err := tx.Exec("DELETE FROM Venues WHERE id = ?", id)
	if err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to remove venue"))
	}
	var num int64
	if num, err = res.RowsAffected(); err != nil {
		return repos.DoRollback(tx, errors.Wrap(err, "Delete: Failed to get number of deleted rows"))
	}
	if num == 0 {
		return repos.DoRollback(tx, repos.ErrEntityNotExisting)
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "Delete: Failed to commit transaction")
	}
	return nil
}

// GetByID returns the venue with the given ID
func (r *VenueRepo) GetByID(id uint) (*models.Venue, error) {
	r.logger.WithField(log.FldVenue, id).Debug("Loading venue")
	query := fmt.Sprintf("SELECT id, %s FROM Venues WHERE id = ?", venueFields)
	var v models.Venue
	err := r.db.Get(&v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repos.ErrEntityNotExisting
		}
		return nil, errors.Wrap(err, "GetByID: Failed to load venue")
	}
	return &v, nil
}

// List returns all venues ordered by ID
func (r *VenueRepo) List() ([]models.Venue, error) {
	query := fmt.Sprintf("SELECT id, %s FROM Venues ORDER BY id", venueFields)
	ret := []models.Venue{}
	if err := r.db.Select(&ret, query); err != nil {
		return nil, errors.Wrap(err, "List: Failed to load venues")
	}
	return ret, nil
}

// Find returns all venues whose name contains the search string. Case is ignored for all Unicode letters
func (r *VenueRepo) Find(search string) ([]models.Venue, error) {
	r.logger.WithField(log.FldSearch, search).Debug("Searching for venue")
	all, err := r.List()
	if err != nil {
		return nil, errors.Wrap(err, "Find: Failed to load venue candidates")
	}
	matcher := repos.NewNameMatcher(search)
	ret := []models.Venue{}
	for _, item := range all {
		if matcher.Matches(item.Name) {
			ret = append(ret, item)
		}
	}
	return ret, nil
}
