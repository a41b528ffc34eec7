// Package sqlite provides a show repository that stores its data inside a SQLite database
package sqlite

import (
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
	showFields = `venueId, artistId, startTime, createdAt, updatedAt`
	// Shows joined with the venue and artist they belong to
	showRowSelect = `SELECT
						s.id AS showId,
						s.startTime AS startTime,
						v.id AS venueId,
						v.name AS venueName,
						v.imageLink AS venueImageLink,
						a.id AS artistId,
						a.name AS artistName,
						a.imageLink AS artistImageLink
					FROM
						Shows s
					INNER JOIN
						Venues v ON v.id = s.venueId
					INNER JOIN
						Artists a ON a.id = s.artistId`
	showRowOrder = `ORDER BY s.startTime, s.id`
)

// ShowRepo is a show repository that stores its data inside a SQLite database
type ShowRepo struct {
	db     *sqlx.DB
	logger *logrus.Entry
}

// New creates a new ShowRepo instance with the given DB and logger instances
func New(db *sqlx.DB, logger *logrus.Entry) *ShowRepo {
	return &ShowRepo{db, logger}
}

// Create creates a new show. Start times are stored in UTC
func (r *ShowRepo) Create(s *models.Show) error {
	r.logger.WithFields(logrus.Fields{
		log.FldVenue:  s.VenueID,
		log.FldArtist: s.ArtistID,
	}).Debug("Adding new show")
	s.StartTime = s.StartTime.UTC()
	query := fmt.Sprintf("INSERT INTO Shows(%s) VALUES(?, ?, ?, datetime('now'), datetime('now'))", showFields)
	res, err := r.db.Exec(query, s.VenueID, s.ArtistID, s.StartTime)
	if err != nil {
		return repos.TranslateWriteError(err, "Create: Failed to insert show")
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	var id int64
	if id, err = res.LastInsertId(); err == nil {
		s.ID = uint(id)
	}
	return err
}

// List returns all shows joined with their venue and artist
func (r *ShowRepo) List() ([]models.ShowRow, error) {
	return r.selectRows(fmt.Sprintf("%s %s", showRowSelect, showRowOrder))
}

// ListByVenue returns all shows taking place at the given venue
func (r *ShowRepo) ListByVenue(venueID uint) ([]models.ShowRow, error) {
	r.logger.WithField(log.FldVenue, venueID).Debug("Loading shows of venue")
	return r.selectRows(fmt.Sprintf("%s WHERE s.venueId = ? %s", showRowSelect, showRowOrder), venueID)
}

// ListByArtist returns all shows played by the given artist
func (r *ShowRepo) ListByArtist(artistID uint) ([]models.ShowRow, error) {
	r.logger.WithField(log.FldArtist, artistID).Debug("Loading shows of artist")
	return r.selectRows(fmt.Sprintf("%s WHERE s.artistId = ? %s", showRowSelect, showRowOrder), artistID)
}

// CountUpcomingByVenue returns the number of shows starting after the given time per venue ID
func (r *ShowRepo) CountUpcomingByVenue(now time.Time) (map[uint]uint, error) {
	return r.countUpcoming("venueId", now)
}

// CountUpcomingByArtist returns the number of shows starting after the given time per artist ID
func (r *ShowRepo) CountUpcomingByArtist(now time.Time) (map[uint]uint, error) {
	return r.countUpcoming("artistId", now)
}

func (r *ShowRepo) selectRows(query string, args ...interface{}) ([]models.ShowRow, error) {
	ret := []models.ShowRow{}
	if err := r.db.Select(&ret, query, args...); err != nil {
		return nil, errors.Wrap(err, "Failed to load shows")
	}
	return ret, nil
}

// countUpcoming counts the upcoming shows grouped by the given column - which must be one of the reference columns
func (r *ShowRepo) countUpcoming(column string, now time.Time) (map[uint]uint, error) {
	query := fmt.Sprintf(`SELECT %s AS id, COUNT(*) AS count FROM Shows WHERE startTime > ? GROUP BY %s`,
		column, column)
	var rows []repos.CountHelper
	if err := r.db.Select(&rows, query, now.UTC()); err != nil {
		return nil, errors.Wrapf(err, "Failed to count upcoming shows by %s", column)
	}
	return repos.CountsToMap(rows), nil
}
