// Package repos contains the repository interfaces needed in Fyyur
// It exists to prevent circular dependencies between fyyur and the repo implementations
package repos

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/derWhity/fyyur/internal/models"
)

var (
	// ErrEntityNotExisting is fired by a repository when an entity that is loaded, updated or deleted does not exist
	ErrEntityNotExisting = fmt.Errorf("cannot update: Entity does not exist")
	// ErrConstraintViolation is fired by a repository when a write is rejected by the database's constraints, e.g.
	// because a referenced entity does not exist
	ErrConstraintViolation = fmt.Errorf("write rejected by database constraint")
)

// VenueRepo defines a repository that handles storing and querying venues
type VenueRepo interface {
	// Create creates a new venue
	Create(v *models.Venue) error
	// Update replaces all editable fields of an existing venue
	Update(v *models.Venue) error
	// Delete removes the venue and all shows taking place there
	Delete(id uint) error
	// GetByID returns the venue with the given ID
	GetByID(id uint) (*models.Venue, error)
	// List returns all venues ordered by ID
	List() ([]models.Venue, error)
	// Find returns all venues whose name contains the search string (case-insensitive)
	Find(search string) ([]models.Venue, error)
}

// ArtistRepo defines a repository that handles storing and querying artists
type ArtistRepo interface {
	// Create creates a new artist
	Create(a *models.Artist) error
	// Update replaces all editable fields of an existing artist
	Update(a *models.Artist) error
	// Delete removes the artist and all shows played by the artist
	Delete(id uint) error
	// GetByID returns the artist with the given ID
	GetByID(id uint) (*models.Artist, error)
	// List returns all artists ordered by ID
	List() ([]models.Artist, error)
	// Find returns all artists whose name contains the search string (case-insensitive)
	Find(search string) ([]models.Artist, error)
}

// ShowRepo defines a repository that handles storing and querying shows
type ShowRepo interface {
	// Create creates a new show
	Create(s *models.Show) error
	// List returns all shows joined with their venue and artist ordered by start time
	List() ([]models.ShowRow, error)
	// ListByVenue returns all shows taking place at the given venue ordered by start time
	ListByVenue(venueID uint) ([]models.ShowRow, error)
	// ListByArtist returns all shows played by the given artist ordered by start time
	ListByArtist(artistID uint) ([]models.ShowRow, error)
	// CountUpcomingByVenue returns the number of shows starting after the given time per venue ID
	CountUpcomingByVenue(now time.Time) (map[uint]uint, error)
	// CountUpcomingByArtist returns the number of shows starting after the given time per artist ID
	CountUpcomingByArtist(now time.Time) (map[uint]uint, error)
}

// -- Helpers for SQLX repos -------------------------------------------------------------------------------------------

// CountHelper is a row of a grouped count query
type CountHelper struct {
	ID    uint `db:"id"`
	Count uint `db:"count"`
}

// DoRollback rolls back a transaction and catches any error resulting from it while appending the original error
func DoRollback(tx *sqlx.Tx, originalError error) error {
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("doRollback: Transaction rollback failed: %v; Recent error: %v", err, originalError)
	}
	return originalError
}

// SQLiteDSN builds the data source name for the given database file with foreign keys enforced and all times
// handled in UTC
func SQLiteDSN(file string) string {
	return "file:" + file + "?_foreign_keys=1&_loc=UTC"
}

// NameMatcher reports whether names contain a search term. Both sides are compared after Unicode case folding, so
// "CAFÉ" finds "Café Über". The term is matched literally
type NameMatcher struct {
	term string
}

// NewNameMatcher prepares a matcher for the given search term
func NewNameMatcher(search string) NameMatcher {
	return NameMatcher{term: fold(search)}
}

// Matches checks if the folded name contains the folded search term
func (m NameMatcher) Matches(name string) bool {
	return strings.Contains(fold(name), m.term)
}

// fold uses a fresh caser per call as a cases.Caser is not safe for concurrent use
func fold(s string) string {
	return cases.Fold().String(s)
}

// CountsToMap converts the rows of a grouped count query into a map keyed by ID
func CountsToMap(rows []CountHelper) map[uint]uint {
	ret := make(map[uint]uint, len(rows))
	for _, row := range rows {
		ret[row.ID] = row.Count
	}
	return ret
}

// TranslateWriteError maps constraint errors reported by SQLite to ErrConstraintViolation
func TranslateWriteError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if sqliteErr, ok := errors.Cause(err).(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
		return errors.Wrap(ErrConstraintViolation, fmt.Sprintf("%s: %v", msg, err))
	}
	return errors.Wrap(err, msg)
}
