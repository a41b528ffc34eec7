package internal

import (
	"fmt"
	"time"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// VenueService provides service functions for working with venues
type VenueService interface {
	// Areas returns all venues grouped by city and state
	Areas(ctx context.Context) ([]models.Area, error)
	// Search returns the venues whose name contains the search term
	Search(ctx context.Context, search *Search) (*models.SearchResult, error)
	// Get returns the venue with the given ID
	Get(ctx context.Context, id uint) (*models.Venue, error)
	// Detail returns the venue with the given ID together with its past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.VenueDetail, error)
	// Create stores a new venue
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	// Update replaces all editable fields of an existing venue
	Update(ctx context.Context, venue *models.Venue) error
	// Delete removes the venue with the given ID and all of its shows
	Delete(ctx context.Context, id uint) error
}

// -- VenueService implementation --------------------------------------------------------------------------------------

type venueService struct {
	repo   repos.VenueRepo
	shows  repos.ShowRepo
	logger *logrus.Entry
	now    func() time.Time
}

// NewVenueService creates a new venue service instance
func NewVenueService(repo repos.VenueRepo, shows repos.ShowRepo, logger *logrus.Entry) VenueService {
	return &venueService{
		repo:   repo,
		shows:  shows,
		logger: logger,
		now:    time.Now,
	}
}

func venueNotFound(id uint) *Error {
	return MakeError(KindNotFound, ErrCodeVenueNotFound, fmt.Sprintf("Venue #%d does not exist", id))
}

// Areas returns all venues grouped by city and state
func (s *venueService) Areas(ctx context.Context) ([]models.Area, error) {
	upcoming, err := s.shows.CountUpcomingByVenue(s.now())
	if err != nil {
		return nil, repoError("Error while counting upcoming shows", err)
	}
	venues, err := s.repo.List()
	if err != nil {
		return nil, repoError("Error while listing venues", err)
	}
	return groupByArea(venues, upcoming), nil
}

// Search returns the venues whose name contains the search term
func (s *venueService) Search(ctx context.Context, search *Search) (*models.SearchResult, error) {
	upcoming, err := s.shows.CountUpcomingByVenue(s.now())
	if err != nil {
		return nil, repoError("Error while counting upcoming shows", err)
	}
	venues, err := s.repo.Find(search.Search)
	if err != nil {
		return nil, repoError("Error while searching venues", err)
	}
	entries := make([]models.Summary, 0, len(venues))
	for _, v := range venues {
		entries = append(entries, models.Summary{ID: v.ID, Name: v.Name})
	}
	return searchResult(entries, upcoming), nil
}

// Get returns the venue with the given ID
func (s *venueService) Get(ctx context.Context, id uint) (*models.Venue, error) {
	v, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, venueNotFound(id)
		}
		return nil, repoError(fmt.Sprintf("Error while retrieving venue #%d", id), err)
	}
	return v, nil
}

// Detail returns the venue with the given ID together with its past and upcoming shows
func (s *venueService) Detail(ctx context.Context, id uint) (*models.VenueDetail, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.shows.ListByVenue(id)
	if err != nil {
		return nil, repoError(fmt.Sprintf("Error while loading shows of venue #%d", id), err)
	}
	past, upcoming := partitionShows(rows, s.now())
	return &models.VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create stores a new venue
func (s *venueService) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	venue.Normalize()
	if err := requireVenueFields(venue.Name, venue.City, venue.State, venue.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Create(venue); err != nil {
		if errors.Cause(err) == repos.ErrConstraintViolation {
			return nil, MakeErrorWithCause(KindConstraintViolation, ErrCodeIllegalValue, "Venue was rejected", err)
		}
		return nil, repoError("Error while creating venue", err)
	}
	s.logger.WithField(log.FldVenue, venue.ID).Info("Venue created")
	return venue, nil
}

// Update replaces all editable fields of an existing venue
func (s *venueService) Update(ctx context.Context, venue *models.Venue) error {
	original, err := s.Get(ctx, venue.ID)
	if err != nil {
		return err
	}
	venue.Normalize()
	if err := requireVenueFields(venue.Name, venue.City, venue.State, venue.Address); err != nil {
		return err
	}
	venue.CreatedAt = original.CreatedAt
	if err := s.repo.Update(venue); err != nil {
		switch errors.Cause(err) {
		case repos.ErrEntityNotExisting:
			return venueNotFound(venue.ID)
		case repos.ErrConstraintViolation:
			return MakeErrorWithCause(KindConstraintViolation, ErrCodeIllegalValue, "Venue was rejected", err)
		}
		return repoError(fmt.Sprintf("Error while updating venue #%d", venue.ID), err)
	}
	return nil
}

// Delete removes the venue with the given ID and all of its shows
func (s *venueService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Cause(err) == repos.ErrEntityNotExisting {
			return venueNotFound(id)
		}
		return repoError(fmt.Sprintf("Error while deleting venue #%d", id), err)
	}
	s.logger.WithField(log.FldVenue, id).Info("Venue deleted")
	return nil
}
