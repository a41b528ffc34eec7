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

// ArtistService provides service functions for working with artists
type ArtistService interface {
	// List returns a summary of every artist
	List(ctx context.Context) ([]models.Summary, error)
	// Search returns the artists whose name contains the search term
	Search(ctx context.Context, search *Search) (*models.SearchResult, error)
	// Get returns the artist with the given ID
	Get(ctx context.Context, id uint) (*models.Artist, error)
	// Detail returns the artist with the given ID together with the past and upcoming shows
	Detail(ctx context.Context, id uint) (*models.ArtistDetail, error)
	// Create stores a new artist
	Create(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	// Update replaces all editable fields of an existing artist
	Update(ctx context.Context, artist *models.Artist) error
	// Delete removes the artist with the given ID and all shows played by the artist
	Delete(ctx context.Context, id uint) error
}

// -- ArtistService implementation -------------------------------------------------------------------------------------

type artistService struct {
	repo   repos.ArtistRepo
	shows  repos.ShowRepo
	logger *logrus.Entry
	now    func() time.Time
}

// NewArtistService creates a new artist service instance
func NewArtistService(repo repos.ArtistRepo, shows repos.ShowRepo, logger *logrus.Entry) ArtistService {
	return &artistService{repo, shows, logger, time.Now}
}

func artistNotFound(id uint) *Error {
	return MakeError(KindNotFound, ErrCodeArtistNotFound, fmt.Sprintf("Artist #%d does not exist", id))
}

// summarize loads the upcoming show counts and pairs them with the given artists
func (s *artistService) summarize(artists []models.Artist) (*models.SearchResult, error) {
	upcoming, err := s.shows.CountUpcomingByArtist(s.now())
	if err != nil {
		return nil, repoError("Error while counting upcoming shows", err)
	}
	entries := make([]models.Summary, 0, len(artists))
	for _, a := range artists {
		entries = append(entries, models.Summary{ID: a.ID, Name: a.Name})
	}
	return searchResult(entries, upcoming), nil
}

// List returns a summary of every artist
func (s *artistService) List(ctx context.Context) ([]models.Summary, error) {
	artists, err := s.repo.List()
	if err != nil {
		return nil, repoError("Error while listing artists", err)
	}
	res, err := s.summarize(artists)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Search returns the artists whose name contains the search term
func (s *artistService) Search(ctx context.Context, search *Search) (*models.SearchResult, error) {
	artists, err := s.repo.Find(search.Search)
	if err != nil {
		return nil, repoError("Error while searching artists", err)
	}
	return s.summarize(artists)
}

// Get returns the artist with the given ID
func (s *artistService) Get(ctx context.Context, id uint) (*models.Artist, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if err == repos.ErrEntityNotExisting {
			return nil, artistNotFound(id)
		}
		return nil, repoError(fmt.Sprintf("Error while retrieving artist #%d", id), err)
	}
	return a, nil
}

// Detail returns the artist with the given ID together with the past and upcoming shows
func (s *artistService) Detail(ctx context.Context, id uint) (*models.ArtistDetail, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.shows.ListByArtist(id)
	if err != nil {
		return nil, repoError(fmt.Sprintf("Error while loading shows of artist #%d", id), err)
	}
	past, upcoming := partitionShows(rows, s.now())
	return &models.ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create stores a new artist
func (s *artistService) Create(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	artist.Normalize()
	if err := requireFields("name", artist.Name, "city", artist.City, "state", artist.State); err != nil {
		return nil, err
	}
	if err := s.repo.Create(artist); err != nil {
		if errors.Cause(err) == repos.ErrConstraintViolation {
			return nil, MakeErrorWithCause(KindConstraintViolation, ErrCodeIllegalValue, "Artist was rejected", err)
		}
		return nil, repoError("Error while creating artist", err)
	}
	s.logger.WithField(log.FldArtist, artist.ID).Info("Artist created")
	return artist, nil
}

// Update replaces all editable fields of an existing artist
func (s *artistService) Update(ctx context.Context, artist *models.Artist) error {
	if _, err := s.Get(ctx, artist.ID); err != nil {
		return err
	}
	artist.Normalize()
	if err := requireFields("name", artist.Name, "city", artist.City, "state", artist.State); err != nil {
		return err
	}
	err := s.repo.Update(artist)
	switch errors.Cause(err) {
	case nil:
		return nil
	case repos.ErrEntityNotExisting:
		return artistNotFound(artist.ID)
	case repos.ErrConstraintViolation:
		return MakeErrorWithCause(KindConstraintViolation, ErrCodeIllegalValue, "Artist was rejected", err)
	}
	return repoError(fmt.Sprintf("Error while updating artist #%d", artist.ID), err)
}

// Delete removes the artist with the given ID and all shows played by the artist
func (s *artistService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(id)
	if errors.Cause(err) == repos.ErrEntityNotExisting {
		return artistNotFound(id)
	}
	if err != nil {
		return repoError(fmt.Sprintf("Error while deleting artist #%d", id), err)
	}
	s.logger.WithField(log.FldArtist, id).Info("Artist deleted")
	return nil
}
