package internal

import (
	"fmt"

	"github.com/derWhity/fyyur/internal/log"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ShowService provides service functions for working with shows
type ShowService interface {
	// List returns every show together with the names of its venue and artist
	List(ctx context.Context) ([]models.ShowRow, error)
	// Create stores a new show after checking that the referenced venue and artist exist
	Create(ctx context.Context, show *models.Show) (*models.Show, error)
}

// -- ShowService implementation ---------------------------------------------------------------------------------------

type showService struct {
	repo    repos.ShowRepo
	venues  repos.VenueRepo
	artists repos.ArtistRepo
	logger  *logrus.Entry
}

// NewShowService creates a new show service instance
func NewShowService(repo repos.ShowRepo, venues repos.VenueRepo, artists repos.ArtistRepo,
	logger *logrus.Entry) ShowService {
	return &showService{
		repo:    repo,
		venues:  venues,
		artists: artists,
		logger:  logger,
	}
}

// List returns every show together with the names of its venue and artist
func (s *showService) List(ctx context.Context) ([]models.ShowRow, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, repoError("Error while listing shows", err)
	}
	return rows, nil
}

func unknownReference(what string, id uint) *Error {
	return MakeErrorWithData(
		KindConstraintViolation,
		ErrCodeUnknownReference,
		fmt.Sprintf("Referenced %s #%d does not exist", what, id),
		map[string]uint{what: id},
	)
}

// checkReferences makes sure the venue and the artist of the show exist
func (s *showService) checkReferences(show *models.Show) error {
	if _, err := s.venues.GetByID(show.VenueID); err != nil {
		if err == repos.ErrEntityNotExisting {
			return unknownReference("venue", show.VenueID)
		}
		return repoError(fmt.Sprintf("Error while retrieving venue #%d", show.VenueID), err)
	}
	if _, err := s.artists.GetByID(show.ArtistID); err != nil {
		if err == repos.ErrEntityNotExisting {
			return unknownReference("artist", show.ArtistID)
		}
		return repoError(fmt.Sprintf("Error while retrieving artist #%d", show.ArtistID), err)
	}
	return nil
}

// Create stores a new show after checking that the referenced venue and artist exist
func (s *showService) Create(ctx context.Context, show *models.Show) (*models.Show, error) {
	if show.StartTime.IsZero() {
		return nil, MakeError(KindConstraintViolation, ErrCodeRequiredFieldMissing, "Start time missing")
	}
	if err := s.checkReferences(show); err != nil {
		return nil, err
	}
	if err := s.repo.Create(show); err != nil {
		if errors.Cause(err) == repos.ErrConstraintViolation {
			// The venue or artist vanished in between
			return nil, MakeErrorWithCause(KindConstraintViolation, ErrCodeUnknownReference,
				"Show references a venue or artist that does not exist", err)
		}
		return nil, repoError("Error while creating show", err)
	}
	s.logger.WithFields(logrus.Fields{
		log.FldID:     show.ID,
		log.FldVenue:  show.VenueID,
		log.FldArtist: show.ArtistID,
	}).Info("Show created")
	return show, nil
}
