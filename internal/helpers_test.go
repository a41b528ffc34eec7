package internal

import (
	"testing"
	"time"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/models"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	"github.com/derWhity/fyyur/internal/repos/dbtest"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

// testNow is the fixed point in time all service tests run at
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testStack struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

// newTestStack wires all services against a fresh database with the clock fixed to testNow
func newTestStack(t *testing.T) testStack {
	db := dbtest.Open(t)
	logger := dbtest.Logger()
	vr := venuerepo.New(db, logger)
	ar := artistrepo.New(db, logger)
	sr := showrepo.New(db, logger)

	vs := NewVenueService(vr, sr, logger)
	vs.(*venueService).now = func() time.Time { return testNow }
	as := NewArtistService(ar, sr, logger)
	as.(*artistService).now = func() time.Time { return testNow }
	return testStack{venues: vs, artists: as, shows: NewShowService(sr, vr, ar, logger)}
}

func testContext() context.Context {
	return ctxhelper.WithLogger(context.Background(), dbtest.Logger())
}

func (s testStack) venue(t *testing.T, name, city, state string) *models.Venue {
	v, err := s.venues.Create(testContext(), &models.Venue{Name: name, City: city, State: state, Address: "Main St 1"})
	require.NoError(t, err)
	return v
}

func (s testStack) artist(t *testing.T, name string) *models.Artist {
	a, err := s.artists.Create(testContext(), &models.Artist{Name: name, City: "San Francisco", State: "CA"})
	require.NoError(t, err)
	return a
}

func (s testStack) show(t *testing.T, venueID, artistID uint, start time.Time) *models.Show {
	show, err := s.shows.Create(testContext(), &models.Show{VenueID: venueID, ArtistID: artistID, StartTime: start})
	require.NoError(t, err)
	return show
}
