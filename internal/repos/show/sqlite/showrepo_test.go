package sqlite

import (
	"testing"
	"time"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	"github.com/derWhity/fyyur/internal/repos/dbtest"
	venuerepo "github.com/derWhity/fyyur/internal/repos/venue/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	shows  *ShowRepo
	venues [2]*models.Venue
	artist *models.Artist
}

func setup(t *testing.T) fixture {
	db := dbtest.Open(t)
	venues := venuerepo.New(db, dbtest.Logger())
	artists := artistrepo.New(db, dbtest.Logger())
	f := fixture{shows: New(db, dbtest.Logger())}
	for i, name := range []string{"The Musical Hop", "Park Square Live Music & Coffee"} {
		f.venues[i] = &models.Venue{Name: name, City: "San Francisco", State: "CA", Address: "Somewhere",
			ImageLink: "https://example.com/venue.png"}
		require.NoError(t, venues.Create(f.venues[i]))
	}
	f.artist = &models.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA",
		ImageLink: "https://example.com/artist.png"}
	require.NoError(t, artists.Create(f.artist))
	return f
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)
	later := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	earlier := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	berlin := time.FixedZone("CEST", 2*60*60)

	s1 := &models.Show{VenueID: f.venues[0].ID, ArtistID: f.artist.ID, StartTime: later}
	require.NoError(t, f.shows.Create(s1))
	assert.NotZero(t, s1.ID)
	s2 := &models.Show{VenueID: f.venues[1].ID, ArtistID: f.artist.ID, StartTime: earlier.In(berlin)}
	require.NoError(t, f.shows.Create(s2))
	assert.Equal(t, time.UTC, s2.StartTime.Location())

	rows, err := f.shows.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, s2.ID, rows[0].ShowID)
	assert.True(t, earlier.Equal(rows[0].StartTime))
	assert.Equal(t, "Park Square Live Music & Coffee", rows[0].VenueName)
	assert.Equal(t, "Guns N Petals", rows[0].ArtistName)
	assert.Equal(t, "https://example.com/artist.png", rows[0].ArtistImageLink)
	assert.Equal(t, "https://example.com/venue.png", rows[0].VenueImageLink)
	assert.Equal(t, s1.ID, rows[1].ShowID)

	rows, err = f.shows.ListByVenue(f.venues[0].ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, s1.ID, rows[0].ShowID)

	rows, err = f.shows.ListByArtist(f.artist.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	f := setup(t)
	err := f.shows.Create(&models.Show{VenueID: 999, ArtistID: f.artist.ID, StartTime: time.Now()})
	assert.Equal(t, repos.ErrConstraintViolation, errors.Cause(err))
	err = f.shows.Create(&models.Show{VenueID: f.venues[0].ID, ArtistID: 999, StartTime: time.Now()})
	assert.Equal(t, repos.ErrConstraintViolation, errors.Cause(err))

	rows, err := f.shows.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCountUpcoming(t *testing.T) {
	f := setup(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	starts := []struct {
		venue int
		start time.Time
	}{
		{0, now.Add(time.Hour)},
		{0, now.Add(48 * time.Hour)},
		{0, now.Add(-time.Hour)},
		{0, now},
		{1, now.Add(-24 * time.Hour)},
	}
	for _, s := range starts {
		require.NoError(t, f.shows.Create(&models.Show{VenueID: f.venues[s.venue].ID, ArtistID: f.artist.ID,
			StartTime: s.start}))
	}

	byVenue, err := f.shows.CountUpcomingByVenue(now)
	require.NoError(t, err)
	assert.Equal(t, map[uint]uint{f.venues[0].ID: 2}, byVenue)

	byArtist, err := f.shows.CountUpcomingByArtist(now)
	require.NoError(t, err)
	assert.Equal(t, map[uint]uint{f.artist.ID: 2}, byArtist)

	byArtist, err = f.shows.CountUpcomingByArtist(now.Add(-48 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, uint(5), byArtist[f.artist.ID])
}
