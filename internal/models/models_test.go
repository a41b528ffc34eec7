package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenresValue(t *testing.T) {
	v, err := Genres(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = Genres{"Jazz", "R&B"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Jazz","R&B"]`, v)

	var back Genres
	require.NoError(t, back.Scan(v))
	assert.Equal(t, Genres{"Jazz", "R&B"}, back)
}

func TestGenresScan(t *testing.T) {
	var g Genres
	require.NoError(t, g.Scan(`["Jazz","Folk"]`))
	assert.Equal(t, Genres{"Jazz", "Folk"}, g)

	require.NoError(t, g.Scan([]byte(`["Swing"]`)))
	assert.Equal(t, Genres{"Swing"}, g)

	require.NoError(t, g.Scan(nil))
	assert.Empty(t, g)
	assert.NotNil(t, g)

	require.NoError(t, g.Scan(""))
	assert.Empty(t, g)

	assert.Error(t, g.Scan(42))
	assert.Error(t, g.Scan("not json"))
}

func TestGenresHelpers(t *testing.T) {
	g := Genres{"Jazz", "Classical"}
	assert.True(t, g.Contains("Jazz"))
	assert.False(t, g.Contains("jazz"))
	assert.Equal(t, "Jazz, Classical", g.String())
	assert.Equal(t, Genres{"Jazz", "Folk"}, cleanGenres(Genres{" Jazz", "", "Folk", "Jazz "}))
}

func TestVenueNormalize(t *testing.T) {
	v := Venue{
		Name:               "  The Musical Hop ",
		City:               "San Francisco ",
		SeekingTalent:      false,
		SeekingDescription: "Should vanish",
	}
	v.Normalize()
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, "San Francisco", v.City)
	assert.Equal(t, "", v.SeekingDescription)
	assert.NotNil(t, v.Genres)

	v.SeekingTalent = true
	v.SeekingDescription = " Local artists "
	v.Normalize()
	assert.Equal(t, "Local artists", v.SeekingDescription)
}

func TestArtistNormalize(t *testing.T) {
	a := Artist{Name: "Guns N Petals ", SeekingVenue: false, SeekingDescription: "Gigs wanted"}
	a.Normalize()
	assert.Equal(t, "Guns N Petals", a.Name)
	assert.Equal(t, "", a.SeekingDescription)

	a.SeekingVenue = true
	a.SeekingDescription = "Gigs wanted"
	a.Normalize()
	assert.Equal(t, "Gigs wanted", a.SeekingDescription)
}

func TestShowRowUpcoming(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, ShowRow{StartTime: now.Add(time.Second)}.Upcoming(now))
	assert.False(t, ShowRow{StartTime: now}.Upcoming(now))
	assert.False(t, ShowRow{StartTime: now.Add(-time.Hour)}.Upcoming(now))
}
