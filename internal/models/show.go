package models

import "time"

// Show is a scheduled event linking one venue and one artist at a start time
type Show struct {
	ID        uint      `db:"id" json:"id"`
	VenueID   uint      `db:"venueId" json:"venue_id"`
	ArtistID  uint      `db:"artistId" json:"artist_id"`
	StartTime time.Time `db:"startTime" json:"start_time"`
	CreatedAt time.Time `db:"createdAt" json:"-"`
	UpdatedAt time.Time `db:"updatedAt" json:"-"`
}

// ShowRow is a show joined with the venue and the artist it links
type ShowRow struct {
	ShowID          uint      `db:"showId" json:"-"`
	VenueID         uint      `db:"venueId" json:"venue_id"`
	VenueName       string    `db:"venueName" json:"venue_name"`
	VenueImageLink  string    `db:"venueImageLink" json:"venue_image_link"`
	ArtistID        uint      `db:"artistId" json:"artist_id"`
	ArtistName      string    `db:"artistName" json:"artist_name"`
	ArtistImageLink string    `db:"artistImageLink" json:"artist_image_link"`
	StartTime       time.Time `db:"startTime" json:"start_time"`
}

// Upcoming checks if the show starts after the given point in time
func (s ShowRow) Upcoming(now time.Time) bool {
	return s.StartTime.After(now)
}

// Summary is the short form of a venue or an artist used in lists and search results
type Summary struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows uint   `json:"num_upcoming_shows"`
}

// Area groups the venues located in the same city and state
type Area struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// SearchResult is the result of a name search on venues or artists
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}
