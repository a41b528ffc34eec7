package models

import (
	"strings"
	"time"
)

// Artist is a performer that can play shows
type Artist struct {
	// Internal ID
	ID   uint   `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
	// Two-letter state code
	State string `db:"state" json:"state"`
	Phone string `db:"phone" json:"phone"`
	// The genres this artist plays
	Genres       Genres `db:"genres" json:"genres"`
	ImageLink    string `db:"imageLink" json:"image_link"`
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	Website      string `db:"website" json:"website"`
	// Is the artist looking for venues to perform at?
	SeekingVenue bool `db:"seekingVenue" json:"seeking_venue"`
	// Always empty if SeekingVenue is false
	SeekingDescription string    `db:"seekingDescription" json:"seeking_description"`
	CreatedAt          time.Time `db:"createdAt" json:"-"`
	UpdatedAt          time.Time `db:"updatedAt" json:"-"`
}

// Normalize trims the text fields and clears the seeking description when the artist does not seek a venue
func (a *Artist) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.Phone = strings.TrimSpace(a.Phone)
	a.ImageLink = strings.TrimSpace(a.ImageLink)
	a.FacebookLink = strings.TrimSpace(a.FacebookLink)
	a.Website = strings.TrimSpace(a.Website)
	a.Genres = cleanGenres(a.Genres)
	if a.SeekingVenue {
		a.SeekingDescription = strings.TrimSpace(a.SeekingDescription)
	} else {
		a.SeekingDescription = ""
	}
}

// ArtistDetail is an artist together with the shows split into past and upcoming ones
type ArtistDetail struct {
	Artist
	PastShows          []ShowRow `json:"past_shows"`
	UpcomingShows      []ShowRow `json:"upcoming_shows"`
	PastShowsCount     int       `json:"past_shows_count"`
	UpcomingShowsCount int       `json:"upcoming_shows_count"`
}
