package models

import (
	"strings"
	"time"
)

// Venue is a physical location that can host shows
type Venue struct {
	// Internal ID
	ID uint `db:"id" json:"id"`
	// Name of the venue
	Name string `db:"name" json:"name"`
	City string `db:"city" json:"city"`
	// Two-letter state code
	State   string `db:"state" json:"state"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	// The genres usually played at this venue
	Genres       Genres `db:"genres" json:"genres"`
	ImageLink    string `db:"imageLink" json:"image_link"`
	FacebookLink string `db:"facebookLink" json:"facebook_link"`
	Website      string `db:"website" json:"website"`
	// Is the venue looking for artists to perform?
	SeekingTalent bool `db:"seekingTalent" json:"seeking_talent"`
	// What kind of talent the venue is looking for - always empty if SeekingTalent is false
	SeekingDescription string `db:"seekingDescription" json:"seeking_description"`
	// Creation date of this entry
	CreatedAt time.Time `db:"createdAt" json:"-"`
	// Date of the last update of this entry
	UpdatedAt time.Time `db:"updatedAt" json:"-"`
}

// Normalize trims the text fields and clears the seeking description when the venue does not seek talent
func (v *Venue) Normalize() {
	v.Name = strings.TrimSpace(v.Name)
	v.City = strings.TrimSpace(v.City)
	v.State = strings.TrimSpace(v.State)
	v.Address = strings.TrimSpace(v.Address)
	v.Phone = strings.TrimSpace(v.Phone)
	v.ImageLink = strings.TrimSpace(v.ImageLink)
	v.FacebookLink = strings.TrimSpace(v.FacebookLink)
	v.Website = strings.TrimSpace(v.Website)
	v.Genres = cleanGenres(v.Genres)
	if v.SeekingTalent {
		v.SeekingDescription = strings.TrimSpace(v.SeekingDescription)
	} else {
		v.SeekingDescription = ""
	}
}

// VenueDetail is a venue together with its shows split into past and upcoming ones
type VenueDetail struct {
	Venue
	PastShows          []ShowRow `json:"past_shows"`
	UpcomingShows      []ShowRow `json:"upcoming_shows"`
	PastShowsCount     int       `json:"past_shows_count"`
	UpcomingShowsCount int       `json:"upcoming_shows_count"`
}
