package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/derWhity/fyyur/internal/models"
)

// -- Request data -----------------------------------------------------------------------------------------------------

const (
	// seekingYes is the form value that switches a seeking_* flag on. Every other value means "no"
	seekingYes = "Yes"
	seekingNo  = "No"
)

// showTimeLayouts are the accepted layouts of a show's start time - the first one is the one used in forms
var showTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Search describes a typical search request with a search term
type Search struct {
	// The string to search for
	Search string
}

// idRequest addresses a single venue or artist by its ID
type idRequest struct {
	ID uint
}

// venueRequest is the typed content of the venue create and edit forms
type venueRequest struct {
	ID                 uint
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	Genres             []string
	Website            string
	FacebookLink       string
	SeekingTalent      string
	SeekingDescription string
}

// artistRequest is the typed content of the artist create and edit forms
type artistRequest struct {
	ID                 uint
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	Genres             []string
	Website            string
	FacebookLink       string
	SeekingVenue       string
	SeekingDescription string
}

// showRequest is the content of the show create form - the values are parsed by toShow
type showRequest struct {
	ArtistID  string
	VenueID   string
	StartTime string
}

// requireFields returns a constraint violation naming the first of the given fields that is empty. The fields are
// passed as name/value pairs
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return MakeErrorWithData(
				KindConstraintViolation,
				ErrCodeRequiredFieldMissing,
				fmt.Sprintf("Field '%s' is required", pairs[i]),
				map[string]string{"field": pairs[i]},
			)
		}
	}
	return nil
}

// requireVenueFields checks the fields every venue needs
func requireVenueFields(name, city, state, address string) error {
	return requireFields("name", name, "city", city, "state", state, "address", address)
}

func (r venueRequest) validate() error {
	return requireVenueFields(r.Name, r.City, r.State, r.Address)
}

// toVenue converts the request into a venue. Only the exact value "Yes" enables seeking talent
func (r venueRequest) toVenue() *models.Venue {
	v := &models.Venue{
		ID:                 r.ID,
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Address:            r.Address,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		Genres:             models.Genres(r.Genres),
		Website:            r.Website,
		FacebookLink:       r.FacebookLink,
		SeekingTalent:      r.SeekingTalent == seekingYes,
		SeekingDescription: r.SeekingDescription,
	}
	v.Normalize()
	return v
}

// venueRequestFrom fills a request from an existing venue to prefill the edit form
func venueRequestFrom(v *models.Venue) venueRequest {
	return venueRequest{
		ID:                 v.ID,
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             []string(v.Genres),
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      yesNo(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

func (r artistRequest) validate() error {
	return requireFields("name", r.Name, "city", r.City, "state", r.State)
}

// toArtist converts the request into an artist. Only the exact value "Yes" enables seeking a venue
func (r artistRequest) toArtist() *models.Artist {
	a := &models.Artist{
		ID:                 r.ID,
		Name:               r.Name,
		City:               r.City,
		State:              r.State,
		Phone:              r.Phone,
		ImageLink:          r.ImageLink,
		Genres:             models.Genres(r.Genres),
		Website:            r.Website,
		FacebookLink:       r.FacebookLink,
		SeekingVenue:       r.SeekingVenue == seekingYes,
		SeekingDescription: r.SeekingDescription,
	}
	a.Normalize()
	return a
}

// artistRequestFrom fills a request from an existing artist to prefill the edit form
func artistRequestFrom(a *models.Artist) artistRequest {
	return artistRequest{
		ID:                 a.ID,
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             []string(a.Genres),
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       yesNo(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

// toShow parses the form values into a show
func (r showRequest) toShow() (*models.Show, error) {
	if err := requireFields("artist_id", r.ArtistID, "venue_id", r.VenueID, "start_time", r.StartTime); err != nil {
		return nil, err
	}
	artistID, err := parseID("artist_id", r.ArtistID)
	if err != nil {
		return nil, err
	}
	venueID, err := parseID("venue_id", r.VenueID)
	if err != nil {
		return nil, err
	}
	start, err := parseShowTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	return &models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// parseID parses a positive entity ID from a form value
func parseID(field, value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || id == 0 {
		return 0, MakeErrorWithData(
			KindConstraintViolation,
			ErrCodeIllegalValue,
			fmt.Sprintf("Value for '%s' is no valid ID", field),
			map[string]string{"field": field},
		)
	}
	return uint(id), nil
}

// parseShowTime parses a start time in one of the accepted layouts. Times without zone are taken as UTC
func parseShowTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range showTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, MakeErrorWithData(
		KindConstraintViolation,
		ErrCodeIllegalValue,
		fmt.Sprintf("'%s' is no valid start time", value),
		map[string]string{"field": "start_time"},
	)
}

func yesNo(b bool) string {
	if b {
		return seekingYes
	}
	return seekingNo
}
