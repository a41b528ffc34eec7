package internal

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/pkg/errors"
)

// Names of the page templates
const (
	tplHome          = "pages/home.html"
	tplVenues        = "pages/venues.html"
	tplSearchVenues  = "pages/search_venues.html"
	tplShowVenue     = "pages/show_venue.html"
	tplArtists       = "pages/artists.html"
	tplSearchArtists = "pages/search_artists.html"
	tplShowArtist    = "pages/show_artist.html"
	tplShows         = "pages/shows.html"
	tplNewVenue      = "forms/new_venue.html"
	tplEditVenue     = "forms/edit_venue.html"
	tplNewArtist     = "forms/new_artist.html"
	tplEditArtist    = "forms/edit_artist.html"
	tplNewShow       = "forms/new_show.html"
	tplNotFound      = "errors/404.html"
	tplServerError   = "errors/500.html"

	layoutFile = "layouts/main.html"
)

var pageTemplates = []string{
	tplHome, tplVenues, tplSearchVenues, tplShowVenue, tplArtists, tplSearchArtists, tplShowArtist, tplShows,
	tplNewVenue, tplEditVenue, tplNewArtist, tplEditArtist, tplNewShow, tplNotFound, tplServerError,
}

//go:embed templates
var templateFS embed.FS

// NoticeKind classifies the presentation of a notice
type NoticeKind string

const (
	// NoticeSuccess marks a notice reporting a completed action
	NoticeSuccess NoticeKind = "success"
	// NoticeError marks a notice reporting a failed action
	NoticeError NoticeKind = "error"
)

// Notice is a one-shot status message shown on top of a page
type Notice struct {
	Kind    NoticeKind
	Message string
}

func successNotice(msg string) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: msg}
}

func failureNotice(msg string) *Notice {
	return &Notice{Kind: NoticeError, Message: msg}
}

// view is the value every page template is executed with
type view struct {
	Notice *Notice
	Data   interface{}
}

// Renderer renders the HTML pages
type Renderer struct {
	pages map[string]*template.Template
}

// Choices offered by the genre select boxes
var genreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk", "Hip-Hop", "Heavy Metal",
	"Instrumental", "Jazz", "Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
}

// Choices offered by the state select boxes
var stateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY",
	"LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// formatDateTime formats a start time - "full" gives the long form, everything else the medium one
func formatDateTime(t time.Time, format string) string {
	if format == "full" {
		return t.Format("Monday January, 2, 2006 at 3:04PM")
	}
	return t.Format("Mon 01, 02, 2006 3:04PM")
}

var templateFuncs = template.FuncMap{
	"datetime": formatDateTime,
	"genres":   func() []string { return genreChoices },
	"states":   func() []string { return stateChoices },
	"hasGenre": func(list []string, genre string) bool { return models.Genres(list).Contains(genre) },
	"choice":   func(name, value string) map[string]string { return map[string]string{"Name": name, "Value": value} },
}

// NewRenderer parses all page templates from the embedded template files
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+layoutFile,
		"templates/forms/fields.html")
	if err != nil {
		return nil, errors.Wrap(err, "NewRenderer: Failed to parse layout")
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, errors.Wrapf(err, "NewRenderer: Failed to clone layout for %s", name)
		}
		if r.pages[name], err = clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, errors.Wrapf(err, "NewRenderer: Failed to parse %s", name)
		}
	}
	return r, nil
}

// Render executes the named page into the writer
func (r *Renderer) Render(w io.Writer, name string, notice *Notice, data interface{}) error {
	tpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("Render: Unknown page template '%s'", name)
	}
	if err := tpl.ExecuteTemplate(w, "layout", view{notice, data}); err != nil {
		return errors.Wrapf(err, "Render: Failed to execute %s", name)
	}
	return nil
}
