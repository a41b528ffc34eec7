package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// httpTransport bundles everything the HTTP layer needs besides the endpoints
type httpTransport struct {
	renderer *Renderer
	logger   *logrus.Entry
}

// MakeHTTPHandler creates the main HTTP handler for the Fyyur service
func MakeHTTPHandler(vs VenueService, as ArtistService, ss ShowService, logger *logrus.Entry) (http.Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	t := &httpTransport{renderer: renderer, logger: logger}
	r := mux.NewRouter()

	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(t.encodeError),
		httptransport.ServerBefore(makeContextInjector(logger)),
	}
	serve := func(dec httptransport.DecodeRequestFunc) func(endpoint.Endpoint) http.Handler {
		return func(e endpoint.Endpoint) http.Handler {
			return httptransport.NewServer(e, dec, t.encodeResponse, options...)
		}
	}
	noRequest := serve(decodeNilRequest)
	byID := serve(decodeIDFromPath)
	search := serve(decodeSearchForm)

	r.Methods(http.MethodGet).Path("/").Handler(noRequest(MakeHomeEndpoint()))

	// -- Venue service --------------------------------
	{
		vEp := MakeVenueEndpoints(vs)

		r.Methods(http.MethodGet).Path("/venues").Handler(noRequest(vEp.List))
		r.Methods(http.MethodPost).Path("/venues/search").Handler(search(vEp.Search))
		r.Methods(http.MethodGet).Path("/venues/create").Handler(noRequest(vEp.CreateForm))
		r.Methods(http.MethodPost).Path("/venues/create").Handler(serve(decodeVenueForm)(vEp.Create))
		r.Methods(http.MethodGet).Path("/venues/{id:[0-9]+}").Handler(byID(vEp.Get))
		r.Methods(http.MethodDelete).Path("/venues/{id:[0-9]+}").Handler(byID(vEp.Delete))
		r.Methods(http.MethodGet).Path("/venues/{id:[0-9]+}/edit").Handler(byID(vEp.EditForm))
		r.Methods(http.MethodPost).Path("/venues/{id:[0-9]+}/edit").Handler(serve(decodeVenueForm)(vEp.Update))
	}

	// -- Artist service -------------------------------
	{
		aEp := MakeArtistEndpoints(as)

		r.Methods(http.MethodGet).Path("/artists").Handler(noRequest(aEp.List))
		r.Methods(http.MethodPost).Path("/artists/search").Handler(search(aEp.Search))
		r.Methods(http.MethodGet).Path("/artists/create").Handler(noRequest(aEp.CreateForm))
		r.Methods(http.MethodPost).Path("/artists/create").Handler(serve(decodeArtistForm)(aEp.Create))
		r.Methods(http.MethodGet).Path("/artists/{id:[0-9]+}").Handler(byID(aEp.Get))
		r.Methods(http.MethodDelete).Path("/artists/{id:[0-9]+}").Handler(byID(aEp.Delete))
		r.Methods(http.MethodGet).Path("/artists/{id:[0-9]+}/edit").Handler(byID(aEp.EditForm))
		r.Methods(http.MethodPost).Path("/artists/{id:[0-9]+}/edit").Handler(serve(decodeArtistForm)(aEp.Update))
	}

	// -- Show service ---------------------------------
	{
		sEp := MakeShowEndpoints(ss)

		r.Methods(http.MethodGet).Path("/shows").Handler(noRequest(sEp.List))
		r.Methods(http.MethodGet).Path("/shows/create").Handler(noRequest(sEp.CreateForm))
		r.Methods(http.MethodPost).Path("/shows/create").Handler(serve(decodeShowForm)(sEp.Create))
	}

	// Simple alive answer for checking if HTTP can be reached
	r.Methods(http.MethodGet).Path("/alive").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := makeContextInjector(logger)(r.Context(), r)
		t.encodeError(ctx, MakeError(KindNotFound, ErrCodePageNotFound, "No route found"), w)
	})

	return r, nil
}

// decodeNilRequest just does nothing with the request. It is used for endpoints that don't need anything to be passed
func decodeNilRequest(_ context.Context, r *http.Request) (request interface{}, err error) {
	return nil, nil
}

// getUintFromPath is a helper function that gets a uint from the given path variable. Since the ID addresses a page,
// an invalid value is reported as not found
func getUintFromPath(varname string, r *http.Request) (uint, error) {
	str, ok := mux.Vars(r)[varname]
	if !ok {
		return 0, MakeError(KindNotFound, ErrCodePageNotFound, fmt.Sprintf("Missing path variable '%s'", varname))
	}
	id, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, MakeError(KindNotFound, ErrCodePageNotFound,
			fmt.Sprintf("Value for '%s' is no valid unsigned integer", varname))
	}
	return uint(id), nil
}

// Decodes an ID from the "id" path variable provided by GoRilla
func decodeIDFromPath(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := getUintFromPath("id", r)
	if err != nil {
		return nil, err
	}
	return idRequest{id}, nil
}

// parseForm parses the form body of the request
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return MakeErrorWithCause(KindConstraintViolation, ErrCodeIllegalValue, "Failed to parse form data", err)
	}
	return nil
}

// decodeSearchForm reads the search term from the "search_term" form field
func decodeSearchForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return Search{Search: r.PostFormValue("search_term")}, nil
}

// optionalID reads the "id" path variable if the route has one
func optionalID(r *http.Request) (uint, error) {
	if _, ok := mux.Vars(r)["id"]; !ok {
		return 0, nil
	}
	return getUintFromPath("id", r)
}

// decodeVenueForm reads the venue create and edit forms. On edit routes, the ID is taken from the path
func decodeVenueForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	id, err := optionalID(r)
	if err != nil {
		return nil, err
	}
	f := r.PostForm
	return venueRequest{
		ID:                 id,
		Name:               f.Get("name"),
		City:               f.Get("city"),
		State:              f.Get("state"),
		Address:            f.Get("address"),
		Phone:              f.Get("phone"),
		ImageLink:          f.Get("image_link"),
		Genres:             f["genres"],
		Website:            f.Get("website"),
		FacebookLink:       f.Get("facebook_link"),
		SeekingTalent:      f.Get("seeking_talent"),
		SeekingDescription: f.Get("seeking_description"),
	}, nil
}

// decodeArtistForm reads the artist create and edit forms. On edit routes, the ID is taken from the path
func decodeArtistForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	id, err := optionalID(r)
	if err != nil {
		return nil, err
	}
	f := r.PostForm
	return artistRequest{
		ID:                 id,
		Name:               f.Get("name"),
		City:               f.Get("city"),
		State:              f.Get("state"),
		Phone:              f.Get("phone"),
		ImageLink:          f.Get("image_link"),
		Genres:             f["genres"],
		Website:            f.Get("website"),
		FacebookLink:       f.Get("facebook_link"),
		SeekingVenue:       f.Get("seeking_venue"),
		SeekingDescription: f.Get("seeking_description"),
	}, nil
}

// decodeShowForm reads the show create form
func decodeShowForm(_ context.Context, r *http.Request) (interface{}, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	return showRequest{
		ArtistID:  r.PostFormValue("artist_id"),
		VenueID:   r.PostFormValue("venue_id"),
		StartTime: r.PostFormValue("start_time"),
	}, nil
}

// encodeResponse writes the endpoint's response depending on its type - pages are rendered as HTML, redirects
// are sent as "303 See Other" and everything else is encoded as JSON
func (t *httpTransport) encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	switch res := response.(type) {
	case page:
		status := res.Status
		if status == 0 {
			status = http.StatusOK
		}
		return t.renderStatus(w, status, res.Template, res.Notice, res.Data)
	case redirect:
		w.Header().Set("Location", res.Location)
		w.WriteHeader(http.StatusSeeOther)
		return nil
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	return json.NewEncoder(w).Encode(response)
}

// renderStatus renders the page with the given status. Nothing is written if the page fails to render
func (t *httpTransport) renderStatus(w http.ResponseWriter, status int, tpl string, notice *Notice,
	data interface{}) error {
	var buf bytes.Buffer
	if err := t.renderer.Render(&buf, tpl, notice, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// encodeError renders the error page matching the kind of the error. Only not found errors get their own page,
// everything else is an internal error whose details stay in the log
func (t *httpTransport) encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	logger := t.logger
	if l, ok := ctx.Value(ctxhelper.KeyLogger).(*logrus.Entry); ok {
		logger = l
	}
	status, tpl := http.StatusInternalServerError, tplServerError
	if KindOf(err) == KindNotFound {
		logger.WithError(err).Info("Requested entity not found")
		status, tpl = http.StatusNotFound, tplNotFound
	} else {
		logger.WithError(err).Error("Request failed")
	}
	if err := t.renderStatus(w, status, tpl, nil, nil); err != nil {
		logger.WithError(err).Error("Failed to render error page")
		http.Error(w, http.StatusText(status), status)
	}
}

// makeContextInjector puts the request's logger into the context
func makeContextInjector(logger *logrus.Entry) httptransport.RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		return ctxhelper.WithLogger(ctx, logger.WithFields(entryFields(r.Method, r.URL.Path)))
	}
}
