package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/derWhity/fyyur/internal/repos/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	testStack
	handler http.Handler
}

func newTestServer(t *testing.T) testServer {
	s := newTestStack(t)
	h, err := MakeHTTPHandler(s.venues, s.artists, s.shows, dbtest.Logger())
	require.NoError(t, err)
	return testServer{s, h}
}

func (s testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestStaticPages(t *testing.T) {
	s := newTestServer(t)
	v := s.venue(t, "The Musical Hop", "San Francisco", "CA")
	a := s.artist(t, "Guns N Petals")
	s.show(t, v.ID, a.ID, testNow.Add(time.Hour))

	for _, target := range []string{
		"/", "/venues", "/artists", "/shows", "/venues/create", "/artists/create", "/shows/create",
		"/venues/1", "/artists/1", "/venues/1/edit", "/artists/1/edit",
	} {
		rec := s.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", target)
		assert.Contains(t, rec.Body.String(), "Fyyur", target)
	}

	rec := s.do(http.MethodGet, "/shows", nil)
	assert.Contains(t, rec.Body.String(), "Guns N Petals")
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
	assert.Contains(t, rec.Body.String(), formatDateTime(testNow.Add(time.Hour), "medium"))
}

func TestNotFoundPages(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/venues/999", "/artists/999", "/venues/abc", "/no/such/page", "/venues/7/edit"} {
		rec := s.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Not Found", target)
	}
}

func TestSearchVenues(t *testing.T) {
	s := newTestServer(t)
	s.venue(t, "The Musical Hop", "San Francisco", "CA")
	s.venue(t, "The Dueling Pianos Bar", "New York", "NY")
	s.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")

	rec := s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"Music"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, "Park Square Live Music &amp; Coffee")
	assert.NotContains(t, body, "The Dueling Pianos Bar")
	assert.Contains(t, body, ": 2</h1>")

	rec = s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"xyz-nonexistent"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ": 0</h1>")
}

func TestCreateArtistFlow(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/artists/create", url.Values{
		"name":                {"Test Artist"},
		"city":                {"Test City"},
		"state":               {"CA"},
		"genres":              {"Jazz", "Blues"},
		"seeking_venue":       {"No"},
		"seeking_description": {"Should not be stored"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "artist Test Artist was successfully listed!")

	rec = s.do(http.MethodGet, "/artists", nil)
	assert.Contains(t, rec.Body.String(), "Test Artist")

	rec = s.do(http.MethodGet, "/artists/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Not currently seeking performance venues")
	assert.NotContains(t, body, "Should not be stored")
	assert.Contains(t, body, "Blues")

	a, err := s.artists.Get(testContext(), 1)
	require.NoError(t, err)
	assert.False(t, a.SeekingVenue)
	assert.Equal(t, "", a.SeekingDescription)
}

func TestCreateFailureNotice(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/venues/create", url.Values{"name": {"Nowhere"}, "city": {"SF"}, "state": {"CA"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue Nowhere could not be listed!")

	rec = s.do(http.MethodPost, "/shows/create", url.Values{
		"artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Show could not be listed check whether Artist id and Venue id is correct!")

	v := s.venue(t, "The Musical Hop", "San Francisco", "CA")
	a := s.artist(t, "Guns N Petals")
	rec = s.do(http.MethodPost, "/shows/create", url.Values{
		"artist_id": {"1"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"},
	})
	assert.Contains(t, rec.Body.String(), "Show was successfully listed!")
	d, err := s.venues.Detail(testContext(), v.ID)
	require.NoError(t, err)
	require.Len(t, d.UpcomingShows, 1)
	assert.Equal(t, a.ID, d.UpcomingShows[0].ArtistID)
}

func TestUpdateVenue(t *testing.T) {
	s := newTestServer(t)
	v := s.venue(t, "The Musical Hop", "San Francisco", "CA")
	form := url.Values{
		"name":                {"The Musical Hop"},
		"city":                {"Oakland"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"seeking_talent":      {"Yes"},
		"seeking_description": {"Jazz bands"},
	}
	rec := s.do(http.MethodPost, "/venues/1/edit", form)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get("Location"))

	got, err := s.venues.Get(testContext(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oakland", got.City)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, "Jazz bands", got.SeekingDescription)

	form.Set("address", "")
	rec = s.do(http.MethodPost, "/venues/1/edit", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Field &#39;address&#39; is required")

	rec = s.do(http.MethodPost, "/artists/5/edit", url.Values{"name": {"x"}, "city": {"y"}, "state": {"CA"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVenue(t *testing.T) {
	s := newTestServer(t)
	v := s.venue(t, "The Musical Hop", "San Francisco", "CA")
	a := s.artist(t, "Guns N Petals")
	s.show(t, v.ID, a.ID, testNow.Add(time.Hour))

	var res deleteResponse
	rec := s.do(http.MethodDelete, "/venues/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Success)

	rec = s.do(http.MethodDelete, "/venues/1", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.False(t, res.Success)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/1", nil).Code)
	rows, err := s.shows.List(testContext())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAlive(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/alive", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}
