package internal

import (
	"fmt"
	"net/http"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"
)

// VenueEndpoints is a collection of endpoints to the venue service
type VenueEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ArtistEndpoints is a collection of endpoints to the artist service
type ArtistEndpoints struct {
	List       endpoint.Endpoint
	Search     endpoint.Endpoint
	Get        endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
	EditForm   endpoint.Endpoint
	Update     endpoint.Endpoint
	Delete     endpoint.Endpoint
}

// ShowEndpoints is a collection of endpoints to the show service
type ShowEndpoints struct {
	List       endpoint.Endpoint
	CreateForm endpoint.Endpoint
	Create     endpoint.Endpoint
}

// page is a response rendered as HTML page using the named template
type page struct {
	Template string
	Status   int
	Notice   *Notice
	Data     interface{}
}

// redirect is a response sending the client to another location
type redirect struct {
	Location string
}

// deleteResponse is the JSON answer to a delete request
type deleteResponse struct {
	Success bool `json:"success"`
}

// searchPage is the data of a search result page
type searchPage struct {
	Results    *models.SearchResult
	SearchTerm string
}

// formPage is the data of a page containing a create or edit form
type formPage struct {
	Form interface{}
}

// homePage returns the landing page showing the given notice
func homePage(notice *Notice) page {
	return page{Template: tplHome, Notice: notice}
}

// MakeHomeEndpoint returns an endpoint rendering the home page
func MakeHomeEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return homePage(nil), nil
	}
}

// -- Venues -----------------------------------------------------------------------------------------------------------

// MakeVenueEndpoints creates the endpoints needed for using the venue service
func MakeVenueEndpoints(s VenueService) VenueEndpoints {
	eps := VenueEndpoints{
		List:       MakeListVenuesEndpoint(s),
		Search:     MakeSearchVenuesEndpoint(s),
		Get:        MakeGetVenueEndpoint(s),
		CreateForm: MakeFormEndpoint(tplNewVenue, venueRequest{SeekingTalent: seekingNo}),
		Create:     MakeCreateVenueEndpoint(s),
		EditForm:   MakeEditVenueFormEndpoint(s),
		Update:     MakeUpdateVenueEndpoint(s),
		Delete:     MakeDeleteVenueEndpoint(s),
	}
	withLogging(map[string]*endpoint.Endpoint{
		"venues.list":     &eps.List,
		"venues.search":   &eps.Search,
		"venues.get":      &eps.Get,
		"venues.newForm":  &eps.CreateForm,
		"venues.create":   &eps.Create,
		"venues.editForm": &eps.EditForm,
		"venues.update":   &eps.Update,
		"venues.delete":   &eps.Delete,
	})
	return eps
}

// MakeListVenuesEndpoint returns an endpoint listing all venues grouped by city and state
func MakeListVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		areas, err := s.Areas(ctx)
		if err != nil {
			return nil, err
		}
		return page{Template: tplVenues, Data: areas}, nil
	}
}

// MakeSearchVenuesEndpoint returns an endpoint calling the Search method of the VenueService
func MakeSearchVenuesEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		res, err := s.Search(ctx, &search)
		if err != nil {
			return nil, err
		}
		return page{Template: tplSearchVenues, Data: searchPage{res, search.Search}}, nil
	}
}

// MakeGetVenueEndpoint returns an endpoint rendering the detail page of a venue
func MakeGetVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID parameter")
		}
		detail, err := s.Detail(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return page{Template: tplShowVenue, Data: detail}, nil
	}
}

// MakeCreateVenueEndpoint returns an endpoint calling the Create method of the VenueService. Failures are reported
// to the user as notice on the home page
func MakeCreateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(venueRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		failed := failureNotice(fmt.Sprintf("Venue %s could not be listed!", req.Name))
		if err := req.validate(); err != nil {
			ctxhelper.Logger(ctx).WithError(err).Info("Rejected venue")
			return homePage(failed), nil
		}
		v, err := s.Create(ctx, req.toVenue())
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to create venue")
			return homePage(failed), nil
		}
		return homePage(successNotice(fmt.Sprintf("Venue %s was successfully listed!", v.Name))), nil
	}
}

// MakeEditVenueFormEndpoint returns an endpoint rendering the edit form prefilled with the venue's data
func MakeEditVenueFormEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue ID parameter")
		}
		v, err := s.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return page{Template: tplEditVenue, Data: formPage{venueRequestFrom(v)}}, nil
	}
}

// MakeUpdateVenueEndpoint returns an endpoint calling the Update method of the VenueService. On success, the client
// is redirected to the venue's page
func MakeUpdateVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(venueRequest)
		if !ok {
			return nil, fmt.Errorf("illegal venue parameter")
		}
		err := req.validate()
		if err == nil {
			err = s.Update(ctx, req.toVenue())
		}
		if err != nil {
			if KindOf(err) != KindConstraintViolation {
				return nil, err
			}
			return page{
				Template: tplEditVenue,
				Status:   http.StatusBadRequest,
				Notice:   failureNotice(userMessage(err)),
				Data:     formPage{req},
			}, nil
		}
		return redirect{fmt.Sprintf("/venues/%d", req.ID)}, nil
	}
}

// MakeDeleteVenueEndpoint returns an endpoint calling the Delete method of the VenueService
func MakeDeleteVenueEndpoint(s VenueService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return deleteResponse{false}, nil
		}
		if err := s.Delete(ctx, req.ID); err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to delete venue")
			return deleteResponse{false}, nil
		}
		return deleteResponse{true}, nil
	}
}

// -- Artists ----------------------------------------------------------------------------------------------------------

// MakeArtistEndpoints creates the endpoints needed for using the artist service
func MakeArtistEndpoints(s ArtistService) ArtistEndpoints {
	eps := ArtistEndpoints{
		List:       MakeListArtistsEndpoint(s),
		Search:     MakeSearchArtistsEndpoint(s),
		Get:        MakeGetArtistEndpoint(s),
		CreateForm: MakeFormEndpoint(tplNewArtist, artistRequest{SeekingVenue: seekingNo}),
		Create:     MakeCreateArtistEndpoint(s),
		EditForm:   MakeEditArtistFormEndpoint(s),
		Update:     MakeUpdateArtistEndpoint(s),
		Delete:     MakeDeleteArtistEndpoint(s),
	}
	withLogging(map[string]*endpoint.Endpoint{
		"artists.list":     &eps.List,
		"artists.search":   &eps.Search,
		"artists.get":      &eps.Get,
		"artists.newForm":  &eps.CreateForm,
		"artists.create":   &eps.Create,
		"artists.editForm": &eps.EditForm,
		"artists.update":   &eps.Update,
		"artists.delete":   &eps.Delete,
	})
	return eps
}

// MakeListArtistsEndpoint returns an endpoint calling the List method of the ArtistService
func MakeListArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		artists, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return page{Template: tplArtists, Data: artists}, nil
	}
}

// MakeSearchArtistsEndpoint returns an endpoint calling the Search method of the ArtistService
func MakeSearchArtistsEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		search, ok := request.(Search)
		if !ok {
			return nil, fmt.Errorf("illegal search parameter")
		}
		res, err := s.Search(ctx, &search)
		if err != nil {
			return nil, err
		}
		return page{Template: tplSearchArtists, Data: searchPage{res, search.Search}}, nil
	}
}

// MakeGetArtistEndpoint returns an endpoint rendering the detail page of an artist
func MakeGetArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID parameter")
		}
		detail, err := s.Detail(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return page{Template: tplShowArtist, Data: detail}, nil
	}
}

// MakeCreateArtistEndpoint returns an endpoint calling the Create method of the ArtistService
func MakeCreateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(artistRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		failed := failureNotice(fmt.Sprintf("artist %s could not be listed!", req.Name))
		if err := req.validate(); err != nil {
			ctxhelper.Logger(ctx).WithError(err).Info("Rejected artist")
			return homePage(failed), nil
		}
		a, err := s.Create(ctx, req.toArtist())
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to create artist")
			return homePage(failed), nil
		}
		return homePage(successNotice(fmt.Sprintf("artist %s was successfully listed!", a.Name))), nil
	}
}

// MakeEditArtistFormEndpoint returns an endpoint rendering the edit form prefilled with the artist's data
func MakeEditArtistFormEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist ID parameter")
		}
		a, err := s.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return page{Template: tplEditArtist, Data: formPage{artistRequestFrom(a)}}, nil
	}
}

// MakeUpdateArtistEndpoint returns an endpoint calling the Update method of the ArtistService
func MakeUpdateArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(artistRequest)
		if !ok {
			return nil, fmt.Errorf("illegal artist parameter")
		}
		err := req.validate()
		if err == nil {
			err = s.Update(ctx, req.toArtist())
		}
		if err != nil {
			if KindOf(err) != KindConstraintViolation {
				return nil, err
			}
			return page{
				Template: tplEditArtist,
				Status:   http.StatusBadRequest,
				Notice:   failureNotice(userMessage(err)),
				Data:     formPage{req},
			}, nil
		}
		return redirect{fmt.Sprintf("/artists/%d", req.ID)}, nil
	}
}

// MakeDeleteArtistEndpoint returns an endpoint calling the Delete method of the ArtistService
func MakeDeleteArtistEndpoint(s ArtistService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(idRequest)
		if !ok {
			return deleteResponse{false}, nil
		}
		if err := s.Delete(ctx, req.ID); err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to delete artist")
			return deleteResponse{false}, nil
		}
		return deleteResponse{true}, nil
	}
}

// -- Shows ------------------------------------------------------------------------------------------------------------

// MakeShowEndpoints creates the endpoints needed for using the show service
func MakeShowEndpoints(s ShowService) ShowEndpoints {
	eps := ShowEndpoints{
		List:       MakeListShowsEndpoint(s),
		CreateForm: MakeFormEndpoint(tplNewShow, showRequest{}),
		Create:     MakeCreateShowEndpoint(s),
	}
	withLogging(map[string]*endpoint.Endpoint{
		"shows.list":    &eps.List,
		"shows.newForm": &eps.CreateForm,
		"shows.create":  &eps.Create,
	})
	return eps
}

// MakeListShowsEndpoint returns an endpoint calling the List method of the ShowService
func MakeListShowsEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		rows, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		return page{Template: tplShows, Data: rows}, nil
	}
}

// MakeCreateShowEndpoint returns an endpoint calling the Create method of the ShowService
func MakeCreateShowEndpoint(s ShowService) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(showRequest)
		if !ok {
			return nil, fmt.Errorf("illegal show parameter")
		}
		failed := failureNotice("Show could not be listed check whether Artist id and Venue id is correct!")
		show, err := req.toShow()
		if err != nil {
			ctxhelper.Logger(ctx).WithError(err).Info("Rejected show")
			return homePage(failed), nil
		}
		if _, err = s.Create(ctx, show); err != nil {
			ctxhelper.Logger(ctx).WithError(err).Error("Failed to create show")
			return homePage(failed), nil
		}
		return homePage(successNotice("Show was successfully listed!")), nil
	}
}

// -- Common -----------------------------------------------------------------------------------------------------------

// MakeFormEndpoint returns an endpoint rendering an empty form using the given defaults
func MakeFormEndpoint(template string, defaults interface{}) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return page{Template: template, Data: formPage{defaults}}, nil
	}
}

// userMessage returns the part of the error that may be shown to the user
func userMessage(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Message()
	}
	return "Something went wrong"
}
