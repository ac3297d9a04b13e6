package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/service"
	"github.com/Nabagata/scim/spec"
	"github.com/Nabagata/scim/uri"
)

// Endpoint bundles everything one resource type (User, Group, ...) needs to serve requests at
// its own endpoint: the service chain built by the caller's filter wiring, the backend it reads
// from directly only to authenticate, the descriptor/schema/registry the codecs and URI model
// need, and a logger. Grounded on cmd/api/cmd.go's per-resource-type route block, collapsed into
// one value since every route here dispatches through the same five operations.
type Endpoint struct {
	Descriptor *spec.ResourceDescriptor
	Schema     *spec.Schema
	Registry   *spec.Registry
	Backend    backend.Backend
	Create     service.Create
	Get        service.Get
	Replace    service.Replace
	Delete     service.Delete
	Query      service.Query
	Logger     *zerolog.Logger
}

// Mount registers e's routes on router at e.Descriptor.Endpoint, with and without a trailing
// resource id. POST also accepts a tunneled PUT/DELETE via X-HTTP-Method-Override (spec.md §4.7).
func Mount(router *httprouter.Router, e *Endpoint) {
	base := e.Descriptor.Endpoint

	router.GET(base, e.search)
	router.GET(base+"/:id", e.get)
	router.POST(base, e.dispatchCreateOrOverride)
	router.POST(base+"/:id", e.dispatchCreateOrOverride)
	router.PUT(base+"/:id", e.replace)
	router.DELETE(base+"/:id", e.delete)
}

func (e *Endpoint) dispatchCreateOrOverride(rw http.ResponseWriter, r *http.Request, params httprouter.Params) {
	switch methodOverride(r) {
	case http.MethodPut:
		if id := params.ByName("id"); id == "" {
			// An overridden PUT with no id in the path has nowhere to dispatch; treated as create.
			e.create(rw, r, params)
			return
		}
		e.replace(rw, r, params)
	case http.MethodDelete:
		e.delete(rw, r, params)
	default:
		e.create(rw, r, params)
	}
}

func (e *Endpoint) get(rw http.ResponseWriter, r *http.Request, params httprouter.Params) {
	u, media, err := parseURI(r)
	if err != nil {
		_ = writeError(rw, uri.MediaJSON, err)
		return
	}

	resp, err := e.Get.Do(r.Context(), &service.GetRequest{ResourceID: params.ByName("id")})
	if err != nil {
		e.Logger.Err(err).Msg("error getting resource")
		_ = writeError(rw, media, err)
		return
	}

	_ = writeResource(rw, http.StatusOK, resp.Resource, e.Registry, media, u.Attributes, u.ExcludedAttributes)
}

func (e *Endpoint) search(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	u, media, err := parseURI(r)
	if err != nil {
		_ = writeError(rw, uri.MediaJSON, err)
		return
	}

	resp, err := e.Query.Do(r.Context(), &service.QueryRequest{
		Filter:     u.Filter,
		SortBy:     u.SortBy,
		Descending: u.SortOrder == uri.SortDescending,
		StartIndex: u.StartIndex,
		Count:      u.Count,
	})
	if err != nil {
		e.Logger.Err(err).Msg("error querying resources")
		_ = writeError(rw, media, err)
		return
	}

	_ = writeSearchResult(rw, resp.Resources, resp.TotalResults, resp.StartIndex, resp.ItemsPerPage, e.Registry, media, u.Attributes, u.ExcludedAttributes)
}

func (e *Endpoint) create(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	u, media, err := parseURI(r)
	if err != nil {
		_ = writeError(rw, uri.MediaJSON, err)
		return
	}

	if !e.authenticate(rw, r, media) {
		return
	}

	resource, err := e.decode(r)
	if err != nil {
		e.Logger.Err(err).Msg("error decoding create payload")
		_ = writeError(rw, media, err)
		return
	}

	resp, err := e.Create.Do(r.Context(), &service.CreateRequest{Resource: resource})
	if err != nil {
		e.Logger.Err(err).Msg("error creating resource")
		_ = writeError(rw, media, err)
		return
	}

	e.Logger.Info().Msg("resource created")
	_ = writeResource(rw, http.StatusCreated, resp.Resource, e.Registry, media, u.Attributes, u.ExcludedAttributes)
}

func (e *Endpoint) replace(rw http.ResponseWriter, r *http.Request, params httprouter.Params) {
	u, media, err := parseURI(r)
	if err != nil {
		_ = writeError(rw, uri.MediaJSON, err)
		return
	}

	if !e.authenticate(rw, r, media) {
		return
	}

	resource, err := e.decode(r)
	if err != nil {
		e.Logger.Err(err).Msg("error decoding replace payload")
		_ = writeError(rw, media, err)
		return
	}

	resp, err := e.Replace.Do(r.Context(), &service.ReplaceRequest{
		ResourceID:    params.ByName("id"),
		Resource:      resource,
		MatchCriteria: matchCriteria(r),
	})
	if err != nil {
		e.Logger.Err(err).Msg("error replacing resource")
		_ = writeError(rw, media, err)
		return
	}

	_ = writeResource(rw, http.StatusOK, resp.Resource, e.Registry, media, u.Attributes, u.ExcludedAttributes)
}

func (e *Endpoint) delete(rw http.ResponseWriter, r *http.Request, params httprouter.Params) {
	_, media, err := parseURI(r)
	if err != nil {
		_ = writeError(rw, uri.MediaJSON, err)
		return
	}

	if !e.authenticate(rw, r, media) {
		return
	}

	_, err = e.Delete.Do(r.Context(), &service.DeleteRequest{
		ResourceID:    params.ByName("id"),
		MatchCriteria: matchCriteria(r),
	})
	if err != nil {
		e.Logger.Err(err).Msg("error deleting resource")
		_ = writeError(rw, media, err)
		return
	}

	rw.WriteHeader(http.StatusOK)
}

// authenticate enforces HTTP Basic auth before any mutation is dispatched (spec.md §4.7): missing
// or malformed credentials are spec.ErrUnauthorized; a backend rejection is passed through
// verbatim so it can distinguish spec.ErrUnauthorized from spec.ErrForbidden.
func (e *Endpoint) authenticate(rw http.ResponseWriter, r *http.Request, media uri.MediaType) bool {
	userID, password, ok := r.BasicAuth()
	if !ok {
		_ = writeError(rw, media, fmt.Errorf("%w: missing HTTP Basic credentials", spec.ErrUnauthorized))
		return false
	}

	if err := e.Backend.Authenticate(r.Context(), userID, password); err != nil {
		e.Logger.Err(err).Msg("authentication failed")
		_ = writeError(rw, media, err)
		return false
	}
	return true
}

// decode reads and parses a request body against e's resource name, picking JSON or XML from the
// request's declared Content-Type (spec.md §4.7, "mismatch between declared and actual content
// fails 400").
func (e *Endpoint) decode(r *http.Request) (*prop.Resource, error) {
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body", spec.ErrInvalidResource)
	}

	return decodeBody(raw, r.Header.Get("Content-Type"), e.Descriptor.Name, e.Registry)
}

func parseURI(r *http.Request) (*uri.URI, uri.MediaType, error) {
	u, err := uri.Parse(r.URL.String())
	if err != nil {
		return nil, uri.MediaJSON, err
	}
	media := negotiate(u, r)
	return u, media, nil
}
