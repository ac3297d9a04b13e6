package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/service"
	"github.com/Nabagata/scim/service/filter"
	"github.com/Nabagata/scim/spec"
)

func newTestEndpoint(t *testing.T) (*Endpoint, backend.Backend) {
	t.Helper()
	registry, err := newTestRegistry(t)
	require.NoError(t, err)
	descriptor, ok := registry.GetResourceDescriptor("User")
	require.True(t, ok)
	schema, ok := registry.GetSchema(descriptor.Schema)
	require.True(t, ok)

	be := backend.Memory()
	logger := zerolog.Nop()

	createFilters := []filter.ByResource{filter.ReadOnly(), filter.UUID(), filter.Meta(descriptor), filter.Password(), filter.Validation()}
	replaceFilters := []filter.ByResource{filter.ReadOnly(), filter.Meta(descriptor), filter.Validation()}

	return &Endpoint{
		Descriptor: descriptor,
		Schema:     schema,
		Registry:   registry,
		Backend:    be,
		Create:     service.CreateService(be, createFilters),
		Get:        service.GetService(be),
		Replace:    service.ReplaceService(be, replaceFilters),
		Delete:     service.DeleteService(be),
		Query:      service.QueryService(be, 0),
		Logger:     &logger,
	}, be
}

func TestMountCreateThenGet(t *testing.T) {
	e, _ := newTestEndpoint(t)
	router := httprouter.New()
	Mount(router, e)

	createReq := httptest.NewRequest(http.MethodPost, "/Users", strings.NewReader(`{"userName":"bob"}`))
	createReq.Header.Set("Content-Type", contentTypeJSON)
	createReq.SetBasicAuth("bob", "secret")
	createRR := httptest.NewRecorder()
	router.ServeHTTP(createRR, createReq)

	require.Equal(t, http.StatusCreated, createRR.Code)
	assert.NotEmpty(t, createRR.Header().Get("Location"))
	assert.Contains(t, createRR.Body.String(), `"bob"`)
}

func TestMountCreateRequiresAuthentication(t *testing.T) {
	e, _ := newTestEndpoint(t)
	router := httprouter.New()
	Mount(router, e)

	createReq := httptest.NewRequest(http.MethodPost, "/Users", strings.NewReader(`{"userName":"bob"}`))
	createReq.Header.Set("Content-Type", contentTypeJSON)
	createRR := httptest.NewRecorder()
	router.ServeHTTP(createRR, createReq)

	assert.Equal(t, spec.ErrUnauthorized.Status, createRR.Code)
}

func TestMountGetNotFound(t *testing.T) {
	e, _ := newTestEndpoint(t)
	router := httprouter.New()
	Mount(router, e)

	getReq := httptest.NewRequest(http.MethodGet, "/Users/missing", nil)
	getRR := httptest.NewRecorder()
	router.ServeHTTP(getRR, getReq)

	assert.Equal(t, spec.ErrNotFound.Status, getRR.Code)
}

func TestMountDeleteTunneledThroughPost(t *testing.T) {
	e, be := newTestEndpoint(t)
	router := httprouter.New()
	Mount(router, e)

	user := newTestUser(t, e.Registry, "1", "carol")
	require.NoError(t, be.Insert(context.Background(), user))

	delReq := httptest.NewRequest(http.MethodPost, "/Users/1", nil)
	delReq.Header.Set("X-HTTP-Method-Override", "DELETE")
	delReq.SetBasicAuth("carol", "secret")
	delRR := httptest.NewRecorder()
	router.ServeHTTP(delRR, delReq)

	assert.Equal(t, http.StatusOK, delRR.Code)
}
