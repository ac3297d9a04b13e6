package server

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
	"github.com/Nabagata/scim/uri"
)

func TestWriteResourceSetsLocationAndETag(t *testing.T) {
	registry, err := newTestRegistry(t)
	require.NoError(t, err)
	resource := newTestUser(t, registry, "1", "bob")

	meta, ok := resource.Get("meta").(prop.Container)
	require.True(t, ok)
	require.NoError(t, meta.Get("location").Replace("/Users/1"))
	require.NoError(t, meta.Get("version").Replace(`W/"abc"`))

	rw := httptest.NewRecorder()
	require.NoError(t, writeResource(rw, 200, resource, registry, uri.MediaJSON, nil, nil))

	assert.Equal(t, "/Users/1", rw.Header().Get("Location"))
	assert.Equal(t, `W/"abc"`, rw.Header().Get("ETag"))
	assert.Equal(t, contentTypeJSON, rw.Header().Get("Content-Type"))
	assert.Contains(t, rw.Body.String(), `"bob"`)
}

func TestWriteSearchResultSplicesFragments(t *testing.T) {
	registry, err := newTestRegistry(t)
	require.NoError(t, err)
	alice := newTestUser(t, registry, "1", "alice")
	bob := newTestUser(t, registry, "2", "bob")

	rw := httptest.NewRecorder()
	require.NoError(t, writeSearchResult(rw, []*prop.Resource{alice, bob}, 2, 1, 2, registry, uri.MediaJSON, nil, nil))

	body := rw.Body.String()
	assert.Contains(t, body, `"totalResults":2`)
	assert.Contains(t, body, `"alice"`)
	assert.Contains(t, body, `"bob"`)
}

func TestWriteSearchResultXML(t *testing.T) {
	registry, err := newTestRegistry(t)
	require.NoError(t, err)
	alice := newTestUser(t, registry, "1", "alice")

	rw := httptest.NewRecorder()
	require.NoError(t, writeSearchResult(rw, []*prop.Resource{alice}, 1, 1, 1, registry, uri.MediaXML, nil, nil))

	body := rw.Body.String()
	assert.Contains(t, body, "<Response>")
	assert.Contains(t, body, "<totalResults>1</totalResults>")
}

func TestWriteErrorRecoversStatusAndType(t *testing.T) {
	wrapped := fmt.Errorf("%w: bad filter", spec.ErrInvalidFilter)

	rw := httptest.NewRecorder()
	require.NoError(t, writeError(rw, uri.MediaJSON, wrapped))

	assert.Equal(t, spec.ErrInvalidFilter.Status, rw.Code)
	assert.Contains(t, rw.Body.String(), spec.ErrInvalidFilter.Type)
}

func TestWriteErrorFallsBackToInternal(t *testing.T) {
	rw := httptest.NewRecorder()
	require.NoError(t, writeError(rw, uri.MediaJSON, errors.New("boom")))

	assert.Equal(t, spec.ErrInternal.Status, rw.Code)
}

func TestWriteErrorMasksInternalDetail(t *testing.T) {
	wrapped := fmt.Errorf("%w: ldap: connection refused", spec.ErrInternal)

	rw := httptest.NewRecorder()
	require.NoError(t, writeError(rw, uri.MediaJSON, wrapped))

	assert.NotContains(t, rw.Body.String(), "ldap: connection refused")
}
