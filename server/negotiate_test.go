package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/uri"
)

func TestNegotiateMediaSuffixWinsOverAccept(t *testing.T) {
	u, err := uri.Parse("/Users/1.xml")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/Users/1.xml", nil)
	r.Header.Set("Accept", "application/json")

	assert.Equal(t, uri.MediaXML, negotiate(u, r))
}

func TestNegotiatePrefersJSONWhenBothAcceptable(t *testing.T) {
	u, err := uri.Parse("/Users/1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/Users/1", nil)
	r.Header.Set("Accept", "application/xml, application/json")

	assert.Equal(t, uri.MediaJSON, negotiate(u, r))
}

func TestNegotiateFallsBackToXMLWhenOnlyAcceptable(t *testing.T) {
	u, err := uri.Parse("/Users/1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/Users/1", nil)
	r.Header.Set("Accept", "application/xml")

	assert.Equal(t, uri.MediaXML, negotiate(u, r))
}

func TestNegotiateDefaultsToJSONWithNoAcceptHeader(t *testing.T) {
	u, err := uri.Parse("/Users/1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/Users/1", nil)

	assert.Equal(t, uri.MediaJSON, negotiate(u, r))
}

func TestDecodeBodyRejectsMismatchedContent(t *testing.T) {
	registry, err := newTestRegistry(t)
	require.NoError(t, err)

	_, err = decodeBody([]byte("not json"), contentTypeJSON, "User", registry)
	assert.Error(t, err)
}

func TestDecodeBodyPicksXMLFromContentType(t *testing.T) {
	registry, err := newTestRegistry(t)
	require.NoError(t, err)

	resource, err := decodeBody([]byte(`<User><userName>bob</userName></User>`), contentTypeXML, "User", registry)
	require.NoError(t, err)
	assert.Equal(t, "bob", resource.Get("userName").Raw())
}
