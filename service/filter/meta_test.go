package filter

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/spec"
)

func TestMetaFilterStampsCreateFields(t *testing.T) {
	r := newUserResource(t)
	require.NoError(t, r.Get("id").Replace("1"))

	f := Meta(userDescriptor(t))
	require.NoError(t, f.Filter(context.Background(), r))

	meta := r.Get("meta")

	createdAt, err := time.Parse(spec.ISO8601, meta.Raw().(map[string]interface{})["created"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), createdAt, 5*time.Second)

	location := meta.Raw().(map[string]interface{})["location"].(string)
	assert.True(t, strings.HasSuffix(location, "/1"))

	version := meta.Raw().(map[string]interface{})["version"].(string)
	assert.True(t, strings.HasPrefix(version, "W/"))
}

func TestMetaFilterRefUpdatesLastModifiedAndVersion(t *testing.T) {
	r := newUserResource(t)
	require.NoError(t, r.Get("id").Replace("1"))

	f := Meta(userDescriptor(t))
	require.NoError(t, f.Filter(context.Background(), r))
	firstVersion := r.Get("meta").Raw().(map[string]interface{})["version"].(string)

	require.NoError(t, f.FilterRef(context.Background(), r, r))
	secondVersion := r.Get("meta").Raw().(map[string]interface{})["version"].(string)

	assert.NotEqual(t, firstVersion, secondVersion)
}
