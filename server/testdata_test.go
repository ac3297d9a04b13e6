package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

func newTestRegistry(t *testing.T) (*spec.Registry, error) {
	t.Helper()
	return spec.CoreRegistry()
}

func newTestUser(t *testing.T, registry *spec.Registry, id, userName string) *prop.Resource {
	t.Helper()
	descriptor, ok := registry.GetResourceDescriptor("User")
	require.True(t, ok)
	schema, ok := registry.GetSchema(descriptor.Schema)
	require.True(t, ok)

	r := prop.NewResource(descriptor, schema)
	require.NoError(t, r.Get("id").Replace(id))
	require.NoError(t, r.Get("userName").Replace(userName))
	return r
}
