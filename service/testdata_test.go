package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

func newUserResource(t *testing.T, userName string) *prop.Resource {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)
	r := prop.NewResource(descriptor, schema)
	require.NoError(t, r.Get("userName").Replace(userName))
	return r
}
