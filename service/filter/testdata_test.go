package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

func newUserResource(t *testing.T) *prop.Resource {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)
	return prop.NewResource(descriptor, schema)
}

func userDescriptor(t *testing.T) *spec.ResourceDescriptor {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, _ := registry.GetResourceDescriptor("User")
	return descriptor
}
