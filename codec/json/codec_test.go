package json

import (
	"encoding/json"
	"testing"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *spec.Registry {
	t.Helper()
	r, err := spec.CoreRegistry()
	require.NoError(t, err)
	return r
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	registry := testRegistry(t)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)

	resource := prop.NewResource(descriptor, schema)
	require.NoError(t, resource.Get("id").Replace("2819c223"))
	require.NoError(t, resource.Get("userName").Replace("bjensen"))
	require.NoError(t, resource.Get("emails").Add(map[string]interface{}{
		"value": "bjensen@example.com", "type": "work", "primary": true,
	}))

	var codec Codec
	data, err := codec.Marshal(resource, registry, nil, nil)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "bjensen", decoded["userName"])
	schemas, ok := decoded["schemas"].([]interface{})
	require.True(t, ok)
	require.Equal(t, spec.UserSchemaURI, schemas[0])

	back, err := codec.Unmarshal(data, "User", registry)
	require.NoError(t, err)
	require.Equal(t, "2819c223", back.ID())
	require.Equal(t, "bjensen", back.Get("userName").Raw())
	require.Equal(t, 1, back.Get("emails").CountChildren())
}

func TestMarshalAttributeProjection(t *testing.T) {
	registry := testRegistry(t)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)

	resource := prop.NewResource(descriptor, schema)
	require.NoError(t, resource.Get("userName").Replace("bjensen"))
	require.NoError(t, resource.Get("displayName").Replace("Barbara Jensen"))

	var codec Codec
	data, err := codec.Marshal(resource, registry, []string{"userName"}, nil)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "bjensen", decoded["userName"])
	require.Nil(t, decoded["displayName"])
}

func TestMarshalAttributeProjectionAlwaysIncludesIDAndMeta(t *testing.T) {
	registry := testRegistry(t)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)

	resource := prop.NewResource(descriptor, schema)
	require.NoError(t, resource.Get("id").Replace("2819c223"))
	require.NoError(t, resource.Get("userName").Replace("bjensen"))
	require.NoError(t, resource.Get("meta").(prop.Container).Get("location").Replace("/Users/2819c223"))

	var codec Codec
	data, err := codec.Marshal(resource, registry, []string{"userName"}, nil)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "2819c223", decoded["id"])
	meta, ok := decoded["meta"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "/Users/2819c223", meta["location"])
}

func TestUnmarshalPreservesUnknownSchema(t *testing.T) {
	registry := testRegistry(t)
	payload := []byte(`{
		"schemas": ["urn:scim:schemas:core:1.0:User"],
		"userName": "bjensen",
		"urn:example:params:scim:schemas:extension:custom:1.0": {"department": "engineering"}
	}`)

	var codec Codec
	resource, err := codec.Unmarshal(payload, "User", registry)
	require.NoError(t, err)
	require.Equal(t, "bjensen", resource.Get("userName").Raw())

	found := false
	resource.ForEachExtra(func(uri string, block map[string]interface{}) {
		if uri == "urn:example:params:scim:schemas:extension:custom:1.0" {
			found = true
			require.Equal(t, "engineering", block["department"])
		}
	})
	require.True(t, found)
}

func TestUnmarshalUnknownResourceRejected(t *testing.T) {
	registry := testRegistry(t)
	var codec Codec
	_, err := codec.Unmarshal([]byte(`{}`), "Widget", registry)
	require.ErrorIs(t, err, spec.ErrInvalidResource)
}
