package ldap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

func userMapping() *Mapping {
	return &Mapping{
		ResourceName:  "User",
		BaseDN:        "ou=people,dc=example,dc=com",
		DNTemplate:    "uid={userName},ou=people,dc=example,dc=com",
		IDAttribute:   "entryUUID",
		ObjectClasses: []string{"inetOrgPerson", "organizationalPerson", "person", "top"},
		Attributes: []*AttributeMapping{
			{SCIMName: "id", Kind: Simple, LDAPAttribute: "entryUUID"},
			{SCIMName: "userName", Kind: Simple, LDAPAttribute: "uid"},
			{SCIMName: "active", Kind: Simple, LDAPAttribute: "nsAccountLock", DataType: spec.TypeBoolean},
			{
				SCIMName: "name", Kind: Complex,
				SubAttributes: map[string]string{
					"formatted":  "cn",
					"familyName": "sn",
					"givenName":  "givenName",
				},
			},
			{
				SCIMName: "emails", Kind: Plural,
				TypeAttributes:   map[string]string{"work": "mail", "home": "homeEmail"},
				PrimaryAttribute: "preferredEmail",
			},
		},
	}
}

func newUserResource(t *testing.T) *prop.Resource {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, ok := registry.GetResourceDescriptor("User")
	require.True(t, ok)
	schema, ok := registry.GetSchema(descriptor.Schema)
	require.True(t, ok)
	return prop.NewResource(descriptor, schema)
}
