package spec

// Schema URIs and resource endpoints fixed by the SCIM 1.0 core schema. The historical SCIM 1.0
// RFC draft shared one "urn:scim:schemas:core:1.0" URI across User and Group; this registry keeps
// them distinct so the Schema Registry's "duplicate schema registration is rejected" invariant
// (spec.md §4.1) has a clean meaning per resource type.
const (
	UserSchemaURI  = "urn:scim:schemas:core:1.0:User"
	GroupSchemaURI = "urn:scim:schemas:core:1.0:Group"
)

// CoreUserSchema builds the SCIM 1.0 core User schema in code (spec.md §4.1: "the SCIM Core
// schema built in code"). Only the subset of RFC-style SCIM 1.0 attributes this module exercises
// end to end is modeled. Additional schemas are registered by building a Registry with
// NewRegistry; this module has no loader that reads schemas from files.
func CoreUserSchema() *Schema {
	name := &AttributeDescriptor{
		Schema: UserSchemaURI, Name: "name", DataType: TypeComplex,
		SubAttributes: []*AttributeDescriptor{
			{Schema: UserSchemaURI, Name: "formatted", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "familyName", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "givenName", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "middleName", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "honorificPrefix", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "honorificSuffix", DataType: TypeString},
		},
	}

	emails := &AttributeDescriptor{
		Schema: UserSchemaURI, Name: "emails", DataType: TypeComplex, Plural: true,
		PluralTypes: []string{"work", "home", "other"},
	}
	phoneNumbers := &AttributeDescriptor{
		Schema: UserSchemaURI, Name: "phoneNumbers", DataType: TypeComplex, Plural: true,
		PluralTypes: []string{"work", "home", "mobile", "fax", "pager", "other"},
	}
	addresses := &AttributeDescriptor{
		Schema: UserSchemaURI, Name: "addresses", DataType: TypeComplex, Plural: true,
		PluralTypes: []string{"work", "home", "other"},
		SubAttributes: []*AttributeDescriptor{
			{Schema: UserSchemaURI, Name: "formatted", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "streetAddress", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "locality", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "region", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "postalCode", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "country", DataType: TypeString},
		},
	}
	groups := &AttributeDescriptor{
		Schema: UserSchemaURI, Name: "groups", DataType: TypeComplex, Plural: true, ReadOnly: true,
		Mutability: MutabilityReadOnly,
	}

	return &Schema{
		ID:   UserSchemaURI,
		Name: "User",
		Attributes: []*AttributeDescriptor{
			{Schema: UserSchemaURI, Name: "id", DataType: TypeString, ReadOnly: true, Mutability: MutabilityReadOnly},
			{Schema: UserSchemaURI, Name: "externalId", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "userName", DataType: TypeString, Required: true, CaseExact: false},
			name,
			{Schema: UserSchemaURI, Name: "displayName", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "nickName", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "profileUrl", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "title", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "userType", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "preferredLanguage", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "locale", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "timezone", DataType: TypeString},
			{Schema: UserSchemaURI, Name: "active", DataType: TypeBoolean},
			{Schema: UserSchemaURI, Name: "password", DataType: TypeString, Mutability: MutabilityReadOnly, ReadOnly: true, CaseExact: true},
			emails,
			phoneNumbers,
			addresses,
			groups,
			metaAttribute(UserSchemaURI),
		},
	}
}

// CoreGroupSchema builds the SCIM 1.0 core Group schema, extended (per SPEC_FULL.md §9) with a
// plural "members" attribute whose canonical sub-attribute set mirrors "emails" so the LDAP Mapper
// and Resource Server are exercised against a second resource type.
func CoreGroupSchema() *Schema {
	members := &AttributeDescriptor{
		Schema: GroupSchemaURI, Name: "members", DataType: TypeComplex, Plural: true,
	}

	return &Schema{
		ID:   GroupSchemaURI,
		Name: "Group",
		Attributes: []*AttributeDescriptor{
			{Schema: GroupSchemaURI, Name: "id", DataType: TypeString, ReadOnly: true, Mutability: MutabilityReadOnly},
			{Schema: GroupSchemaURI, Name: "displayName", DataType: TypeString, Required: true},
			members,
			metaAttribute(GroupSchemaURI),
		},
	}
}

// metaAttribute is the "meta" complex attribute common to every resource: created/lastModified
// timestamps, version and resource location, all server-assigned and hence read-only.
func metaAttribute(schemaURI string) *AttributeDescriptor {
	return &AttributeDescriptor{
		Schema: schemaURI, Name: "meta", DataType: TypeComplex, ReadOnly: true, Mutability: MutabilityReadOnly,
		SubAttributes: []*AttributeDescriptor{
			{Schema: schemaURI, Name: "created", DataType: TypeDateTime, ReadOnly: true, Mutability: MutabilityReadOnly},
			{Schema: schemaURI, Name: "lastModified", DataType: TypeDateTime, ReadOnly: true, Mutability: MutabilityReadOnly},
			{Schema: schemaURI, Name: "location", DataType: TypeString, ReadOnly: true, Mutability: MutabilityReadOnly},
			{Schema: schemaURI, Name: "version", DataType: TypeString, ReadOnly: true, Mutability: MutabilityReadOnly},
		},
	}
}

// CoreRegistry builds the Registry containing only the SCIM 1.0 core User and Group resources.
// A deployment with additional schemas builds its own Registry with NewRegistry, appending them to
// these schemas and resource descriptors.
func CoreRegistry() (*Registry, error) {
	return NewRegistry(
		[]*Schema{CoreUserSchema(), CoreGroupSchema()},
		[]*ResourceDescriptor{
			{Schema: UserSchemaURI, Name: "User", Endpoint: "/Users"},
			{Schema: GroupSchemaURI, Name: "Group", Endpoint: "/Groups"},
		},
	)
}
