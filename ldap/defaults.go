package ldap

import "github.com/Nabagata/scim/spec"

// DefaultUserMapping returns the built-in User mapping onto the standard inetOrgPerson/
// organizationalPerson/person object classes, rooted at baseDN. Grounded on the fixture in
// config_test.go/testdata_test.go, extended to cover every core_schemas.go User attribute this
// module assigns rather than just the subset exercised by unit tests.
func DefaultUserMapping(baseDN string) *Mapping {
	return &Mapping{
		ResourceName:  "User",
		BaseDN:        baseDN,
		DNTemplate:    "uid={userName}," + baseDN,
		IDAttribute:   "entryUUID",
		ObjectClasses: []string{"inetOrgPerson", "organizationalPerson", "person", "top"},
		Attributes: []*AttributeMapping{
			{SCIMName: "id", Kind: Simple, LDAPAttribute: "entryUUID"},
			{SCIMName: "externalId", Kind: Simple, LDAPAttribute: "employeeNumber"},
			{SCIMName: "userName", Kind: Simple, LDAPAttribute: "uid"},
			{SCIMName: "displayName", Kind: Simple, LDAPAttribute: "displayName"},
			{SCIMName: "nickName", Kind: Simple, LDAPAttribute: "initials"},
			{SCIMName: "profileUrl", Kind: Simple, LDAPAttribute: "labeledURI"},
			{SCIMName: "title", Kind: Simple, LDAPAttribute: "title"},
			{SCIMName: "userType", Kind: Simple, LDAPAttribute: "employeeType"},
			{SCIMName: "preferredLanguage", Kind: Simple, LDAPAttribute: "preferredLanguage"},
			{SCIMName: "locale", Kind: Simple, LDAPAttribute: "preferredLanguage"},
			{SCIMName: "timezone", Kind: Simple, LDAPAttribute: "homePostalAddress"},
			{SCIMName: "active", Kind: Simple, LDAPAttribute: "nsAccountLock", DataType: spec.TypeBoolean},
			{SCIMName: "password", Kind: Simple, LDAPAttribute: "userPassword"},
			{
				SCIMName: "name", Kind: Complex,
				SubAttributes: map[string]string{
					"formatted":       "cn",
					"familyName":      "sn",
					"givenName":       "givenName",
					"middleName":      "middleName",
					"honorificPrefix": "personalTitle",
				},
			},
			{
				SCIMName: "emails", Kind: Plural,
				TypeAttributes:   map[string]string{"work": "mail", "home": "homeEmail", "other": "mailAlternateAddress"},
				PrimaryAttribute: "preferredEmail",
			},
			{
				SCIMName: "phoneNumbers", Kind: Plural,
				TypeAttributes:   map[string]string{"work": "telephoneNumber", "home": "homePhone", "mobile": "mobile", "fax": "facsimileTelephoneNumber"},
				PrimaryAttribute: "preferredPhone",
			},
			// "addresses" and "groups" are left unmapped: Plural here only models the
			// type/value shape emails and phoneNumbers share, and addresses carries a full
			// sub-attribute set instead of one canonical value per type; groups is server-computed
			// reverse membership with no directory attribute to read it from in this mapping.
		},
	}
}

// DefaultGroupMapping returns the built-in Group mapping onto the standard groupOfNames object
// class, rooted at baseDN. Members go through the Plural TypeAttributes fan-out: each element's
// "value" is written to and read back from the "member" attribute verbatim, with type "direct".
// No translation between member DNs and SCIM ids is made.
func DefaultGroupMapping(baseDN string) *Mapping {
	return &Mapping{
		ResourceName:  "Group",
		BaseDN:        baseDN,
		DNTemplate:    "cn={displayName}," + baseDN,
		IDAttribute:   "entryUUID",
		ObjectClasses: []string{"groupOfNames", "top"},
		Attributes: []*AttributeMapping{
			{SCIMName: "id", Kind: Simple, LDAPAttribute: "entryUUID"},
			{SCIMName: "displayName", Kind: Simple, LDAPAttribute: "cn"},
			{
				SCIMName: "members", Kind: Plural,
				TypeAttributes: map[string]string{"direct": "member"},
			},
		},
	}
}
