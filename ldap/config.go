// Package ldap maps SCIM resources onto an LDAP directory: a declarative per-resource Mapping
// describes how attributes correspond to LDAP entry attributes, TransformFilter rewrites a
// compiled SCIM filter into an RFC 4515 filter string, and Mapper/Pool/Backend build on those to
// implement the backend.Backend contract against a real directory (spec.md §4.6).
//
// This package has no teacher analog in imulab/go-scim, which persists to MongoDB instead. Its
// shape is grounded on mongo/v2/metadata.go (declarative attribute mapping), mongo/v2/filter.go
// (the transformer pattern for rewriting a compiled SCIM filter into a target query language) and
// mongo/v2/db.go (the DB implementation backing a transport-agnostic Backend).
package ldap

import (
	"strings"

	"github.com/Nabagata/scim/spec"
)

// Kind identifies how one SCIM attribute maps onto LDAP entry attributes.
type Kind int

const (
	// Simple maps a top-level scalar attribute to exactly one LDAP attribute.
	Simple Kind = iota
	// Complex maps a top-level complex attribute's sub-attributes to LDAP attributes individually.
	Complex
	// Plural maps a multi-valued attribute's canonical "type" tokens to distinct LDAP attributes,
	// e.g. emails/work -> mail, emails/home -> homeEmail.
	Plural
	// Derived maps a read-only attribute computed from other LDAP attributes at read time.
	Derived
)

// AttributeMapping binds one SCIM attribute, named by SCIMName, to its LDAP representation.
type AttributeMapping struct {
	SCIMName string
	Kind     Kind

	// DataType mirrors the mapped attribute's spec.DataType, used to format filter values and
	// LDAP attribute values (generalized time for dateTime, TRUE/FALSE for boolean). Left as
	// spec.TypeString's zero value for plain string attributes.
	DataType spec.DataType

	// LDAPAttribute is the target attribute name for Simple. Unused otherwise.
	LDAPAttribute string

	// SubAttributes maps a Complex attribute's sub-attribute name to its LDAP attribute name.
	SubAttributes map[string]string

	// TypeAttributes maps a Plural attribute's canonical type token (lower-case) to the LDAP
	// attribute holding that type's value, e.g. {"work": "mail", "home": "homeEmail"}.
	TypeAttributes map[string]string

	// PrimaryAttribute, when set, names the LDAP attribute recording which TypeAttributes entry
	// is primary (stores the LDAP attribute name of the primary element). Optional.
	PrimaryAttribute string

	// Derive computes a Derived attribute's value from the resolved entry attributes. Required
	// when Kind == Derived, ignored otherwise.
	Derive func(attrs map[string][]string) string
}

// Mapping is the declarative LDAP configuration for one SCIM resource type.
type Mapping struct {
	ResourceName string
	BaseDN       string // search base, e.g. "ou=people,dc=example,dc=com"
	DNTemplate   string // e.g. "uid={userName},ou=people,dc=example,dc=com"
	// IDAttribute is the LDAP operational attribute holding the value used as the SCIM "id"
	// (spec.md §4.1). Defaults to "entryUUID" when empty.
	IDAttribute   string
	ObjectClasses []string
	Attributes    []*AttributeMapping
}

// idAttribute returns m.IDAttribute, defaulting to the entryUUID operational attribute that
// OpenLDAP and most directory servers maintain automatically.
func (m *Mapping) idAttribute() string {
	if m.IDAttribute != "" {
		return m.IDAttribute
	}
	return "entryUUID"
}

// Attribute returns the mapping for the named top-level SCIM attribute, or nil.
func (m *Mapping) Attribute(scimName string) *AttributeMapping {
	for _, a := range m.Attributes {
		if strings.EqualFold(a.SCIMName, scimName) {
			return a
		}
	}
	return nil
}
