package spec

import "strings"

// AttributeDescriptor is the immutable metadata for a single SCIM attribute. Two descriptors
// are considered equal when their schema URI and lower-cased name match (spec.md §3, invariant 4).
type AttributeDescriptor struct {
	Schema       string
	Name         string
	DataType     DataType
	Plural       bool
	ReadOnly     bool
	Required     bool
	CaseExact    bool
	Mutability   Mutability
	Description  string
	PluralTypes  []string // canonical "type" values for a plural attribute, e.g. "work", "home"
	SubAttributes []*AttributeDescriptor // populated when DataType == TypeComplex
}

// CanonicalPluralSubAttributes are the sub-attribute names every plural complex value may carry,
// regardless of the attribute's own declared SubAttributes (spec.md §3, invariant 2).
var CanonicalPluralSubAttributes = []string{"value", "type", "primary", "display", "operation"}

// Equals implements the (schema, lower(name)) equality rule.
func (d *AttributeDescriptor) Equals(other *AttributeDescriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Schema == other.Schema && strings.EqualFold(d.Name, other.Name)
}

// GoesBy reports whether name addresses this descriptor, case-insensitively.
func (d *AttributeDescriptor) GoesBy(name string) bool {
	return strings.EqualFold(d.Name, name)
}

// SubAttribute returns the named sub-attribute descriptor, or nil. For plural attributes this
// checks the canonical plural sub-attribute set in addition to any declared SubAttributes.
func (d *AttributeDescriptor) SubAttribute(name string) *AttributeDescriptor {
	for _, sub := range d.SubAttributes {
		if sub.GoesBy(name) {
			return sub
		}
	}
	if d.Plural {
		for _, canonical := range CanonicalPluralSubAttributes {
			if strings.EqualFold(canonical, name) {
				return d.pluralElementDescriptor(canonical)
			}
		}
	}
	return nil
}

// pluralElementDescriptor synthesizes a descriptor for one of the canonical plural sub-attributes
// ("value", "type", "primary", "display", "operation") when the parent attribute did not declare
// its own sub-attribute of that name explicitly.
func (d *AttributeDescriptor) pluralElementDescriptor(name string) *AttributeDescriptor {
	switch strings.ToLower(name) {
	case "primary":
		return &AttributeDescriptor{Schema: d.Schema, Name: "primary", DataType: TypeBoolean}
	case "type", "display":
		return &AttributeDescriptor{Schema: d.Schema, Name: name, DataType: TypeString}
	case "operation":
		return &AttributeDescriptor{Schema: d.Schema, Name: "operation", DataType: TypeString}
	default: // "value" and anything else is a string, inheriting the parent's CaseExact
		return &AttributeDescriptor{Schema: d.Schema, Name: name, DataType: TypeString, CaseExact: d.CaseExact}
	}
}

// ExistsCanonicalType reports whether value is one of the attribute's declared canonical plural types.
// When no canonical types were declared, any type token is accepted.
func (d *AttributeDescriptor) ExistsCanonicalType(value string) bool {
	if len(d.PluralTypes) == 0 {
		return true
	}
	for _, t := range d.PluralTypes {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}
