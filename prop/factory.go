package prop

import "github.com/Nabagata/scim/spec"

// NewProperty builds the Property shaped by attr: a multiProperty when attr.Plural, a
// complexProperty for a singular complex attribute, otherwise the matching scalar.
func NewProperty(attr *spec.AttributeDescriptor) Property {
	if attr.Plural {
		return newMulti(attr)
	}
	if attr.DataType == spec.TypeComplex {
		return newComplex(attr, attr.SubAttributes)
	}
	return newScalar(attr)
}

// newScalar builds the non-complex, non-plural Property for attr's data type.
func newScalar(attr *spec.AttributeDescriptor) Property {
	switch attr.DataType {
	case spec.TypeBoolean:
		return newBoolean(attr)
	case spec.TypeDateTime:
		return newDateTime(attr)
	case spec.TypeInteger:
		return newInteger(attr)
	case spec.TypeBinary:
		return newBinary(attr)
	default:
		return newString(attr)
	}
}
