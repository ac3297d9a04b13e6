package spec

// DataType is the primitive or structural type carried by an attribute's values.
type DataType int

// The six data types named in the SCIM 1.0 attribute model.
const (
	TypeString DataType = iota
	TypeBoolean
	TypeDateTime
	TypeInteger
	TypeBinary
	TypeComplex
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "dateTime"
	case TypeInteger:
		return "integer"
	case TypeBinary:
		return "binary"
	case TypeComplex:
		return "complex"
	default:
		panic("invalid data type")
	}
}

// ParseDataType resolves the wire (JSON/XML schema) spelling of a data type.
func ParseDataType(value string) (DataType, bool) {
	switch value {
	case "string", "":
		return TypeString, true
	case "boolean":
		return TypeBoolean, true
	case "dateTime":
		return TypeDateTime, true
	case "integer":
		return TypeInteger, true
	case "binary":
		return TypeBinary, true
	case "complex":
		return TypeComplex, true
	default:
		return 0, false
	}
}

// Mutability governs whether a client-supplied value for an attribute is honored.
type Mutability int

const (
	MutabilityReadWrite Mutability = iota
	MutabilityReadOnly
	MutabilityImmutable
)

func (m Mutability) String() string {
	switch m {
	case MutabilityReadWrite:
		return "readWrite"
	case MutabilityReadOnly:
		return "readOnly"
	case MutabilityImmutable:
		return "immutable"
	default:
		panic("invalid mutability")
	}
}

// ISO8601 is the timestamp layout used for SCIM dateTime values on the wire: ISO-8601 UTC with a "Z" suffix.
const ISO8601 = "2006-01-02T15:04:05Z"
