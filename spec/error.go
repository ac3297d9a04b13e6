package spec

// Error is a SCIM protocol-level error prototype. Create additional detail by wrapping
// a prototype with fmt.Errorf("%w: ...", proto) rather than constructing Error directly.
type Error struct {
	Status int
	Type   string
}

func (e *Error) Error() string {
	return e.Type
}

// Error prototypes, one per taxonomy entry in spec.md §7.
var (
	// ErrInvalidURI covers a malformed SCIM resource URI.
	ErrInvalidURI = &Error{Status: 400, Type: "invalidUri"}
	// ErrInvalidFilter covers an unparseable filter or sort expression.
	ErrInvalidFilter = &Error{Status: 400, Type: "invalidFilter"}
	// ErrInvalidPath covers a malformed attribute path.
	ErrInvalidPath = &Error{Status: 400, Type: "invalidPath"}
	// ErrInvalidValue covers a required attribute missing, or a value incompatible with its data type.
	ErrInvalidValue = &Error{Status: 400, Type: "invalidValue"}
	// ErrInvalidResource covers a malformed request body that the codec could not parse.
	ErrInvalidResource = &Error{Status: 400, Type: "invalidResource"}
	// ErrSchemaViolation covers an attribute value that fails its descriptor's constraints.
	ErrSchemaViolation = &Error{Status: 400, Type: "schemaViolation"}
	// ErrUnauthorized covers bad or missing HTTP Basic credentials.
	ErrUnauthorized = &Error{Status: 401, Type: "unauthorized"}
	// ErrForbidden covers a backend-reported insufficient-privilege failure.
	ErrForbidden = &Error{Status: 403, Type: "forbidden"}
	// ErrNotFound covers a resource absent from the backend.
	ErrNotFound = &Error{Status: 404, Type: "notFound"}
	// ErrConflict covers a uniqueness violation on create.
	ErrConflict = &Error{Status: 409, Type: "conflict"}
	// ErrPreconditionFailed covers a version mismatch on update (If-Match/If-None-Match).
	ErrPreconditionFailed = &Error{Status: 412, Type: "preconditionFailed"}
	// ErrTooMany covers a filter/candidate set larger than the server is willing to process.
	ErrTooMany = &Error{Status: 400, Type: "tooMany"}
	// ErrInternal covers backend faults (LDAP down/timeout); detail is never leaked to the client.
	ErrInternal = &Error{Status: 500, Type: "internal"}
	// ErrNotImplemented covers verbs or media types the server declines to support.
	ErrNotImplemented = &Error{Status: 501, Type: "notImplemented"}
)

var _ error = (*Error)(nil)
