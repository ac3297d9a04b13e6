package spec

// Schema is a named collection of top-level attributes sharing one schema URI.
type Schema struct {
	ID          string
	Name        string
	Description string
	Attributes  []*AttributeDescriptor
}

// Attribute returns the top-level attribute that goes by name, case-insensitively, or nil.
func (s *Schema) Attribute(name string) *AttributeDescriptor {
	for _, attr := range s.Attributes {
		if attr.GoesBy(name) {
			return attr
		}
	}
	return nil
}

// ResourceDescriptor binds a resource type's name and HTTP endpoint to the schema that
// describes its attributes (spec.md §3, "ResourceDescriptor").
type ResourceDescriptor struct {
	Schema   string
	Name     string
	Endpoint string
}
