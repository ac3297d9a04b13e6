// Package codec declares the Marshaller/Unmarshaller contract shared by codec/json and
// codec/xml (spec.md §4.3).
package codec

import (
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Marshaller writes a Resource to its wire representation. attributes and excludedAttributes
// are mutually exclusive attribute-path filters (uri.Query's "attributes"/"excludedAttributes");
// passing both empty emits every assigned attribute.
type Marshaller interface {
	Marshal(resource *prop.Resource, registry *spec.Registry, attributes, excludedAttributes []string) ([]byte, error)
}

// Unmarshaller parses a wire representation into a Resource shaped by resourceName's
// registered descriptor and schema.
type Unmarshaller interface {
	Unmarshal(data []byte, resourceName string, registry *spec.Registry) (*prop.Resource, error)
}

// Codec composes both directions, the shape codec/json.Codec and codec/xml.Codec satisfy.
type Codec interface {
	Marshaller
	Unmarshaller
}
