// Package xml implements the XML half of the Marshaller/Unmarshaller contract declared by
// package codec (spec.md §4.3, "XML variant"). There is no XML codec in the teacher to ground
// on directly; this package carries the same recursive, registry-ordered walk as codec/json
// but drives encoding/xml's streaming Encoder/Decoder instead of building a DOM, since the spec
// asks only for a non-validating, namespace-aware, whitespace-stripped parse (DESIGN.md).
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Codec implements codec.Marshaller and codec.Unmarshaller for XML.
type Codec struct{}

func (Codec) Marshal(resource *prop.Resource, registry *spec.Registry, attributes, excludedAttributes []string) ([]byte, error) {
	if len(attributes) > 0 && len(excludedAttributes) > 0 {
		return nil, fmt.Errorf("%w: attributes and excludedAttributes are mutually exclusive", spec.ErrInvalidValue)
	}
	sel := newSelector(attributes, excludedAttributes)

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	primaryURI := resource.Schema().ID
	root := xml.StartElement{Name: xml.Name{Space: primaryURI, Local: resource.ResourceDescriptor().Name}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	err := resource.ForEachAttribute(func(attr *spec.AttributeDescriptor, p prop.Property) error {
		if !sel.shouldWrite(attr.Name, !p.Unassigned()) {
			return nil
		}
		return writeProperty(enc, attr.Name, attr, p, sel)
	})
	if err != nil {
		return nil, err
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeProperty(enc *xml.Encoder, path string, attr *spec.AttributeDescriptor, p prop.Property, sel *selector) error {
	if attr.Plural {
		return p.ForEachChild(func(_ int, child prop.Property) error {
			return writeElement(enc, path, attr.Name, child, sel)
		})
	}
	return writeElement(enc, path, attr.Name, p, sel)
}

func writeElement(enc *xml.Encoder, path, localName string, p prop.Property, sel *selector) error {
	attr := p.Descriptor()
	start := xml.StartElement{Name: xml.Name{Local: localName}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if attr.DataType == spec.TypeComplex {
		err := p.ForEachChild(func(_ int, child prop.Property) error {
			childPath := path + "." + child.Descriptor().Name
			if !sel.shouldWrite(childPath, !child.Unassigned()) {
				return nil
			}
			return writeElement(enc, childPath, child.Descriptor().Name, child, sel)
		})
		if err != nil {
			return err
		}
	} else if raw := p.Raw(); raw != nil {
		if err := enc.EncodeToken(xml.CharData(formatScalar(raw))); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func formatScalar(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
