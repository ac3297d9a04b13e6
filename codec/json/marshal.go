// Package json implements the JSON half of the Marshaller/Unmarshaller contract declared by
// package codec (spec.md §4.3, "JSON variant"). The writer walks the property tree directly,
// the same hand-rolled, order-preserving approach as the teacher's pkg/v2/json serializer,
// since Go's encoding/json encodes struct/map output in field- or key-sorted order and cannot
// reproduce "attributes are emitted in registry order" on its own. Leaf scalar values still go
// through encoding/json.Marshal for correct string escaping rather than a hand-rolled escaper.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Codec implements codec.Marshaller and codec.Unmarshaller for JSON.
type Codec struct{}

func (Codec) Marshal(resource *prop.Resource, registry *spec.Registry, attributes, excludedAttributes []string) ([]byte, error) {
	if len(attributes) > 0 && len(excludedAttributes) > 0 {
		return nil, fmt.Errorf("%w: attributes and excludedAttributes are mutually exclusive", spec.ErrInvalidValue)
	}
	sel := newSelector(attributes, excludedAttributes)

	primary := resource.Schema().ID
	extended := make(map[string][]byte)

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"schemas":`)
	writeStringArray(&buf, registry.SchemaURIs(primary))

	err := resource.ForEachAttribute(func(attr *spec.AttributeDescriptor, p prop.Property) error {
		if attr.Schema != "" && attr.Schema != primary {
			var sub bytes.Buffer
			if !sel.shouldWrite(attr.Name, !p.Unassigned()) {
				return nil
			}
			writeKey(&sub, attr.Name)
			if err := writeProperty(&sub, attr.Name, p, sel); err != nil {
				return err
			}
			extended[attr.Schema] = append(append(extended[attr.Schema], sub.Bytes()...), ',')
			return nil
		}
		if !sel.shouldWrite(attr.Name, !p.Unassigned()) {
			return nil
		}
		buf.WriteByte(',')
		writeKey(&buf, attr.Name)
		return writeProperty(&buf, attr.Name, p, sel)
	})
	if err != nil {
		return nil, err
	}

	for schemaURI, body := range extended {
		buf.WriteByte(',')
		writeKey(&buf, schemaURI)
		buf.WriteByte('{')
		buf.Write(body[:len(body)-1]) // drop trailing comma
		buf.WriteByte('}')
	}

	resource.ForEachExtra(func(schemaURI string, block map[string]interface{}) {
		raw, marshalErr := json.Marshal(block)
		if marshalErr != nil {
			return
		}
		buf.WriteByte(',')
		writeKey(&buf, schemaURI)
		buf.Write(raw)
	})

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeProperty writes p's value at path, recursing into complex and plural properties.
func writeProperty(buf *bytes.Buffer, path string, p prop.Property, sel *selector) error {
	attr := p.Descriptor()

	if attr.Plural {
		buf.WriteByte('[')
		first := true
		err := p.ForEachChild(func(_ int, child prop.Property) error {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			return writeProperty(buf, path, child, sel)
		})
		buf.WriteByte(']')
		return err
	}

	if attr.DataType == spec.TypeComplex {
		buf.WriteByte('{')
		first := true
		err := p.ForEachChild(func(_ int, child prop.Property) error {
			childPath := path + "." + child.Descriptor().Name
			if !sel.shouldWrite(childPath, !child.Unassigned()) {
				return nil
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			writeKey(buf, child.Descriptor().Name)
			return writeProperty(buf, childPath, child, sel)
		})
		buf.WriteByte('}')
		return err
	}

	return writeScalar(buf, p.Raw())
}

func writeScalar(buf *bytes.Buffer, raw interface{}) error {
	if raw == nil {
		buf.WriteString("null")
		return nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", spec.ErrInvalidValue, err)
	}
	buf.Write(encoded)
	return nil
}

func writeKey(buf *bytes.Buffer, name string) {
	encoded, _ := json.Marshal(name)
	buf.Write(encoded)
	buf.WriteByte(':')
}

func writeStringArray(buf *bytes.Buffer, values []string) {
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		encoded, _ := json.Marshal(v)
		buf.Write(encoded)
	}
	buf.WriteByte(']')
}

var _ interface {
	Marshal(*prop.Resource, *spec.Registry, []string, []string) ([]byte, error)
} = Codec{}
