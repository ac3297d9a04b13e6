package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// node is the minimal, whitespace-stripped tree built while streaming through the document
// (spec.md §4.3 step 1: "namespace-aware, whitespace-stripped, non-validating").
type node struct {
	name     xml.Name
	text     string
	children []*node
}

func (Codec) Unmarshal(data []byte, resourceName string, registry *spec.Registry) (*prop.Resource, error) {
	descriptor, ok := registry.GetResourceDescriptor(resourceName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown resource %q", spec.ErrInvalidResource, resourceName)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *node
	for root == nil {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", spec.ErrInvalidResource, err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			root, err = parseElement(dec, start)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", spec.ErrInvalidResource, err)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", spec.ErrInvalidResource)
	}

	// spec.md §4.3 step 2: the root element's local name must equal the resource descriptor's
	// name; its namespace URI selects the primary schema.
	if !strings.EqualFold(root.name.Local, descriptor.Name) {
		return nil, fmt.Errorf("%w: root element %q does not match resource %q", spec.ErrInvalidResource, root.name.Local, descriptor.Name)
	}
	primaryURI := root.name.Space
	if primaryURI == "" {
		primaryURI = descriptor.Schema
	}
	schema, ok := registry.GetSchema(primaryURI)
	if !ok {
		return nil, fmt.Errorf("%w: unregistered schema %q", spec.ErrInvalidResource, primaryURI)
	}

	resource := prop.NewResource(descriptor, schema)

	order := make([]string, 0, len(root.children))
	groups := make(map[string][]*node)
	for _, child := range root.children {
		key := strings.ToLower(child.name.Local)
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], child)
	}

	for _, key := range order {
		nodes := groups[key]
		// spec.md §4.3 step 3: resolve against the registry; unknown elements are dropped.
		p := resource.Get(nodes[0].name.Local)
		if p == nil {
			continue
		}
		attr := p.Descriptor()
		if attr.Plural {
			// step 4: iterate element children, each a complex value under the canonical
			// plural sub-attribute set.
			for _, n := range nodes {
				value, err := nodeToValue(n, attr)
				if err != nil {
					return nil, err
				}
				if err := p.Add(value); err != nil {
					return nil, err
				}
			}
			continue
		}
		value, err := nodeToValue(nodes[0], attr)
		if err != nil {
			return nil, err
		}
		if err := p.Replace(value); err != nil {
			return nil, err
		}
	}

	return resource, nil
}

// parseElement consumes tokens until start's matching EndElement, collecting child elements
// and trimmed character data.
func parseElement(dec *xml.Decoder, start xml.StartElement) (*node, error) {
	n := &node{name: start.Name}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		case xml.CharData:
			if s := strings.TrimSpace(string(t)); s != "" {
				n.text += s
			}
		case xml.EndElement:
			return n, nil
		}
	}
}

// nodeToValue converts n into the Go-native value Property.Replace/Add expects for attr:
// spec.md §4.3 steps 5-6 (recurse one level for complex, else parse text per dataType).
func nodeToValue(n *node, attr *spec.AttributeDescriptor) (interface{}, error) {
	if attr.DataType == spec.TypeComplex {
		m := make(map[string]interface{}, len(n.children))
		for _, child := range n.children {
			sub := attr.SubAttribute(child.name.Local)
			if sub == nil {
				continue
			}
			v, err := nodeToValue(child, sub)
			if err != nil {
				return nil, err
			}
			m[sub.Name] = v
		}
		return m, nil
	}
	return parseScalar(n.text, attr)
}

func parseScalar(text string, attr *spec.AttributeDescriptor) (interface{}, error) {
	switch attr.DataType {
	case spec.TypeBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a valid boolean: %s", spec.ErrInvalidValue, attr.Name, err)
		}
		return b, nil
	case spec.TypeInteger:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a valid integer: %s", spec.ErrInvalidValue, attr.Name, err)
		}
		return i, nil
	default: // string, dateTime, binary all carry their wire form as plain text
		return text, nil
	}
}
