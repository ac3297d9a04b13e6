package prop

import (
	"fmt"

	"github.com/Nabagata/scim/spec"
)

// multiProperty holds the elements of a plural attribute (spec.md §3, "Plural attributes").
// Each element is shaped by newElement: a complex property carrying the attribute's declared
// and canonical plural sub-attributes when DataType is complex, or a bare scalar otherwise.
type multiProperty struct {
	attr     *spec.AttributeDescriptor
	elements []Property
}

func newMulti(attr *spec.AttributeDescriptor) *multiProperty {
	return &multiProperty{attr: attr}
}

func newElement(attr *spec.AttributeDescriptor) Property {
	if attr.DataType == spec.TypeComplex {
		return newComplex(attr, pluralElementSubAttributes(attr))
	}
	return newScalar(attr)
}

func (p *multiProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *multiProperty) Raw() interface{} {
	if p.Unassigned() {
		return nil
	}
	out := make([]interface{}, len(p.elements))
	for i, e := range p.elements {
		out[i] = e.Raw()
	}
	return out
}

func (p *multiProperty) Unassigned() bool { return len(p.elements) == 0 }

func (p *multiProperty) Clone() Property {
	c := &multiProperty{attr: p.attr, elements: make([]Property, len(p.elements))}
	for i, e := range p.elements {
		c.elements[i] = e.Clone()
	}
	return c
}

// Add appends value as one new element. A new element marked primary clears the primary marker
// of every existing element, so at most one element is primary.
func (p *multiProperty) Add(value interface{}) error {
	if value == nil {
		return nil
	}
	e := newElement(p.attr)
	if err := e.Replace(value); err != nil {
		return err
	}
	if c, ok := e.(Container); ok {
		if isPrimary, _ := c.Get("primary").Raw().(bool); isPrimary {
			for _, other := range p.elements {
				if oc, ok := other.(Container); ok {
					oc.Get("primary").Delete()
				}
			}
		}
	}
	p.elements = append(p.elements, e)
	return nil
}

// Replace discards all elements and repopulates from a slice of element values.
func (p *multiProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	values, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("%w: %s expects a list of values", spec.ErrInvalidValue, p.attr.Name)
	}
	p.elements = nil
	for _, v := range values {
		if err := p.Add(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *multiProperty) Delete() { p.elements = nil }

func (p *multiProperty) CountChildren() int { return len(p.elements) }

func (p *multiProperty) ForEachChild(callback func(int, Property) error) error {
	for i, e := range p.elements {
		if err := callback(i, e); err != nil {
			return err
		}
	}
	return nil
}

func (p *multiProperty) FindChild(criteria func(Property) bool) Property {
	for _, e := range p.elements {
		if criteria(e) {
			return e
		}
	}
	return nil
}

func (p *multiProperty) ElementAt(index int) Property {
	if index < 0 || index >= len(p.elements) {
		return nil
	}
	return p.elements[index]
}

func (p *multiProperty) AppendElement() Property {
	e := newElement(p.attr)
	p.elements = append(p.elements, e)
	return e
}

func (p *multiProperty) RemoveElement(index int) {
	if index < 0 || index >= len(p.elements) {
		return
	}
	p.elements = append(p.elements[:index], p.elements[index+1:]...)
}

var (
	_ Property  = (*multiProperty)(nil)
	_ Elemental = (*multiProperty)(nil)
)
