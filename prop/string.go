package prop

import (
	"fmt"

	"github.com/Nabagata/scim/spec"
)

type stringProperty struct {
	attr  *spec.AttributeDescriptor
	value *string
}

func newString(attr *spec.AttributeDescriptor) Property {
	return &stringProperty{attr: attr}
}

func (p *stringProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *stringProperty) Raw() interface{} {
	if p.value == nil {
		return nil
	}
	return *p.value
}

func (p *stringProperty) Unassigned() bool { return p.value == nil }

func (p *stringProperty) Clone() Property {
	c := &stringProperty{attr: p.attr}
	if p.value != nil {
		v := *p.value
		c.value = &v
	}
	return c
}

func (p *stringProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *stringProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return p.errIncompatible()
	}
	p.value = &s
	return nil
}

func (p *stringProperty) Delete() { p.value = nil }

func (p *stringProperty) CountChildren() int { return 0 }

func (p *stringProperty) ForEachChild(_ func(int, Property) error) error { return nil }

func (p *stringProperty) FindChild(_ func(Property) bool) Property { return nil }

func (p *stringProperty) errIncompatible() error {
	return fmt.Errorf("%w: %s expects a string value", spec.ErrInvalidValue, p.attr.Name)
}
