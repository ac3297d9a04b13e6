package prop

import (
	"fmt"

	"github.com/Nabagata/scim/spec"
)

type booleanProperty struct {
	attr  *spec.AttributeDescriptor
	value *bool
}

func newBoolean(attr *spec.AttributeDescriptor) Property {
	return &booleanProperty{attr: attr}
}

func (p *booleanProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *booleanProperty) Raw() interface{} {
	if p.value == nil {
		return nil
	}
	return *p.value
}

func (p *booleanProperty) Unassigned() bool { return p.value == nil }

func (p *booleanProperty) Clone() Property {
	c := &booleanProperty{attr: p.attr}
	if p.value != nil {
		v := *p.value
		c.value = &v
	}
	return c
}

func (p *booleanProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *booleanProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a boolean value", spec.ErrInvalidValue, p.attr.Name)
	}
	p.value = &b
	return nil
}

func (p *booleanProperty) Delete() { p.value = nil }

func (p *booleanProperty) CountChildren() int { return 0 }

func (p *booleanProperty) ForEachChild(_ func(int, Property) error) error { return nil }

func (p *booleanProperty) FindChild(_ func(Property) bool) Property { return nil }
