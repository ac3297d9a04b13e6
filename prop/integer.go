package prop

import (
	"fmt"

	"github.com/Nabagata/scim/spec"
)

type integerProperty struct {
	attr  *spec.AttributeDescriptor
	value *int64
}

func newInteger(attr *spec.AttributeDescriptor) Property {
	return &integerProperty{attr: attr}
}

func (p *integerProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *integerProperty) Raw() interface{} {
	if p.value == nil {
		return nil
	}
	return *p.value
}

func (p *integerProperty) Unassigned() bool { return p.value == nil }

func (p *integerProperty) Clone() Property {
	c := &integerProperty{attr: p.attr}
	if p.value != nil {
		v := *p.value
		c.value = &v
	}
	return c
}

func (p *integerProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *integerProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	switch v := value.(type) {
	case int64:
		p.value = &v
	case int:
		n := int64(v)
		p.value = &n
	case float64: // JSON numbers decode to float64 ahead of this point
		n := int64(v)
		p.value = &n
	default:
		return fmt.Errorf("%w: %s expects an integer value", spec.ErrInvalidValue, p.attr.Name)
	}
	return nil
}

func (p *integerProperty) Delete() { p.value = nil }

func (p *integerProperty) CountChildren() int { return 0 }

func (p *integerProperty) ForEachChild(_ func(int, Property) error) error { return nil }

func (p *integerProperty) FindChild(_ func(Property) bool) Property { return nil }
