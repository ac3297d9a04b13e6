package prop

import (
	"fmt"
	"time"

	"github.com/Nabagata/scim/spec"
)

// dateTimeProperty stores its value as a time.Time but always round-trips through
// spec.ISO8601 on the wire, matching the format the XML and JSON codecs expect (spec.md §3).
type dateTimeProperty struct {
	attr  *spec.AttributeDescriptor
	value *time.Time
}

func newDateTime(attr *spec.AttributeDescriptor) Property {
	return &dateTimeProperty{attr: attr}
}

func (p *dateTimeProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *dateTimeProperty) Raw() interface{} {
	if p.value == nil {
		return nil
	}
	return p.value.UTC().Format(spec.ISO8601)
}

func (p *dateTimeProperty) Unassigned() bool { return p.value == nil }

func (p *dateTimeProperty) Clone() Property {
	c := &dateTimeProperty{attr: p.attr}
	if p.value != nil {
		v := *p.value
		c.value = &v
	}
	return c
}

func (p *dateTimeProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *dateTimeProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		p.value = &v
	case string:
		t, err := time.Parse(spec.ISO8601, v)
		if err != nil {
			return fmt.Errorf("%w: %s is not a valid dateTime: %s", spec.ErrInvalidValue, p.attr.Name, err)
		}
		p.value = &t
	default:
		return fmt.Errorf("%w: %s expects a dateTime value", spec.ErrInvalidValue, p.attr.Name)
	}
	return nil
}

func (p *dateTimeProperty) Delete() { p.value = nil }

func (p *dateTimeProperty) CountChildren() int { return 0 }

func (p *dateTimeProperty) ForEachChild(_ func(int, Property) error) error { return nil }

func (p *dateTimeProperty) FindChild(_ func(Property) bool) Property { return nil }

// Time returns the underlying time.Time and false when unassigned, for callers (sort, filter)
// that need comparisons finer than the formatted string affords.
func (p *dateTimeProperty) Time() (time.Time, bool) {
	if p.value == nil {
		return time.Time{}, false
	}
	return *p.value, true
}
