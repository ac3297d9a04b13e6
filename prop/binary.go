package prop

import (
	"encoding/base64"
	"fmt"

	"github.com/Nabagata/scim/spec"
)

// binaryProperty stores its value as raw bytes; Raw and Replace both speak base64, the
// wire encoding both codecs use for a SCIM binary attribute.
type binaryProperty struct {
	attr  *spec.AttributeDescriptor
	value []byte
	set   bool
}

func newBinary(attr *spec.AttributeDescriptor) Property {
	return &binaryProperty{attr: attr}
}

func (p *binaryProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *binaryProperty) Raw() interface{} {
	if !p.set {
		return nil
	}
	return base64.StdEncoding.EncodeToString(p.value)
}

func (p *binaryProperty) Unassigned() bool { return !p.set }

func (p *binaryProperty) Clone() Property {
	c := &binaryProperty{attr: p.attr, set: p.set}
	if p.set {
		c.value = append([]byte(nil), p.value...)
	}
	return c
}

func (p *binaryProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *binaryProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s expects a base64-encoded binary value", spec.ErrInvalidValue, p.attr.Name)
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %s is not valid base64: %s", spec.ErrInvalidValue, p.attr.Name, err)
	}
	p.value, p.set = decoded, true
	return nil
}

func (p *binaryProperty) Delete() { p.value, p.set = nil, false }

func (p *binaryProperty) CountChildren() int { return 0 }

func (p *binaryProperty) ForEachChild(_ func(int, Property) error) error { return nil }

func (p *binaryProperty) FindChild(_ func(Property) bool) Property { return nil }
