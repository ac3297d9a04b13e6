package prop

import (
	"fmt"

	"github.com/Nabagata/scim/spec"
)

// complexProperty holds one named sub property per descriptor in subAttrs, preserving
// declaration order on ForEachChild (spec.md §3, "SCIMObject ... ordered schema -> name ->
// SCIMAttribute map" applies equally to a nested complex value).
type complexProperty struct {
	attr     *spec.AttributeDescriptor
	subAttrs []*spec.AttributeDescriptor
	children []Property // parallel to subAttrs
}

func newComplex(attr *spec.AttributeDescriptor, subAttrs []*spec.AttributeDescriptor) *complexProperty {
	p := &complexProperty{attr: attr, subAttrs: subAttrs, children: make([]Property, len(subAttrs))}
	for i, sub := range subAttrs {
		p.children[i] = NewProperty(sub)
	}
	return p
}

// pluralElementSubAttributes returns the sub-attribute set an element of a plural attribute
// carries: whatever the attribute declared, plus any canonical plural sub-attribute
// ("value", "type", "primary", "display", "operation") not already declared by name.
func pluralElementSubAttributes(attr *spec.AttributeDescriptor) []*spec.AttributeDescriptor {
	declared := make(map[string]bool, len(attr.SubAttributes))
	subs := make([]*spec.AttributeDescriptor, 0, len(attr.SubAttributes)+len(spec.CanonicalPluralSubAttributes))
	for _, s := range attr.SubAttributes {
		subs = append(subs, s)
		declared[normalize(s.Name)] = true
	}
	for _, name := range spec.CanonicalPluralSubAttributes {
		if !declared[normalize(name)] {
			subs = append(subs, attr.SubAttribute(name))
		}
	}
	return subs
}

func normalize(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func (p *complexProperty) Descriptor() *spec.AttributeDescriptor { return p.attr }

func (p *complexProperty) Raw() interface{} {
	if p.Unassigned() {
		return nil
	}
	m := make(map[string]interface{}, len(p.children))
	for i, child := range p.children {
		if !child.Unassigned() {
			m[p.subAttrs[i].Name] = child.Raw()
		}
	}
	return m
}

func (p *complexProperty) Unassigned() bool {
	for _, child := range p.children {
		if !child.Unassigned() {
			return false
		}
	}
	return true
}

func (p *complexProperty) Clone() Property {
	c := &complexProperty{attr: p.attr, subAttrs: p.subAttrs, children: make([]Property, len(p.children))}
	for i, child := range p.children {
		c.children[i] = child.Clone()
	}
	return c
}

// Add sets the sub properties named in a map, leaving those not mentioned as they are.
func (p *complexProperty) Add(value interface{}) error { return p.Replace(value) }

func (p *complexProperty) Replace(value interface{}) error {
	if value == nil {
		p.Delete()
		return nil
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: %s expects a complex value", spec.ErrInvalidValue, p.attr.Name)
	}
	for k, v := range m {
		child := p.Get(k)
		if child == nil {
			return fmt.Errorf("%w: %s has no sub-attribute %q", spec.ErrInvalidPath, p.attr.Name, k)
		}
		if err := child.Replace(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *complexProperty) Delete() {
	for _, child := range p.children {
		child.Delete()
	}
}

func (p *complexProperty) CountChildren() int { return len(p.children) }

func (p *complexProperty) ForEachChild(callback func(int, Property) error) error {
	for i, child := range p.children {
		if err := callback(i, child); err != nil {
			return err
		}
	}
	return nil
}

func (p *complexProperty) FindChild(criteria func(Property) bool) Property {
	for _, child := range p.children {
		if criteria(child) {
			return child
		}
	}
	return nil
}

func (p *complexProperty) Get(name string) Property {
	for i, sub := range p.subAttrs {
		if sub.GoesBy(name) {
			return p.children[i]
		}
	}
	return nil
}

var (
	_ Property  = (*complexProperty)(nil)
	_ Container = (*complexProperty)(nil)
)
