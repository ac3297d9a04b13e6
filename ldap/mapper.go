package ldap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Entry is the LDAP-side representation of a mapped resource: a DN plus its attributes, kept
// independent of any particular go-ldap request type so ToEntry/FromEntry stay easy to test
// without a directory connection. Pool/Backend translate Entry to and from *goldap.AddRequest,
// *goldap.ModifyRequest and *goldap.Entry.
type Entry struct {
	DN    string
	Attrs map[string][]string
}

var dnPlaceholder = regexp.MustCompile(`\{(\w+)\}`)

// buildDN substitutes each {attrName} placeholder in template with the named top-level
// attribute's current value on resource.
func buildDN(template string, resource *prop.Resource) (string, error) {
	var substErr error
	dn := dnPlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		p := resource.Get(name)
		if p == nil || p.Unassigned() {
			substErr = fmt.Errorf("%w: dn template requires %q", spec.ErrInvalidValue, name)
			return m
		}
		return fmt.Sprintf("%v", p.Raw())
	})
	if substErr != nil {
		return "", substErr
	}
	return dn, nil
}

// ToEntry renders resource as an Entry per mapping, grounded on mongo/v2/serialize.go's walk from
// *prop.Resource to the persisted representation.
func ToEntry(resource *prop.Resource, mapping *Mapping) (*Entry, error) {
	dn, err := buildDN(mapping.DNTemplate, resource)
	if err != nil {
		return nil, err
	}

	attrs := map[string][]string{}
	if len(mapping.ObjectClasses) > 0 {
		attrs["objectClass"] = append([]string(nil), mapping.ObjectClasses...)
	}

	for _, am := range mapping.Attributes {
		p := resource.Get(am.SCIMName)
		if p == nil || p.Unassigned() {
			continue
		}

		switch am.Kind {
		case Simple:
			attrs[am.LDAPAttribute] = append(attrs[am.LDAPAttribute], formatPropertyValue(p))

		case Complex:
			c, ok := p.(prop.Container)
			if !ok {
				continue
			}
			for subName, ldapAttr := range am.SubAttributes {
				sub := c.Get(subName)
				if sub == nil || sub.Unassigned() {
					continue
				}
				attrs[ldapAttr] = append(attrs[ldapAttr], formatPropertyValue(sub))
			}

		case Plural:
			err := p.ForEachChild(func(_ int, element prop.Property) error {
				c, ok := element.(prop.Container)
				if !ok {
					return nil
				}
				typeProp, valueProp := c.Get("type"), c.Get("value")
				if typeProp == nil || valueProp == nil || valueProp.Unassigned() {
					return nil
				}
				typeToken, _ := typeProp.Raw().(string)
				ldapAttr, ok := am.TypeAttributes[strings.ToLower(typeToken)]
				if !ok {
					return nil
				}
				attrs[ldapAttr] = append(attrs[ldapAttr], formatPropertyValue(valueProp))

				if am.PrimaryAttribute != "" {
					if primaryProp := c.Get("primary"); primaryProp != nil {
						if primary, _ := primaryProp.Raw().(bool); primary {
							attrs[am.PrimaryAttribute] = []string{ldapAttr}
						}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}

		case Derived:
			continue // read-only, computed on the way out of the directory, never written
		}
	}

	return &Entry{DN: dn, Attrs: attrs}, nil
}

// FromEntry builds a Resource shaped by descriptor/schema from an LDAP entry's attributes, per
// mapping, grounded on mongo/v2/deserialize.go.
func FromEntry(entry *goldap.Entry, mapping *Mapping, descriptor *spec.ResourceDescriptor, schema *spec.Schema) (*prop.Resource, error) {
	resource := prop.NewResource(descriptor, schema)

	for _, am := range mapping.Attributes {
		p := resource.Get(am.SCIMName)
		if p == nil {
			continue
		}

		switch am.Kind {
		case Simple:
			vals := entry.GetAttributeValues(am.LDAPAttribute)
			if len(vals) == 0 {
				continue
			}
			if err := p.Replace(parseEntryValue(vals[0], am.DataType)); err != nil {
				return nil, err
			}

		case Complex:
			c, ok := p.(prop.Container)
			if !ok {
				continue
			}
			m := map[string]interface{}{}
			for subName, ldapAttr := range am.SubAttributes {
				vals := entry.GetAttributeValues(ldapAttr)
				if len(vals) == 0 {
					continue
				}
				sub := c.Get(subName)
				if sub == nil {
					continue
				}
				m[subName] = parseEntryValue(vals[0], sub.Descriptor().DataType)
			}
			if len(m) > 0 {
				if err := p.Replace(m); err != nil {
					return nil, err
				}
			}

		case Plural:
			for typeToken, ldapAttr := range am.TypeAttributes {
				for _, v := range entry.GetAttributeValues(ldapAttr) {
					element := map[string]interface{}{"value": v, "type": typeToken}
					if am.PrimaryAttribute != "" && entry.GetAttributeValue(am.PrimaryAttribute) == ldapAttr {
						element["primary"] = true
					}
					if err := p.Add(element); err != nil {
						return nil, err
					}
				}
			}

		case Derived:
			if am.Derive == nil {
				continue
			}
			if v := am.Derive(entryAttrs(entry)); v != "" {
				if err := p.Replace(v); err != nil {
					return nil, err
				}
			}
		}
	}

	return resource, nil
}

func entryAttrs(entry *goldap.Entry) map[string][]string {
	m := make(map[string][]string, len(entry.Attributes))
	for _, a := range entry.Attributes {
		m[a.Name] = a.Values
	}
	return m
}

func formatPropertyValue(p prop.Property) string {
	switch p.Descriptor().DataType {
	case spec.TypeBoolean:
		if b, _ := p.Raw().(bool); b {
			return "TRUE"
		}
		return "FALSE"
	case spec.TypeDateTime:
		if s, ok := p.Raw().(string); ok {
			if t, err := time.Parse(spec.ISO8601, s); err == nil {
				return t.UTC().Format(generalizedTimeLayout)
			}
			return s
		}
	case spec.TypeInteger:
		if n, ok := p.Raw().(int64); ok {
			return strconv.FormatInt(n, 10)
		}
	}
	return fmt.Sprintf("%v", p.Raw())
}

func parseEntryValue(raw string, dt spec.DataType) interface{} {
	switch dt {
	case spec.TypeBoolean:
		return strings.EqualFold(raw, "TRUE")
	case spec.TypeDateTime:
		if t, err := time.Parse(generalizedTimeLayout, raw); err == nil {
			return t.Format(spec.ISO8601)
		}
		return raw
	case spec.TypeInteger:
		n, _ := strconv.ParseInt(raw, 10, 64)
		return n
	default:
		return raw
	}
}
