package ldap

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

// generalizedTimeLayout is the LDAP generalized time format (RFC 4517 §3.3.13) that SCIM
// dateTime values are rewritten to before comparison, so that gt/lt/ge/le translate to ordinary
// lexical LDAP comparisons (DESIGN.md, "gt/lt on datetimes").
const generalizedTimeLayout = "20060102150405Z"

// TransformFilter compiles a SCIM filter and rewrites it into an RFC 4515 LDAP filter string
// against mapping, grounded on mongo/v2/filter.go's TransformFilter/transformer, which performs
// the same walk against bson.D instead.
func TransformFilter(scimFilter string, mapping *Mapping) (string, error) {
	f, err := expr.CompileFilter(scimFilter)
	if err != nil {
		return "", err
	}
	return TransformCompiledFilter(f, mapping)
}

// TransformCompiledFilter rewrites an already-compiled filter, saving the caller a trip through
// the parser when the same filter is reused across requests (mirrors mongo/v2/filter.go's
// TransformCompiledFilter).
func TransformCompiledFilter(f *expr.Filter, mapping *Mapping) (string, error) {
	return transformFilter(f, mapping)
}

func transformFilter(f *expr.Filter, mapping *Mapping) (string, error) {
	parts := make([]string, 0, len(f.Or))
	for _, term := range f.Or {
		p, err := transformTerm(term, mapping)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return join("|", parts), nil
}

func transformTerm(t *expr.Term, mapping *Mapping) (string, error) {
	parts := make([]string, 0, len(t.And))
	for _, factor := range t.And {
		p, err := transformFactor(factor, mapping)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return join("&", parts), nil
}

func transformFactor(f *expr.Factor, mapping *Mapping) (string, error) {
	if f.Sub != nil {
		return transformFilter(f.Sub, mapping)
	}
	return transformPredicate(f.Predicate, mapping)
}

func transformPredicate(pred *expr.Predicate, mapping *Mapping) (string, error) {
	am := mapping.Attribute(pred.Path.Name)
	if am == nil {
		return "", fmt.Errorf("%w: no LDAP mapping for %q", spec.ErrInvalidFilter, pred.Path.Name)
	}

	attrs, err := ldapAttributesFor(am, pred.Path.SubName)
	if err != nil {
		return "", err
	}

	clauses := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		clause, err := transformRelational(attr, pred, am.DataType)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return join("|", clauses), nil
}

// ldapAttributesFor resolves the LDAP attribute name(s) a predicate's path addresses. A Plural
// attribute with no sub-name (or "value") fans out across every mapped type, combined with an OR
// by the caller, since SCIM 1.0 filters on a plural attribute's "value" without naming a type
// (spec.md §4.4).
func ldapAttributesFor(am *AttributeMapping, subName string) ([]string, error) {
	switch am.Kind {
	case Simple:
		return []string{am.LDAPAttribute}, nil
	case Complex:
		if subName == "" {
			return nil, fmt.Errorf("%w: %s requires a sub-attribute", spec.ErrInvalidFilter, am.SCIMName)
		}
		attr, ok := am.SubAttributes[subName]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no sub-attribute %q", spec.ErrInvalidFilter, am.SCIMName, subName)
		}
		return []string{attr}, nil
	case Plural:
		attrs := make([]string, 0, len(am.TypeAttributes))
		for _, a := range am.TypeAttributes {
			attrs = append(attrs, a)
		}
		sort.Strings(attrs)
		return attrs, nil
	default:
		return nil, fmt.Errorf("%w: %s is not filterable", spec.ErrInvalidFilter, am.SCIMName)
	}
}

func transformRelational(attr string, pred *expr.Predicate, dt spec.DataType) (string, error) {
	if pred.Op == expr.Pr {
		return fmt.Sprintf("(%s=*)", attr), nil
	}

	v := goldap.EscapeFilter(formatFilterValue(pred.Value, dt))

	switch pred.Op {
	case expr.Eq:
		return fmt.Sprintf("(%s=%s)", attr, v), nil
	case expr.Co:
		return fmt.Sprintf("(%s=*%s*)", attr, v), nil
	case expr.Sw:
		return fmt.Sprintf("(%s=%s*)", attr, v), nil
	case expr.Ew:
		return fmt.Sprintf("(%s=*%s)", attr, v), nil
	case expr.Ge:
		return fmt.Sprintf("(%s>=%s)", attr, v), nil
	case expr.Le:
		return fmt.Sprintf("(%s<=%s)", attr, v), nil
	case expr.Gt:
		// LDAP has no strict inequality filter, so gt is expressed as "at least, but not equal".
		return fmt.Sprintf("(&(%s>=%s)(!(%s=%s)))", attr, v, attr, v), nil
	case expr.Lt:
		return fmt.Sprintf("(&(%s<=%s)(!(%s=%s)))", attr, v, attr, v), nil
	default:
		return "", fmt.Errorf("%w: unsupported operator %q", spec.ErrInvalidFilter, pred.Op)
	}
}

// formatFilterValue renders a compiled predicate's value the way it is stored on the directory
// side: booleans as TRUE/FALSE, dateTime as LDAP generalized time, everything else verbatim.
func formatFilterValue(v interface{}, dt spec.DataType) string {
	switch dt {
	case spec.TypeBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "TRUE"
			}
			return "FALSE"
		}
	case spec.TypeDateTime:
		if s, ok := v.(string); ok {
			if t, err := time.Parse(spec.ISO8601, s); err == nil {
				return t.UTC().Format(generalizedTimeLayout)
			}
			return s
		}
	case spec.TypeInteger:
		if n, ok := v.(float64); ok {
			return strconv.FormatInt(int64(n), 10)
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func join(op string, clauses []string) string {
	s := "(" + op
	for _, c := range clauses {
		s += c
	}
	return s + ")"
}
