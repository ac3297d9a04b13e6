// Package query evaluates compiled filter, sort and pagination requests against prop.Resource
// values (spec.md §4.4), the counterpart to the teacher's pkg/v2/crud evaluator.
package query

import (
	"strings"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

// Matches reports whether resource satisfies filter. A predicate addressing a plural attribute
// (e.g. "emails.value") is satisfied when any element matches, mirroring the teacher's
// multi-valued split-traversal rule in pkg/v2/crud/eval.go.
func Matches(resource *prop.Resource, filter *expr.Filter) (bool, error) {
	for _, term := range filter.Or {
		ok, err := matchesTerm(resource, term)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchesTerm(resource *prop.Resource, term *expr.Term) (bool, error) {
	for _, factor := range term.And {
		ok, err := matchesFactor(resource, factor)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchesFactor(resource *prop.Resource, factor *expr.Factor) (bool, error) {
	if factor.Sub != nil {
		return Matches(resource, factor.Sub)
	}
	return matchesPredicate(resource, factor.Predicate)
}

func matchesPredicate(resource *prop.Resource, pred *expr.Predicate) (bool, error) {
	p := resource.Get(pred.Path.Name)
	if p == nil {
		return false, nil
	}
	if p.Descriptor().Plural {
		matched := false
		err := p.ForEachChild(func(_ int, element prop.Property) error {
			ok, err := matchesValue(element, pred)
			if err != nil {
				return err
			}
			if ok {
				matched = true
			}
			return nil
		})
		return matched, err
	}
	return matchesValue(p, pred)
}

func matchesValue(p prop.Property, pred *expr.Predicate) (bool, error) {
	if pred.Path.SubName != "" {
		c, ok := p.(prop.Container)
		if !ok {
			return false, nil
		}
		sub := c.Get(pred.Path.SubName)
		if sub == nil {
			return false, nil
		}
		p = sub
	}

	if pred.Op == expr.Pr {
		return !p.Unassigned(), nil
	}
	if p.Unassigned() {
		return false, nil
	}

	attr := p.Descriptor()
	switch attr.DataType {
	case spec.TypeString, spec.TypeDateTime, spec.TypeBinary:
		want, ok := pred.Value.(string)
		if !ok {
			return false, nil // type mismatch evaluates to false, per SCIM leniency (spec.md §4.4)
		}
		return compareStrings(p.Raw().(string), want, pred.Op, attr.CaseExact), nil
	case spec.TypeInteger:
		want, ok := pred.Value.(float64)
		if !ok {
			return false, nil
		}
		return compareNumbers(float64(p.Raw().(int64)), want, pred.Op), nil
	case spec.TypeBoolean:
		want, ok := pred.Value.(bool)
		if !ok || pred.Op != expr.Eq {
			return false, nil
		}
		return p.Raw().(bool) == want, nil
	default:
		return false, nil
	}
}

// compareStrings also serves dateTime, whose ISO8601 wire format sorts lexically in
// chronological order, so ordering operators need no special-cased parsing.
func compareStrings(have, want, op string, caseExact bool) bool {
	if !caseExact {
		have, want = strings.ToLower(have), strings.ToLower(want)
	}
	switch op {
	case expr.Eq:
		return have == want
	case expr.Co:
		return strings.Contains(have, want)
	case expr.Sw:
		return strings.HasPrefix(have, want)
	case expr.Ew:
		return strings.HasSuffix(have, want)
	case expr.Gt:
		return have > want
	case expr.Ge:
		return have >= want
	case expr.Lt:
		return have < want
	case expr.Le:
		return have <= want
	default:
		return false
	}
}

func compareNumbers(have, want float64, op string) bool {
	switch op {
	case expr.Eq:
		return have == want
	case expr.Gt:
		return have > want
	case expr.Ge:
		return have >= want
	case expr.Lt:
		return have < want
	case expr.Le:
		return have <= want
	default:
		return false // co/sw/ew are not meaningful for numeric values
	}
}
