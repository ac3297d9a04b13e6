package query

import (
	"sort"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
)

// Sort orders resources in place by the value at path, ascending unless descending is true
// (spec.md §4.4, "Sort"). Resources missing the attribute sort after those that have it. A
// plural attribute sorts by its first element's value, since the grammar names no tie-break rule
// among elements.
func Sort(resources []*prop.Resource, path *expr.Path, descending bool) {
	sort.SliceStable(resources, func(i, j int) bool {
		ki, oki := sortKey(resources[i], path)
		kj, okj := sortKey(resources[j], path)
		switch {
		case !oki && !okj:
			return false
		case !oki:
			return false
		case !okj:
			return true
		}
		if descending {
			return lessValue(kj, ki)
		}
		return lessValue(ki, kj)
	})
}

func sortKey(resource *prop.Resource, path *expr.Path) (interface{}, bool) {
	p := resource.Get(path.Name)
	if p == nil {
		return nil, false
	}
	if p.Descriptor().Plural {
		el, ok := p.(prop.Elemental)
		if !ok {
			return nil, false
		}
		first := el.ElementAt(0)
		if first == nil {
			return nil, false
		}
		p = first
	}
	if path.SubName != "" {
		c, ok := p.(prop.Container)
		if !ok {
			return nil, false
		}
		sub := c.Get(path.SubName)
		if sub == nil {
			return nil, false
		}
		p = sub
	}
	if p.Unassigned() {
		return nil, false
	}
	return p.Raw(), true
}

func lessValue(a, b interface{}) bool {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return av < bv
	case int64:
		bv, _ := b.(int64)
		return av < bv
	case bool:
		bv, _ := b.(bool)
		return !av && bv
	default:
		return false
	}
}
