package filter

import (
	"context"

	"github.com/Nabagata/scim/prop"
)

// ReadOnly returns a ByResource filter enforcing invariant 5 (readOnly attributes are
// server-assigned and any client-supplied value for them is ignored): on create it clears
// whatever value a caller supplied for a readOnly attribute, and on replace it restores the
// attribute's current value from ref rather than accepting the caller's. Grounded on
// pkg/v2/service/filter/ro.go's roFilter, adapted from ByProperty/Navigator to a paired walk
// over the resource and its ref, since this module's Property has no standalone path type.
func ReadOnly() ByResource {
	return roFilter{}
}

type roFilter struct{}

func (roFilter) Filter(_ context.Context, resource *prop.Resource) error {
	return walk(resource.Root(), func(p prop.Property) error {
		if p.Descriptor().ReadOnly {
			p.Delete()
		}
		return nil
	})
}

func (roFilter) FilterRef(_ context.Context, resource *prop.Resource, ref *prop.Resource) error {
	return pairedWalk(resource.Root(), ref.Root())
}

// pairedWalk descends current and ref in lockstep, restoring current's value from ref wherever
// the attribute is readOnly and recursing into matching complex children otherwise. current and
// ref always share the same descriptor tree, since both were built from the same schema.
func pairedWalk(current, ref prop.Property) error {
	if current.Descriptor().ReadOnly {
		return current.Replace(ref.Raw())
	}

	currentContainer, ok := current.(prop.Container)
	if !ok {
		return nil
	}
	refContainer, ok := ref.(prop.Container)
	if !ok {
		return nil
	}

	return currentContainer.ForEachChild(func(_ int, child prop.Property) error {
		refChild := refContainer.Get(child.Descriptor().Name)
		if refChild == nil {
			return nil
		}
		return pairedWalk(child, refChild)
	})
}
