// Package filter implements the short chain of resource transformations the service layer runs
// before a create or replace reaches the backend: id assignment, meta stamping, readOnly
// stripping, required-attribute validation and, for User resources created without one, password
// generation. Grounded on pkg/v2/service/filter's ByResource filter chain, trimmed to this
// module's simpler Property model (no annotations, no Navigator — filters walk
// prop.Resource/prop.Property directly).
package filter

import (
	"context"

	"github.com/Nabagata/scim/prop"
)

// ByResource filters or validates a whole resource in place. Filter runs on create, where there
// is no prior state; FilterRef runs on replace, where ref is the resource's current state in the
// backend.
type ByResource interface {
	Filter(ctx context.Context, resource *prop.Resource) error
	FilterRef(ctx context.Context, resource *prop.Resource, ref *prop.Resource) error
}

// walk invokes callback for p and, recursively, every property it contains (complex
// sub-attributes, plural elements), mirroring the depth-first descent pkg/v2/prop.Navigator
// performs for the teacher's ByProperty filters.
func walk(p prop.Property, callback func(prop.Property) error) error {
	if err := callback(p); err != nil {
		return err
	}
	return p.ForEachChild(func(_ int, child prop.Property) error {
		return walk(child, callback)
	})
}
