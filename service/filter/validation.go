package filter

import (
	"context"
	"fmt"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/spec"
)

// Validation returns a ByResource filter rejecting a resource missing a value for any attribute
// its descriptor marks Required. Grounded on pkg/v2/service/filter/validation.go's
// requiredFilter, trimmed to this module's AttributeDescriptor: there is no canonical-value or
// uniqueness concept to check here (DESIGN.md, "no uniqueness/canonical-value concept").
func Validation() ByResource {
	return validationFilter{}
}

type validationFilter struct{}

func (validationFilter) Filter(_ context.Context, resource *prop.Resource) error {
	return walk(resource.Root(), requireAssigned)
}

func (validationFilter) FilterRef(_ context.Context, resource *prop.Resource, _ *prop.Resource) error {
	return walk(resource.Root(), requireAssigned)
}

func requireAssigned(p prop.Property) error {
	d := p.Descriptor()
	if d.Required && p.Unassigned() {
		return fmt.Errorf("%w: %s is required", spec.ErrSchemaViolation, d.Name)
	}
	return nil
}
