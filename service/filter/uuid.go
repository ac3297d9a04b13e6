package filter

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nabagata/scim/prop"
)

// UUID returns a ByResource filter that assigns a random id to resources that do not yet have
// one, grounded on pkg/v2/service/filter/uuid.go's UUIDFilter (there driven by an @UUID
// annotation; here it always targets the "id" attribute, the only string attribute this module's
// schemas mark with server-assigned uniqueness).
func UUID() ByResource {
	return uuidFilter{}
}

type uuidFilter struct{}

func (uuidFilter) Filter(_ context.Context, resource *prop.Resource) error {
	id := resource.Get("id")
	if id == nil || !id.Unassigned() {
		return nil
	}
	return id.Replace(uuid.New().String())
}

// FilterRef never reassigns id on replace: the id supplied by the URL path, not the request
// body, identifies which resource is being replaced.
func (uuidFilter) FilterRef(_ context.Context, _ *prop.Resource, _ *prop.Resource) error {
	return nil
}
