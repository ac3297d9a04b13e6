package filter

import (
	"context"

	"github.com/Nabagata/scim/internal/genpassword"
	"github.com/Nabagata/scim/prop"
)

// Password returns a ByResource filter that assigns a generated initial password to User
// resources created without one. It must run after ReadOnly in the create chain, since password
// is marked readOnly (client-supplied values are always stripped, never accepted) and this filter
// is what actually gives the entry a credential to bind with. Grounded on the role
// pkg/v2/service/filter/bcrypt.go plays in the create path, substituting generation for hashing
// per spec.md §1's "example password generator".
func Password() ByResource {
	return passwordFilter{}
}

type passwordFilter struct{}

func (passwordFilter) Filter(_ context.Context, resource *prop.Resource) error {
	password := resource.Get("password")
	if password == nil || !password.Unassigned() {
		return nil
	}

	generated, err := genpassword.Generate()
	if err != nil {
		return err
	}
	return password.Replace(generated)
}

// FilterRef never regenerates on replace: ReadOnly.FilterRef already restores the existing
// password from ref, and a replace is not a credential reset.
func (passwordFilter) FilterRef(_ context.Context, _ *prop.Resource, _ *prop.Resource) error {
	return nil
}
