// Package backend declares the Backend abstraction the SCIM resource server persists through,
// and Memory, a reference implementation used for the default User/Group endpoints and for
// service-layer tests. Grounded on pkg/v2/db/db.go; ldap.Backend (package ldap) implements the
// same interface against a directory (spec.md §4.6, §5).
package backend

import (
	"context"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
)

// Query carries a compiled listing request: a parsed filter, an optional sort key, and 1-based
// pagination bounds (spec.md §4.4).
type Query struct {
	Filter         *expr.Filter
	SortBy         *expr.Path
	SortDescending bool
	StartIndex     int
	Count          int
}

// Backend is the abstraction for the store that provides persistence and lookup for one
// resource type.
type Backend interface {
	// Authenticate verifies userID/password before any mutation is dispatched (spec.md §4.7).
	// A nil error grants access; spec.ErrUnauthorized and spec.ErrForbidden are the expected
	// rejections, distinguishing bad credentials from insufficient privilege.
	Authenticate(ctx context.Context, userID, password string) error
	// Insert stores resource, rejecting it with spec.ErrConflict if its id collides with an
	// existing one.
	Insert(ctx context.Context, resource *prop.Resource) error
	// Get returns the resource with the given id.
	Get(ctx context.Context, id string) (*prop.Resource, error)
	// Replace overwrites the resource with the given id with replacement's content.
	Replace(ctx context.Context, id string, replacement *prop.Resource) error
	// Delete removes the resource with the given id.
	Delete(ctx context.Context, id string) error
	// Count returns the number of resources matching filter, or every resource when filter is nil.
	Count(ctx context.Context, filter *expr.Filter) (int, error)
	// Search returns the resources matching q, sorted and paged as q specifies.
	Search(ctx context.Context, q *Query) ([]*prop.Resource, error)
}
