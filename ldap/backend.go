package ldap

import (
	"context"
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

// Backend implements backend.Backend against a directory through Pool, translating resources
// with Mapper and filters with TransformCompiledFilter. Grounded on mongo/v2/db.go's mongoDB,
// substituting LDAP Add/Search/Modify/Del for MongoDB's collection operations and the LDAP Simple
// Paged Results control for MongoDB's native skip/limit (spec.md §4.6, "Pagination translation").
type Backend struct {
	pool       *Pool
	mapping    *Mapping
	descriptor *spec.ResourceDescriptor
	schema     *spec.Schema
	pageSize   uint32
}

// NewBackend returns a Backend searching/writing under mapping.BaseDN through pool.
func NewBackend(pool *Pool, mapping *Mapping, descriptor *spec.ResourceDescriptor, schema *spec.Schema) *Backend {
	return &Backend{pool: pool, mapping: mapping, descriptor: descriptor, schema: schema, pageSize: 100}
}

// Start dials and binds the backing connection pool.
func (b *Backend) Start(ctx context.Context) error { return b.pool.start(ctx) }

// Stop closes the backing connection pool.
func (b *Backend) Stop() { b.pool.stop() }

var _ backend.Backend = (*Backend)(nil)

// Healthy reports whether the pool can still hand out a live connection, by acquiring one and
// releasing it straight back. Grounded on cmd/api/handler.go's HealthHandler, substituting a pool
// round-trip for mongo.Client.Ping since this backend has no single persistent client to ping.
func (b *Backend) Healthy(ctx context.Context) error {
	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	b.pool.release(conn)
	return nil
}

// Authenticate binds as userID/password on a fresh, throwaway connection, per spec.md §4.7's
// "the server passes (userID, password) to Backend.authenticate before dispatching any
// mutation". The DN is derived from mapping.DNTemplate by substituting every placeholder with
// userID, which is exact when the template names a single identifying attribute (the common
// case, e.g. "uid={userName},...").
func (b *Backend) Authenticate(_ context.Context, userID, password string) error {
	dn := dnPlaceholder.ReplaceAllString(b.mapping.DNTemplate, userID)

	conn, err := goldap.DialURL(b.pool.addr)
	if err != nil {
		return fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	defer conn.Close()

	if err := conn.Bind(dn, password); err != nil {
		return fmt.Errorf("%w: %s", spec.ErrUnauthorized, err)
	}
	return nil
}

func (b *Backend) Insert(ctx context.Context, resource *prop.Resource) error {
	entry, err := ToEntry(resource, b.mapping)
	if err != nil {
		return err
	}

	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return err
	}
	defer b.pool.release(conn)

	add := goldap.NewAddRequest(entry.DN, nil)
	for attr, vals := range entry.Attrs {
		add.Attribute(attr, vals)
	}
	if err := conn.Add(add); err != nil {
		if goldap.IsErrorWithCode(err, goldap.LDAPResultEntryAlreadyExists) {
			return fmt.Errorf("%w: %s", spec.ErrConflict, err)
		}
		return fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, id string) (*prop.Resource, error) {
	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.pool.release(conn)

	filter := fmt.Sprintf("(%s=%s)", b.mapping.idAttribute(), goldap.EscapeFilter(id))
	result, err := conn.Search(goldap.NewSearchRequest(
		b.mapping.BaseDN, goldap.ScopeWholeSubtree, goldap.NeverDerefAliases,
		0, 0, false, filter, nil, nil,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("%w: resource %q not found", spec.ErrNotFound, id)
	}
	return FromEntry(result.Entries[0], b.mapping, b.descriptor, b.schema)
}

func (b *Backend) Replace(ctx context.Context, id string, replacement *prop.Resource) error {
	entry, err := ToEntry(replacement, b.mapping)
	if err != nil {
		return err
	}

	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return err
	}
	defer b.pool.release(conn)

	modify := goldap.NewModifyRequest(entry.DN, nil)
	for attr, vals := range entry.Attrs {
		modify.Replace(attr, vals)
	}
	if err := conn.Modify(modify); err != nil {
		return fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	resource, err := b.Get(ctx, id)
	if err != nil {
		return err
	}

	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return err
	}
	defer b.pool.release(conn)

	entry, err := ToEntry(resource, b.mapping)
	if err != nil {
		return err
	}
	if err := conn.Del(goldap.NewDelRequest(entry.DN, nil)); err != nil {
		return fmt.Errorf("%w: %s", spec.ErrInternal, err)
	}
	return nil
}

func (b *Backend) Count(ctx context.Context, filter *expr.Filter) (int, error) {
	resources, err := b.searchAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(resources), nil
}

func (b *Backend) Search(ctx context.Context, q *backend.Query) ([]*prop.Resource, error) {
	ldapFilter := "(objectClass=*)"
	if q.Filter != nil {
		f, err := TransformCompiledFilter(q.Filter, b.mapping)
		if err != nil {
			return nil, err
		}
		ldapFilter = f
	}

	if q.SortBy == nil {
		return b.pagedSearch(ctx, ldapFilter, q.StartIndex, q.Count)
	}

	// A sorted listing fetches the whole candidate set, sorts it in memory and pages the result.
	resources, err := b.pagedSearch(ctx, ldapFilter, 1, 0)
	if err != nil {
		return nil, err
	}
	if err := query.CheckCandidateLimit(resources, query.DefaultMaxCandidates); err != nil {
		return nil, err
	}
	query.Sort(resources, q.SortBy, q.SortDescending)
	return query.Page(resources, q.StartIndex, q.Count), nil
}

// pagedSearch drives the LDAP Simple Paged Results control (RFC 2696), discarding whole pages
// until startIndex is reached and returning at most count entries after that, carrying the
// opaque paging cookie between requests (spec.md §4.6, "Pagination translation").
func (b *Backend) pagedSearch(ctx context.Context, ldapFilter string, startIndex, count int) ([]*prop.Resource, error) {
	conn, err := b.pool.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.pool.release(conn)

	if startIndex < 1 {
		startIndex = 1
	}

	var (
		resources []*prop.Resource
		skipped   int
		paging    = goldap.NewControlPaging(b.pageSize)
	)

	for {
		req := goldap.NewSearchRequest(
			b.mapping.BaseDN, goldap.ScopeWholeSubtree, goldap.NeverDerefAliases,
			0, 0, false, ldapFilter, nil, []goldap.Control{paging},
		)
		result, err := conn.Search(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", spec.ErrInternal, err)
		}

		for _, entry := range result.Entries {
			skipped++
			if skipped < startIndex {
				continue
			}
			if count > 0 && len(resources) >= count {
				break
			}
			r, err := FromEntry(entry, b.mapping, b.descriptor, b.schema)
			if err != nil {
				return nil, err
			}
			resources = append(resources, r)
		}

		respControl := goldap.FindControl(result.Controls, goldap.ControlTypePaging)
		if respControl == nil {
			break
		}
		cookie := respControl.(*goldap.ControlPaging).Cookie
		if len(cookie) == 0 || (count > 0 && len(resources) >= count) {
			break
		}
		paging.SetCookie(cookie)
	}

	if resources == nil {
		resources = []*prop.Resource{}
	}
	return resources, nil
}

func (b *Backend) searchAll(ctx context.Context, filter *expr.Filter) ([]*prop.Resource, error) {
	ldapFilter := "(objectClass=*)"
	if filter != nil {
		f, err := TransformCompiledFilter(filter, b.mapping)
		if err != nil {
			return nil, err
		}
		ldapFilter = f
	}
	return b.pagedSearch(ctx, ldapFilter, 1, 0)
}
