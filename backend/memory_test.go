package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
)

func newUser(t *testing.T, id, userName string) *prop.Resource {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)
	r := prop.NewResource(descriptor, schema)
	require.NoError(t, r.Get("id").Replace(id))
	require.NoError(t, r.Get("userName").Replace(userName))
	return r
}

func TestMemoryAuthenticateAlwaysSucceeds(t *testing.T) {
	require.NoError(t, Memory().Authenticate(context.Background(), "anyone", "anything"))
}

func TestMemoryInsertGetReplaceDelete(t *testing.T) {
	ctx := context.Background()
	b := Memory()

	r := newUser(t, "1", "bjensen")
	require.NoError(t, b.Insert(ctx, r))
	require.Error(t, b.Insert(ctx, r)) // duplicate id

	got, err := b.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "bjensen", got.Get("userName").Raw())

	replacement := newUser(t, "1", "bjensen2")
	require.NoError(t, b.Replace(ctx, "1", replacement))
	got, err = b.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "bjensen2", got.Get("userName").Raw())

	require.NoError(t, b.Delete(ctx, "1"))
	_, err = b.Get(ctx, "1")
	require.Error(t, err)
}

func TestMemorySearchFilterSortPage(t *testing.T) {
	ctx := context.Background()
	b := Memory()
	require.NoError(t, b.Insert(ctx, newUser(t, "1", "carol")))
	require.NoError(t, b.Insert(ctx, newUser(t, "2", "alice")))
	require.NoError(t, b.Insert(ctx, newUser(t, "3", "bob")))

	f, err := expr.CompileFilter(`userName pr`)
	require.NoError(t, err)

	resources, err := b.Search(ctx, &Query{Filter: f, SortBy: &expr.Path{Name: "userName"}})
	require.NoError(t, err)
	require.Len(t, resources, 3)
	assert.Equal(t, "alice", resources[0].Get("userName").Raw())
	assert.Equal(t, "bob", resources[1].Get("userName").Raw())
	assert.Equal(t, "carol", resources[2].Get("userName").Raw())

	paged, err := b.Search(ctx, &Query{SortBy: &expr.Path{Name: "userName"}, StartIndex: 2, Count: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "bob", paged[0].Get("userName").Raw())

	n, err := b.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
