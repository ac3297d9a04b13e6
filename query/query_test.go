package query

import (
	"testing"

	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/query/expr"
	"github.com/Nabagata/scim/spec"
	"github.com/stretchr/testify/require"
)

func newUserResource(t *testing.T, userName string, active bool) *prop.Resource {
	t.Helper()
	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, _ := registry.GetResourceDescriptor("User")
	schema, _ := registry.GetSchema(descriptor.Schema)
	r := prop.NewResource(descriptor, schema)
	require.NoError(t, r.Get("userName").Replace(userName))
	require.NoError(t, r.Get("active").Replace(active))
	return r
}

func TestMatchesSimplePredicate(t *testing.T) {
	r := newUserResource(t, "bjensen", true)
	f, err := expr.CompileFilter(`userName eq "bjensen"`)
	require.NoError(t, err)
	ok, err := Matches(r, f)
	require.NoError(t, err)
	require.True(t, ok)

	f, err = expr.CompileFilter(`userName eq "other"`)
	require.NoError(t, err)
	ok, err = Matches(r, f)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchesPluralSubAttribute(t *testing.T) {
	r := newUserResource(t, "bjensen", true)
	require.NoError(t, r.Get("emails").Add(map[string]interface{}{"value": "b@example.com", "type": "work"}))
	require.NoError(t, r.Get("emails").Add(map[string]interface{}{"value": "b@home.com", "type": "home"}))

	f, err := expr.CompileFilter(`emails.type eq "home"`)
	require.NoError(t, err)
	ok, err := Matches(r, f)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMatchesTypeMismatchIsFalseNotError(t *testing.T) {
	r := newUserResource(t, "bjensen", true)
	f, err := expr.CompileFilter(`active eq "not-a-bool"`)
	require.NoError(t, err)
	ok, err := Matches(r, f)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSortAscendingAndDescending(t *testing.T) {
	a := newUserResource(t, "alice", true)
	b := newUserResource(t, "bob", true)
	c := newUserResource(t, "carol", true)
	resources := []*prop.Resource{c, a, b}

	Sort(resources, expr.ParsePath("userName"), false)
	require.Equal(t, []string{"alice", "bob", "carol"}, userNames(resources))

	Sort(resources, expr.ParsePath("userName"), true)
	require.Equal(t, []string{"carol", "bob", "alice"}, userNames(resources))
}

func userNames(resources []*prop.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.Get("userName").Raw().(string)
	}
	return out
}

func TestPage(t *testing.T) {
	resources := []*prop.Resource{
		newUserResource(t, "a", true),
		newUserResource(t, "b", true),
		newUserResource(t, "c", true),
	}
	page := Page(resources, 2, 1)
	require.Len(t, page, 1)
	require.Equal(t, "b", page[0].Get("userName").Raw())

	require.Nil(t, Page(resources, 10, 1))
}

func TestCheckCandidateLimit(t *testing.T) {
	resources := make([]*prop.Resource, 3)
	require.NoError(t, CheckCandidateLimit(resources, 3))
	require.ErrorIs(t, CheckCandidateLimit(resources, 2), spec.ErrTooMany)
}
