package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/backend"
)

func seedUsers(t *testing.T, be backend.Backend, names ...string) {
	t.Helper()
	for i, name := range names {
		r := newUserResource(t, name)
		require.NoError(t, r.Get("id").Replace(string(rune('1'+i))))
		require.NoError(t, be.Insert(context.Background(), r))
	}
}

func TestQueryServiceFiltersSortsAndPages(t *testing.T) {
	be := backend.Memory()
	seedUsers(t, be, "carol", "alice", "bob")

	svc := QueryService(be, 0)
	resp, err := svc.Do(context.Background(), &QueryRequest{SortBy: "userName"})
	require.NoError(t, err)
	require.Equal(t, 3, resp.TotalResults)
	require.Len(t, resp.Resources, 3)
	assert.Equal(t, "alice", resp.Resources[0].Get("userName").Raw())
	assert.Equal(t, "bob", resp.Resources[1].Get("userName").Raw())
	assert.Equal(t, "carol", resp.Resources[2].Get("userName").Raw())
}

func TestQueryServiceRejectsOversizedUnboundedListing(t *testing.T) {
	be := backend.Memory()
	seedUsers(t, be, "carol", "alice", "bob")

	svc := QueryService(be, 2)
	_, err := svc.Do(context.Background(), &QueryRequest{})
	require.Error(t, err)
}

func TestQueryServiceAppliesFilter(t *testing.T) {
	be := backend.Memory()
	seedUsers(t, be, "carol", "alice")

	svc := QueryService(be, 0)
	resp, err := svc.Do(context.Background(), &QueryRequest{Filter: `userName eq "alice"`})
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "alice", resp.Resources[0].Get("userName").Raw())
}
