package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/backend"
	"github.com/Nabagata/scim/prop"
	"github.com/Nabagata/scim/service/filter"
)

func TestReplaceServiceRestoresReadOnlyAndStores(t *testing.T) {
	ctx := context.Background()
	be := backend.Memory()

	original := newUserResource(t, "bjensen")
	require.NoError(t, original.Get("id").Replace("1"))
	require.NoError(t, be.Insert(ctx, original))

	svc := ReplaceService(be, []filter.ByResource{filter.ReadOnly(), filter.Validation()})

	replacement := newUserResource(t, "bjensen2")
	require.NoError(t, replacement.Get("id").Replace("attacker-supplied"))

	resp, err := svc.Do(ctx, &ReplaceRequest{ResourceID: "1", Resource: replacement})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Resource.ID())
	assert.Equal(t, "bjensen", resp.Ref.Get("userName").Raw())

	got, err := be.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "bjensen2", got.Get("userName").Raw())
}

func TestReplaceServiceRejectsFailedPrecondition(t *testing.T) {
	ctx := context.Background()
	be := backend.Memory()

	original := newUserResource(t, "bjensen")
	require.NoError(t, original.Get("id").Replace("1"))
	require.NoError(t, be.Insert(ctx, original))

	svc := ReplaceService(be, nil)
	replacement := newUserResource(t, "bjensen2")

	_, err := svc.Do(ctx, &ReplaceRequest{
		ResourceID: "1",
		Resource:   replacement,
		MatchCriteria: func(ref *prop.Resource) bool {
			return false
		},
	})
	require.Error(t, err)
}

func TestDeleteServiceDeletes(t *testing.T) {
	ctx := context.Background()
	be := backend.Memory()

	r := newUserResource(t, "bjensen")
	require.NoError(t, r.Get("id").Replace("1"))
	require.NoError(t, be.Insert(ctx, r))

	svc := DeleteService(be)
	resp, err := svc.Do(ctx, &DeleteRequest{ResourceID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "bjensen", resp.Deleted.Get("userName").Raw())

	_, err = be.Get(ctx, "1")
	require.Error(t, err)
}
