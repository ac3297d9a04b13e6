package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/backend"
)

func TestGetServiceReturnsStoredResource(t *testing.T) {
	ctx := context.Background()
	be := backend.Memory()

	r := newUserResource(t, "bjensen")
	require.NoError(t, r.Get("id").Replace("1"))
	require.NoError(t, be.Insert(ctx, r))

	svc := GetService(be)
	resp, err := svc.Do(ctx, &GetRequest{ResourceID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "bjensen", resp.Resource.Get("userName").Raw())
}

func TestGetServiceNotFound(t *testing.T) {
	svc := GetService(backend.Memory())
	_, err := svc.Do(context.Background(), &GetRequest{ResourceID: "missing"})
	require.Error(t, err)
}
