package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/spec"
)

func TestValidationFilterRejectsMissingRequiredAttribute(t *testing.T) {
	r := newUserResource(t)

	err := Validation().Filter(context.Background(), r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, spec.ErrSchemaViolation))
}

func TestValidationFilterPassesWhenRequiredAttributesAssigned(t *testing.T) {
	r := newUserResource(t)
	require.NoError(t, r.Get("userName").Replace("bjensen"))

	assert.NoError(t, Validation().Filter(context.Background(), r))
}
