package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformFilterSimpleEquality(t *testing.T) {
	f, err := TransformFilter(`userName eq "bjensen"`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(uid=bjensen)", f)
}

func TestTransformFilterPresence(t *testing.T) {
	f, err := TransformFilter(`active pr`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(nsAccountLock=*)", f)
}

func TestTransformFilterBooleanValue(t *testing.T) {
	f, err := TransformFilter(`active eq true`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(nsAccountLock=TRUE)", f)
}

func TestTransformFilterAndOr(t *testing.T) {
	f, err := TransformFilter(`userName eq "bjensen" and active eq true`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(&(uid=bjensen)(nsAccountLock=TRUE))", f)

	f, err = TransformFilter(`userName eq "bjensen" or userName eq "other"`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(|(uid=bjensen)(uid=other))", f)
}

func TestTransformFilterComplexSubAttribute(t *testing.T) {
	f, err := TransformFilter(`name.familyName eq "Jensen"`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(sn=Jensen)", f)
}

func TestTransformFilterComplexRequiresSubAttribute(t *testing.T) {
	_, err := TransformFilter(`name eq "Jensen"`, userMapping())
	require.Error(t, err)
}

func TestTransformFilterPluralFansOutAcrossTypes(t *testing.T) {
	f, err := TransformFilter(`emails.value eq "bjensen@example.com"`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(|(homeEmail=bjensen@example.com)(mail=bjensen@example.com))", f)
}

func TestTransformFilterGreaterThanUsesNegatedEquality(t *testing.T) {
	f, err := TransformFilter(`userName gt "m"`, userMapping())
	require.NoError(t, err)
	assert.Equal(t, "(&(uid>=m)(!(uid=m)))", f)
}

func TestTransformFilterUnmappedAttributeErrors(t *testing.T) {
	_, err := TransformFilter(`nickName eq "Barb"`, userMapping())
	require.Error(t, err)
}
