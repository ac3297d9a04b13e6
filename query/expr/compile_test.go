package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSimplePredicate(t *testing.T) {
	f, err := CompileFilter(`userName eq "bjensen"`)
	require.NoError(t, err)
	require.Len(t, f.Or, 1)
	require.Len(t, f.Or[0].And, 1)

	pred := f.Or[0].And[0].Predicate
	require.NotNil(t, pred)
	assert.Equal(t, "userName", pred.Path.Name)
	assert.Equal(t, Eq, pred.Op)
	assert.Equal(t, "bjensen", pred.Value)
}

func TestCompilePresence(t *testing.T) {
	f, err := CompileFilter(`title pr`)
	require.NoError(t, err)
	pred := f.Or[0].And[0].Predicate
	assert.Equal(t, Pr, pred.Op)
	assert.Nil(t, pred.Value)
}

func TestCompileAndOr(t *testing.T) {
	f, err := CompileFilter(`userName eq "bjensen" and active eq true or title eq "boss"`)
	require.NoError(t, err)
	require.Len(t, f.Or, 2)
	require.Len(t, f.Or[0].And, 2)
	require.Len(t, f.Or[1].And, 1)
}

func TestCompileParenthesizedSubFilter(t *testing.T) {
	f, err := CompileFilter(`(emails.type eq "work") and (active eq true)`)
	require.NoError(t, err)
	require.Len(t, f.Or[0].And, 2)
	assert.NotNil(t, f.Or[0].And[0].Sub)
	assert.Equal(t, "emails", f.Or[0].And[0].Sub.Or[0].And[0].Predicate.Path.Name)
	assert.Equal(t, "type", f.Or[0].And[0].Sub.Or[0].And[0].Predicate.Path.SubName)
}

func TestCompileNumberAndMismatchedParen(t *testing.T) {
	f, err := CompileFilter(`age gt 30`)
	require.NoError(t, err)
	assert.Equal(t, float64(30), f.Or[0].And[0].Predicate.Value)

	_, err = CompileFilter(`(age gt 30`)
	require.Error(t, err)
}

func TestCompileInvalidOperator(t *testing.T) {
	_, err := CompileFilter(`userName xx "bjensen"`)
	require.Error(t, err)
}
