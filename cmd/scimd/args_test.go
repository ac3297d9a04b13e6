package scimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentsFlagsIncludesEveryConcern(t *testing.T) {
	arg := new(arguments)
	names := make(map[string]bool)
	for _, f := range arg.Flags() {
		for _, n := range f.Names() {
			names[n] = true
		}
	}

	for _, want := range []string{"port", "log-level", "ldap-addr", "ldap-user-base-dn", "ldap-group-base-dn", "max-results"} {
		assert.True(t, names[want], "expected flag %q", want)
	}
}
