package ldap

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/Nabagata/scim/spec"
)

// TestBackendAgainstOpenLDAP spins up a throwaway osixia/openldap container and drives a full
// Insert/Get/Delete cycle through Backend, grounded on cmd/api/cmd_test.go's
// dockertest-based MongoDB setup. Skips when Docker is unreachable, matching that test's
// tolerance for environments with no daemon.
func TestBackendAgainstOpenLDAP(t *testing.T) {
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS set")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unreachable: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon not responding: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "osixia/openldap",
		Tag:        "latest",
		Env: []string{
			"LDAP_ORGANISATION=Example Inc",
			"LDAP_DOMAIN=example.com",
			"LDAP_ADMIN_PASSWORD=admin",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)
	defer func() { _ = pool.Purge(resource) }()

	addr := fmt.Sprintf("ldap://localhost:%s", resource.GetPort("389/tcp"))

	var ldapPool *Pool
	require.NoError(t, pool.Retry(func() error {
		ldapPool = NewPool(addr, "cn=admin,dc=example,dc=com", "admin", 2)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return ldapPool.start(ctx)
	}))
	defer ldapPool.stop()

	registry, err := spec.CoreRegistry()
	require.NoError(t, err)
	descriptor, ok := registry.GetResourceDescriptor("User")
	require.True(t, ok)
	schema, ok := registry.GetSchema(descriptor.Schema)
	require.True(t, ok)

	mapping := DefaultUserMapping("ou=people,dc=example,dc=com")
	backend := NewBackend(ldapPool, mapping, descriptor, schema)

	require.NoError(t, backend.Healthy(context.Background()))

	created := newUserResource(t)
	require.NoError(t, created.Get("userName").Replace("bjensen"))
	require.NoError(t, created.Get("id").Replace("bjensen"))

	ctx := context.Background()
	require.NoError(t, backend.Insert(ctx, created))

	fetched, err := backend.Get(ctx, "bjensen")
	require.NoError(t, err)
	require.Equal(t, "bjensen", fetched.Get("userName").Raw())

	require.NoError(t, backend.Delete(ctx, "bjensen"))
	_, err = backend.Get(ctx, "bjensen")
	require.ErrorIs(t, err, spec.ErrNotFound)
}
