// Package scimd wires configuration, the LDAP-backed Backend implementations, the service filter
// chains and the HTTP resource server into one cli.Command, grounded on cmd/api/cmd.go's
// router-construction Action.
package scimd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Nabagata/scim/ldap"
	"github.com/Nabagata/scim/server"
	"github.com/Nabagata/scim/service"
	"github.com/Nabagata/scim/service/filter"
	"github.com/Nabagata/scim/spec"
)

// Command returns a cli.Command that starts the SCIM HTTP resource server.
func Command() *cli.Command {
	arg := new(arguments)
	return &cli.Command{
		Name:        "scimd",
		Description: "Serve SCIM 1.0 User and Group resources backed by an LDAP directory",
		Flags:       arg.Flags(),
		Action: func(_ *cli.Context) error {
			logger := arg.Logger()

			registry, err := spec.CoreRegistry()
			if err != nil {
				return fmt.Errorf("building schema registry: %w", err)
			}

			pool := arg.NewPool()

			userBackend, err := newBackend(pool, arg.UserMapping(), "User", registry)
			if err != nil {
				return err
			}
			// userBackend.Start dials and binds the pool shared by every backend below; the pool
			// is a single connection pool to one directory, reused across resource types.
			if err := userBackend.Start(context.Background()); err != nil {
				return fmt.Errorf("connecting to LDAP: %w", err)
			}

			groupBackend, err := newBackend(pool, arg.GroupMapping(), "Group", registry)
			if err != nil {
				return err
			}

			userEndpoint, err := buildEndpoint(userBackend, "User", arg.MaxResults, registry, logger)
			if err != nil {
				return err
			}
			groupEndpoint, err := buildEndpoint(groupBackend, "Group", arg.MaxResults, registry, logger)
			if err != nil {
				return err
			}

			router := httprouter.New()
			server.Mount(router, userEndpoint)
			server.Mount(router, groupEndpoint)
			server.MountHealth(router, map[string]server.HealthChecker{
				"ldap": userBackend,
			})

			logger.Info().Int("port", arg.HTTPPort).Msg("listening for incoming requests")
			return http.ListenAndServe(fmt.Sprintf(":%d", arg.HTTPPort), router)
		},
	}
}

func newBackend(pool *ldap.Pool, mapping *ldap.Mapping, resourceName string, registry *spec.Registry) (*ldap.Backend, error) {
	descriptor, ok := registry.GetResourceDescriptor(resourceName)
	if !ok {
		return nil, fmt.Errorf("no resource descriptor registered for %q", resourceName)
	}
	schema, ok := registry.GetSchema(descriptor.Schema)
	if !ok {
		return nil, fmt.Errorf("no schema registered for %q", descriptor.Schema)
	}
	return ldap.NewBackend(pool, mapping, descriptor, schema), nil
}

func buildEndpoint(be *ldap.Backend, resourceName string, maxResults int, registry *spec.Registry, logger *zerolog.Logger) (*server.Endpoint, error) {
	descriptor, ok := registry.GetResourceDescriptor(resourceName)
	if !ok {
		return nil, fmt.Errorf("no resource descriptor registered for %q", resourceName)
	}
	schema, ok := registry.GetSchema(descriptor.Schema)
	if !ok {
		return nil, fmt.Errorf("no schema registered for %q", descriptor.Schema)
	}

	createFilters := []filter.ByResource{filter.ReadOnly(), filter.UUID(), filter.Meta(descriptor), filter.Password(), filter.Validation()}
	replaceFilters := []filter.ByResource{filter.ReadOnly(), filter.Meta(descriptor), filter.Validation()}

	return &server.Endpoint{
		Descriptor: descriptor,
		Schema:     schema,
		Registry:   registry,
		Backend:    be,
		Create:     service.CreateService(be, createFilters),
		Get:        service.GetService(be),
		Replace:    service.ReplaceService(be, replaceFilters),
		Delete:     service.DeleteService(be),
		Query:      service.QueryService(be, maxResults),
		Logger:     logger,
	}, nil
}
