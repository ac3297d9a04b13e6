package args

import (
	"github.com/urfave/cli/v2"

	"github.com/Nabagata/scim/ldap"
)

// LDAP is the configuration options related to the directory backing User and Group resources.
type LDAP struct {
	Addr         string
	BindDN       string
	BindPassword string
	PoolSize     int
	UserBaseDN   string
	GroupBaseDN  string
	MaxResults   int
}

// NewPool returns a Pool dialing arg.Addr with arg.PoolSize connections, bound as arg.BindDN.
func (arg *LDAP) NewPool() *ldap.Pool {
	return ldap.NewPool(arg.Addr, arg.BindDN, arg.BindPassword, arg.PoolSize)
}

// UserMapping returns the built-in User mapping rooted at arg.UserBaseDN.
func (arg *LDAP) UserMapping() *ldap.Mapping {
	return ldap.DefaultUserMapping(arg.UserBaseDN)
}

// GroupMapping returns the built-in Group mapping rooted at arg.GroupBaseDN.
func (arg *LDAP) GroupMapping() *ldap.Mapping {
	return ldap.DefaultGroupMapping(arg.GroupBaseDN)
}

func (arg *LDAP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ldap-addr",
			Usage:       "LDAP URL of the directory backing User and Group resources, e.g. ldap://localhost:389",
			EnvVars:     []string{"LDAP_ADDR"},
			Required:    true,
			Destination: &arg.Addr,
		},
		&cli.StringFlag{
			Name:        "ldap-bind-dn",
			Usage:       "DN the connection pool binds as",
			EnvVars:     []string{"LDAP_BIND_DN"},
			Destination: &arg.BindDN,
		},
		&cli.StringFlag{
			Name:        "ldap-bind-password",
			Usage:       "Password for ldap-bind-dn",
			EnvVars:     []string{"LDAP_BIND_PASSWORD"},
			Destination: &arg.BindPassword,
		},
		&cli.IntFlag{
			Name:        "ldap-pool-size",
			Usage:       "Number of pooled LDAP connections",
			EnvVars:     []string{"LDAP_POOL_SIZE"},
			Value:       4,
			Destination: &arg.PoolSize,
		},
		&cli.StringFlag{
			Name:        "ldap-user-base-dn",
			Usage:       "Search base and DN suffix for User resources, e.g. ou=people,dc=example,dc=com",
			EnvVars:     []string{"LDAP_USER_BASE_DN"},
			Required:    true,
			Destination: &arg.UserBaseDN,
		},
		&cli.StringFlag{
			Name:        "ldap-group-base-dn",
			Usage:       "Search base and DN suffix for Group resources, e.g. ou=groups,dc=example,dc=com",
			EnvVars:     []string{"LDAP_GROUP_BASE_DN"},
			Required:    true,
			Destination: &arg.GroupBaseDN,
		},
		&cli.IntFlag{
			Name:        "max-results",
			Usage:       "Maximum number of resources a single query may return; 0 disables the limit",
			EnvVars:     []string{"MAX_RESULTS"},
			Value:       200,
			Destination: &arg.MaxResults,
		},
	}
}
