package scimd

import (
	"github.com/urfave/cli/v2"

	"github.com/Nabagata/scim/internal/args"
)

type arguments struct {
	args.LDAP
	args.Logging
	HTTPPort int
}

func (arg *arguments) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "HTTP port that the server listens on",
			EnvVars:     []string{"HTTP_PORT"},
			Value:       8080,
			Destination: &arg.HTTPPort,
		},
	}
	flags = append(flags, arg.LDAP.Flags()...)
	flags = append(flags, arg.Logging.Flags()...)
	return flags
}
