package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/config"
	"github.com/travigo/routecost/pkg/dataaggregator/global"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route cost web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					services, err := global.Setup(cfg)
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Str("osrm", cfg.OSRMURL).Msg("Starting web API")

					return SetupServer(c.String("listen"), services)
				},
			},
		},
	}
}
