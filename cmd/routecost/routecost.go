package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/api"
	"github.com/travigo/routecost/pkg/feeds"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("ROUTECOST_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ROUTECOST_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "routecost",
		Description: "Route, travel time and cost estimation for multi-waypoint trips",

		// --point values are lat,lon[,name]
		DisableSliceFlagSeparator: true,

		Commands: []*cli.Command{
			api.RegisterCLI(),
			costsCommand(),
			feeds.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
