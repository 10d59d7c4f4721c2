package feeds

import (
	"github.com/kr/pretty"
	"github.com/travigo/routecost/pkg/config"
	"github.com/urfave/cli/v2"
)

func NewLoaderFromConfig(cfg *config.Config) *Loader {
	return NewLoader(NewFetcher(cfg.FeedRoot, cfg.FeedMaxRetries), NewCache(cfg.FeedCacheTTL, cfg.FeedCacheSize))
}

type feedSummary struct {
	Feed            string
	Stops           int
	Routes          int
	Shapes          int
	RoutesWithShape int
	Trips           int
	SampledStopTime int
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "feeds",
		Usage: "Inspect transit feeds",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "load every table of a feed and print a summary",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "feed path under the feed root",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					loader := NewLoaderFromConfig(cfg)
					feedPath := c.String("feed")

					summary := feedSummary{
						Feed:            feedPath,
						Stops:           len(loader.LoadStops(c.Context, feedPath)),
						Routes:          len(loader.LoadRoutes(c.Context, feedPath)),
						Shapes:          len(loader.LoadShapes(c.Context, feedPath)),
						Trips:           len(loader.LoadTripRoutes(c.Context, feedPath)),
						SampledStopTime: len(loader.SampleStopTimes(c.Context, feedPath)),
					}
					for _, binding := range loader.LoadTrips(c.Context, feedPath) {
						if binding.ShapeID != "" {
							summary.RoutesWithShape++
						}
					}

					pretty.Println(summary)

					return nil
				},
			},
		},
	}
}
