package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/travigo/routecost/pkg/config"
	"github.com/travigo/routecost/pkg/ctdf"
	"github.com/travigo/routecost/pkg/dataaggregator/global"
	"github.com/urfave/cli/v2"
)

func costsCommand() *cli.Command {
	return &cli.Command{
		Name:  "costs",
		Usage: "Estimate trip costs",
		Subcommands: []*cli.Command{
			{
				Name:  "calculate",
				Usage: "price a trip over the given points and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: string(ctdf.TransportModeWalking),
						Usage: "walking, transit, walking-transit, car or taxi",
					},
					&cli.StringFlag{
						Name:  "city",
						Usage: "city used to find a transit feed",
					},
					&cli.StringSliceFlag{
						Name:     "point",
						Usage:    "waypoint as lat,lon[,name], repeat for each point in order",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					points, err := parsePoints(c.StringSlice("point"))
					if err != nil {
						return err
					}

					cfg, err := config.Load()
					if err != nil {
						return err
					}

					services, err := global.Setup(cfg)
					if err != nil {
						return err
					}

					transportCost := services.Costs.CalculateTransportCosts(c.Context, points, ctdf.TransportMode(c.String("mode")), c.String("city"))

					encoder := json.NewEncoder(os.Stdout)
					encoder.SetIndent("", "  ")
					return encoder.Encode(transportCost)
				},
			},
		},
	}
}

func parsePoints(values []string) ([]ctdf.RoutePoint, error) {
	points := make([]ctdf.RoutePoint, 0, len(values))

	for _, value := range values {
		point, err := parsePoint(value)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

func parsePoint(value string) (ctdf.RoutePoint, error) {
	parts := strings.SplitN(value, ",", 3)
	if len(parts) < 2 {
		return ctdf.RoutePoint{}, fmt.Errorf("point %q should be lat,lon[,name]", value)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return ctdf.RoutePoint{}, fmt.Errorf("point %q has an invalid latitude: %w", value, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return ctdf.RoutePoint{}, fmt.Errorf("point %q has an invalid longitude: %w", value, err)
	}

	point := ctdf.RoutePoint{
		Latitude:  latitude,
		Longitude: longitude,
	}
	if len(parts) == 3 {
		point.Name = strings.TrimSpace(parts[2])
	}

	return point, nil
}
