package global

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/config"
	"github.com/travigo/routecost/pkg/costs"
	"github.com/travigo/routecost/pkg/dataaggregator"
	"github.com/travigo/routecost/pkg/dataaggregator/source/realroute"
	"github.com/travigo/routecost/pkg/dataaggregator/source/transitplanner"
	"github.com/travigo/routecost/pkg/feeds"
	"github.com/travigo/routecost/pkg/osrm"
	"github.com/travigo/routecost/pkg/redis_client"
	"github.com/travigo/routecost/pkg/routing"
	"github.com/travigo/routecost/pkg/transforms"
	"github.com/travigo/routecost/pkg/transit"
)

// Services is the wired routing and pricing stack
type Services struct {
	Config     *config.Config
	Feeds      *feeds.Loader
	Cities     *transit.CityFeeds
	Resolver   *transit.Resolver
	Transit    *transit.Router
	Routing    *routing.Router
	Aggregator *dataaggregator.Aggregator
	Costs      *costs.Estimator
}

func Setup(cfg *config.Config) (*Services, error) {
	cities := transit.DefaultCityFeeds()

	if cfg.CitiesFile != "" {
		cityFeeds, err := config.LoadCitiesFile(cfg.CitiesFile)
		if err != nil {
			return nil, fmt.Errorf("loading cities file %s: %w", cfg.CitiesFile, err)
		}

		for _, city := range cityFeeds {
			cities.Add(city.Name, city.Feed)
		}

		log.Info().Str("file", cfg.CitiesFile).Int("cities", len(cityFeeds)).Msg("Loaded cities file")
	}

	router := &routing.Router{
		Engine:      osrm.NewClient(cfg.OSRMURL, cfg.OSRMTimeout),
		Concurrency: cfg.RoutingConcurrency,
	}

	if err := redis_client.Connect(cfg); err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis, route results will not be cached")
	} else if redis_client.Client != nil {
		router.Cache = routing.NewResultCache(redis_client.Client, cfg.RouteCacheTTL)
	}

	transformsClient := transforms.NewClient()
	if cfg.TransformsFile != "" {
		if err := transformsClient.LoadFile(cfg.TransformsFile); err != nil {
			return nil, fmt.Errorf("loading transforms file %s: %w", cfg.TransformsFile, err)
		}
	}

	loader := feeds.NewLoaderFromConfig(cfg)
	loader.Transformer = transformsClient
	resolver := &transit.Resolver{Feeds: loader}
	transitRouter := &transit.Router{
		Cities:   cities,
		Resolver: resolver,
	}

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(transitplanner.Source{
		Transit: transitRouter,
		Walking: router,
	})
	aggregator.RegisterSource(realroute.Source{
		Router: router,
	})

	return &Services{
		Config:     cfg,
		Feeds:      loader,
		Cities:     cities,
		Resolver:   resolver,
		Transit:    transitRouter,
		Routing:    router,
		Aggregator: aggregator,
		Costs: &costs.Estimator{
			Aggregator: aggregator,
		},
	}, nil
}
