package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/travigo/routecost/pkg/util"
)

const defaultFeedRoot = "./feeds"
const defaultFeedCacheSize = 64
const defaultFeedMaxRetries = 2
const defaultOSRMURL = "https://router.project-osrm.org/route/v1"
const defaultOSRMTimeout = 10 * time.Second
const defaultRoutingConcurrency = 1
const defaultRouteCacheTTL = 24 * time.Hour

type Config struct {
	FeedRoot       string
	FeedCacheTTL   time.Duration
	FeedCacheSize  int
	FeedMaxRetries int

	OSRMURL            string
	OSRMTimeout        time.Duration
	RoutingConcurrency int
	RouteCacheTTL      time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDatabase int

	CitiesFile     string
	TransformsFile string
}

// Load reads the ROUTECOST_* environment variables on top of the defaults
func Load() (*Config, error) {
	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	config := &Config{
		FeedRoot:           defaultFeedRoot,
		FeedCacheSize:      defaultFeedCacheSize,
		FeedMaxRetries:     defaultFeedMaxRetries,
		OSRMURL:            defaultOSRMURL,
		OSRMTimeout:        defaultOSRMTimeout,
		RoutingConcurrency: defaultRoutingConcurrency,
		RouteCacheTTL:      defaultRouteCacheTTL,
	}

	if env["ROUTECOST_FEED_ROOT"] != "" {
		config.FeedRoot = env["ROUTECOST_FEED_ROOT"]
	}
	if env["ROUTECOST_OSRM_URL"] != "" {
		config.OSRMURL = env["ROUTECOST_OSRM_URL"]
	}
	config.RedisAddress = env["ROUTECOST_REDIS_ADDRESS"]
	config.RedisPassword = env["ROUTECOST_REDIS_PASSWORD"]
	config.CitiesFile = env["ROUTECOST_CITIES_FILE"]
	config.TransformsFile = env["ROUTECOST_TRANSFORMS_FILE"]

	var err error

	if config.FeedCacheTTL, err = parseDuration(env, "ROUTECOST_FEED_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if config.OSRMTimeout, err = parseDuration(env, "ROUTECOST_OSRM_TIMEOUT", config.OSRMTimeout); err != nil {
		return nil, err
	}
	if config.RouteCacheTTL, err = parseDuration(env, "ROUTECOST_ROUTE_CACHE_TTL", config.RouteCacheTTL); err != nil {
		return nil, err
	}
	if config.FeedCacheSize, err = parseInt(env, "ROUTECOST_FEED_CACHE_SIZE", config.FeedCacheSize); err != nil {
		return nil, err
	}
	if config.FeedMaxRetries, err = parseInt(env, "ROUTECOST_FEED_MAX_RETRIES", config.FeedMaxRetries); err != nil {
		return nil, err
	}
	if config.RoutingConcurrency, err = parseInt(env, "ROUTECOST_ROUTING_CONCURRENCY", config.RoutingConcurrency); err != nil {
		return nil, err
	}
	if config.RedisDatabase, err = parseInt(env, "ROUTECOST_REDIS_DATABASE", 0); err != nil {
		return nil, err
	}

	if config.RoutingConcurrency < 1 {
		config.RoutingConcurrency = 1
	}

	return config, nil
}

func parseDuration(env map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	if env[key] == "" {
		return fallback, nil
	}

	duration, err := time.ParseDuration(env[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}

	return duration, nil
}

func parseInt(env map[string]string, key string, fallback int) (int, error) {
	if env[key] == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(env[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}

	return n, nil
}
