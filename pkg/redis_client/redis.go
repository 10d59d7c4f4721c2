package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/config"
)

var Client *redis.Client

func Connect(cfg *config.Config) error {
	if cfg.RedisAddress == "" {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	options := &redis.Options{
		Addr: cfg.RedisAddress,
		DB:   cfg.RedisDatabase,
	}
	if cfg.RedisPassword != "" {
		options.Password = cfg.RedisPassword
	}

	client := redis.NewClient(options)

	statusCmd := client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", cfg.RedisAddress).Msg("Redis client setup")

	return nil
}
