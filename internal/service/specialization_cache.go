package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const SpecializationCacheKey = "doctors:specializations"

// SpecializationLoader reads the distinct specializations from the database
type SpecializationLoader func(ctx context.Context) ([]string, error)

// SpecializationCache keeps the distinct doctor specializations in Redis.
// Redis failures degrade to the loader; they are never returned.
type SpecializationCache interface {
	Get(ctx context.Context, load SpecializationLoader) ([]string, error)
	Invalidate(ctx context.Context)
}

type redisSpecializationCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSpecializationCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) SpecializationCache {
	return &redisSpecializationCache{redisClient: redisClient, log: log, ttl: ttl}
}

func (c *redisSpecializationCache) Get(ctx context.Context, load SpecializationLoader) ([]string, error) {
	raw, err := c.redisClient.Get(ctx, SpecializationCacheKey).Bytes()
	switch {
	case err == nil:
		var specializations []string
		if jsonErr := json.Unmarshal(raw, &specializations); jsonErr == nil {
			return specializations, nil
		}
		c.log.Warnf("Discarding malformed specialization cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warnf("Failed to read specialization cache: %+v", err)
	}

	specializations, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if specializations == nil {
		specializations = []string{}
	}

	payload, err := json.Marshal(specializations)
	if err == nil {
		if err := c.redisClient.Set(ctx, SpecializationCacheKey, payload, c.ttl).Err(); err != nil {
			c.log.Warnf("Failed to write specialization cache: %+v", err)
		}
	}

	return specializations, nil
}

func (c *redisSpecializationCache) Invalidate(ctx context.Context) {
	if err := c.redisClient.Del(ctx, SpecializationCacheKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate specialization cache: %+v", err)
	}
}
