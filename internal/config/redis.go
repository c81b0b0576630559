package config

import (
	"os"
	"sync"
	"time"
)

type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	QuestionCacheTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			Addr:             os.Getenv("REDIS_ADDR"),
			Password:         os.Getenv("REDIS_PASSWORD"),
			DB:               getEnvInt("REDIS_DB", 0),
			QuestionCacheTTL: getEnvDuration("QUESTION_CACHE_TTL", 24*time.Hour),
		}
	})
	return redisConfig
}

// Enabled reports whether a redis address was configured.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}
