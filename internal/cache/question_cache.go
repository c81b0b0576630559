package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/service"
	"github.com/redis/go-redis/v9"
)

const questionKeyPrefix = "interview-coach:questions:"

// QuestionCache keeps generated practice questions in redis, keyed by the
// normalized topic set. Redis failures are logged and treated as a miss.
type QuestionCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewQuestionCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *QuestionCache {
	return &QuestionCache{rdb: rdb, ttl: ttl, log: log.With("cache", "questions")}
}

// NewRedisClient connects using cfg and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func Key(topics []string) string {
	return questionKeyPrefix + strings.Join(service.NormalizeTopics(topics), "|")
}

func (c *QuestionCache) Get(ctx context.Context, topics []string) ([]model.SuggestedQuestion, bool) {
	data, err := c.rdb.Get(ctx, Key(topics)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("question cache read failed", "error", err)
		return nil, false
	}

	var questions []model.SuggestedQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		c.log.Warn("discarding corrupt question cache entry", "error", err)
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) Set(ctx context.Context, topics []string, questions []model.SuggestedQuestion) {
	data, err := json.Marshal(questions)
	if err != nil {
		c.log.Error("could not encode questions", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, Key(topics), data, c.ttl).Err(); err != nil {
		c.log.Warn("question cache write failed", "error", err)
	}
}
