package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rpsboard/internal/models"
)

const rankingKeyPrefix = "rpsboard:ranking:"

type RedisConfig struct {
	Addr        string        `env:"ADDR"`
	Password    string        `env:"PASSWORD"`
	DB          int           `env:"DB" envDefault:"0"`
	TTL         time.Duration `env:"TTL" envDefault:"24h"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

// RedisRankingStore shares the latest rankings between bot replicas.
type RedisRankingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRankingStore(ctx context.Context, cfg RedisConfig) (*RedisRankingStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisRankingStoreWithClient(client, cfg.TTL), nil
}

func NewRedisRankingStoreWithClient(client *redis.Client, ttl time.Duration) *RedisRankingStore {
	return &RedisRankingStore{client: client, ttl: ttl}
}

func (s *RedisRankingStore) Save(ctx context.Context, scope string, ranking *models.Ranking) error {
	data, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}
	if err := s.client.Set(ctx, rankingKey(scope), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}

func (s *RedisRankingStore) Load(ctx context.Context, scope string) (*models.Ranking, error) {
	data, err := s.client.Get(ctx, rankingKey(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRankingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ranking: %w", err)
	}

	var r models.Ranking
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode ranking: %w", err)
	}
	return &r, nil
}

func (s *RedisRankingStore) Delete(ctx context.Context, scope string) error {
	if err := s.client.Del(ctx, rankingKey(scope)).Err(); err != nil {
		return fmt.Errorf("failed to delete ranking: %w", err)
	}
	return nil
}

func (s *RedisRankingStore) Close() error {
	return s.client.Close()
}

func rankingKey(scope string) string {
	return rankingKeyPrefix + scope
}
