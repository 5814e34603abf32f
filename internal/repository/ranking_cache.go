package repository

import (
	"context"
	"sync"

	"rpsboard/internal/models"
)

// RankingCache keeps the latest ranking per scope in process memory.
type RankingCache struct {
	mu       sync.RWMutex
	rankings map[string]*models.Ranking
}

func NewRankingCache() *RankingCache {
	return &RankingCache{
		rankings: make(map[string]*models.Ranking),
	}
}

func (c *RankingCache) Save(_ context.Context, scope string, ranking *models.Ranking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rankings[scope] = ranking
	return nil
}

func (c *RankingCache) Load(_ context.Context, scope string) (*models.Ranking, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rankings[scope]
	if !ok {
		return nil, ErrRankingNotFound
	}
	return r, nil
}

func (c *RankingCache) Delete(_ context.Context, scope string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rankings, scope)
	return nil
}

// Size returns the number of remembered scopes.
func (c *RankingCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rankings)
}
