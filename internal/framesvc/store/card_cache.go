package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CardFinder looks a card up by its deck position.
type CardFinder interface {
	GetCardByIndex(ctx context.Context, index int) (*models.Card, error)
}

type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCardStore serves cards from redis and falls through to the next finder on a miss.
// Redis failures are logged and never fail the lookup.
type CachedCardStore struct {
	next  CardFinder
	cache CacheClient
	ttl   time.Duration
}

func NewCachedCardStore(next CardFinder, cache CacheClient, ttl time.Duration) *CachedCardStore {
	return &CachedCardStore{next: next, cache: cache, ttl: ttl}
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func cardKey(index int) string {
	return fmt.Sprintf("card:%d", index)
}

func (s *CachedCardStore) GetCardByIndex(ctx context.Context, index int) (*models.Card, error) {
	key := cardKey(index)

	raw, err := s.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		card := &models.Card{}
		if err := json.Unmarshal([]byte(raw), card); err == nil {
			return card, nil
		}
		log.Warnf("discarding malformed cached card %s", key)
	case !errors.Is(err, redis.Nil):
		log.Warnf("card cache get %s: %s", key, err)
	}

	card, err := s.next.GetCardByIndex(ctx, index)
	if err != nil || card == nil {
		return card, err
	}

	bytes, err := json.Marshal(card)
	if err != nil {
		return card, nil
	}
	if err := s.cache.Set(ctx, key, bytes, s.ttl).Err(); err != nil {
		log.Warnf("card cache set %s: %s", key, err)
	}

	return card, nil
}
