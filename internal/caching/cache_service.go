package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecsbilling/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Per financial year document statistics
	GetDocumentStats(ctx context.Context, kind models.DocumentKind, financialYear string) (*models.DocumentStats, error)
	SetDocumentStats(ctx context.Context, kind models.DocumentKind, stats *models.DocumentStats) error
	InvalidateDocumentStats(ctx context.Context, kind models.DocumentKind, financialYear string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient accepts either host:port or a redis:// / rediss:// address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}
	return redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
}

func NewRedisCacheService(client redis.Cmdable, ttl time.Duration) CacheService {
	return &redisCacheService{client: client, ttl: ttl}
}

func statsKey(kind models.DocumentKind, financialYear string) string {
	return fmt.Sprintf("ecs:stats:%s:%s", kind, financialYear)
}

// GetDocumentStats returns nil, nil on a cache miss.
func (r *redisCacheService) GetDocumentStats(ctx context.Context, kind models.DocumentKind, financialYear string) (*models.DocumentStats, error) {
	data, err := r.client.Get(ctx, statsKey(kind, financialYear)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats models.DocumentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDocumentStats(ctx context.Context, kind models.DocumentKind, stats *models.DocumentStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, statsKey(kind, stats.FinancialYear), data, r.ttl).Err()
}

// InvalidateDocumentStats drops the year's entry and the all-years entry,
// which also counts the year's documents.
func (r *redisCacheService) InvalidateDocumentStats(ctx context.Context, kind models.DocumentKind, financialYear string) error {
	return r.client.Del(ctx, statsKey(kind, financialYear), statsKey(kind, "")).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
