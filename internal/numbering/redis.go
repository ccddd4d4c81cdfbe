package numbering

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ecs:seq:"

// RedisAllocator keeps one integer key per scope. INCR is atomic on the
// server, which gives the commit guarantee across processes.
type RedisAllocator struct {
	client redis.Cmdable
}

func NewRedisAllocator(client redis.Cmdable) *RedisAllocator {
	return &RedisAllocator{client: client}
}

func (r *RedisAllocator) key(scope Scope) string {
	return redisKeyPrefix + scope.Key()
}

func (r *RedisAllocator) Preview(ctx context.Context, scope Scope) (Allocation, error) {
	current, err := r.client.Get(ctx, r.key(scope)).Result()
	if errors.Is(err, redis.Nil) {
		return newAllocation(scope, 1), nil
	}
	if err != nil {
		return Allocation{}, fmt.Errorf("read sequence %s: %w", scope, err)
	}
	n, err := strconv.ParseInt(current, 10, 64)
	if err != nil {
		return Allocation{}, fmt.Errorf("parse sequence %s: %w", scope, err)
	}
	return newAllocation(scope, n+1), nil
}

func (r *RedisAllocator) Commit(ctx context.Context, scope Scope) (Allocation, error) {
	n, err := r.client.Incr(ctx, r.key(scope)).Result()
	if err != nil {
		return Allocation{}, fmt.Errorf("increment sequence %s: %w", scope, err)
	}
	return newAllocation(scope, n), nil
}
